// Package excel exports a contract rate card as a workbook: one summary
// sheet plus one sheet per populated rule section.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/freightdesk/contracts-service/internal/model"
	"github.com/freightdesk/contracts-service/internal/render"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(view *model.ContractView, client model.Client) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, view, client); err != nil {
		return nil, err
	}

	for _, sheet := range buildSheets(view) {
		if len(sheet.rows) == 0 {
			continue
		}
		file.NewSheet(sheet.name)
		if err := g.writeSheet(file, sheet); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, view *model.ContractView, client model.Client) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contract Code")
	set("B1", view.ContractCode)
	set("A2", "Client")
	set("B2", client.Name)
	set("A3", "Client Code")
	set("B3", client.ClientCode)
	set("A4", "GST %")
	set("B4", view.TaxesGSTPct)
	set("A5", "Min Chargeable Weight (kg)")
	set("B5", view.MinChargeableWeightKg)
	set("A6", "Termination Notice (days)")
	set("B6", view.TerminationNoticeDays)

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "B", 24)
	return nil
}

type sheetSpec struct {
	name    string
	headers []string
	rows    [][]interface{}
}

func buildSheets(view *model.ContractView) []sheetSpec {
	sheets := []sheetSpec{
		{
			name:    "ODA",
			headers: []string{"Code", "Label", "Rate/kg", "Min/CN", "Max/CN"},
		},
		{
			name:    "VAS",
			headers: []string{"Service", "Method", "Rate", "Min", "Max"},
		},
		{
			name:    "Zones",
			headers: []string{"Zone", "Rate/kg", "TAT (days)"},
		},
		{
			name:    "Regions",
			headers: []string{"Region", "Baseline", "Addl Rate/kg"},
		},
		{
			name:    "Incentives",
			headers: []string{"Min Tonnage", "Max Tonnage", "Discount %"},
		},
	}

	for _, rule := range view.OdaRules {
		sheets[0].rows = append(sheets[0].rows, []interface{}{
			rule.OdaCode, strPtr(rule.Label), rule.RatePerKg, floatPtr(rule.MinPerCN), floatPtr(rule.MaxPerCN),
		})
	}
	for _, vas := range view.VasCharges {
		sheets[1].rows = append(sheets[1].rows, []interface{}{
			vas.ServiceCode, string(vas.Method), vas.Rate, floatPtr(vas.MinCharge), floatPtr(vas.MaxCharge),
		})
	}
	for _, zone := range view.ZoneRates {
		sheets[2].rows = append(sheets[2].rows, []interface{}{
			zone.Zone, zone.RatePerKg, intPtr(zone.TatDays),
		})
	}
	for _, region := range view.RegionSurcharges {
		sheets[3].rows = append(sheets[3].rows, []interface{}{
			region.Region, strPtr(region.BaselineRef), region.AddlRatePerKg,
		})
	}
	for _, slab := range view.IncentiveSlabs {
		sheets[4].rows = append(sheets[4].rows, []interface{}{
			slab.MinTonnage, floatPtr(slab.MaxTonnage), slab.DiscountPct,
		})
	}
	return sheets
}

func (g *Generator) writeSheet(file *excelize.File, sheet sheetSpec) error {
	for i, header := range sheet.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet.name, cell, header); err != nil {
			return err
		}
	}
	for r, row := range sheet.rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet.name, cell, value); err != nil {
				return err
			}
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(sheet.headers))
	if err != nil {
		return err
	}
	_ = file.SetColWidth(sheet.name, "A", lastCol, 18)
	return nil
}

// FileName builds the export file name from the contract view.
func FileName(view *model.ContractView) string {
	code := view.ContractCode
	if code == "" {
		code = view.ID.String()
	}
	return fmt.Sprintf("ratecard-%s.xlsx", render.SanitizeFileName(code))
}

func strPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatPtr(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func intPtr(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
