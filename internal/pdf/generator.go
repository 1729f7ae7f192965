// Package pdf renders a rate-card summary PDF from the contract projection.
// The generator is stateless and performs no I/O, so it can run per request
// without coordination.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/freightdesk/contracts-service/internal/model"
	"github.com/freightdesk/contracts-service/internal/render"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(view *model.ContractView, client model.Client) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Freight Services Agreement", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract %s", safe(view.ContractCode)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Term: %s to %s", safeDate(view.TermStart), safeDate(view.TermEnd)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.clientBlock(pdf, client)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Charging Summary", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	facts := []string{
		fmt.Sprintf("GST: %s", render.Pct(view.TaxesGSTPct)),
		fmt.Sprintf("Min chargeable weight: %s kg", render.Amount(view.MinChargeableWeightKg)),
		fmt.Sprintf("Min freight/CN: Rs %s", orDash(render.Amount(view.MinFreightPerCN))),
		fmt.Sprintf("CN charge: Rs %s", orDash(render.Amount(view.CNChargePerCN))),
		fmt.Sprintf("Docket charge: Rs %s", orDash(render.Amount(view.DocketChargePerCN))),
		fmt.Sprintf("Fuel surcharge base: %s", orDash(render.Pct(view.FuelBasePct))),
	}
	for _, fact := range facts {
		pdf.CellFormat(0, 5, fact, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if len(view.OdaRules) > 0 {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "ODA Charges", "", 1, "L", false, 0, "")
		headers := []string{"Code", "Rate/kg (Rs)", "Min/CN (Rs)", "Max/CN (Rs)"}
		widths := []float64{50, 45, 45, 40}
		g.tableRow(pdf, headers, widths, true)
		for _, rule := range view.OdaRules {
			row := []string{
				rule.OdaCode,
				render.Amount(rule.RatePerKg),
				orDash(render.Amount(rule.MinPerCN)),
				orDash(render.Amount(rule.MaxPerCN)),
			}
			g.tableRow(pdf, row, widths, false)
		}
		pdf.Ln(4)
	}

	if len(view.ZoneRates) > 0 {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Zone Rates", "", 1, "L", false, 0, "")
		headers := []string{"Zone", "Rate/kg (Rs)", "TAT (days)"}
		widths := []float64{70, 60, 50}
		g.tableRow(pdf, headers, widths, true)
		for _, zone := range view.ZoneRates {
			tat := "-"
			if zone.TatDays != nil {
				tat = fmt.Sprintf("%d", *zone.TatDays)
			}
			row := []string{zone.Zone, render.Amount(zone.RatePerKg), tat}
			g.tableRow(pdf, row, widths, false)
		}
		pdf.Ln(4)
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Signatures", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, "For the Company: ______________________", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("For the Client: ______________________ /%s/", safe(client.Name)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) clientBlock(pdf *gofpdf.Fpdf, client model.Client) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		fmt.Sprintf("%s (%s)", safe(client.Name), safe(client.ClientCode)),
		fmt.Sprintf("PAN: %s", safePtr(client.PAN)),
		fmt.Sprintf("GSTIN: %s", safePtr(client.GSTIN)),
		fmt.Sprintf("Contact: %s", safePtr(client.Contact)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func (g *Generator) tableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 10)
	for i, colText := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, colText, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safe(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func safePtr(value *string) string {
	if value == nil {
		return "-"
	}
	return safe(*value)
}

func safeDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
