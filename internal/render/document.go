// Package render turns a contract projection into a self-contained HTML
// document. Rendering is a pure function: no I/O, no clock, no mutation.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/freightdesk/contracts-service/internal/model"
)

// Sections is the generic projection form the renderer consumes. Keys may be
// canonical section names or legacy ones written by older readers.
type Sections map[string][]map[string]any

// SectionsFromView flattens a typed projection into the generic form.
func SectionsFromView(view *model.ContractView) (Sections, error) {
	buf, err := json.Marshal(view.ContractSections)
	if err != nil {
		return nil, err
	}
	var out Sections
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Legacy section spellings, resolved at render time. Data projected by older
// readers may still carry these keys; the first non-empty candidate wins.
var sectionAliases = map[string][]string{
	"volumetric_bases":       {"volumetric"},
	"parties":                {"contract_parties", "party_details"},
	"oda_rules":              {"oda"},
	"non_metro_rules":        {"non_metro"},
	"region_surcharges":      {"region"},
	"vas_charges":            {"vas"},
	"insurance_rules":        {"insurance"},
	"incentive_slabs":        {"incentives"},
	"annexures":              {"contract_annexures"},
	"metro_cities":           {"metro_congestion_cities"},
	"special_handling_bands": {"special_handling"},
	"pickup_charges":         {"pickup"},
	"zone_rates":             {"zones"},
	"rate_matrix":            {"additional_rates"},
}

func (s Sections) rows(key string) []map[string]any {
	if rows := s[key]; len(rows) > 0 {
		return rows
	}
	for _, alias := range sectionAliases[key] {
		if rows := s[alias]; len(rows) > 0 {
			return rows
		}
	}
	return nil
}

// UniformMetroCharge reports the single charge_per_cn shared by every metro
// city row. It holds only when the section is non-empty and all values are
// numeric and identical.
func UniformMetroCharge(rows []map[string]any) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	first, ok := Numeric(rows[0]["charge_per_cn"])
	if !ok {
		return 0, false
	}
	for _, row := range rows[1:] {
		v, ok := Numeric(row["charge_per_cn"])
		if !ok || v != first {
			return 0, false
		}
	}
	return first, true
}

type Input struct {
	Contract model.Contract
	Client   model.Client
	Sections Sections

	// Fallback odd-size thresholds used when the contract leaves its own
	// unset. Zero values fall back again to 6/5/5 ft.
	OddSizeLengthFt float64
	OddSizeWidthFt  float64
	OddSizeHeightFt float64
}

type kv struct {
	Label string
	Value string
}

type col struct {
	Header string
	Key    string
	Kind   string // text | money | perkg | pct | num | list
}

type table struct {
	Title string
	Cols  []col
	Rows  []map[string]any
	Note  string
}

type docData struct {
	Title        string
	Subtitle     string
	HeaderFacts  []kv
	Jurisdiction []kv
	Capacity     []kv
	ClientKYC    []kv
	Tables       []table
	Notes        string
	SignCompany  string
	SignClient   string
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("contract").Funcs(template.FuncMap{
		"cell": formatCell,
	}).Parse(documentTemplate)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func formatCell(kind string, row map[string]any, key string) string {
	value := row[key]
	switch kind {
	case "money":
		return Money(value)
	case "perkg":
		return PerKg(value)
	case "pct":
		return Pct(value)
	case "num":
		if f, ok := Numeric(value); ok {
			return group(f)
		}
		return ""
	case "list":
		items, ok := value.([]any)
		if !ok {
			return Dash(value)
		}
		out := ""
		for i, item := range items {
			if i > 0 {
				out += ", "
			}
			out += fmt.Sprint(item)
		}
		return Dash(out)
	default:
		return Dash(value)
	}
}

// Render produces the complete HTML document for one contract.
func (r *Renderer) Render(in Input) (string, error) {
	data := buildDocData(in)
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildDocData(in Input) docData {
	c := in.Contract
	sections := in.Sections
	if sections == nil {
		sections = Sections{}
	}

	headerFacts := []kv{
		{"Contract Code", Dash(c.ContractCode)},
		{"Client", Dash(in.Client.Name)},
		{"Client Code", Dash(in.Client.ClientCode)},
		{"Agreement Date", DashDate(c.AgreementDate)},
		{"Agreement Place", Dash(c.AgreementPlace)},
		{"Term", fmt.Sprintf("%s to %s", DashDate(c.TermStart), DashDate(c.TermEnd))},
		{"Term (months)", Dash(c.TermMonths)},
		{"Territory", Dash(c.Territory)},
		{"GST", Pct(c.TaxesGSTPct)},
	}
	metroRows := sections.rows("metro_cities")
	if charge, ok := UniformMetroCharge(metroRows); ok {
		headerFacts = append(headerFacts, kv{"Metro Congestion/CN", Money(charge)})
	}

	jurisdiction := []kv{
		{"Jurisdiction", Dash(c.Jurisdiction)},
		{"Arbitration Seat", Dash(c.ArbitrationSeat)},
		{"Arbitration Language", Dash(c.ArbitrationLanguage)},
		{"Termination Notice (days)", Dash(&c.TerminationNoticeDays)},
		{"Non-Compete Cooling (months)", Dash(c.NonCompeteCoolingMonths)},
	}

	capacity := []kv{
		{"Prepayment Required", YesNo(c.PrepaymentRequired)},
		{"Price Floor", YesNo(c.PriceFloorEnabled)},
		{"Price Ceiling", YesNo(c.PriceCeilingEnabled)},
		{"Charging Mechanism", Dash(c.ChargingMechanism)},
		{"Rounding Rule", Dash(c.RoundingRule)},
		{"Min Chargeable Weight", weightKg(c.MinChargeableWeightKg)},
		{"Min Freight/CN", Money(c.MinFreightPerCN)},
		{"CN Charge", Money(c.CNChargePerCN)},
		{"Docket Charge", Money(c.DocketChargePerCN)},
		{"Fuel Surcharge Base", Pct(c.FuelBasePct)},
		{"Diesel Base Price", Money(c.DieselBasePrice)},
		{"Fuel Slope per 1% Diesel Move", Pct(c.FuelSlopePct)},
	}

	clientKYC := []kv{
		{"Legal Name", Dash(in.Client.Name)},
		{"CIN", Dash(in.Client.CIN)},
		{"PAN", Dash(in.Client.PAN)},
		{"GSTIN", Dash(in.Client.GSTIN)},
		{"Address", Dash(joinAddress(in.Client.Address1, in.Client.Address2, in.Client.City, in.Client.State, in.Client.Pincode))},
		{"Contact", Dash(in.Client.Contact)},
		{"Email", Dash(in.Client.Email)},
	}

	tables := []table{
		{
			Title: "Party Details",
			Cols: []col{
				{"Role", "party_role", "text"},
				{"Legal Name", "legal_name", "text"},
				{"CIN", "cin", "text"},
				{"PAN", "pan", "text"},
				{"GSTIN", "gstin", "text"},
				{"City", "city", "text"},
				{"Contact", "contact", "text"},
			},
			Rows: sections.rows("parties"),
		},
		{
			Title: "Transit Insurance",
			Cols: []col{
				{"Type", "insurance_type", "text"},
				{"% of Invoice", "pct_of_invoice", "pct"},
				{"Min/CN", "min_per_cn", "money"},
				{"Liability", "liability", "text"},
			},
			Rows: sections.rows("insurance_rules"),
		},
		{
			Title: "Metro Congestion Charges",
			Cols: []col{
				{"City", "city", "text"},
				{"Charge/CN", "charge_per_cn", "money"},
			},
			Rows: metroRows,
		},
		{
			Title: "ODA Charges",
			Cols: []col{
				{"ODA Code", "oda_code", "text"},
				{"Label", "label", "text"},
				{"Rate", "rate_per_kg", "perkg"},
				{"Min/CN", "min_per_cn", "money"},
				{"Max/CN", "max_per_cn", "money"},
				{"Notes", "notes", "text"},
			},
			Rows: sections.rows("oda_rules"),
		},
		{
			Title: "Value-Added Services",
			Cols: []col{
				{"Service", "service_code", "text"},
				{"Method", "method", "text"},
				{"Rate", "rate", "num"},
				{"Min", "min_charge", "money"},
				{"Max", "max_charge", "money"},
				{"Free Hours", "free_hours", "num"},
				{"Floor Start", "floor_start", "num"},
			},
			Rows: sections.rows("vas_charges"),
		},
		{
			Title: "Special Handling",
			Cols: []col{
				{"Min Weight (kg)", "min_weight_kg", "num"},
				{"Max Weight (kg)", "max_weight_kg", "num"},
				{"Charge/CN", "charge_per_cn", "money"},
			},
			Rows: sections.rows("special_handling_bands"),
			Note: oddSizeNote(in),
		},
		{
			Title: "Pickup Charges",
			Cols: []col{
				{"City", "city", "text"},
				{"Charge/Pickup", "charge_per_pickup", "money"},
				{"Min Weight (kg)", "min_weight_kg", "num"},
			},
			Rows: sections.rows("pickup_charges"),
		},
		{
			Title: "Zone Rates & TAT",
			Cols: []col{
				{"Zone", "zone", "text"},
				{"Rate", "rate_per_kg", "perkg"},
				{"TAT (days)", "tat_days", "num"},
				{"Coverage", "coverage_cities", "list"},
			},
			Rows: sections.rows("zone_rates"),
		},
		{
			Title: "Region Surcharges",
			Cols: []col{
				{"Region", "region", "text"},
				{"Baseline", "baseline_ref", "text"},
				{"Additional Rate", "addl_rate_per_kg", "perkg"},
			},
			Rows: sections.rows("region_surcharges"),
		},
		{
			Title: "Non-Metro Rules",
			Cols: []col{
				{"Max Distance (km)", "max_distance_km", "num"},
				{"Rate", "rate_per_kg", "perkg"},
			},
			Rows: sections.rows("non_metro_rules"),
		},
		{
			Title: "Incentive Slabs",
			Cols: []col{
				{"Min Tonnage", "min_tonnage", "num"},
				{"Max Tonnage", "max_tonnage", "num"},
				{"Discount", "discount_pct", "pct"},
			},
			Rows: sections.rows("incentive_slabs"),
		},
		{
			Title: "Annexures",
			Cols: []col{
				{"Code", "code", "text"},
				{"Title", "title", "text"},
				{"Body", "body", "text"},
			},
			Rows: sections.rows("annexures"),
		},
	}

	if matrix := sections.rows("rate_matrix"); len(matrix) > 0 {
		tables = append(tables, table{
			Title: "Additional Rate Matrix",
			Cols: []col{
				{"Lane", "lane", "text"},
				{"Rate", "rate_per_kg", "perkg"},
			},
			Rows: matrix,
		})
	}

	capacity = append(capacity, volumetricFacts(sections.rows("volumetric_bases"))...)

	return docData{
		Title:        "Freight Services Agreement",
		Subtitle:     fmt.Sprintf("Contract %s", Dash(c.ContractCode)),
		HeaderFacts:  headerFacts,
		Jurisdiction: jurisdiction,
		Capacity:     capacity,
		ClientKYC:    clientKYC,
		Tables:       tables,
		Notes:        Dash(c.Notes),
		SignCompany:  partyName(sections, string(model.PartyRoleCompany), "Authorised Signatory"),
		SignClient:   partyName(sections, string(model.PartyRoleClient), in.Client.Name),
	}
}

func volumetricFacts(rows []map[string]any) []kv {
	facts := make([]kv, 0, len(rows))
	for _, row := range rows {
		value := ""
		if f, ok := Numeric(row["cft_base"]); ok {
			value = fmt.Sprintf("1 CFT = %s kg", group(f))
		}
		if text, ok := row["display_text"].(string); ok && text != "" {
			if value != "" {
				value += " (" + text + ")"
			} else {
				value = text
			}
		}
		if value != "" {
			facts = append(facts, kv{"Volumetric Basis", value})
		}
	}
	return facts
}

func oddSizeNote(in Input) string {
	length := firstNonZero(deref(in.Contract.OddSizeLengthFt), in.OddSizeLengthFt, 6)
	width := firstNonZero(deref(in.Contract.OddSizeWidthFt), in.OddSizeWidthFt, 5)
	height := firstNonZero(deref(in.Contract.OddSizeHeightFt), in.OddSizeHeightFt, 5)
	return fmt.Sprintf(
		"Shipments exceeding %s ft (L), %s ft (W) or %s ft (H) are treated as odd-size and attract special handling charges.",
		group(length), group(width), group(height),
	)
}

func partyName(sections Sections, role, fallback string) string {
	for _, row := range sections.rows("parties") {
		if r, ok := row["party_role"].(string); ok && r == role {
			if name, ok := row["legal_name"].(string); ok && name != "" {
				return name
			}
		}
	}
	return fallback
}

func joinAddress(parts ...*string) string {
	out := ""
	for _, part := range parts {
		if part == nil || *part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += *part
	}
	return out
}

func weightKg(v float64) string {
	return group(v) + " kg"
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
