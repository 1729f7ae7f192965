// Package schema defines the canonical shape of every contract child
// collection and reconciles legacy field spellings at the ingestion boundary.
// The same semantic field arrived under 2-3 names across client integrations;
// everything past this package speaks canonical names only.
package schema

import (
	"encoding/json"
	"fmt"
)

type Field struct {
	Name    string
	Aliases []string
}

type Section struct {
	Key     string
	Aliases []string
	Fields  []Field
}

var Sections = []Section{
	{
		Key: "volumetric_bases",
		Fields: []Field{
			{Name: "cft_base", Aliases: []string{"kg_per_cft"}},
			{Name: "display_text"},
		},
	},
	{
		Key: "parties",
		Aliases: []string{"contract_parties"},
		Fields: []Field{
			{Name: "party_role", Aliases: []string{"role"}},
			{Name: "legal_name", Aliases: []string{"name"}},
			{Name: "brand_name"},
			{Name: "cin"},
			{Name: "pan"},
			{Name: "gstin", Aliases: []string{"gst_no"}},
			{Name: "tan"},
			{Name: "address1", Aliases: []string{"address_line1"}},
			{Name: "address2", Aliases: []string{"address_line2"}},
			{Name: "city"},
			{Name: "state"},
			{Name: "pincode"},
			{Name: "contact"},
		},
	},
	{
		Key: "oda_rules",
		Aliases: []string{"oda"},
		Fields: []Field{
			{Name: "oda_code", Aliases: []string{"pincode_prefix"}},
			{Name: "label"},
			{Name: "rate_per_kg"},
			{Name: "min_per_cn", Aliases: []string{"min_charge"}},
			{Name: "max_per_cn", Aliases: []string{"max_charge"}},
			{Name: "notes"},
		},
	},
	{
		Key: "non_metro_rules",
		Aliases: []string{"non_metro"},
		Fields: []Field{
			{Name: "max_distance_km", Aliases: []string{"distance_km"}},
			{Name: "rate_per_kg"},
		},
	},
	{
		Key: "region_surcharges",
		Aliases: []string{"region"},
		Fields: []Field{
			{Name: "region", Aliases: []string{"region_name"}},
			{Name: "baseline_ref"},
			{Name: "addl_rate_per_kg", Aliases: []string{"surcharge_flat", "description"}},
		},
	},
	{
		Key: "vas_charges",
		Aliases: []string{"vas"},
		Fields: []Field{
			{Name: "service_code", Aliases: []string{"code"}},
			{Name: "method", Aliases: []string{"calc_method"}},
			{Name: "rate"},
			{Name: "min_charge"},
			{Name: "max_charge"},
			{Name: "free_hours"},
			{Name: "floor_start"},
		},
	},
	{
		Key: "insurance_rules",
		Aliases: []string{"insurance"},
		Fields: []Field{
			{Name: "insurance_type", Aliases: []string{"type"}},
			{Name: "pct_of_invoice", Aliases: []string{"percent_of_invoice"}},
			{Name: "min_per_cn", Aliases: []string{"min_charge"}},
			{Name: "liability"},
		},
	},
	{
		Key: "incentive_slabs",
		Aliases: []string{"incentives"},
		Fields: []Field{
			{Name: "min_tonnage", Aliases: []string{"tonnage_min"}},
			{Name: "max_tonnage", Aliases: []string{"tonnage_max"}},
			{Name: "discount_pct", Aliases: []string{"discount_percent"}},
		},
	},
	{
		Key: "annexures",
		Aliases: []string{"contract_annexures"},
		Fields: []Field{
			{Name: "code"},
			{Name: "title"},
			{Name: "body", Aliases: []string{"text"}},
		},
	},
	{
		Key: "metro_cities",
		Aliases: []string{"metro_congestion_cities"},
		Fields: []Field{
			{Name: "city", Aliases: []string{"city_name"}},
			{Name: "charge_per_cn", Aliases: []string{"congestion_charge"}},
		},
	},
	{
		Key: "special_handling_bands",
		Aliases: []string{"special_handling"},
		Fields: []Field{
			{Name: "min_weight_kg", Aliases: []string{"weight_min_kg"}},
			{Name: "max_weight_kg", Aliases: []string{"weight_max_kg"}},
			{Name: "charge_per_cn"},
		},
	},
	{
		Key: "pickup_charges",
		Fields: []Field{
			{Name: "city"},
			{Name: "charge_per_pickup", Aliases: []string{"pickup_charge"}},
			{Name: "min_weight_kg"},
		},
	},
	{
		Key: "zone_rates",
		Fields: []Field{
			{Name: "zone", Aliases: []string{"zone_name"}},
			{Name: "rate_per_kg"},
			{Name: "tat_days", Aliases: []string{"tat"}},
			{Name: "coverage_cities", Aliases: []string{"cities"}},
		},
	},
}

// SectionByKey resolves a section descriptor by canonical key.
func SectionByKey(key string) (Section, bool) {
	for _, s := range Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Canonicalize rewrites one child row to canonical field names. A canonical
// key present in the row always wins over an alias; unknown keys are dropped.
func Canonicalize(section Section, row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for _, field := range section.Fields {
		if value, ok := row[field.Name]; ok {
			out[field.Name] = value
			continue
		}
		for _, alias := range field.Aliases {
			if value, ok := row[alias]; ok {
				out[field.Name] = value
				break
			}
		}
	}
	return out
}

// ExtractSections pulls every known child collection out of a raw contract
// payload, accepting legacy section names, and canonicalizes each row.
// Sections absent from the payload come back as empty (nil) slices.
func ExtractSections(body map[string]json.RawMessage) (map[string][]map[string]any, error) {
	out := make(map[string][]map[string]any, len(Sections))
	for _, section := range Sections {
		raw, ok := body[section.Key]
		if !ok {
			for _, alias := range section.Aliases {
				if raw, ok = body[alias]; ok {
					break
				}
			}
		}
		if !ok || len(raw) == 0 {
			out[section.Key] = nil
			continue
		}

		var rows []map[string]any
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("section %s: %w", section.Key, err)
		}
		canon := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			canon = append(canon, Canonicalize(section, row))
		}
		out[section.Key] = canon
	}
	return out, nil
}

// DecodeRows converts canonicalized rows into their typed model slice.
func DecodeRows[T any](rows []map[string]any) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		buf, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		var v T
		if err := json.Unmarshal(buf, &v); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
