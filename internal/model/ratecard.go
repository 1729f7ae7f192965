package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PartyRole string

const (
	PartyRoleCompany PartyRole = "COMPANY"
	PartyRoleClient  PartyRole = "CLIENT"
	PartyRoleOther   PartyRole = "OTHER"
)

type VasMethod string

const (
	VasMethodRatePerKg  VasMethod = "RATE_PER_KG"
	VasMethodRatePerCN  VasMethod = "RATE_PER_CN"
	VasMethodMultiplier VasMethod = "MULTIPLIER"
	VasMethodFlat       VasMethod = "FLAT"
)

type VolumetricBasis struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID  uuid.UUID `gorm:"index" json:"contract_id"`
	CftBase     float64   `gorm:"check:cft_base >= 0" json:"cft_base"`
	DisplayText *string   `json:"display_text"`
}

func (VolumetricBasis) TableName() string { return "contract_volumetric_bases" }

type ContractParty struct {
	ID         uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"index" json:"contract_id"`
	PartyRole  PartyRole `json:"party_role"`
	LegalName  string    `json:"legal_name"`
	BrandName  *string   `json:"brand_name"`
	CIN        *string   `gorm:"column:cin" json:"cin"`
	PAN        *string   `gorm:"column:pan" json:"pan"`
	GSTIN      *string   `gorm:"column:gstin" json:"gstin"`
	TAN        *string   `gorm:"column:tan" json:"tan"`
	Address1   *string   `json:"address1"`
	Address2   *string   `json:"address2"`
	City       *string   `json:"city"`
	State      *string   `json:"state"`
	Pincode    *string   `json:"pincode"`
	Contact    *string   `json:"contact"`
}

func (ContractParty) TableName() string { return "contract_parties" }

type OdaRule struct {
	ID         uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"index" json:"contract_id"`
	OdaCode    string    `json:"oda_code"`
	Label      *string   `json:"label"`
	RatePerKg  float64   `gorm:"check:rate_per_kg >= 0" json:"rate_per_kg"`
	MinPerCN   *float64  `gorm:"column:min_per_cn" json:"min_per_cn"`
	MaxPerCN   *float64  `gorm:"column:max_per_cn" json:"max_per_cn"`
	Notes      *string   `json:"notes"`
}

func (OdaRule) TableName() string { return "contract_oda_rules" }

type NonMetroRule struct {
	ID            uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID    uuid.UUID `gorm:"index" json:"contract_id"`
	MaxDistanceKm float64   `json:"max_distance_km"`
	RatePerKg     float64   `gorm:"check:rate_per_kg >= 0" json:"rate_per_kg"`
}

func (NonMetroRule) TableName() string { return "contract_non_metro_rules" }

type RegionSurcharge struct {
	ID            uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID    uuid.UUID `gorm:"index" json:"contract_id"`
	Region        string    `json:"region"`
	BaselineRef   *string   `json:"baseline_ref"`
	AddlRatePerKg float64   `gorm:"check:addl_rate_per_kg >= 0" json:"addl_rate_per_kg"`
}

func (RegionSurcharge) TableName() string { return "contract_region_surcharges" }

type VasCharge struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID  uuid.UUID `gorm:"index" json:"contract_id"`
	ServiceCode string    `json:"service_code"`
	Method      VasMethod `json:"method"`
	Rate        float64   `json:"rate"`
	MinCharge   *float64  `json:"min_charge"`
	MaxCharge   *float64  `json:"max_charge"`
	FreeHours   *float64  `json:"free_hours"`
	FloorStart  *float64  `json:"floor_start"`
}

func (VasCharge) TableName() string { return "contract_vas_charges" }

type InsuranceRule struct {
	ID            uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID    uuid.UUID `gorm:"index" json:"contract_id"`
	InsuranceType string    `json:"insurance_type"`
	PctOfInvoice  float64   `json:"pct_of_invoice"`
	MinPerCN      *float64  `gorm:"column:min_per_cn" json:"min_per_cn"`
	Liability     *string   `json:"liability"`
}

func (InsuranceRule) TableName() string { return "contract_insurance_rules" }

type IncentiveSlab struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID  uuid.UUID `gorm:"index" json:"contract_id"`
	MinTonnage  float64   `json:"min_tonnage"`
	MaxTonnage  *float64  `json:"max_tonnage"`
	DiscountPct float64   `json:"discount_pct"`
}

func (IncentiveSlab) TableName() string { return "contract_incentive_slabs" }

type ContractAnnexure struct {
	ID         uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"index" json:"contract_id"`
	Code       string    `json:"code"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
}

func (ContractAnnexure) TableName() string { return "contract_annexures" }

type MetroCity struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID  uuid.UUID `gorm:"index" json:"contract_id"`
	City        string    `json:"city"`
	ChargePerCN float64   `gorm:"column:charge_per_cn" json:"charge_per_cn"`
}

func (MetroCity) TableName() string { return "contract_metro_cities" }

type SpecialHandlingBand struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID  uuid.UUID `gorm:"index" json:"contract_id"`
	MinWeightKg float64   `json:"min_weight_kg"`
	MaxWeightKg *float64  `json:"max_weight_kg"`
	ChargePerCN float64   `gorm:"column:charge_per_cn" json:"charge_per_cn"`
}

func (SpecialHandlingBand) TableName() string { return "contract_special_handling_bands" }

type PickupCharge struct {
	ID              uuid.UUID `gorm:"primaryKey" json:"id"`
	ContractID      uuid.UUID `gorm:"index" json:"contract_id"`
	City            string    `json:"city"`
	ChargePerPickup float64   `json:"charge_per_pickup"`
	MinWeightKg     *float64  `json:"min_weight_kg"`
}

func (PickupCharge) TableName() string { return "contract_pickup_charges" }

type ZoneRate struct {
	ID             uuid.UUID                   `gorm:"primaryKey" json:"id"`
	ContractID     uuid.UUID                   `gorm:"index" json:"contract_id"`
	Zone           string                      `json:"zone"`
	RatePerKg      float64                     `gorm:"check:rate_per_kg >= 0" json:"rate_per_kg"`
	TatDays        *int                        `json:"tat_days"`
	CoverageCities datatypes.JSONSlice[string] `json:"coverage_cities"`
}

func (ZoneRate) TableName() string { return "contract_zone_rates" }

// ContractSections groups every child collection of one contract. The JSON
// keys are the canonical section names used across the API and the renderer.
type ContractSections struct {
	VolumetricBases      []VolumetricBasis     `json:"volumetric_bases"`
	Parties              []ContractParty       `json:"parties"`
	OdaRules             []OdaRule             `json:"oda_rules"`
	NonMetroRules        []NonMetroRule        `json:"non_metro_rules"`
	RegionSurcharges     []RegionSurcharge     `json:"region_surcharges"`
	VasCharges           []VasCharge           `json:"vas_charges"`
	InsuranceRules       []InsuranceRule       `json:"insurance_rules"`
	IncentiveSlabs       []IncentiveSlab       `json:"incentive_slabs"`
	Annexures            []ContractAnnexure    `json:"annexures"`
	MetroCities          []MetroCity           `json:"metro_cities"`
	SpecialHandlingBands []SpecialHandlingBand `json:"special_handling_bands"`
	PickupCharges        []PickupCharge        `json:"pickup_charges"`
	ZoneRates            []ZoneRate            `json:"zone_rates"`
}
