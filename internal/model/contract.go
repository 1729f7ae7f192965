package model

import (
	"time"

	"github.com/google/uuid"
)

// Contract is the aggregate root of a client rate card. The latest version is
// addressed by (client_id, contract_code); child rule rows hang off ContractID.
type Contract struct {
	ID           uuid.UUID `gorm:"primaryKey" json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	ContractCode string    `json:"contract_code"`

	AgreementDate  *time.Time `json:"agreement_date"`
	AgreementPlace *string    `json:"agreement_place"`
	TermStart      *time.Time `json:"term_start"`
	TermEnd        *time.Time `json:"term_end"`
	TermMonths     *int       `json:"term_months"`
	Territory      *string    `json:"territory"`

	Jurisdiction            *string `json:"jurisdiction"`
	ArbitrationSeat         *string `json:"arbitration_seat"`
	ArbitrationLanguage     *string `json:"arbitration_language"`
	TerminationNoticeDays   int     `json:"termination_notice_days"`
	NonCompeteCoolingMonths *int    `json:"non_compete_cooling_months"`

	PrepaymentRequired  bool `json:"prepayment_required"`
	PriceFloorEnabled   bool `json:"price_floor_enabled"`
	PriceCeilingEnabled bool `json:"price_ceiling_enabled"`

	TaxesGSTPct float64 `gorm:"column:taxes_gst_pct" json:"taxes_gst_pct"`

	MetroCongestionPerCN *float64 `gorm:"column:metro_congestion_per_cn" json:"metro_congestion_per_cn"`
	CNChargePerCN        *float64 `gorm:"column:cn_charge_per_cn" json:"cn_charge_per_cn"`
	DocketChargePerCN    *float64 `gorm:"column:docket_charge_per_cn" json:"docket_charge_per_cn"`

	MinChargeableWeightKg float64  `json:"min_chargeable_weight_kg"`
	MinFreightPerCN       *float64 `gorm:"column:min_freight_per_cn" json:"min_freight_per_cn"`

	FuelBasePct     *float64 `json:"fuel_base_pct"`
	DieselBasePrice *float64 `json:"diesel_base_price"`
	FuelSlopePct    *float64 `json:"fuel_slope_pct"`

	ChargingMechanism *string `json:"charging_mechanism"`
	RoundingRule      *string `json:"rounding_rule"`

	OddSizeLengthFt *float64 `json:"odd_size_length_ft"`
	OddSizeWidthFt  *float64 `json:"odd_size_width_ft"`
	OddSizeHeightFt *float64 `json:"odd_size_height_ft"`

	Notes *string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (Contract) TableName() string { return "contracts" }

// ContractView is the full projection: parent fields plus every child
// collection. Sections are always present; empty sections are empty slices.
type ContractView struct {
	Contract
	ContractSections
}

type ContractSummary struct {
	ID            uuid.UUID  `json:"id"`
	ClientID      uuid.UUID  `json:"client_id"`
	ContractCode  string     `json:"contract_code"`
	AgreementDate *time.Time `json:"agreement_date"`
	TermStart     *time.Time `json:"term_start"`
	TermEnd       *time.Time `json:"term_end"`
	CreatedAt     time.Time  `json:"created_at"`
}
