package model

import (
	"time"

	"github.com/google/uuid"
)

// Consignment is a shipment record. Shipper/consignee details are snapshot
// copies taken at booking time, never joined back to the client registry.
type Consignment struct {
	ID                uuid.UUID `gorm:"primaryKey" json:"id"`
	CNNumber          string    `gorm:"column:cn_number" json:"cn_number"`
	ClientID          uuid.UUID `gorm:"index" json:"client_id"`
	ShipperName       string    `json:"shipper_name"`
	ShipperAddress    *string   `json:"shipper_address"`
	ShipperPincode    *string   `json:"shipper_pincode"`
	ConsigneeName     string    `json:"consignee_name"`
	ConsigneeAddress  *string   `json:"consignee_address"`
	ConsigneePincode  *string   `json:"consignee_pincode"`
	Pieces            int       `json:"pieces"`
	ActualWeightKg    float64   `json:"actual_weight_kg"`
	LengthCm          *float64  `json:"length_cm"`
	WidthCm           *float64  `json:"width_cm"`
	HeightCm          *float64  `json:"height_cm"`
	InvoiceNumber     *string   `json:"invoice_number"`
	InvoiceValue      *float64  `json:"invoice_value"`
	CurrentStatusCode string    `json:"current_status_code"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Consignment) TableName() string { return "consignments" }

// ConsignmentStatus is one entry of the append-only status history.
type ConsignmentStatus struct {
	ID            uuid.UUID `gorm:"primaryKey" json:"id"`
	ConsignmentID uuid.UUID `gorm:"index" json:"consignment_id"`
	StatusCode    string    `json:"status_code"`
	Remarks       *string   `json:"remarks"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (ConsignmentStatus) TableName() string { return "consignment_status_history" }

// ConsignmentView is a consignment with its full status history.
type ConsignmentView struct {
	Consignment
	History []ConsignmentStatus `json:"history"`
}
