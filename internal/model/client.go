package model

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID         uuid.UUID `gorm:"primaryKey" json:"id"`
	ClientCode string    `json:"client_code"`
	Name       string    `json:"name"`
	CIN        *string   `gorm:"column:cin" json:"cin"`
	PAN        *string   `gorm:"column:pan" json:"pan"`
	GSTIN      *string   `gorm:"column:gstin" json:"gstin"`
	Address1   *string   `json:"address1"`
	Address2   *string   `json:"address2"`
	City       *string   `json:"city"`
	State      *string   `json:"state"`
	Pincode    *string   `json:"pincode"`
	Contact    *string   `json:"contact"`
	Email      *string   `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Client) TableName() string { return "clients" }
