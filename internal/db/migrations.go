package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		client_code VARCHAR(16) NOT NULL,
		name VARCHAR(255) NOT NULL,
		cin VARCHAR(32),
		pan VARCHAR(16),
		gstin VARCHAR(24),
		address1 TEXT,
		address2 TEXT,
		city VARCHAR(128),
		state VARCHAR(128),
		pincode VARCHAR(12),
		contact VARCHAR(128),
		email VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_clients_client_code ON clients (client_code);`,
	`CREATE SEQUENCE IF NOT EXISTS client_code_seq START 1;`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY,
		client_id UUID NOT NULL REFERENCES clients(id),
		contract_code VARCHAR(64) NOT NULL,
		agreement_date DATE,
		agreement_place VARCHAR(128),
		term_start DATE,
		term_end DATE,
		term_months INT,
		territory VARCHAR(255),
		jurisdiction VARCHAR(128),
		arbitration_seat VARCHAR(128),
		arbitration_language VARCHAR(64),
		termination_notice_days INT NOT NULL DEFAULT 30,
		non_compete_cooling_months INT,
		prepayment_required BOOLEAN NOT NULL DEFAULT FALSE,
		price_floor_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		price_ceiling_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		taxes_gst_pct NUMERIC(5,2) NOT NULL DEFAULT 18.0,
		metro_congestion_per_cn NUMERIC(12,2),
		cn_charge_per_cn NUMERIC(12,2),
		docket_charge_per_cn NUMERIC(12,2),
		min_chargeable_weight_kg NUMERIC(10,2) NOT NULL DEFAULT 20,
		min_freight_per_cn NUMERIC(12,2),
		fuel_base_pct NUMERIC(6,2),
		diesel_base_price NUMERIC(10,2),
		fuel_slope_pct NUMERIC(6,3),
		charging_mechanism VARCHAR(64),
		rounding_rule VARCHAR(64),
		odd_size_length_ft NUMERIC(6,2),
		odd_size_width_ft NUMERIC(6,2),
		odd_size_height_ft NUMERIC(6,2),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_client_code ON contracts (client_id, contract_code);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE TABLE IF NOT EXISTS contract_volumetric_bases (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		cft_base NUMERIC(10,3) NOT NULL CHECK (cft_base >= 0),
		display_text TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS contract_parties (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		party_role VARCHAR(16) NOT NULL,
		legal_name VARCHAR(255) NOT NULL,
		brand_name VARCHAR(255),
		cin VARCHAR(32),
		pan VARCHAR(16),
		gstin VARCHAR(24),
		tan VARCHAR(16),
		address1 TEXT,
		address2 TEXT,
		city VARCHAR(128),
		state VARCHAR(128),
		pincode VARCHAR(12),
		contact VARCHAR(128)
	);`,
	`CREATE TABLE IF NOT EXISTS contract_oda_rules (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		oda_code VARCHAR(64) NOT NULL,
		label VARCHAR(255),
		rate_per_kg NUMERIC(10,3) NOT NULL CHECK (rate_per_kg >= 0),
		min_per_cn NUMERIC(12,2),
		max_per_cn NUMERIC(12,2),
		notes TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS contract_non_metro_rules (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		max_distance_km NUMERIC(10,2) NOT NULL,
		rate_per_kg NUMERIC(10,3) NOT NULL CHECK (rate_per_kg >= 0)
	);`,
	`CREATE TABLE IF NOT EXISTS contract_region_surcharges (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		region VARCHAR(128) NOT NULL,
		baseline_ref VARCHAR(128),
		addl_rate_per_kg NUMERIC(10,3) NOT NULL CHECK (addl_rate_per_kg >= 0)
	);`,
	`CREATE TABLE IF NOT EXISTS contract_vas_charges (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		service_code VARCHAR(64) NOT NULL,
		method VARCHAR(16) NOT NULL,
		rate NUMERIC(12,3) NOT NULL,
		min_charge NUMERIC(12,2),
		max_charge NUMERIC(12,2),
		free_hours NUMERIC(8,2),
		floor_start NUMERIC(8,2)
	);`,
	`CREATE TABLE IF NOT EXISTS contract_insurance_rules (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		insurance_type VARCHAR(64) NOT NULL,
		pct_of_invoice NUMERIC(6,3) NOT NULL,
		min_per_cn NUMERIC(12,2),
		liability TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS contract_incentive_slabs (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		min_tonnage NUMERIC(10,2) NOT NULL,
		max_tonnage NUMERIC(10,2),
		discount_pct NUMERIC(6,2) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS contract_annexures (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		code VARCHAR(32) NOT NULL,
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS contract_metro_cities (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		city VARCHAR(128) NOT NULL,
		charge_per_cn NUMERIC(12,2) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS contract_special_handling_bands (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		min_weight_kg NUMERIC(10,2) NOT NULL,
		max_weight_kg NUMERIC(10,2),
		charge_per_cn NUMERIC(12,2) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS contract_pickup_charges (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		city VARCHAR(128) NOT NULL,
		charge_per_pickup NUMERIC(12,2) NOT NULL,
		min_weight_kg NUMERIC(10,2)
	);`,
	`CREATE TABLE IF NOT EXISTS contract_zone_rates (
		id UUID PRIMARY KEY,
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		zone VARCHAR(64) NOT NULL,
		rate_per_kg NUMERIC(10,3) NOT NULL CHECK (rate_per_kg >= 0),
		tat_days INT,
		coverage_cities JSONB
	);`,
	`CREATE TABLE IF NOT EXISTS consignments (
		id UUID PRIMARY KEY,
		cn_number VARCHAR(64) NOT NULL,
		client_id UUID NOT NULL REFERENCES clients(id),
		shipper_name VARCHAR(255) NOT NULL,
		shipper_address TEXT,
		shipper_pincode VARCHAR(12),
		consignee_name VARCHAR(255) NOT NULL,
		consignee_address TEXT,
		consignee_pincode VARCHAR(12),
		pieces INT NOT NULL DEFAULT 1,
		actual_weight_kg NUMERIC(10,2) NOT NULL DEFAULT 0,
		length_cm NUMERIC(10,2),
		width_cm NUMERIC(10,2),
		height_cm NUMERIC(10,2),
		invoice_number VARCHAR(64),
		invoice_value NUMERIC(14,2),
		current_status_code VARCHAR(32) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_consignments_cn_number ON consignments (cn_number);`,
	`CREATE INDEX IF NOT EXISTS idx_consignments_client_id ON consignments (client_id);`,
	`CREATE TABLE IF NOT EXISTS consignment_status_history (
		id UUID PRIMARY KEY,
		consignment_id UUID NOT NULL REFERENCES consignments(id) ON DELETE CASCADE,
		status_code VARCHAR(32) NOT NULL,
		remarks TEXT,
		occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_status_history_consignment_id ON consignment_status_history (consignment_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
