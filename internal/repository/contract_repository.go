package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightdesk/contracts-service/internal/model"
)

// listCap bounds every list query; dashboards page client-side.
const listCap = 200

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// CreateContract persists the parent row and every child collection as one
// unit. The whole write runs in a single transaction on one connection; any
// child failure rolls back everything, so readers never see a partial
// aggregate. Child rows are tagged with the contract id looked up by
// (client_id, contract_code) right after the parent insert.
func (r *ContractRepository) CreateContract(
	ctx context.Context,
	contract model.Contract,
	sections model.ContractSections,
) (uuid.UUID, error) {
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		var contractID uuid.UUID
		err := tx.Raw(`
			SELECT id FROM contracts
			WHERE client_id = ? AND contract_code = ?
			ORDER BY created_at DESC
			LIMIT 1
		`, contract.ClientID, contract.ContractCode).Scan(&contractID).Error
		if err != nil {
			return err
		}
		contract.ID = contractID

		for i := range sections.VolumetricBases {
			sections.VolumetricBases[i].ID = uuid.New()
			sections.VolumetricBases[i].ContractID = contractID
		}
		for i := range sections.Parties {
			sections.Parties[i].ID = uuid.New()
			sections.Parties[i].ContractID = contractID
		}
		for i := range sections.OdaRules {
			sections.OdaRules[i].ID = uuid.New()
			sections.OdaRules[i].ContractID = contractID
		}
		for i := range sections.NonMetroRules {
			sections.NonMetroRules[i].ID = uuid.New()
			sections.NonMetroRules[i].ContractID = contractID
		}
		for i := range sections.RegionSurcharges {
			sections.RegionSurcharges[i].ID = uuid.New()
			sections.RegionSurcharges[i].ContractID = contractID
		}
		for i := range sections.VasCharges {
			sections.VasCharges[i].ID = uuid.New()
			sections.VasCharges[i].ContractID = contractID
		}
		for i := range sections.InsuranceRules {
			sections.InsuranceRules[i].ID = uuid.New()
			sections.InsuranceRules[i].ContractID = contractID
		}
		for i := range sections.IncentiveSlabs {
			sections.IncentiveSlabs[i].ID = uuid.New()
			sections.IncentiveSlabs[i].ContractID = contractID
		}
		for i := range sections.Annexures {
			sections.Annexures[i].ID = uuid.New()
			sections.Annexures[i].ContractID = contractID
		}
		for i := range sections.MetroCities {
			sections.MetroCities[i].ID = uuid.New()
			sections.MetroCities[i].ContractID = contractID
		}
		for i := range sections.SpecialHandlingBands {
			sections.SpecialHandlingBands[i].ID = uuid.New()
			sections.SpecialHandlingBands[i].ContractID = contractID
		}
		for i := range sections.PickupCharges {
			sections.PickupCharges[i].ID = uuid.New()
			sections.PickupCharges[i].ContractID = contractID
		}
		for i := range sections.ZoneRates {
			sections.ZoneRates[i].ID = uuid.New()
			sections.ZoneRates[i].ContractID = contractID
		}

		if err := createRows(tx, sections.VolumetricBases); err != nil {
			return err
		}
		if err := createRows(tx, sections.Parties); err != nil {
			return err
		}
		if err := createRows(tx, sections.OdaRules); err != nil {
			return err
		}
		if err := createRows(tx, sections.NonMetroRules); err != nil {
			return err
		}
		if err := createRows(tx, sections.RegionSurcharges); err != nil {
			return err
		}
		if err := createRows(tx, sections.VasCharges); err != nil {
			return err
		}
		if err := createRows(tx, sections.InsuranceRules); err != nil {
			return err
		}
		if err := createRows(tx, sections.IncentiveSlabs); err != nil {
			return err
		}
		if err := createRows(tx, sections.Annexures); err != nil {
			return err
		}
		if err := createRows(tx, sections.MetroCities); err != nil {
			return err
		}
		if err := createRows(tx, sections.SpecialHandlingBands); err != nil {
			return err
		}
		if err := createRows(tx, sections.PickupCharges); err != nil {
			return err
		}
		return createRows(tx, sections.ZoneRates)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return contract.ID, nil
}

func createRows[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// GetContract assembles the full projection: the parent row plus every child
// collection. Sections with no rows come back as empty slices.
func (r *ContractRepository) GetContract(ctx context.Context, id uuid.UUID) (*model.ContractView, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).Take(&contract, "id = ?", id).Error; err != nil {
		return nil, err
	}

	view := &model.ContractView{Contract: contract}
	var err error
	if view.VolumetricBases, err = findRows[model.VolumetricBasis](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.Parties, err = findRows[model.ContractParty](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.OdaRules, err = findRows[model.OdaRule](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.NonMetroRules, err = findRows[model.NonMetroRule](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.RegionSurcharges, err = findRows[model.RegionSurcharge](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.VasCharges, err = findRows[model.VasCharge](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.InsuranceRules, err = findRows[model.InsuranceRule](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.IncentiveSlabs, err = findRows[model.IncentiveSlab](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.Annexures, err = findRows[model.ContractAnnexure](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.MetroCities, err = findRows[model.MetroCity](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.SpecialHandlingBands, err = findRows[model.SpecialHandlingBand](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.PickupCharges, err = findRows[model.PickupCharge](ctx, r.db, id); err != nil {
		return nil, err
	}
	if view.ZoneRates, err = findRows[model.ZoneRate](ctx, r.db, id); err != nil {
		return nil, err
	}
	return view, nil
}

func findRows[T any](ctx context.Context, db *gorm.DB, contractID uuid.UUID) ([]T, error) {
	rows := make([]T, 0)
	if err := db.WithContext(ctx).Where("contract_id = ?", contractID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListContracts returns newest-first summaries, optionally filtered by client.
func (r *ContractRepository) ListContracts(ctx context.Context, clientID *uuid.UUID) ([]model.ContractSummary, error) {
	query := `
		SELECT id, client_id, contract_code, agreement_date, term_start, term_end, created_at
		FROM contracts
	`
	args := []interface{}{}
	if clientID != nil {
		query += " WHERE client_id = ?"
		args = append(args, *clientID)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, listCap)

	summaries := make([]model.ContractSummary, 0)
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
