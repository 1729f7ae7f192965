package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freightdesk/contracts-service/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// The pool must stay on one connection or each :memory: handle gets its
	// own database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Client{},
		&model.Contract{},
		&model.VolumetricBasis{},
		&model.ContractParty{},
		&model.OdaRule{},
		&model.NonMetroRule{},
		&model.RegionSurcharge{},
		&model.VasCharge{},
		&model.InsuranceRule{},
		&model.IncentiveSlab{},
		&model.ContractAnnexure{},
		&model.MetroCity{},
		&model.SpecialHandlingBand{},
		&model.PickupCharge{},
		&model.ZoneRate{},
		&model.Consignment{},
		&model.ConsignmentStatus{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	err = db.Exec(`CREATE UNIQUE INDEX uq_contracts_client_code ON contracts (client_id, contract_code)`).Error
	if err != nil {
		t.Fatalf("unique index: %v", err)
	}
	return db
}

func testContract(clientID uuid.UUID, code string) model.Contract {
	return model.Contract{
		ClientID:              clientID,
		ContractCode:          code,
		TerminationNoticeDays: 30,
		TaxesGSTPct:           18,
		MinChargeableWeightKg: 20,
	}
}

func TestCreateAndGetContract(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	clientID := uuid.New()

	minCharge := 500.0
	tat := 3
	sections := model.ContractSections{
		OdaRules: []model.OdaRule{
			{OdaCode: "ODA1", RatePerKg: 2.5, MinPerCN: &minCharge},
		},
		ZoneRates: []model.ZoneRate{
			{Zone: "NORTH", RatePerKg: 9.5, TatDays: &tat, CoverageCities: []string{"Delhi", "Chandigarh"}},
		},
		MetroCities: []model.MetroCity{
			{City: "Mumbai", ChargePerCN: 100},
			{City: "Delhi", ChargePerCN: 100},
		},
	}

	id, err := repo.CreateContract(context.Background(), testContract(clientID, "FD/2025-26/001"), sections)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == uuid.Nil {
		t.Fatalf("expected a contract id")
	}

	view, err := repo.GetContract(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.ContractCode != "FD/2025-26/001" {
		t.Fatalf("contract code = %q", view.ContractCode)
	}
	if len(view.OdaRules) != 1 || view.OdaRules[0].OdaCode != "ODA1" {
		t.Fatalf("oda rules = %#v", view.OdaRules)
	}
	if view.OdaRules[0].MinPerCN == nil || *view.OdaRules[0].MinPerCN != 500 {
		t.Fatalf("oda min charge lost: %#v", view.OdaRules[0])
	}
	if len(view.ZoneRates) != 1 || len(view.ZoneRates[0].CoverageCities) != 2 {
		t.Fatalf("zone rates = %#v", view.ZoneRates)
	}
	if len(view.MetroCities) != 2 {
		t.Fatalf("metro cities = %#v", view.MetroCities)
	}
	for _, rule := range view.OdaRules {
		if rule.ContractID != id {
			t.Fatalf("child row not tagged with contract id")
		}
	}
	// Absent sections come back as empty slices, never nil.
	if view.Parties == nil || len(view.Parties) != 0 {
		t.Fatalf("parties should be an empty slice, got %#v", view.Parties)
	}
	if view.IncentiveSlabs == nil || len(view.IncentiveSlabs) != 0 {
		t.Fatalf("incentive slabs should be an empty slice")
	}
}

func TestCreateContractRollsBackOnChildFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	clientID := uuid.New()

	sections := model.ContractSections{
		Parties: []model.ContractParty{
			{PartyRole: model.PartyRoleClient, LegalName: "Acme"},
		},
		OdaRules: []model.OdaRule{
			{OdaCode: "BAD", RatePerKg: -1},
		},
	}

	_, err := repo.CreateContract(context.Background(), testContract(clientID, "FD/2025-26/002"), sections)
	if err == nil {
		t.Fatalf("expected the negative rate to fail the write")
	}

	var contracts int64
	if err := db.Model(&model.Contract{}).Count(&contracts).Error; err != nil {
		t.Fatalf("count contracts: %v", err)
	}
	if contracts != 0 {
		t.Fatalf("parent row survived a failed aggregate write")
	}
	var parties int64
	if err := db.Model(&model.ContractParty{}).Count(&parties).Error; err != nil {
		t.Fatalf("count parties: %v", err)
	}
	if parties != 0 {
		t.Fatalf("child rows survived a failed aggregate write")
	}

	// The failed transaction must also hand its connection back to the pool.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if in := sqlDB.Stats().InUse; in != 0 {
		t.Fatalf("%d connection(s) still in use after a rolled-back write", in)
	}
	if _, err := repo.CreateContract(context.Background(), testContract(clientID, "FD/2025-26/002"), model.ContractSections{}); err != nil {
		t.Fatalf("write after rollback: %v", err)
	}
}

func TestCreateContractDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	clientID := uuid.New()

	if _, err := repo.CreateContract(context.Background(), testContract(clientID, "FD/2025-26/003"), model.ContractSections{}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.CreateContract(context.Background(), testContract(clientID, "FD/2025-26/003"), model.ContractSections{})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	// Same code under another client is fine.
	if _, err := repo.CreateContract(context.Background(), testContract(uuid.New(), "FD/2025-26/003"), model.ContractSections{}); err != nil {
		t.Fatalf("same code for another client: %v", err)
	}
}

func TestListContracts(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	clientA := uuid.New()
	clientB := uuid.New()

	older := testContract(clientA, "FD/2025-26/010")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := testContract(clientA, "FD/2025-26/011")
	newer.CreatedAt = time.Now()
	other := testContract(clientB, "FD/2025-26/012")
	other.CreatedAt = time.Now().Add(-30 * time.Minute)

	for _, c := range []model.Contract{older, newer, other} {
		if _, err := repo.CreateContract(context.Background(), c, model.ContractSections{}); err != nil {
			t.Fatalf("create %s: %v", c.ContractCode, err)
		}
	}

	all, err := repo.ListContracts(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(all))
	}
	if all[0].ContractCode != "FD/2025-26/011" {
		t.Fatalf("list should be newest first, got %q", all[0].ContractCode)
	}

	scoped, err := repo.ListContracts(context.Background(), &clientA)
	if err != nil {
		t.Fatalf("scoped list: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 summaries for client A, got %d", len(scoped))
	}
	for _, s := range scoped {
		if s.ClientID != clientA {
			t.Fatalf("summary for wrong client: %#v", s)
		}
	}
}
