package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightdesk/contracts-service/internal/model"
)

func testConsignment(clientID uuid.UUID, cnNumber string) model.Consignment {
	return model.Consignment{
		CNNumber:          cnNumber,
		ClientID:          clientID,
		ShipperName:       "FreightDesk Warehouse",
		ConsigneeName:     "Acme Retail Pvt Ltd",
		Pieces:            2,
		ActualWeightKg:    45,
		CurrentStatusCode: "BOOKED",
	}
}

func TestCreateConsignmentWritesFirstHistoryEntry(t *testing.T) {
	db := newTestDB(t)
	repo := NewConsignmentRepository(db)

	created, err := repo.CreateConsignment(context.Background(), testConsignment(uuid.New(), "CN1001"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := repo.GetByCN(context.Background(), "CN1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.ID != created.ID {
		t.Fatalf("lookup returned wrong consignment")
	}
	if len(view.History) != 1 || view.History[0].StatusCode != "BOOKED" {
		t.Fatalf("expected one BOOKED history entry, got %#v", view.History)
	}
}

func TestAppendStatusMovesSnapshotAndKeepsHistory(t *testing.T) {
	db := newTestDB(t)
	repo := NewConsignmentRepository(db)

	created, err := repo.CreateConsignment(context.Background(), testConsignment(uuid.New(), "CN1002"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	remarks := "left origin hub"
	if err := repo.AppendStatus(context.Background(), created.ID, "IN_TRANSIT", &remarks); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendStatus(context.Background(), created.ID, "DELIVERED", nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	view, err := repo.GetByCN(context.Background(), "CN1002")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.CurrentStatusCode != "DELIVERED" {
		t.Fatalf("snapshot status = %q", view.CurrentStatusCode)
	}
	if len(view.History) != 3 {
		t.Fatalf("history should be append-only, got %d entries", len(view.History))
	}
	if view.History[1].Remarks == nil || *view.History[1].Remarks != remarks {
		t.Fatalf("remarks lost: %#v", view.History[1])
	}
}

func TestAppendStatusUnknownConsignment(t *testing.T) {
	db := newTestDB(t)
	repo := NewConsignmentRepository(db)

	err := repo.AppendStatus(context.Background(), uuid.New(), "IN_TRANSIT", nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestListConsignmentsScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewConsignmentRepository(db)
	clientA := uuid.New()
	clientB := uuid.New()

	for _, cn := range []model.Consignment{
		testConsignment(clientA, "CN2001"),
		testConsignment(clientA, "CN2002"),
		testConsignment(clientB, "CN2003"),
	} {
		if _, err := repo.CreateConsignment(context.Background(), cn); err != nil {
			t.Fatalf("create %s: %v", cn.CNNumber, err)
		}
	}

	scoped, err := repo.ListConsignments(context.Background(), &clientA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 rows for client A, got %d", len(scoped))
	}
	all, err := repo.ListConsignments(context.Background(), nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
}
