package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightdesk/contracts-service/internal/model"
)

func TestCreateClientGeneratesSequentialCodes(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	first, err := repo.CreateClient(context.Background(), model.Client{Name: "Acme Retail Pvt Ltd"})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.ClientCode != "CL001" {
		t.Fatalf("first client code = %q, want CL001", first.ClientCode)
	}
	if first.ID == uuid.Nil {
		t.Fatalf("expected a generated client id")
	}

	second, err := repo.CreateClient(context.Background(), model.Client{Name: "Bharat Traders"})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ClientCode != "CL002" {
		t.Fatalf("second client code = %q, want CL002", second.ClientCode)
	}
	if second.ClientCode == first.ClientCode {
		t.Fatalf("codes must be unique, both got %q", first.ClientCode)
	}
}

func TestGetClientByCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)

	created, err := repo.CreateClient(context.Background(), model.Client{Name: "Acme Retail Pvt Ltd"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.GetClientByCode(context.Background(), created.ClientCode)
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("got client %s, want %s", found.ID, created.ID)
	}

	_, err = repo.GetClientByCode(context.Background(), "CL999")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found for unknown code, got %v", err)
	}
}
