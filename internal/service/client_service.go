package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightdesk/contracts-service/internal/model"
	"github.com/freightdesk/contracts-service/internal/repository"
)

type ClientService struct {
	clients *repository.ClientRepository
}

func NewClientService(clients *repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

type CreateClientInput struct {
	Name     string  `json:"name"`
	CIN      *string `json:"cin"`
	PAN      *string `json:"pan"`
	GSTIN    *string `json:"gstin"`
	Address1 *string `json:"address1"`
	Address2 *string `json:"address2"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Pincode  *string `json:"pincode"`
	Contact  *string `json:"contact"`
	Email    *string `json:"email"`
}

func (s *ClientService) CreateClient(ctx context.Context, principal model.Principal, input CreateClientInput) (*model.Client, error) {
	if !(principal.IsAdmin() || principal.IsOps()) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	client := model.Client{
		Name:     strings.TrimSpace(input.Name),
		CIN:      input.CIN,
		PAN:      input.PAN,
		GSTIN:    input.GSTIN,
		Address1: input.Address1,
		Address2: input.Address2,
		City:     input.City,
		State:    input.State,
		Pincode:  input.Pincode,
		Contact:  input.Contact,
		Email:    input.Email,
	}
	return s.clients.CreateClient(ctx, client)
}

func (s *ClientService) GetClient(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Client, error) {
	if !principal.CanAccessClient(id) {
		return nil, ErrPermissionDenied
	}
	client, err := s.clients.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) GetClientByCode(ctx context.Context, principal model.Principal, code string) (*model.Client, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	client, err := s.clients.GetClientByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.CanAccessClient(client.ID) {
		return nil, ErrPermissionDenied
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context, principal model.Principal) ([]model.Client, error) {
	if !(principal.IsAdmin() || principal.IsOps()) {
		return nil, ErrPermissionDenied
	}
	return s.clients.ListClients(ctx)
}
