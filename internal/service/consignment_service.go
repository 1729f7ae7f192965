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

const initialConsignmentStatus = "BOOKED"

type ConsignmentService struct {
	consignments *repository.ConsignmentRepository
	clients      *repository.ClientRepository
}

func NewConsignmentService(consignments *repository.ConsignmentRepository, clients *repository.ClientRepository) *ConsignmentService {
	return &ConsignmentService{consignments: consignments, clients: clients}
}

type CreateConsignmentInput struct {
	CNNumber         string   `json:"cn_number"`
	ClientID         string   `json:"client_id"`
	ShipperName      string   `json:"shipper_name"`
	ShipperAddress   *string  `json:"shipper_address"`
	ShipperPincode   *string  `json:"shipper_pincode"`
	ConsigneeName    string   `json:"consignee_name"`
	ConsigneeAddress *string  `json:"consignee_address"`
	ConsigneePincode *string  `json:"consignee_pincode"`
	Pieces           int      `json:"pieces"`
	ActualWeightKg   float64  `json:"actual_weight_kg"`
	LengthCm         *float64 `json:"length_cm"`
	WidthCm          *float64 `json:"width_cm"`
	HeightCm         *float64 `json:"height_cm"`
	InvoiceNumber    *string  `json:"invoice_number"`
	InvoiceValue     *float64 `json:"invoice_value"`
}

func (s *ConsignmentService) CreateConsignment(ctx context.Context, principal model.Principal, input CreateConsignmentInput) (*model.Consignment, error) {
	if strings.TrimSpace(input.CNNumber) == "" || strings.TrimSpace(input.ClientID) == "" {
		return nil, fmt.Errorf("%w: cn_number and client_id are required", ErrInvalidInput)
	}
	clientID, err := uuid.Parse(strings.TrimSpace(input.ClientID))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid client_id", ErrInvalidInput)
	}
	if !principal.CanAccessClient(clientID) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.ShipperName) == "" || strings.TrimSpace(input.ConsigneeName) == "" {
		return nil, fmt.Errorf("%w: shipper_name and consignee_name are required", ErrInvalidInput)
	}

	if _, err := s.clients.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown client_id", ErrInvalidInput)
		}
		return nil, err
	}

	pieces := input.Pieces
	if pieces <= 0 {
		pieces = 1
	}

	cn := model.Consignment{
		CNNumber:          strings.TrimSpace(input.CNNumber),
		ClientID:          clientID,
		ShipperName:       strings.TrimSpace(input.ShipperName),
		ShipperAddress:    input.ShipperAddress,
		ShipperPincode:    input.ShipperPincode,
		ConsigneeName:     strings.TrimSpace(input.ConsigneeName),
		ConsigneeAddress:  input.ConsigneeAddress,
		ConsigneePincode:  input.ConsigneePincode,
		Pieces:            pieces,
		ActualWeightKg:    input.ActualWeightKg,
		LengthCm:          input.LengthCm,
		WidthCm:           input.WidthCm,
		HeightCm:          input.HeightCm,
		InvoiceNumber:     input.InvoiceNumber,
		InvoiceValue:      input.InvoiceValue,
		CurrentStatusCode: initialConsignmentStatus,
	}

	created, err := s.consignments.CreateConsignment(ctx, cn)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: cn_number %s", ErrConflict, cn.CNNumber)
		}
		return nil, err
	}
	return created, nil
}

func (s *ConsignmentService) GetByCN(ctx context.Context, principal model.Principal, cnNumber string) (*model.ConsignmentView, error) {
	view, err := s.consignments.GetByCN(ctx, strings.TrimSpace(cnNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.CanAccessClient(view.ClientID) {
		return nil, ErrPermissionDenied
	}
	return view, nil
}

func (s *ConsignmentService) ListConsignments(ctx context.Context, principal model.Principal, clientID *uuid.UUID) ([]model.Consignment, error) {
	if !(principal.IsAdmin() || principal.IsOps()) {
		if principal.ClientID == nil {
			return nil, ErrPermissionDenied
		}
		clientID = principal.ClientID
	}
	return s.consignments.ListConsignments(ctx, clientID)
}

func (s *ConsignmentService) AppendStatus(ctx context.Context, principal model.Principal, cnNumber, statusCode string, remarks *string) error {
	if !(principal.IsAdmin() || principal.IsOps()) {
		return ErrPermissionDenied
	}
	if strings.TrimSpace(statusCode) == "" {
		return fmt.Errorf("%w: status_code is required", ErrInvalidInput)
	}

	view, err := s.consignments.GetByCN(ctx, strings.TrimSpace(cnNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.consignments.AppendStatus(ctx, view.ID, strings.TrimSpace(statusCode), remarks)
}
