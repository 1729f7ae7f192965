package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightdesk/contracts-service/internal/model"
)

type ConsignmentRepository struct {
	db *gorm.DB
}

func NewConsignmentRepository(db *gorm.DB) *ConsignmentRepository {
	return &ConsignmentRepository{db: db}
}

// CreateConsignment inserts the consignment and its first status-history
// entry in one transaction.
func (r *ConsignmentRepository) CreateConsignment(ctx context.Context, cn model.Consignment) (*model.Consignment, error) {
	if cn.ID == uuid.Nil {
		cn.ID = uuid.New()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cn).Error; err != nil {
			return err
		}
		entry := model.ConsignmentStatus{
			ID:            uuid.New(),
			ConsignmentID: cn.ID,
			StatusCode:    cn.CurrentStatusCode,
			OccurredAt:    time.Now().UTC(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &cn, nil
}

// AppendStatus records a new status entry and moves the snapshot pointer.
// History rows are never updated or deleted.
func (r *ConsignmentRepository) AppendStatus(ctx context.Context, consignmentID uuid.UUID, statusCode string, remarks *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := model.ConsignmentStatus{
			ID:            uuid.New(),
			ConsignmentID: consignmentID,
			StatusCode:    statusCode,
			Remarks:       remarks,
			OccurredAt:    time.Now().UTC(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		result := tx.Exec(`
			UPDATE consignments SET current_status_code = ? WHERE id = ?
		`, statusCode, consignmentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByCN fetches a consignment by its business key with full history.
func (r *ConsignmentRepository) GetByCN(ctx context.Context, cnNumber string) (*model.ConsignmentView, error) {
	var cn model.Consignment
	if err := r.db.WithContext(ctx).Take(&cn, "cn_number = ?", cnNumber).Error; err != nil {
		return nil, err
	}

	history := make([]model.ConsignmentStatus, 0)
	err := r.db.WithContext(ctx).
		Where("consignment_id = ?", cn.ID).
		Order("occurred_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return &model.ConsignmentView{Consignment: cn, History: history}, nil
}

// ListConsignments returns newest-first rows, optionally client-scoped.
func (r *ConsignmentRepository) ListConsignments(ctx context.Context, clientID *uuid.UUID) ([]model.Consignment, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(listCap)
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	rows := make([]model.Consignment, 0)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
