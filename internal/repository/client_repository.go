package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightdesk/contracts-service/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// CreateClient inserts a client with a generated sequential code. Codes come
// from a database sequence, so concurrent creates never collide; gaps from
// rolled-back transactions are acceptable.
func (r *ClientRepository) CreateClient(ctx context.Context, client model.Client) (*model.Client, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextClientCode(tx)
		if err != nil {
			return err
		}
		client.ClientCode = fmt.Sprintf("CL%03d", seq)
		return tx.Create(&client).Error
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// nextClientCode draws the next code number. Postgres uses a sequence;
// dialects without sequences fall back to a max-scan inside the transaction,
// guarded by the unique index on client_code.
func nextClientCode(tx *gorm.DB) (int64, error) {
	if tx.Dialector.Name() == "postgres" {
		var seq int64
		if err := tx.Raw(`SELECT nextval('client_code_seq')`).Scan(&seq).Error; err != nil {
			return 0, err
		}
		return seq, nil
	}
	var last int64
	err := tx.Raw(`SELECT COALESCE(MAX(CAST(SUBSTR(client_code, 3) AS INTEGER)), 0) FROM clients`).Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (r *ClientRepository) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Take(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) GetClientByCode(ctx context.Context, code string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Take(&client, "client_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) ListClients(ctx context.Context) ([]model.Client, error) {
	clients := make([]model.Client, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(listCap).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
