package repository

import (
	"context"

	"correcaja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransaccionRepository interface {
	Create(ctx context.Context, t *model.Transaccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error)
	// ListByCaja returns the session transactions in creation order;
	// voided rows are included unless conAnuladas is false
	ListByCaja(ctx context.Context, cajaID uuid.UUID, conAnuladas bool) ([]model.Transaccion, error)
	Update(ctx context.Context, t *model.Transaccion) error
}

type transaccionRepo struct{ db *gorm.DB }

func NewTransaccionRepository(db *gorm.DB) TransaccionRepository {
	return &transaccionRepo{db: db}
}

func (r *transaccionRepo) Create(ctx context.Context, t *model.Transaccion) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transaccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error) {
	var t model.Transaccion
	err := r.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transaccionRepo) ListByCaja(ctx context.Context, cajaID uuid.UUID, conAnuladas bool) ([]model.Transaccion, error) {
	q := r.db.WithContext(ctx).Where("caja_id = ?", cajaID)
	if !conAnuladas {
		q = q.Where("anulada = false")
	}
	var trans []model.Transaccion
	err := q.Order("created_at ASC").Find(&trans).Error
	return trans, err
}

func (r *transaccionRepo) Update(ctx context.Context, t *model.Transaccion) error {
	return r.db.WithContext(ctx).Save(t).Error
}
