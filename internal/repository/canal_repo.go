package repository

import (
	"context"

	"correcaja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CanalRepository interface {
	Create(ctx context.Context, c *model.CanalTransaccion) error
	CreateBatch(ctx context.Context, canales []model.CanalTransaccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CanalTransaccion, error)
	FindByNombre(ctx context.Context, usuarioID uuid.UUID, nombre string) (*model.CanalTransaccion, error)
	ListActivos(ctx context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error)
	ListAll(ctx context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error)
	Update(ctx context.Context, c *model.CanalTransaccion) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUsuario(ctx context.Context, usuarioID uuid.UUID) (int64, error)
}

type canalRepo struct{ db *gorm.DB }

func NewCanalRepository(db *gorm.DB) CanalRepository { return &canalRepo{db: db} }

func (r *canalRepo) Create(ctx context.Context, c *model.CanalTransaccion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *canalRepo) CreateBatch(ctx context.Context, canales []model.CanalTransaccion) error {
	return r.db.WithContext(ctx).Create(&canales).Error
}

func (r *canalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CanalTransaccion, error) {
	var c model.CanalTransaccion
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *canalRepo) FindByNombre(ctx context.Context, usuarioID uuid.UUID, nombre string) (*model.CanalTransaccion, error) {
	var c model.CanalTransaccion
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND lower(nombre) = lower(?)", usuarioID, nombre).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *canalRepo) ListActivos(ctx context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error) {
	var canales []model.CanalTransaccion
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND activo = true", usuarioID).
		Order("nombre ASC").
		Find(&canales).Error
	return canales, err
}

func (r *canalRepo) ListAll(ctx context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error) {
	var canales []model.CanalTransaccion
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("nombre ASC").
		Find(&canales).Error
	return canales, err
}

func (r *canalRepo) Update(ctx context.Context, c *model.CanalTransaccion) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *canalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CanalTransaccion{}, id).Error
}

func (r *canalRepo) CountByUsuario(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CanalTransaccion{}).
		Where("usuario_id = ?", usuarioID).Count(&n).Error
	return n, err
}
