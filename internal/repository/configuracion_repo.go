package repository

import (
	"context"
	"errors"

	"correcaja/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConfiguracionRepository interface {
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.ConfiguracionUsuario, error)
	Upsert(ctx context.Context, cfg *model.ConfiguracionUsuario) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.ConfiguracionUsuario, error) {
	var cfg model.ConfiguracionUsuario
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configuracionRepo) Upsert(ctx context.Context, cfg *model.ConfiguracionUsuario) error {
	var existing model.ConfiguracionUsuario
	err := r.db.WithContext(ctx).Where("usuario_id = ?", cfg.UsuarioID).First(&existing).Error
	if err == nil {
		cfg.ID = existing.ID
		return r.db.WithContext(ctx).Save(cfg).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(cfg).Error
	}
	return err
}
