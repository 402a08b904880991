package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"correcaja/internal/comision"
	"correcaja/internal/dto"
	"correcaja/internal/model"
	"correcaja/internal/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// ComisionService manages the per-user default fee schedule and resolves
// which schedule applies to a given channel. The calculation itself lives
// in the comision package.
type ComisionService interface {
	ObtenerConfiguracion(ctx context.Context, usuarioID uuid.UUID) (comision.Configuracion, error)
	ActualizarConfiguracion(ctx context.Context, usuarioID uuid.UUID, req dto.ConfiguracionComisionesRequest) (comision.Configuracion, error)
	// ParaCanal resolves the effective schedule: the channel's personalized
	// one when enabled, otherwise the user's default. canal may be nil.
	ParaCanal(ctx context.Context, usuarioID uuid.UUID, canal *model.CanalTransaccion) (comision.Configuracion, error)
}

type comisionService struct {
	repo  repository.ConfiguracionRepository
	cache *gocache.Cache
}

func NewComisionService(repo repository.ConfiguracionRepository) ComisionService {
	return &comisionService{
		repo:  repo,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *comisionService) ObtenerConfiguracion(ctx context.Context, usuarioID uuid.UUID) (comision.Configuracion, error) {
	key := usuarioID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(comision.Configuracion), nil
	}

	cfg, err := s.repo.FindByUsuario(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Users that never configured commissions charge nothing
		return comision.PorDefecto(), nil
	}
	if err != nil {
		return comision.Configuracion{}, err
	}

	s.cache.Set(key, cfg.Comisiones, gocache.DefaultExpiration)
	return cfg.Comisiones, nil
}

func (s *comisionService) ActualizarConfiguracion(ctx context.Context, usuarioID uuid.UUID, req dto.ConfiguracionComisionesRequest) (comision.Configuracion, error) {
	nueva := req.ToConfiguracion()
	if nueva.Modo == comision.ModoPorRango && len(nueva.Rangos) == 0 {
		return comision.Configuracion{}, errors.New("el modo por rango requiere al menos un rango")
	}

	// The editing surface keeps ranges sorted by Desde; the engine itself
	// never reorders and resolves overlaps by first match.
	sort.SliceStable(nueva.Rangos, func(i, j int) bool {
		return nueva.Rangos[i].Desde.LessThan(nueva.Rangos[j].Desde)
	})

	if err := s.repo.Upsert(ctx, &model.ConfiguracionUsuario{
		UsuarioID:  usuarioID,
		Comisiones: nueva,
	}); err != nil {
		return comision.Configuracion{}, err
	}

	s.cache.Delete(usuarioID.String())
	return nueva, nil
}

func (s *comisionService) ParaCanal(ctx context.Context, usuarioID uuid.UUID, canal *model.CanalTransaccion) (comision.Configuracion, error) {
	porDefecto, err := s.ObtenerConfiguracion(ctx, usuarioID)
	if err != nil {
		return comision.Configuracion{}, err
	}
	if canal == nil {
		return porDefecto, nil
	}
	return comision.ParaCanal(canal.ComisionPersonalizada, canal.ComisionPersonalizadaActiva, porDefecto), nil
}
