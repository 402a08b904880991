package service

import (
	"context"
	"errors"
	"time"

	"correcaja/internal/dto"
	"correcaja/internal/model"
	"correcaja/internal/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type CanalService interface {
	Listar(ctx context.Context, usuarioID uuid.UUID, incluirInactivos bool) ([]dto.CanalResponse, error)
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCanalRequest) (dto.CanalResponse, error)
	Actualizar(ctx context.Context, usuarioID, canalID uuid.UUID, req dto.ActualizarCanalRequest) (dto.CanalResponse, error)
	Eliminar(ctx context.Context, usuarioID, canalID uuid.UUID) error
	EstablecerComision(ctx context.Context, usuarioID, canalID uuid.UUID, req dto.ConfiguracionComisionesRequest) (dto.CanalResponse, error)
	QuitarComision(ctx context.Context, usuarioID, canalID uuid.UUID) error
	// Activos returns the active channel entities for reconciliation and
	// transaction validation; reads go through a short-lived cache.
	Activos(ctx context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error)
}

type canalService struct {
	repo  repository.CanalRepository
	cache *gocache.Cache
}

func NewCanalService(repo repository.CanalRepository) CanalService {
	return &canalService{
		repo:  repo,
		cache: gocache.New(time.Minute, 5*time.Minute),
	}
}

func (s *canalService) Activos(ctx context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error) {
	key := usuarioID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.CanalTransaccion), nil
	}

	if err := s.seedPorDefecto(ctx, usuarioID); err != nil {
		return nil, err
	}
	canales, err := s.repo.ListActivos(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, canales, gocache.DefaultExpiration)
	return canales, nil
}

func (s *canalService) Listar(ctx context.Context, usuarioID uuid.UUID, incluirInactivos bool) ([]dto.CanalResponse, error) {
	if err := s.seedPorDefecto(ctx, usuarioID); err != nil {
		return nil, err
	}

	var canales []model.CanalTransaccion
	var err error
	if incluirInactivos {
		canales, err = s.repo.ListAll(ctx, usuarioID)
	} else {
		canales, err = s.repo.ListActivos(ctx, usuarioID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CanalResponse, len(canales))
	for i := range canales {
		resp[i] = mapCanal(&canales[i])
	}
	return resp, nil
}

func (s *canalService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCanalRequest) (dto.CanalResponse, error) {
	existing, err := s.repo.FindByNombre(ctx, usuarioID, req.Nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CanalResponse{}, err
	}
	if existing != nil {
		return dto.CanalResponse{}, errors.New("ya existe un canal con ese nombre")
	}

	canal := &model.CanalTransaccion{
		UsuarioID:  usuarioID,
		Nombre:     req.Nombre,
		Activo:     true,
		PorDefecto: false,
	}
	if err := s.repo.Create(ctx, canal); err != nil {
		return dto.CanalResponse{}, err
	}
	s.cache.Delete(usuarioID.String())
	return mapCanal(canal), nil
}

func (s *canalService) Actualizar(ctx context.Context, usuarioID, canalID uuid.UUID, req dto.ActualizarCanalRequest) (dto.CanalResponse, error) {
	canal, err := s.findPropio(ctx, usuarioID, canalID)
	if err != nil {
		return dto.CanalResponse{}, err
	}

	if req.Nombre != nil && *req.Nombre != canal.Nombre {
		if canal.PorDefecto {
			return dto.CanalResponse{}, errors.New("un canal por defecto no puede renombrarse")
		}
		existing, err := s.repo.FindByNombre(ctx, usuarioID, *req.Nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CanalResponse{}, err
		}
		if existing != nil && existing.ID != canalID {
			return dto.CanalResponse{}, errors.New("ya existe un canal con ese nombre")
		}
		canal.Nombre = *req.Nombre
	}
	if req.Activo != nil {
		canal.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, canal); err != nil {
		return dto.CanalResponse{}, err
	}
	s.cache.Delete(usuarioID.String())
	return mapCanal(canal), nil
}

func (s *canalService) Eliminar(ctx context.Context, usuarioID, canalID uuid.UUID) error {
	canal, err := s.findPropio(ctx, usuarioID, canalID)
	if err != nil {
		return err
	}
	// Defaults are never deleted, only deactivated
	if canal.PorDefecto {
		return errors.New("un canal por defecto solo puede desactivarse")
	}
	if err := s.repo.Delete(ctx, canalID); err != nil {
		return err
	}
	s.cache.Delete(usuarioID.String())
	return nil
}

func (s *canalService) EstablecerComision(ctx context.Context, usuarioID, canalID uuid.UUID, req dto.ConfiguracionComisionesRequest) (dto.CanalResponse, error) {
	canal, err := s.findPropio(ctx, usuarioID, canalID)
	if err != nil {
		return dto.CanalResponse{}, err
	}

	cfg := req.ToConfiguracion()
	canal.ComisionPersonalizada = &cfg
	canal.ComisionPersonalizadaActiva = true

	if err := s.repo.Update(ctx, canal); err != nil {
		return dto.CanalResponse{}, err
	}
	s.cache.Delete(usuarioID.String())
	return mapCanal(canal), nil
}

func (s *canalService) QuitarComision(ctx context.Context, usuarioID, canalID uuid.UUID) error {
	canal, err := s.findPropio(ctx, usuarioID, canalID)
	if err != nil {
		return err
	}
	// The stored schedule is kept; only the enable flag drops so the user
	// can re-enable it without retyping the ranges
	canal.ComisionPersonalizadaActiva = false
	if err := s.repo.Update(ctx, canal); err != nil {
		return err
	}
	s.cache.Delete(usuarioID.String())
	return nil
}

// seedPorDefecto creates the default rails on a user's first read.
func (s *canalService) seedPorDefecto(ctx context.Context, usuarioID uuid.UUID) error {
	n, err := s.repo.CountByUsuario(ctx, usuarioID)
	if err != nil || n > 0 {
		return err
	}
	canales := make([]model.CanalTransaccion, len(model.CanalesPorDefecto))
	for i, nombre := range model.CanalesPorDefecto {
		canales[i] = model.CanalTransaccion{
			UsuarioID:  usuarioID,
			Nombre:     nombre,
			Activo:     true,
			PorDefecto: true,
		}
	}
	return s.repo.CreateBatch(ctx, canales)
}

func (s *canalService) findPropio(ctx context.Context, usuarioID, canalID uuid.UUID) (*model.CanalTransaccion, error) {
	canal, err := s.repo.FindByID(ctx, canalID)
	if err != nil {
		return nil, errors.New("canal no encontrado")
	}
	if canal.UsuarioID != usuarioID {
		return nil, errors.New("canal no encontrado")
	}
	return canal, nil
}

func mapCanal(c *model.CanalTransaccion) dto.CanalResponse {
	return dto.CanalResponse{
		ID:                          c.ID.String(),
		Nombre:                      c.Nombre,
		Activo:                      c.Activo,
		PorDefecto:                  c.PorDefecto,
		ComisionPersonalizadaActiva: c.ComisionPersonalizadaActiva,
		ComisionPersonalizada:       c.ComisionPersonalizada,
	}
}
