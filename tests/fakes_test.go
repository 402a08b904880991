package tests

// In-memory repository fakes shared by the service-level tests.
// Not-found lookups return gorm.ErrRecordNotFound so the services'
// errors.Is checks behave like they do against postgres.

import (
	"context"
	"strings"
	"time"

	"correcaja/internal/model"
	"correcaja/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── CajaRepository ────────────────────────────────────────────────────────────

type memCajaRepo struct {
	cajas map[uuid.UUID]*model.Caja
}

func newMemCajaRepo() *memCajaRepo {
	return &memCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *memCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.SaldosApertura {
		if c.SaldosApertura[i].ID == uuid.Nil {
			c.SaldosApertura[i].ID = uuid.New()
		}
		c.SaldosApertura[i].CajaID = c.ID
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *memCajaRepo) FindAbiertaPorUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.UsuarioID == usuarioID && c.Estado == "abierta" {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *memCajaRepo) Update(_ context.Context, c *model.Caja) error {
	r.cajas[c.ID] = c
	return nil
}

func (r *memCajaRepo) ListCerradas(_ context.Context, usuarioID uuid.UUID, page, limit int) ([]model.Caja, int64, error) {
	var all []model.Caja
	for _, c := range r.cajas {
		if c.UsuarioID == usuarioID && c.Estado == "cerrada" {
			all = append(all, *c)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

var _ repository.CajaRepository = (*memCajaRepo)(nil)

// ── TransaccionRepository ─────────────────────────────────────────────────────

type memTransaccionRepo struct {
	trans []*model.Transaccion
}

func newMemTransaccionRepo() *memTransaccionRepo { return &memTransaccionRepo{} }

func (r *memTransaccionRepo) Create(_ context.Context, t *model.Transaccion) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	r.trans = append(r.trans, t)
	return nil
}

func (r *memTransaccionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaccion, error) {
	for _, t := range r.trans {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTransaccionRepo) ListByCaja(_ context.Context, cajaID uuid.UUID, conAnuladas bool) ([]model.Transaccion, error) {
	var result []model.Transaccion
	for _, t := range r.trans {
		if t.CajaID != cajaID {
			continue
		}
		if !conAnuladas && t.Anulada {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *memTransaccionRepo) Update(_ context.Context, t *model.Transaccion) error {
	for i := range r.trans {
		if r.trans[i].ID == t.ID {
			r.trans[i] = t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.TransaccionRepository = (*memTransaccionRepo)(nil)

// ── CanalRepository ───────────────────────────────────────────────────────────

type memCanalRepo struct {
	canales []*model.CanalTransaccion
}

func newMemCanalRepo() *memCanalRepo { return &memCanalRepo{} }

func (r *memCanalRepo) Create(_ context.Context, c *model.CanalTransaccion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.canales = append(r.canales, c)
	return nil
}

func (r *memCanalRepo) CreateBatch(_ context.Context, canales []model.CanalTransaccion) error {
	for i := range canales {
		c := canales[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.canales = append(r.canales, &c)
	}
	return nil
}

func (r *memCanalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CanalTransaccion, error) {
	for _, c := range r.canales {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCanalRepo) FindByNombre(_ context.Context, usuarioID uuid.UUID, nombre string) (*model.CanalTransaccion, error) {
	for _, c := range r.canales {
		if c.UsuarioID == usuarioID && strings.EqualFold(c.Nombre, nombre) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCanalRepo) ListActivos(_ context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error) {
	var result []model.CanalTransaccion
	for _, c := range r.canales {
		if c.UsuarioID == usuarioID && c.Activo {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *memCanalRepo) ListAll(_ context.Context, usuarioID uuid.UUID) ([]model.CanalTransaccion, error) {
	var result []model.CanalTransaccion
	for _, c := range r.canales {
		if c.UsuarioID == usuarioID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *memCanalRepo) Update(_ context.Context, c *model.CanalTransaccion) error {
	for i := range r.canales {
		if r.canales[i].ID == c.ID {
			r.canales[i] = c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memCanalRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.canales {
		if r.canales[i].ID == id {
			r.canales = append(r.canales[:i], r.canales[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memCanalRepo) CountByUsuario(_ context.Context, usuarioID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.canales {
		if c.UsuarioID == usuarioID {
			n++
		}
	}
	return n, nil
}

var _ repository.CanalRepository = (*memCanalRepo)(nil)

// ── ConfiguracionRepository ───────────────────────────────────────────────────

type memConfiguracionRepo struct {
	configs map[uuid.UUID]*model.ConfiguracionUsuario
}

func newMemConfiguracionRepo() *memConfiguracionRepo {
	return &memConfiguracionRepo{configs: make(map[uuid.UUID]*model.ConfiguracionUsuario)}
}

func (r *memConfiguracionRepo) FindByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.ConfiguracionUsuario, error) {
	cfg, ok := r.configs[usuarioID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cfg, nil
}

func (r *memConfiguracionRepo) Upsert(_ context.Context, cfg *model.ConfiguracionUsuario) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	r.configs[cfg.UsuarioID] = cfg
	return nil
}

var _ repository.ConfiguracionRepository = (*memConfiguracionRepo)(nil)

// ── UsuarioRepository ─────────────────────────────────────────────────────────

type memUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if !u.Activo {
			continue
		}
		if u.Username == username {
			return u, nil
		}
		if u.Email != nil && strings.EqualFold(*u.Email, username) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *memUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		result = append(result, *u)
	}
	return result, nil
}

func (r *memUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *memUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*memUsuarioRepo)(nil)
