package service

import (
	"context"
	"errors"
	"time"

	"correcaja/internal/comision"
	"correcaja/internal/dto"
	"correcaja/internal/model"
	"correcaja/internal/monto"
	"correcaja/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransaccionService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.CrearTransaccionRequest) (*dto.TransaccionResponse, error)
	Listar(ctx context.Context, usuarioID, cajaID uuid.UUID, conAnuladas bool) ([]dto.TransaccionResponse, error)
	Anular(ctx context.Context, usuarioID, transaccionID uuid.UUID, motivo string) error
	// SugerirComision is called by the client on every amount change to
	// pre-fill the commission field
	SugerirComision(ctx context.Context, usuarioID uuid.UUID, req dto.ComisionSugeridaRequest) (decimal.Decimal, error)
}

type transaccionService struct {
	repo       repository.TransaccionRepository
	cajas      repository.CajaRepository
	canales    CanalService
	comisiones ComisionService
}

func NewTransaccionService(
	repo repository.TransaccionRepository,
	cajas repository.CajaRepository,
	canales CanalService,
	comisiones ComisionService,
) TransaccionService {
	return &transaccionService{
		repo:       repo,
		cajas:      cajas,
		canales:    canales,
		comisiones: comisiones,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────

func (s *transaccionService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.CrearTransaccionRequest) (*dto.TransaccionResponse, error) {
	caja, err := s.cajas.FindAbiertaPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("No hay caja abierta")
	}

	valor, ok := monto.Parse(req.Monto)
	if !ok || !valor.IsPositive() {
		return nil, errors.New("Ingrese un monto válido")
	}

	categoria := model.CategoriaOperacion(req.Categoria)
	info, ok := categoria.Info()
	if !ok {
		return nil, errors.New("categoría desconocida")
	}

	var canal *model.CanalTransaccion
	if req.CanalID != nil && *req.CanalID != "" {
		canal, err = s.resolverCanal(ctx, usuarioID, *req.CanalID)
		if err != nil {
			return nil, err
		}
	}
	if info.RequiereCanal && canal == nil {
		return nil, errors.New("la categoría requiere seleccionar un canal")
	}
	if info.RequiereReferencia && (req.Referencia == nil || *req.Referencia == "") {
		return nil, errors.New("la categoría requiere un número de referencia")
	}

	fee, err := s.resolverComision(ctx, usuarioID, valor, info.Tipo, canal, req.Comision)
	if err != nil {
		return nil, err
	}

	t := &model.Transaccion{
		CajaID:      caja.ID,
		Tipo:        info.Tipo,
		Categoria:   categoria,
		Monto:       valor,
		Comision:    fee,
		Referencia:  req.Referencia,
		Descripcion: req.Descripcion,
	}
	if canal != nil {
		id := canal.ID
		nombre := canal.Nombre
		t.CanalID = &id
		t.CanalNombre = &nombre
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	resp := mapTransaccion(t)
	return &resp, nil
}

// ── Listar ────────────────────────────────────────────────────────────────────

func (s *transaccionService) Listar(ctx context.Context, usuarioID, cajaID uuid.UUID, conAnuladas bool) ([]dto.TransaccionResponse, error) {
	caja, err := s.cajas.FindByID(ctx, cajaID)
	if err != nil || caja.UsuarioID != usuarioID {
		return nil, errors.New("caja no encontrada")
	}

	trans, err := s.repo.ListByCaja(ctx, cajaID, conAnuladas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TransaccionResponse, len(trans))
	for i := range trans {
		resp[i] = mapTransaccion(&trans[i])
	}
	return resp, nil
}

// ── Anular ────────────────────────────────────────────────────────────────────
// Voiding is the only supported edit to a registered transaction: the row is
// flagged, never deleted, and every total recomputes without it.

func (s *transaccionService) Anular(ctx context.Context, usuarioID, transaccionID uuid.UUID, motivo string) error {
	t, err := s.repo.FindByID(ctx, transaccionID)
	if err != nil {
		return errors.New("transacción no encontrada")
	}
	if t.Anulada {
		return errors.New("la transacción ya está anulada")
	}

	caja, err := s.cajas.FindByID(ctx, t.CajaID)
	if err != nil || caja.UsuarioID != usuarioID {
		return errors.New("transacción no encontrada")
	}
	if caja.Estado != "abierta" {
		return errors.New("no se puede anular una transacción de una caja cerrada")
	}

	ahora := time.Now().UTC()
	t.Anulada = true
	t.AnuladaAt = &ahora
	t.MotivoAnulacion = &motivo
	return s.repo.Update(ctx, t)
}

// ── SugerirComision ───────────────────────────────────────────────────────────

func (s *transaccionService) SugerirComision(ctx context.Context, usuarioID uuid.UUID, req dto.ComisionSugeridaRequest) (decimal.Decimal, error) {
	valor, ok := monto.Parse(req.Monto)
	if !ok {
		return decimal.Zero, errors.New("Ingrese un monto válido")
	}

	categoria := model.CategoriaOperacion(req.Categoria)
	info, ok := categoria.Info()
	if !ok {
		return decimal.Zero, errors.New("categoría desconocida")
	}

	var canal *model.CanalTransaccion
	if req.CanalID != nil && *req.CanalID != "" {
		var err error
		canal, err = s.resolverCanal(ctx, usuarioID, *req.CanalID)
		if err != nil {
			return decimal.Zero, err
		}
	}

	cfg, err := s.comisiones.ParaCanal(ctx, usuarioID, canal)
	if err != nil {
		return decimal.Zero, err
	}
	return comision.Calcular(valor, direccionPara(info.Tipo), cfg), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *transaccionService) resolverCanal(ctx context.Context, usuarioID uuid.UUID, canalID string) (*model.CanalTransaccion, error) {
	id, err := uuid.Parse(canalID)
	if err != nil {
		return nil, errors.New("canal_id inválido")
	}
	activos, err := s.canales.Activos(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	for i := range activos {
		if activos[i].ID == id {
			return &activos[i], nil
		}
	}
	return nil, errors.New("el canal no existe o está inactivo")
}

// resolverComision honors a manual override from the form; otherwise it
// auto-calculates from the schedule that applies to the channel.
func (s *transaccionService) resolverComision(ctx context.Context, usuarioID uuid.UUID, valor decimal.Decimal, tipo model.TipoTransaccion, canal *model.CanalTransaccion, override *string) (decimal.Decimal, error) {
	if override != nil && *override != "" {
		fee, ok := monto.Parse(*override)
		if !ok || fee.IsNegative() {
			return decimal.Zero, errors.New("Ingrese una comisión válida")
		}
		return fee, nil
	}
	cfg, err := s.comisiones.ParaCanal(ctx, usuarioID, canal)
	if err != nil {
		return decimal.Zero, err
	}
	return comision.Calcular(valor, direccionPara(tipo), cfg), nil
}

// direccionPara maps the cash direction to the fee-schedule axis: operations
// where the client hands in cash charge the deposit-direction fee.
func direccionPara(tipo model.TipoTransaccion) comision.Direccion {
	if tipo == model.TipoEgreso {
		return comision.Retiro
	}
	return comision.Deposito
}

func mapTransaccion(t *model.Transaccion) dto.TransaccionResponse {
	resp := dto.TransaccionResponse{
		ID:          t.ID.String(),
		CajaID:      t.CajaID.String(),
		Tipo:        string(t.Tipo),
		Categoria:   string(t.Categoria),
		Monto:       t.Monto,
		Comision:    t.Comision,
		CanalNombre: t.CanalNombre,
		Referencia:  t.Referencia,
		Descripcion: t.Descripcion,
		Anulada:     t.Anulada,
		CreatedAt:   t.CreatedAt.Format(timestampFmt),
	}
	if t.CanalID != nil {
		id := t.CanalID.String()
		resp.CanalID = &id
	}
	return resp
}
