package service

import (
	"context"
	"errors"
	"time"

	"correcaja/internal/conciliacion"
	"correcaja/internal/dto"
	"correcaja/internal/model"
	"correcaja/internal/repository"
	"correcaja/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const timestampFmt = "2006-01-02T15:04:05Z"

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.ResumenCajaResponse, error)
	// Activa returns the user's open caja, or nil when there is none
	Activa(ctx context.Context, usuarioID uuid.UUID) (*dto.ResumenCajaResponse, error)
	Resumen(ctx context.Context, usuarioID, cajaID uuid.UUID) (*dto.ResumenCajaResponse, error)
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CerrarCajaResponse, error)
	Historial(ctx context.Context, usuarioID uuid.UUID, page, limit int) ([]dto.CajaResponse, int64, error)
	ReporteCierre(ctx context.Context, usuarioID, cajaID uuid.UUID) (*dto.ReporteCierre, error)
}

type cajaService struct {
	repo          repository.CajaRepository
	transacciones repository.TransaccionRepository
	usuarios      repository.UsuarioRepository
	canales       CanalService
	dispatcher    *worker.Dispatcher
	nombreNegocio string
}

func NewCajaService(
	repo repository.CajaRepository,
	transacciones repository.TransaccionRepository,
	usuarios repository.UsuarioRepository,
	canales CanalService,
	dispatcher *worker.Dispatcher,
	nombreNegocio string,
) CajaService {
	return &cajaService{
		repo:          repo,
		transacciones: transacciones,
		usuarios:      usuarios,
		canales:       canales,
		dispatcher:    dispatcher,
		nombreNegocio: nombreNegocio,
	}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.ResumenCajaResponse, error) {
	// Guard: at most one open caja per user
	if existing, err := s.repo.FindAbiertaPorUsuario(ctx, usuarioID); err == nil && existing != nil {
		return nil, errors.New("Ya existe una caja abierta")
	}

	activos, err := s.canales.Activos(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	porID := make(map[uuid.UUID]*model.CanalTransaccion, len(activos))
	for i := range activos {
		porID[activos[i].ID] = &activos[i]
	}

	saldos := make([]model.SaldoAperturaCanal, 0, len(req.SaldosApertura))
	for _, sa := range req.SaldosApertura {
		canalID, err := uuid.Parse(sa.CanalID)
		if err != nil {
			return nil, errors.New("canal_id inválido en saldos de apertura")
		}
		canal, ok := porID[canalID]
		if !ok {
			return nil, errors.New("el canal del saldo de apertura no existe o está inactivo")
		}
		// The name is frozen with the snapshot so the record survives renames
		saldos = append(saldos, model.SaldoAperturaCanal{
			CanalID:     canal.ID,
			CanalNombre: canal.Nombre,
			Saldo:       sa.Saldo,
		})
	}

	caja := &model.Caja{
		UsuarioID:      usuarioID,
		Estado:         "abierta",
		MontoApertura:  req.MontoApertura,
		AbiertaAt:      time.Now().UTC(),
		SaldosApertura: saldos,
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		return nil, err
	}

	return s.buildResumen(ctx, caja)
}

// ── Activa ────────────────────────────────────────────────────────────────────

func (s *cajaService) Activa(ctx context.Context, usuarioID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	caja, err := s.repo.FindAbiertaPorUsuario(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.buildResumen(ctx, caja)
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func (s *cajaService) Resumen(ctx context.Context, usuarioID, cajaID uuid.UUID) (*dto.ResumenCajaResponse, error) {
	caja, err := s.findPropia(ctx, usuarioID, cajaID)
	if err != nil {
		return nil, err
	}
	return s.buildResumen(ctx, caja)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Computes the expected cash from the non-voided transactions, records the
// counted amount and the resulting difference, and closes the session.

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CerrarCajaResponse, error) {
	caja, err := s.repo.FindAbiertaPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("No hay caja abierta")
	}

	trans, err := s.transacciones.ListByCaja(ctx, caja.ID, true)
	if err != nil {
		return nil, err
	}
	totales := calcularTotales(trans)
	esperado := esperadoEnCaja(caja.MontoApertura, totales)
	diferencia := req.MontoReal.Sub(esperado)
	ahora := time.Now().UTC()

	caja.Estado = "cerrada"
	caja.MontoEsperado = &esperado
	caja.MontoReal = &req.MontoReal
	caja.Diferencia = &diferencia
	caja.Observaciones = req.Observaciones
	caja.CerradaAt = &ahora

	if err := s.repo.Update(ctx, caja); err != nil {
		return nil, err
	}

	s.encolarReporte(ctx, usuarioID, caja.ID)

	return &dto.CerrarCajaResponse{
		CajaID:        caja.ID.String(),
		Estado:        caja.Estado,
		MontoEsperado: esperado,
		MontoReal:     req.MontoReal,
		Diferencia:    diferencia,
		CerradaAt:     ahora.Format(timestampFmt),
	}, nil
}

// ── Historial ─────────────────────────────────────────────────────────────────

func (s *cajaService) Historial(ctx context.Context, usuarioID uuid.UUID, page, limit int) ([]dto.CajaResponse, int64, error) {
	cajas, total, err := s.repo.ListCerradas(ctx, usuarioID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CajaResponse, len(cajas))
	for i := range cajas {
		resp[i] = mapCaja(&cajas[i])
	}
	return resp, total, nil
}

// ── ReporteCierre ─────────────────────────────────────────────────────────────

func (s *cajaService) ReporteCierre(ctx context.Context, usuarioID, cajaID uuid.UUID) (*dto.ReporteCierre, error) {
	caja, err := s.findPropia(ctx, usuarioID, cajaID)
	if err != nil {
		return nil, err
	}
	if caja.Estado != "cerrada" {
		return nil, errors.New("la caja aún no está cerrada")
	}

	resumen, err := s.buildResumen(ctx, caja)
	if err != nil {
		return nil, err
	}

	rep := &dto.ReporteCierre{
		CajaID:        caja.ID.String(),
		NombreNegocio: s.nombreNegocio,
		AbiertaAt:     caja.AbiertaAt.Format(timestampFmt),
		MontoApertura: caja.MontoApertura,
		Totales:       resumen.Totales,
		Observaciones: caja.Observaciones,
		Canales:       resumen.Canales,
	}
	if caja.MontoEsperado != nil {
		rep.MontoEsperado = *caja.MontoEsperado
	}
	if caja.MontoReal != nil {
		rep.MontoReal = *caja.MontoReal
	}
	if caja.Diferencia != nil {
		rep.Diferencia = *caja.Diferencia
	}
	if caja.CerradaAt != nil {
		rep.CerradaAt = caja.CerradaAt.Format(timestampFmt)
	}

	if usuario, err := s.usuarios.FindByID(ctx, usuarioID); err == nil {
		rep.Agente = usuario.Nombre
		if usuario.Email != nil {
			rep.Email = *usuario.Email
		}
	}
	return rep, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// calcularTotales sums the session movements, always excluding voided rows.
func calcularTotales(trans []model.Transaccion) dto.TotalesCaja {
	t := dto.TotalesCaja{
		Ingresos:   decimal.Zero,
		Egresos:    decimal.Zero,
		Comisiones: decimal.Zero,
	}
	for i := range trans {
		if trans[i].Anulada {
			continue
		}
		switch trans[i].Tipo {
		case model.TipoIngreso:
			t.Ingresos = t.Ingresos.Add(trans[i].Monto)
		case model.TipoEgreso:
			t.Egresos = t.Egresos.Add(trans[i].Monto)
		}
		t.Comisiones = t.Comisiones.Add(trans[i].Comision)
	}
	return t
}

// esperadoEnCaja: commissions are collected in cash on every operation, so
// they add to the drawer regardless of the operation's direction.
func esperadoEnCaja(apertura decimal.Decimal, t dto.TotalesCaja) decimal.Decimal {
	return apertura.Add(t.Ingresos).Sub(t.Egresos).Add(t.Comisiones)
}

func (s *cajaService) buildResumen(ctx context.Context, caja *model.Caja) (*dto.ResumenCajaResponse, error) {
	trans, err := s.transacciones.ListByCaja(ctx, caja.ID, true)
	if err != nil {
		return nil, err
	}
	activos, err := s.canales.Activos(ctx, caja.UsuarioID)
	if err != nil {
		return nil, err
	}

	totales := calcularTotales(trans)

	aperturas := make([]conciliacion.Apertura, len(caja.SaldosApertura))
	saldosResp := make([]dto.SaldoAperturaResponse, len(caja.SaldosApertura))
	for i, sa := range caja.SaldosApertura {
		aperturas[i] = conciliacion.Apertura{
			CanalID:     sa.CanalID,
			CanalNombre: sa.CanalNombre,
			Saldo:       sa.Saldo,
		}
		saldosResp[i] = dto.SaldoAperturaResponse{
			CanalID:     sa.CanalID.String(),
			CanalNombre: sa.CanalNombre,
			Saldo:       sa.Saldo,
		}
	}

	movimientos := make([]conciliacion.Movimiento, len(trans))
	vigentes := 0
	for i := range trans {
		nombre := ""
		if trans[i].CanalNombre != nil {
			nombre = *trans[i].CanalNombre
		}
		movimientos[i] = conciliacion.Movimiento{
			Monto:       trans[i].Monto,
			Categoria:   trans[i].Categoria,
			CanalID:     trans[i].CanalID,
			CanalNombre: nombre,
			Anulada:     trans[i].Anulada,
		}
		if !trans[i].Anulada {
			vigentes++
		}
	}

	canales := make([]conciliacion.Canal, len(activos))
	for i := range activos {
		canales[i] = conciliacion.Canal{ID: activos[i].ID, Nombre: activos[i].Nombre}
	}

	saldos := conciliacion.Conciliar(aperturas, movimientos, canales, model.EfectoPorCategoria)

	return &dto.ResumenCajaResponse{
		CajaID:         caja.ID.String(),
		Estado:         caja.Estado,
		MontoApertura:  caja.MontoApertura,
		Totales:        totales,
		MontoEsperado:  esperadoEnCaja(caja.MontoApertura, totales),
		SaldosApertura: saldosResp,
		Canales:        saldos,
		Transacciones:  vigentes,
		AbiertaAt:      caja.AbiertaAt.Format(timestampFmt),
	}, nil
}

func (s *cajaService) findPropia(ctx context.Context, usuarioID, cajaID uuid.UUID) (*model.Caja, error) {
	caja, err := s.repo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, errors.New("caja no encontrada")
	}
	if caja.UsuarioID != usuarioID {
		return nil, errors.New("caja no encontrada")
	}
	return caja, nil
}

// encolarReporte queues the closing report email; a queue failure never
// blocks the close itself.
func (s *cajaService) encolarReporte(ctx context.Context, usuarioID, cajaID uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	rep, err := s.ReporteCierre(ctx, usuarioID, cajaID)
	if err != nil {
		log.Error().Err(err).Str("caja_id", cajaID.String()).Msg("reporte de cierre no generado")
		return
	}
	if rep.Email == "" {
		return
	}
	if err := s.dispatcher.EnqueueReporteCierre(ctx, rep); err != nil {
		log.Error().Err(err).Str("caja_id", cajaID.String()).Msg("no se pudo encolar el reporte de cierre")
	}
}

func mapCaja(c *model.Caja) dto.CajaResponse {
	resp := dto.CajaResponse{
		CajaID:        c.ID.String(),
		Estado:        c.Estado,
		MontoApertura: c.MontoApertura,
		MontoEsperado: c.MontoEsperado,
		MontoReal:     c.MontoReal,
		Diferencia:    c.Diferencia,
		Observaciones: c.Observaciones,
		AbiertaAt:     c.AbiertaAt.Format(timestampFmt),
	}
	if c.CerradaAt != nil {
		t := c.CerradaAt.Format(timestampFmt)
		resp.CerradaAt = &t
	}
	return resp
}
