package tests

import (
	"context"
	"testing"

	"correcaja/internal/dto"
	"correcaja/internal/model"
	"correcaja/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test environment ──────────────────────────────────────────────────────────

type cajaEnv struct {
	cajaRepo  *memCajaRepo
	transRepo *memTransaccionRepo
	canalRepo *memCanalRepo
	canales   service.CanalService
	svc       service.CajaService
	usuarioID uuid.UUID
}

func newCajaEnv(t *testing.T) *cajaEnv {
	t.Helper()
	usuarioRepo := newMemUsuarioRepo()
	email := "agente@correcaja.app"
	usuario := &model.Usuario{Nombre: "Agente Demo", Username: "agente", Email: &email, Rol: "agente", Activo: true}
	require.NoError(t, usuarioRepo.Create(context.Background(), usuario))

	cajaRepo := newMemCajaRepo()
	transRepo := newMemTransaccionRepo()
	canalRepo := newMemCanalRepo()
	canales := service.NewCanalService(canalRepo)

	return &cajaEnv{
		cajaRepo:  cajaRepo,
		transRepo: transRepo,
		canalRepo: canalRepo,
		canales:   canales,
		svc:       service.NewCajaService(cajaRepo, transRepo, usuarioRepo, canales, nil, "CorreCaja Test"),
		usuarioID: usuario.ID,
	}
}

// canalPorDefecto returns one of the lazily seeded default channels.
func (e *cajaEnv) canalPorDefecto(t *testing.T, nombre string) model.CanalTransaccion {
	t.Helper()
	activos, err := e.canales.Activos(context.Background(), e.usuarioID)
	require.NoError(t, err)
	for _, c := range activos {
		if c.Nombre == nombre {
			return c
		}
	}
	t.Fatalf("canal %q no seedeado", nombre)
	return model.CanalTransaccion{}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAbrirCaja(t *testing.T) {
	env := newCajaEnv(t)
	canal := env.canalPorDefecto(t, "Banco Pichincha")

	resp, err := env.svc.Abrir(context.Background(), env.usuarioID, dto.AbrirCajaRequest{
		MontoApertura: d("100"),
		SaldosApertura: []dto.SaldoAperturaDTO{
			{CanalID: canal.ID.String(), Saldo: d("200")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "abierta", resp.Estado)
	assert.Equal(t, "100.00", resp.MontoApertura.StringFixed(2))
	require.Len(t, resp.SaldosApertura, 1)
	assert.Equal(t, "Banco Pichincha", resp.SaldosApertura[0].CanalNombre)

	// With no movements the channel's expected balance equals its opening one
	require.Len(t, resp.Canales, 1)
	assert.Equal(t, "200.00", resp.Canales[0].SaldoEsperado.StringFixed(2))
}

func TestAbrirCajaDuplicada(t *testing.T) {
	env := newCajaEnv(t)

	_, err := env.svc.Abrir(context.Background(), env.usuarioID, dto.AbrirCajaRequest{MontoApertura: d("50")})
	require.NoError(t, err)

	_, err = env.svc.Abrir(context.Background(), env.usuarioID, dto.AbrirCajaRequest{MontoApertura: d("80")})
	assert.ErrorContains(t, err, "Ya existe una caja abierta")
}

func TestAbrirCajaCanalDesconocido(t *testing.T) {
	env := newCajaEnv(t)

	_, err := env.svc.Abrir(context.Background(), env.usuarioID, dto.AbrirCajaRequest{
		MontoApertura: d("50"),
		SaldosApertura: []dto.SaldoAperturaDTO{
			{CanalID: uuid.NewString(), Saldo: d("10")},
		},
	})
	assert.ErrorContains(t, err, "no existe o está inactivo")
}

func TestCerrarCaja(t *testing.T) {
	env := newCajaEnv(t)
	ctx := context.Background()

	resp, err := env.svc.Abrir(ctx, env.usuarioID, dto.AbrirCajaRequest{MontoApertura: d("100")})
	require.NoError(t, err)
	cajaID := uuid.MustParse(resp.CajaID)

	// Ingreso 50 (+0.50 de comisión), egreso 30 (+0.30), y una anulada que no cuenta
	require.NoError(t, env.transRepo.Create(ctx, &model.Transaccion{
		CajaID: cajaID, Tipo: model.TipoIngreso, Categoria: model.CategoriaDeposito,
		Monto: d("50"), Comision: d("0.50"),
	}))
	require.NoError(t, env.transRepo.Create(ctx, &model.Transaccion{
		CajaID: cajaID, Tipo: model.TipoEgreso, Categoria: model.CategoriaRetiro,
		Monto: d("30"), Comision: d("0.30"),
	}))
	require.NoError(t, env.transRepo.Create(ctx, &model.Transaccion{
		CajaID: cajaID, Tipo: model.TipoIngreso, Categoria: model.CategoriaDeposito,
		Monto: d("999"), Comision: d("9"), Anulada: true,
	}))

	// esperado = 100 + 50 − 30 + 0.80 = 120.80; contado 120 → diferencia −0.80
	cierre, err := env.svc.Cerrar(ctx, env.usuarioID, dto.CerrarCajaRequest{MontoReal: d("120")})
	require.NoError(t, err)
	assert.Equal(t, "cerrada", cierre.Estado)
	assert.Equal(t, "120.80", cierre.MontoEsperado.StringFixed(2))
	assert.Equal(t, "-0.80", cierre.Diferencia.StringFixed(2))
	assert.NotEmpty(t, cierre.CerradaAt)
}

func TestCerrarSinCajaAbierta(t *testing.T) {
	env := newCajaEnv(t)
	_, err := env.svc.Cerrar(context.Background(), env.usuarioID, dto.CerrarCajaRequest{MontoReal: d("10")})
	assert.ErrorContains(t, err, "No hay caja abierta")
}

func TestResumenConciliacionPorCanal(t *testing.T) {
	env := newCajaEnv(t)
	ctx := context.Background()
	canal := env.canalPorDefecto(t, "Banco Pichincha")

	resp, err := env.svc.Abrir(ctx, env.usuarioID, dto.AbrirCajaRequest{
		MontoApertura: d("100"),
		SaldosApertura: []dto.SaldoAperturaDTO{
			{CanalID: canal.ID.String(), Saldo: d("200")},
		},
	})
	require.NoError(t, err)
	cajaID := uuid.MustParse(resp.CajaID)

	nombre := canal.Nombre
	// Un retiro entrega efectivo al cliente pero el banco acredita al canal
	require.NoError(t, env.transRepo.Create(ctx, &model.Transaccion{
		CajaID: cajaID, Tipo: model.TipoEgreso, Categoria: model.CategoriaRetiro,
		Monto: d("50"), Comision: decimal.Zero, CanalID: &canal.ID, CanalNombre: &nombre,
	}))
	require.NoError(t, env.transRepo.Create(ctx, &model.Transaccion{
		CajaID: cajaID, Tipo: model.TipoIngreso, Categoria: model.CategoriaDeposito,
		Monto: d("80"), Comision: decimal.Zero, CanalID: &canal.ID, CanalNombre: &nombre,
	}))
	// Anulada: no debe pesar en ningún total
	require.NoError(t, env.transRepo.Create(ctx, &model.Transaccion{
		CajaID: cajaID, Tipo: model.TipoEgreso, Categoria: model.CategoriaRetiro,
		Monto: d("999"), Comision: decimal.Zero, CanalID: &canal.ID, CanalNombre: &nombre, Anulada: true,
	}))

	resumen, err := env.svc.Resumen(ctx, env.usuarioID, cajaID)
	require.NoError(t, err)

	// Efectivo: 100 + 80 − 50 = 130
	assert.Equal(t, "130.00", resumen.MontoEsperado.StringFixed(2))
	assert.Equal(t, 2, resumen.Transacciones)

	// Canal: 200 + 50 (retiro) − 80 (depósito) = 170; el resto de canales
	// sin actividad no aparece
	require.Len(t, resumen.Canales, 1)
	assert.Equal(t, canal.ID, resumen.Canales[0].CanalID)
	assert.Equal(t, "50.00", resumen.Canales[0].Entradas.StringFixed(2))
	assert.Equal(t, "80.00", resumen.Canales[0].Salidas.StringFixed(2))
	assert.Equal(t, "170.00", resumen.Canales[0].SaldoEsperado.StringFixed(2))
}

func TestResumenCajaAjena(t *testing.T) {
	env := newCajaEnv(t)
	ctx := context.Background()

	resp, err := env.svc.Abrir(ctx, env.usuarioID, dto.AbrirCajaRequest{MontoApertura: d("10")})
	require.NoError(t, err)

	otro := uuid.New()
	_, err = env.svc.Resumen(ctx, otro, uuid.MustParse(resp.CajaID))
	assert.ErrorContains(t, err, "caja no encontrada")
}

func TestReporteCierreCajaAbierta(t *testing.T) {
	env := newCajaEnv(t)
	ctx := context.Background()

	resp, err := env.svc.Abrir(ctx, env.usuarioID, dto.AbrirCajaRequest{MontoApertura: d("10")})
	require.NoError(t, err)

	_, err = env.svc.ReporteCierre(ctx, env.usuarioID, uuid.MustParse(resp.CajaID))
	assert.ErrorContains(t, err, "aún no está cerrada")
}

func TestReporteCierre(t *testing.T) {
	env := newCajaEnv(t)
	ctx := context.Background()

	resp, err := env.svc.Abrir(ctx, env.usuarioID, dto.AbrirCajaRequest{MontoApertura: d("100")})
	require.NoError(t, err)
	cajaID := uuid.MustParse(resp.CajaID)

	require.NoError(t, env.transRepo.Create(ctx, &model.Transaccion{
		CajaID: cajaID, Tipo: model.TipoIngreso, Categoria: model.CategoriaOtroIngreso,
		Monto: d("40"), Comision: decimal.Zero,
	}))

	_, err = env.svc.Cerrar(ctx, env.usuarioID, dto.CerrarCajaRequest{MontoReal: d("140")})
	require.NoError(t, err)

	rep, err := env.svc.ReporteCierre(ctx, env.usuarioID, cajaID)
	require.NoError(t, err)
	assert.Equal(t, "CorreCaja Test", rep.NombreNegocio)
	assert.Equal(t, "Agente Demo", rep.Agente)
	assert.Equal(t, "agente@correcaja.app", rep.Email)
	assert.Equal(t, "140.00", rep.MontoEsperado.StringFixed(2))
	assert.Equal(t, "0.00", rep.Diferencia.StringFixed(2))
	assert.NotEmpty(t, rep.CerradaAt)
}

func TestHistorial(t *testing.T) {
	env := newCajaEnv(t)
	ctx := context.Background()

	_, err := env.svc.Abrir(ctx, env.usuarioID, dto.AbrirCajaRequest{MontoApertura: d("10")})
	require.NoError(t, err)
	_, err = env.svc.Cerrar(ctx, env.usuarioID, dto.CerrarCajaRequest{MontoReal: d("10")})
	require.NoError(t, err)

	cajas, total, err := env.svc.Historial(ctx, env.usuarioID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, cajas, 1)
	assert.Equal(t, "cerrada", cajas[0].Estado)
	require.NotNil(t, cajas[0].Diferencia)
	assert.Equal(t, "0.00", cajas[0].Diferencia.StringFixed(2))
}
