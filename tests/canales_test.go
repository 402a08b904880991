package tests

import (
	"context"
	"testing"

	"correcaja/internal/comision"
	"correcaja/internal/dto"
	"correcaja/internal/model"
	"correcaja/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanalSvc() (service.CanalService, uuid.UUID) {
	return service.NewCanalService(newMemCanalRepo()), uuid.New()
}

func buscarCanal(t *testing.T, canales []dto.CanalResponse, nombre string) dto.CanalResponse {
	t.Helper()
	for _, c := range canales {
		if c.Nombre == nombre {
			return c
		}
	}
	t.Fatalf("canal %q no encontrado", nombre)
	return dto.CanalResponse{}
}

func TestSeedCanalesPorDefecto(t *testing.T) {
	svc, usuarioID := newCanalSvc()

	canales, err := svc.Listar(context.Background(), usuarioID, false)
	require.NoError(t, err)
	require.Len(t, canales, len(model.CanalesPorDefecto))
	for _, c := range canales {
		assert.True(t, c.PorDefecto)
		assert.True(t, c.Activo)
	}

	// El seed corre una sola vez
	canales, err = svc.Listar(context.Background(), usuarioID, false)
	require.NoError(t, err)
	assert.Len(t, canales, len(model.CanalesPorDefecto))
}

func TestCrearCanal(t *testing.T) {
	svc, usuarioID := newCanalSvc()
	ctx := context.Background()

	canal, err := svc.Crear(ctx, usuarioID, dto.CrearCanalRequest{Nombre: "Cooperativa JEP"})
	require.NoError(t, err)
	assert.False(t, canal.PorDefecto)
	assert.True(t, canal.Activo)

	// Nombre duplicado, sin importar mayúsculas
	_, err = svc.Crear(ctx, usuarioID, dto.CrearCanalRequest{Nombre: "cooperativa jep"})
	assert.ErrorContains(t, err, "ya existe un canal con ese nombre")
}

func TestEliminarCanal(t *testing.T) {
	svc, usuarioID := newCanalSvc()
	ctx := context.Background()

	canales, err := svc.Listar(ctx, usuarioID, false)
	require.NoError(t, err)
	porDefecto := buscarCanal(t, canales, "Banco Pichincha")

	// Los canales por defecto no se borran
	err = svc.Eliminar(ctx, usuarioID, uuid.MustParse(porDefecto.ID))
	assert.ErrorContains(t, err, "solo puede desactivarse")

	// Uno propio sí
	propio, err := svc.Crear(ctx, usuarioID, dto.CrearCanalRequest{Nombre: "Cooperativa JEP"})
	require.NoError(t, err)
	require.NoError(t, svc.Eliminar(ctx, usuarioID, uuid.MustParse(propio.ID)))

	canales, err = svc.Listar(ctx, usuarioID, true)
	require.NoError(t, err)
	assert.Len(t, canales, len(model.CanalesPorDefecto))
}

func TestActualizarCanal(t *testing.T) {
	svc, usuarioID := newCanalSvc()
	ctx := context.Background()

	canales, err := svc.Listar(ctx, usuarioID, false)
	require.NoError(t, err)
	porDefecto := buscarCanal(t, canales, "Produbanco")
	id := uuid.MustParse(porDefecto.ID)

	// Renombrar un canal por defecto está prohibido
	nombre := "Otro Banco"
	_, err = svc.Actualizar(ctx, usuarioID, id, dto.ActualizarCanalRequest{Nombre: &nombre})
	assert.ErrorContains(t, err, "no puede renombrarse")

	// Desactivarlo sí se permite
	inactivo := false
	resp, err := svc.Actualizar(ctx, usuarioID, id, dto.ActualizarCanalRequest{Activo: &inactivo})
	require.NoError(t, err)
	assert.False(t, resp.Activo)

	activos, err := svc.Activos(ctx, usuarioID)
	require.NoError(t, err)
	assert.Len(t, activos, len(model.CanalesPorDefecto)-1)
}

func TestCanalAjeno(t *testing.T) {
	svc, usuarioID := newCanalSvc()
	ctx := context.Background()

	propio, err := svc.Crear(ctx, usuarioID, dto.CrearCanalRequest{Nombre: "Cooperativa JEP"})
	require.NoError(t, err)

	otro := uuid.New()
	err = svc.Eliminar(ctx, otro, uuid.MustParse(propio.ID))
	assert.ErrorContains(t, err, "canal no encontrado")
}

func TestComisionPersonalizada(t *testing.T) {
	canalRepo := newMemCanalRepo()
	svc := service.NewCanalService(canalRepo)
	comisiones := service.NewComisionService(newMemConfiguracionRepo())
	usuarioID := uuid.New()
	ctx := context.Background()

	canales, err := svc.Listar(ctx, usuarioID, false)
	require.NoError(t, err)
	id := uuid.MustParse(buscarCanal(t, canales, "Banco Guayaquil").ID)

	resp, err := svc.EstablecerComision(ctx, usuarioID, id, dto.ConfiguracionComisionesRequest{
		Modo: "fija", ComisionDeposito: d("0.75"), ComisionRetiro: d("0.80"),
	})
	require.NoError(t, err)
	assert.True(t, resp.ComisionPersonalizadaActiva)
	require.NotNil(t, resp.ComisionPersonalizada)

	canal, err := canalRepo.FindByID(ctx, id)
	require.NoError(t, err)

	// Con la personalizada activa, ParaCanal la prefiere
	cfg, err := comisiones.ParaCanal(ctx, usuarioID, canal)
	require.NoError(t, err)
	assert.Equal(t, "0.75", cfg.ComisionDeposito.StringFixed(2))

	// Al quitarla queda guardada pero deja de aplicar
	require.NoError(t, svc.QuitarComision(ctx, usuarioID, id))
	canal, err = canalRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, canal.ComisionPersonalizadaActiva)
	assert.NotNil(t, canal.ComisionPersonalizada)

	cfg, err = comisiones.ParaCanal(ctx, usuarioID, canal)
	require.NoError(t, err)
	assert.Equal(t, comision.ModoFija, cfg.Modo)
	assert.Equal(t, "0.00", cfg.ComisionDeposito.StringFixed(2))
}

func TestConfiguracionPorRangoSinRangos(t *testing.T) {
	comisiones := service.NewComisionService(newMemConfiguracionRepo())

	_, err := comisiones.ActualizarConfiguracion(context.Background(), uuid.New(), dto.ConfiguracionComisionesRequest{
		Modo: "por_rango",
	})
	assert.ErrorContains(t, err, "requiere al menos un rango")
}

func TestConfiguracionOrdenaRangos(t *testing.T) {
	comisiones := service.NewComisionService(newMemConfiguracionRepo())

	cfg, err := comisiones.ActualizarConfiguracion(context.Background(), uuid.New(), dto.ConfiguracionComisionesRequest{
		Modo: "por_rango",
		Rangos: []dto.RangoDTO{
			{Desde: d("500"), Hasta: d("-1"), ComisionDeposito: d("1")},
			{Desde: d("0"), Hasta: d("500"), ComisionDeposito: d("0.50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, cfg.Rangos, 2)
	assert.Equal(t, "0.00", cfg.Rangos[0].Desde.StringFixed(2))
	assert.Equal(t, "500.00", cfg.Rangos[1].Desde.StringFixed(2))
}
