package conciliacion

import (
	"testing"

	"correcaja/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

var (
	bancoA = Canal{ID: uuid.New(), Nombre: "Banco A"}
	bancoB = Canal{ID: uuid.New(), Nombre: "Banco B"}
)

func mov(categoria model.CategoriaOperacion, monto float64, canal *Canal) Movimiento {
	m := Movimiento{Monto: d(monto), Categoria: categoria}
	if canal != nil {
		id := canal.ID
		m.CanalID = &id
		m.CanalNombre = canal.Nombre
	}
	return m
}

func TestConciliarAritmetica(t *testing.T) {
	aperturas := []Apertura{{CanalID: bancoA.ID, CanalNombre: bancoA.Nombre, Saldo: d(100)}}
	movs := []Movimiento{
		mov(model.CategoriaDeposito, 30, &bancoA), // disminuye
	}

	r := Conciliar(aperturas, movs, []Canal{bancoA}, model.EfectoPorCategoria)
	require.Len(t, r, 1)
	assert.True(t, r[0].SaldoEsperado.Equal(d(70)))

	movs = append(movs, mov(model.CategoriaRetiro, 20, &bancoA)) // aumenta
	r = Conciliar(aperturas, movs, []Canal{bancoA}, model.EfectoPorCategoria)
	require.Len(t, r, 1)
	assert.True(t, r[0].Entradas.Equal(d(20)))
	assert.True(t, r[0].Salidas.Equal(d(30)))
	assert.True(t, r[0].SaldoEsperado.Equal(d(90)))
}

func TestConciliarExcluyeCanalSinActividad(t *testing.T) {
	// Banco B: apertura 0 y sin movimientos — no aparece en el resultado
	aperturas := []Apertura{{CanalID: bancoA.ID, CanalNombre: bancoA.Nombre, Saldo: d(50)}}
	r := Conciliar(aperturas, nil, []Canal{bancoA, bancoB}, model.EfectoPorCategoria)

	require.Len(t, r, 1)
	assert.Equal(t, bancoA.ID, r[0].CanalID)
}

func TestConciliarExcluyeAnuladas(t *testing.T) {
	anulada := mov(model.CategoriaRetiro, 500, &bancoA)
	anulada.Anulada = true

	r := Conciliar(nil, []Movimiento{anulada}, []Canal{bancoA}, model.EfectoPorCategoria)
	assert.Empty(t, r)
}

func TestConciliarIgnoraCanalNoActivo(t *testing.T) {
	inactivo := Canal{ID: uuid.New(), Nombre: "Cerrado"}
	movs := []Movimiento{
		mov(model.CategoriaRetiro, 10, &inactivo),
		{Monto: d(10), Categoria: model.CategoriaRetiro, CanalNombre: "No Existe"},
		{Monto: d(10), Categoria: model.CategoriaRetiro}, // sin canal
	}

	r := Conciliar(nil, movs, []Canal{bancoA}, model.EfectoPorCategoria)
	assert.Empty(t, r)
}

func TestConciliarCoincidePorNombre(t *testing.T) {
	// Registros antiguos solo traen el nombre del canal
	movs := []Movimiento{{Monto: d(25), Categoria: model.CategoriaRetiro, CanalNombre: "Banco A"}}

	r := Conciliar(nil, movs, []Canal{bancoA}, model.EfectoPorCategoria)
	require.Len(t, r, 1)
	assert.True(t, r[0].Entradas.Equal(d(25)))
	assert.True(t, r[0].SaldoEsperado.Equal(d(25)))
}

func TestConciliarCategoriaNeutra(t *testing.T) {
	movs := []Movimiento{mov(model.CategoriaOtroIngreso, 40, &bancoA)}

	r := Conciliar(nil, movs, []Canal{bancoA}, model.EfectoPorCategoria)
	assert.Empty(t, r) // neutro no genera actividad en el canal
}

func TestConciliarAperturaSinMovimientos(t *testing.T) {
	aperturas := []Apertura{{CanalID: bancoB.ID, CanalNombre: bancoB.Nombre, Saldo: d(200)}}

	r := Conciliar(aperturas, nil, []Canal{bancoB}, model.EfectoPorCategoria)
	require.Len(t, r, 1)
	assert.True(t, r[0].SaldoEsperado.Equal(d(200)))
}

func TestConciliarNoMutaEntradas(t *testing.T) {
	aperturas := []Apertura{{CanalID: bancoA.ID, CanalNombre: bancoA.Nombre, Saldo: d(200)}}
	movs := []Movimiento{
		mov(model.CategoriaRetiro, 50, &bancoA),
		mov(model.CategoriaDeposito, 80, &bancoA),
	}
	canales := []Canal{bancoA}

	primera := Conciliar(aperturas, movs, canales, model.EfectoPorCategoria)
	segunda := Conciliar(aperturas, movs, canales, model.EfectoPorCategoria)

	// Determinista: misma entrada, misma salida
	require.Len(t, primera, 1)
	assert.Equal(t, primera, segunda)
	assert.True(t, aperturas[0].Saldo.Equal(d(200)))
	assert.True(t, primera[0].Entradas.Equal(d(50)))
	assert.True(t, primera[0].Salidas.Equal(d(80)))
	assert.True(t, primera[0].SaldoEsperado.Equal(d(170)))
}
