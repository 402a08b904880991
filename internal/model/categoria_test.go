package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablaCategorias(t *testing.T) {
	for _, c := range []CategoriaOperacion{
		CategoriaDeposito, CategoriaRetiro, CategoriaPagoServicio,
		CategoriaRecarga, CategoriaGiroEnviado, CategoriaGiroRecibido,
		CategoriaOtroIngreso, CategoriaOtroEgreso,
	} {
		info, ok := c.Info()
		assert.True(t, ok, "categoria %s sin metadata", c)
		assert.NotEmpty(t, info.Nombre)
		assert.Contains(t, []TipoTransaccion{TipoIngreso, TipoEgreso}, info.Tipo)
	}
	assert.False(t, CategoriaOperacion("venta").Valida())
}

func TestEfectoCanalEsEjeIndependiente(t *testing.T) {
	// Un retiro es egreso de efectivo pero aumenta el saldo del canal;
	// un depósito es ingreso de efectivo pero lo disminuye.
	assert.Equal(t, TipoEgreso, Categorias[CategoriaRetiro].Tipo)
	assert.Equal(t, EfectoAumenta, CategoriaRetiro.Efecto())

	assert.Equal(t, TipoIngreso, Categorias[CategoriaDeposito].Tipo)
	assert.Equal(t, EfectoDisminuye, CategoriaDeposito.Efecto())

	// Las categorías misceláneas no tocan el canal
	assert.Equal(t, EfectoNeutro, CategoriaOtroIngreso.Efecto())
	assert.Equal(t, EfectoNeutro, CategoriaOtroEgreso.Efecto())
}
