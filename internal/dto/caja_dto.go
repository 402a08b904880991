package dto

import (
	"correcaja/internal/conciliacion"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaldoAperturaDTO struct {
	CanalID string          `json:"canal_id" validate:"required,uuid"`
	Saldo   decimal.Decimal `json:"saldo"    validate:"min=0"`
}

type AbrirCajaRequest struct {
	MontoApertura  decimal.Decimal    `json:"monto_apertura"  validate:"min=0"`
	SaldosApertura []SaldoAperturaDTO `json:"saldos_apertura" validate:"omitempty,dive"`
}

type CerrarCajaRequest struct {
	// MontoReal is the physically counted cash at close
	MontoReal     decimal.Decimal `json:"monto_real" validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TotalesCaja are the running totals of the session, voided excluded.
type TotalesCaja struct {
	Ingresos   decimal.Decimal `json:"ingresos"`
	Egresos    decimal.Decimal `json:"egresos"`
	Comisiones decimal.Decimal `json:"comisiones"`
}

type SaldoAperturaResponse struct {
	CanalID     string          `json:"canal_id"`
	CanalNombre string          `json:"canal_nombre"`
	Saldo       decimal.Decimal `json:"saldo"`
}

// ResumenCajaResponse is the live view the mobile client renders: totals,
// expected cash and the reconciled balance of every active channel.
type ResumenCajaResponse struct {
	CajaID         string                   `json:"caja_id"`
	Estado         string                   `json:"estado"`
	MontoApertura  decimal.Decimal          `json:"monto_apertura"`
	Totales        TotalesCaja              `json:"totales"`
	MontoEsperado  decimal.Decimal          `json:"monto_esperado"`
	SaldosApertura []SaldoAperturaResponse  `json:"saldos_apertura"`
	Canales        []conciliacion.SaldoCanal `json:"canales"`
	Transacciones  int                      `json:"transacciones"`
	AbiertaAt      string                   `json:"abierta_at"`
}

type CerrarCajaResponse struct {
	CajaID        string          `json:"caja_id"`
	Estado        string          `json:"estado"`
	MontoEsperado decimal.Decimal `json:"monto_esperado"`
	MontoReal     decimal.Decimal `json:"monto_real"`
	Diferencia    decimal.Decimal `json:"diferencia"`
	CerradaAt     string          `json:"cerrada_at"`
}

// CajaResponse is one entry of the session history.
type CajaResponse struct {
	CajaID        string           `json:"caja_id"`
	Estado        string           `json:"estado"`
	MontoApertura decimal.Decimal  `json:"monto_apertura"`
	MontoEsperado *decimal.Decimal `json:"monto_esperado"`
	MontoReal     *decimal.Decimal `json:"monto_real"`
	Diferencia    *decimal.Decimal `json:"diferencia"`
	Observaciones *string          `json:"observaciones"`
	AbiertaAt     string           `json:"abierta_at"`
	CerradaAt     *string          `json:"cerrada_at"`
}
