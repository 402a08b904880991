package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearTransaccionRequest carries the raw form input of the mobile client.
// Monto and Comision arrive as strings because the device keyboard may use
// a comma as decimal separator; the service normalizes and parses them.
type CrearTransaccionRequest struct {
	Monto       string  `json:"monto"       validate:"required"`
	Categoria   string  `json:"categoria"   validate:"required"`
	CanalID     *string `json:"canal_id"    validate:"omitempty,uuid"`
	Referencia  *string `json:"referencia"  validate:"omitempty,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=300"`
	// Comision overrides the auto-suggested fee when present
	Comision *string `json:"comision"`
}

type AnularTransaccionRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3,max=300"`
}

// ComisionSugeridaRequest is what the client sends on every amount change
// to pre-fill the commission field.
type ComisionSugeridaRequest struct {
	Monto     string  `json:"monto"     validate:"required"`
	Categoria string  `json:"categoria" validate:"required"`
	CanalID   *string `json:"canal_id"  validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransaccionResponse struct {
	ID          string          `json:"id"`
	CajaID      string          `json:"caja_id"`
	Tipo        string          `json:"tipo"`
	Categoria   string          `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"`
	Comision    decimal.Decimal `json:"comision"`
	CanalID     *string         `json:"canal_id"`
	CanalNombre *string         `json:"canal_nombre"`
	Referencia  *string         `json:"referencia"`
	Descripcion *string         `json:"descripcion"`
	Anulada     bool            `json:"anulada"`
	CreatedAt   string          `json:"created_at"`
}

type ComisionSugeridaResponse struct {
	Comision decimal.Decimal `json:"comision"`
}
