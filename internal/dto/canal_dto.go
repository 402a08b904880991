package dto

import (
	"correcaja/internal/comision"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCanalRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

type ActualizarCanalRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Activo *bool   `json:"activo"`
}

// RangoDTO mirrors comision.Rango with validation tags. Hasta = -1 (or any
// negative) keeps the reference sentinel for "no upper limit".
type RangoDTO struct {
	Desde            decimal.Decimal `json:"desde"             validate:"min=0"`
	Hasta            decimal.Decimal `json:"hasta"`
	ComisionDeposito decimal.Decimal `json:"comision_deposito" validate:"min=0"`
	ComisionRetiro   decimal.Decimal `json:"comision_retiro"   validate:"min=0"`
}

type ConfiguracionComisionesRequest struct {
	Modo             string          `json:"modo"              validate:"required,oneof=fija por_rango"`
	ComisionDeposito decimal.Decimal `json:"comision_deposito" validate:"min=0"`
	ComisionRetiro   decimal.Decimal `json:"comision_retiro"   validate:"min=0"`
	Rangos           []RangoDTO      `json:"rangos"            validate:"omitempty,dive"`
}

// ToConfiguracion converts the request into the engine's schedule type.
func (r ConfiguracionComisionesRequest) ToConfiguracion() comision.Configuracion {
	cfg := comision.Configuracion{
		Modo:             comision.Modo(r.Modo),
		ComisionDeposito: r.ComisionDeposito,
		ComisionRetiro:   r.ComisionRetiro,
	}
	for _, rg := range r.Rangos {
		cfg.Rangos = append(cfg.Rangos, comision.Rango{
			Desde:            rg.Desde,
			Hasta:            rg.Hasta,
			ComisionDeposito: rg.ComisionDeposito,
			ComisionRetiro:   rg.ComisionRetiro,
		})
	}
	return cfg
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CanalResponse struct {
	ID                          string                  `json:"id"`
	Nombre                      string                  `json:"nombre"`
	Activo                      bool                    `json:"activo"`
	PorDefecto                  bool                    `json:"por_defecto"`
	ComisionPersonalizadaActiva bool                    `json:"comision_personalizada_activa"`
	ComisionPersonalizada       *comision.Configuracion `json:"comision_personalizada,omitempty"`
}

type ConfiguracionComisionesResponse struct {
	Comisiones comision.Configuracion `json:"comisiones"`
}
