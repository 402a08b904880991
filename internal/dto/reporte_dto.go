package dto

import (
	"correcaja/internal/conciliacion"

	"github.com/shopspring/decimal"
)

// ReporteCierre is the closing report of a caja: it feeds both the PDF
// generator and the async email job, so it carries everything those need.
type ReporteCierre struct {
	CajaID        string                    `json:"caja_id"`
	NombreNegocio string                    `json:"nombre_negocio"`
	Agente        string                    `json:"agente"`
	Email         string                    `json:"email"`
	AbiertaAt     string                    `json:"abierta_at"`
	CerradaAt     string                    `json:"cerrada_at"`
	MontoApertura decimal.Decimal           `json:"monto_apertura"`
	Totales       TotalesCaja               `json:"totales"`
	MontoEsperado decimal.Decimal           `json:"monto_esperado"`
	MontoReal     decimal.Decimal           `json:"monto_real"`
	Diferencia    decimal.Decimal           `json:"diferencia"`
	Observaciones *string                   `json:"observaciones"`
	Canales       []conciliacion.SaldoCanal `json:"canales"`
}
