// Package comision implements the fee calculation engine.
//
// The engine is pure: it receives the amount, the fee direction and an
// explicit Configuracion and returns the commission to charge. It never
// errors — an unmatched range or an unknown mode yields Zero. Validation of
// the configuration itself (overlapping ranges, gaps) belongs to the editing
// surface, not here.
package comision

import "github.com/shopspring/decimal"

// Direccion is the fee-schedule axis of an operation. It usually lines up
// with the transaction's ingreso/egreso tipo but is defined independently.
type Direccion string

const (
	Deposito Direccion = "deposito"
	Retiro   Direccion = "retiro"
)

// Modo selects between a flat schedule and an amount-tiered one.
type Modo string

const (
	ModoFija     Modo = "fija"
	ModoPorRango Modo = "por_rango"
)

// SinLimite is the sentinel stored in Rango.Hasta for "no upper bound".
var SinLimite = decimal.NewFromInt(-1)

// Rango is a half-open amount range [Desde, Hasta) with its own fees.
// A negative Hasta means unbounded: [Desde, ∞).
type Rango struct {
	Desde            decimal.Decimal `json:"desde"`
	Hasta            decimal.Decimal `json:"hasta"`
	ComisionDeposito decimal.Decimal `json:"comision_deposito"`
	ComisionRetiro   decimal.Decimal `json:"comision_retiro"`
}

// Ilimitado reports whether the range has no upper bound.
func (r Rango) Ilimitado() bool {
	return r.Hasta.IsNegative()
}

// Contiene reports whether monto falls inside the range. The lower bound is
// inclusive, the upper bound exclusive.
func (r Rango) Contiene(monto decimal.Decimal) bool {
	if monto.LessThan(r.Desde) {
		return false
	}
	return r.Ilimitado() || monto.LessThan(r.Hasta)
}

// Configuracion is a fee schedule: either flat per-direction values or an
// ordered list of ranges. It is attached to the user's default configuration
// or, personalized, to a single channel.
type Configuracion struct {
	Modo             Modo            `json:"modo"`
	ComisionDeposito decimal.Decimal `json:"comision_deposito"`
	ComisionRetiro   decimal.Decimal `json:"comision_retiro"`
	Rangos           []Rango         `json:"rangos,omitempty"`
}

// PorDefecto returns the schedule applied to users that never configured
// their commissions: flat mode, zero fees.
func PorDefecto() Configuracion {
	return Configuracion{Modo: ModoFija}
}

// Calcular returns the commission for monto in the given direction.
//
// Flat mode ignores the amount. Range mode scans Rangos in the order given
// and takes the FIRST matching range — the engine does not sort defensively,
// so with overlapping ranges iteration order decides. No match (or an
// unknown mode) returns Zero. Negative and zero amounts pass through
// unvalidated; amount positivity is the caller's precondition.
func Calcular(monto decimal.Decimal, dir Direccion, cfg Configuracion) decimal.Decimal {
	switch cfg.Modo {
	case ModoFija:
		return porDireccion(cfg.ComisionDeposito, cfg.ComisionRetiro, dir)
	case ModoPorRango:
		for _, r := range cfg.Rangos {
			if r.Contiene(monto) {
				return porDireccion(r.ComisionDeposito, r.ComisionRetiro, dir)
			}
		}
	}
	return decimal.Zero
}

// ParaCanal resolves which schedule applies to a transaction: the channel's
// personalized schedule when it is enabled and present, otherwise the
// user's default. Exactly one applies.
func ParaCanal(personalizada *Configuracion, habilitada bool, porDefecto Configuracion) Configuracion {
	if habilitada && personalizada != nil {
		return *personalizada
	}
	return porDefecto
}

func porDireccion(deposito, retiro decimal.Decimal, dir Direccion) decimal.Decimal {
	if dir == Retiro {
		return retiro
	}
	return deposito
}
