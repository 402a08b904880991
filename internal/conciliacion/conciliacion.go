// Package conciliacion computes per-channel balance reconciliation for a
// cash-register session: opening snapshot plus classified transaction flows
// gives the expected closing balance of every active channel.
//
// The computation is stateless and side-effect free; it is re-run in full
// every time the transaction list changes, never incrementally.
package conciliacion

import (
	"correcaja/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Apertura is one channel's balance snapshotted when the session opened.
// Channels without a snapshot are assumed to have opened at zero.
type Apertura struct {
	CanalID     uuid.UUID
	CanalNombre string
	Saldo       decimal.Decimal
}

// Canal identifies an active channel to report on. Channels outside this
// set are never reported, even when transactions reference them.
type Canal struct {
	ID     uuid.UUID
	Nombre string
}

// Movimiento is the reconciler's view of a session transaction.
type Movimiento struct {
	Monto       decimal.Decimal
	Categoria   model.CategoriaOperacion
	CanalID     *uuid.UUID
	CanalNombre string
	Anulada     bool
}

// SaldoCanal is one reconciled channel:
// SaldoEsperado = SaldoApertura + Entradas − Salidas.
type SaldoCanal struct {
	CanalID       uuid.UUID       `json:"canal_id"`
	CanalNombre   string          `json:"canal_nombre"`
	SaldoApertura decimal.Decimal `json:"saldo_apertura"`
	Entradas      decimal.Decimal `json:"entradas"`
	Salidas       decimal.Decimal `json:"salidas"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
}

type acumulador struct {
	entradas decimal.Decimal
	salidas  decimal.Decimal
}

// Conciliar reconciles every active channel against the session movements.
//
// Voided movements and movements without a channel reference are skipped.
// Channel resolution prefers the immutable id; a movement carrying only a
// name is matched by exact name (legacy records predate channel ids — a
// rename breaks that match and the movement is silently skipped).
// Channels whose opening balance, inflow and outflow are all zero are
// omitted from the result.
func Conciliar(
	aperturas []Apertura,
	movimientos []Movimiento,
	canales []Canal,
	efectos map[model.CategoriaOperacion]model.EfectoCanal,
) []SaldoCanal {
	porID := make(map[uuid.UUID]*acumulador, len(canales))
	porNombre := make(map[string]uuid.UUID, len(canales))
	for _, c := range canales {
		porID[c.ID] = &acumulador{entradas: decimal.Zero, salidas: decimal.Zero}
		porNombre[c.Nombre] = c.ID
	}

	for _, m := range movimientos {
		if m.Anulada {
			continue
		}
		acc := resolver(m, porID, porNombre)
		if acc == nil {
			continue
		}
		switch efectos[m.Categoria] {
		case model.EfectoAumenta:
			acc.entradas = acc.entradas.Add(m.Monto)
		case model.EfectoDisminuye:
			acc.salidas = acc.salidas.Add(m.Monto)
		}
	}

	saldoInicial := make(map[uuid.UUID]decimal.Decimal, len(aperturas))
	for _, a := range aperturas {
		saldoInicial[a.CanalID] = a.Saldo
	}

	resultado := make([]SaldoCanal, 0, len(canales))
	for _, c := range canales {
		acc := porID[c.ID]
		apertura := saldoInicial[c.ID] // zero value when absent
		if apertura.IsZero() && acc.entradas.IsZero() && acc.salidas.IsZero() {
			continue
		}
		resultado = append(resultado, SaldoCanal{
			CanalID:       c.ID,
			CanalNombre:   c.Nombre,
			SaldoApertura: apertura,
			Entradas:      acc.entradas,
			Salidas:       acc.salidas,
			SaldoEsperado: apertura.Add(acc.entradas).Sub(acc.salidas),
		})
	}
	return resultado
}

func resolver(m Movimiento, porID map[uuid.UUID]*acumulador, porNombre map[string]uuid.UUID) *acumulador {
	if m.CanalID != nil {
		if acc, ok := porID[*m.CanalID]; ok {
			return acc
		}
		return nil
	}
	if m.CanalNombre == "" {
		return nil
	}
	if id, ok := porNombre[m.CanalNombre]; ok {
		return porID[id]
	}
	return nil
}
