package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja represents one cash-register session of a correspondent agent.
// Estado: "abierta" | "cerrada". At most one open caja per user — the
// service guards this on open.
type Caja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'abierta'"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Computed on close: apertura + ingresos − egresos (solo no anuladas)
	MontoEsperado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// MontoReal is the physically counted closing cash
	MontoReal *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Diferencia = real − esperado
	Diferencia    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observaciones *string
	AbiertaAt     time.Time
	CerradaAt     *time.Time

	SaldosApertura []SaldoAperturaCanal `gorm:"foreignKey:CajaID"`
	Transacciones  []Transaccion        `gorm:"foreignKey:CajaID"`
}

func (Caja) TableName() string { return "cajas" }

// SaldoAperturaCanal snapshots one channel's balance at session open.
// The name is frozen alongside the id so that closing reports survive a
// later channel rename.
type SaldoAperturaCanal struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CanalID     uuid.UUID       `gorm:"type:uuid;not null"`
	CanalNombre string          `gorm:"not null"`
	Saldo       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (SaldoAperturaCanal) TableName() string { return "saldos_apertura_canal" }
