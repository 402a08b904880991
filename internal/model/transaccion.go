package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaccion is one operation registered against an open caja.
// Transactions are never physically deleted: Anulada marks a logical void
// and every downstream total must exclude voided rows.
type Transaccion struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Tipo      TipoTransaccion    `gorm:"type:varchar(20);not null"`
	Categoria CategoriaOperacion `gorm:"type:varchar(30);not null"`
	Monto     decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	Comision  decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	// CanalID + CanalNombre snapshot the channel; older records carry
	// only the name
	CanalID         *uuid.UUID `gorm:"type:uuid"`
	CanalNombre     *string
	Referencia      *string
	Descripcion     *string
	Anulada         bool `gorm:"not null;default:false"`
	AnuladaAt       *time.Time
	MotivoAnulacion *string
	CreatedAt       time.Time
}

func (Transaccion) TableName() string { return "transacciones" }
