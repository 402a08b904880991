package model

import (
	"time"

	"correcaja/internal/comision"

	"github.com/google/uuid"
)

// CanalTransaccion is a bank/wallet rail through which operations flow
// (e.g. "Banco Pichincha"). Default channels are pre-seeded and cannot be
// deleted, only deactivated; custom channels are created by the user.
//
// ComisionPersonalizada overrides the user's default fee schedule for this
// channel, but only while ComisionPersonalizadaActiva is true.
type CanalTransaccion struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID                   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre                      string    `gorm:"not null;index"`
	Activo                      bool      `gorm:"not null;default:true"`
	PorDefecto                  bool      `gorm:"not null;default:false"`
	ComisionPersonalizada       *comision.Configuracion `gorm:"type:jsonb;serializer:json"`
	ComisionPersonalizadaActiva bool                    `gorm:"not null;default:false"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

func (CanalTransaccion) TableName() string { return "canales_transaccion" }

// CanalesPorDefecto are the rails seeded for every new user.
var CanalesPorDefecto = []string{
	"Banco Pichincha",
	"Banco Guayaquil",
	"Produbanco",
	"Banco del Pacífico",
	"Mi Vecino",
}
