package model

import (
	"time"

	"correcaja/internal/comision"

	"github.com/google/uuid"
)

// ConfiguracionUsuario is the user's default fee schedule. Channels without
// an enabled personalized schedule fall back to this one.
type ConfiguracionUsuario struct {
	ID         uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex"`
	Comisiones comision.Configuracion `gorm:"type:jsonb;serializer:json;not null"`
	UpdatedAt  time.Time
}

func (ConfiguracionUsuario) TableName() string { return "configuraciones_usuario" }
