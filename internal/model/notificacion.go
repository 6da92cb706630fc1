package model

import (
	"time"

	"github.com/google/uuid"
)

// Severidad values for Notificacion.
const (
	SeveridadAdvertencia = "advertencia"
	SeveridadCritico     = "critico"
)

// Notificacion is a low-stock alert raised when a product falls to or below
// its stock mínimo. Critico means the product ran out completely.
type Notificacion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;index;not null"`
	Severidad  string    `gorm:"type:varchar(20);not null"`
	Mensaje    string    `gorm:"not null"`
	Leida      bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Notificacion) TableName() string { return "notificaciones" }
