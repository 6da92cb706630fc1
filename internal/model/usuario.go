package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is the operator recorded on ventas and compras. Authentication
// lives outside this service; here a usuario is resolved by id only.
// Rol: "cajero" | "administrador"
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"not null"`
	Rol       string    `gorm:"type:varchar(20);not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
