package model

import (
	"time"

	"napos/internal/domainerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Proveedor is a supplier. PorcentajeGanancia is the base profit margin
// applied to every product that has this supplier as principal; changing it
// cascades a repricing of those products (see ProveedorService).
type Proveedor struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre             string    `gorm:"uniqueIndex;not null"`
	NIT                string    `gorm:"column:nit;uniqueIndex;not null"`
	Celular            *string
	Direccion          *string
	PorcentajeGanancia decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Activo             bool            `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Productos []Producto `gorm:"foreignKey:ProveedorID"`
}

func (Proveedor) TableName() string { return "proveedores" }

// ActualizarPorcentajeGanancia is the only mutation point for the margin.
// The caller is responsible for cascading the repricing of dependent
// products inside the same transaction.
func (p *Proveedor) ActualizarPorcentajeGanancia(nuevoPorcentaje decimal.Decimal) error {
	if nuevoPorcentaje.LessThanOrEqual(decimal.Zero) {
		return domainerr.Wrap(domainerr.ErrMargenInvalido, "proveedor %s", p.Nombre)
	}
	p.PorcentajeGanancia = nuevoPorcentaje
	return nil
}
