package model

import (
	"time"

	"napos/internal/domainerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a supplier purchase: stock in, costs updated, prices repriced.
// There is no cancellation for purchases — an intentional gap, not an
// oversight.
type Compra struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha         time.Time       `gorm:"index;not null"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	UsuarioID     uuid.UUID       `gorm:"type:uuid;not null"`
	NumeroFactura string          `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Detalles  []DetalleCompra `gorm:"foreignKey:CompraID"`
	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID"`
	Usuario   *Usuario        `gorm:"foreignKey:UsuarioID"`
}

// DetalleCompra snapshots one purchased product with the unit cost billed
// by the supplier. Immutable once created.
type DetalleCompra struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID             uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID           uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad             int             `gorm:"not null"`
	PrecioCompraUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal             decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleCompra) TableName() string { return "detalles_compra" }

// CalcularTotal sums the line subtotals into Total.
func (c *Compra) CalcularTotal() {
	total := decimal.Zero
	for _, d := range c.Detalles {
		total = total.Add(d.Subtotal)
	}
	c.Total = total
}

// Validar rejects empty purchases and non-positive quantities.
func (c *Compra) Validar() error {
	if len(c.Detalles) == 0 {
		return domainerr.ErrCompraVacia
	}
	for _, d := range c.Detalles {
		if d.Cantidad <= 0 {
			return domainerr.ErrCantidadInvalida
		}
	}
	return nil
}
