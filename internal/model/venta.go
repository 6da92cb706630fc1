package model

import (
	"time"

	"napos/internal/domainerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the registers.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTransferencia = "transferencia"
	MetodoCredito       = "credito"
)

// Venta states. Anulada is terminal.
const (
	VentaCompletada = "completada"
	VentaAnulada    = "anulada"
)

// Venta is a completed sale with its immutable line items. Total is always
// derived from the detalles — never accepted from a caller.
type Venta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int             `gorm:"uniqueIndex;not null"`
	Fecha        time.Time       `gorm:"index;not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago   string          `gorm:"type:varchar(20);not null"`
	ClienteID    *uuid.UUID      `gorm:"type:uuid;index"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	CajaID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'completada'"`

	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
}

// DetalleVenta is the historical snapshot of one sold product. It is never
// updated after creation — later price changes must not rewrite history.
type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleVenta) TableName() string { return "detalles_venta" }

// CalcularTotal sums the line subtotals into Total.
func (v *Venta) CalcularTotal() {
	total := decimal.Zero
	for _, d := range v.Detalles {
		total = total.Add(d.Subtotal)
	}
	v.Total = total
}

// Validar checks the business rules that don't need external state: a sale
// needs at least one line item, and a credit sale needs a client.
func (v *Venta) Validar() error {
	if len(v.Detalles) == 0 {
		return domainerr.ErrVentaVacia
	}
	if v.MetodoPago == MetodoCredito && v.ClienteID == nil {
		return domainerr.ErrCreditoRequiereCliente
	}
	return nil
}

// Anular voids the sale. Only completada sales can be voided; the service
// restores stock and credit before flipping the state.
func (v *Venta) Anular() error {
	if v.Estado != VentaCompletada {
		return domainerr.ErrVentaNoCompletada
	}
	v.Estado = VentaAnulada
	return nil
}
