package model

import (
	"time"

	"napos/internal/domainerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// CalcularPrecio is the pricing rule shared by every repricing path:
//
//	precioVenta = precioCompra × (1 + (margenProveedor + ajuste) / 100)
//
// The division keeps well over ten fractional digits before the final
// half-up rounding to centavos, so repeated repricing never compounds
// rounding error.
func CalcularPrecio(precioCompra, margenProveedor, ajuste decimal.Decimal) (decimal.Decimal, error) {
	margenEfectivo := margenProveedor.Add(ajuste)
	if margenEfectivo.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domainerr.ErrMargenInvalido
	}
	factor := decimal.NewFromInt(1).Add(margenEfectivo.DivRound(cien, 12))
	return precioCompra.Mul(factor).Round(2), nil
}

// Producto is the inventory aggregate. PrecioVenta is derived — it is only
// written through CalcularPrecioVenta, never taken from a caller, except
// for products without a principal supplier (non-formulaic pricing).
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Categoria    string
	PrecioCompra decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// AjusteProducto shifts the supplier margin for this product only.
	// Signed; zero means "use the supplier base margin as-is".
	AjusteProducto decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Stock          int             `gorm:"not null;default:0"`
	StockMinimo    int             `gorm:"not null;default:5"`
	ProveedorID    *uuid.UUID      `gorm:"type:uuid;index"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

// CalcularPrecioVenta recomputes PrecioVenta from the current cost and the
// effective margin. A product without a principal supplier keeps its
// manually assigned price (no-op), mirroring the non-formulaic path.
func (p *Producto) CalcularPrecioVenta() error {
	if p.Proveedor == nil {
		return nil
	}
	precio, err := CalcularPrecio(p.PrecioCompra, p.Proveedor.PorcentajeGanancia, p.AjusteProducto)
	if err != nil {
		return domainerr.Wrap(domainerr.ErrMargenInvalido, "producto %s", p.Nombre)
	}
	p.PrecioVenta = precio
	return nil
}

// CambiarProveedorPrincipal switches the principal supplier. The per-product
// adjustment resets to zero and the price recomputes with the new base margin.
func (p *Producto) CambiarProveedorPrincipal(nuevo *Proveedor) error {
	p.Proveedor = nuevo
	if nuevo != nil {
		id := nuevo.ID
		p.ProveedorID = &id
	} else {
		p.ProveedorID = nil
	}
	p.AjusteProducto = decimal.Zero
	return p.CalcularPrecioVenta()
}

// AplicarAjuste applies a signed margin adjustment. The resulting effective
// margin must stay positive; on failure the product is left unchanged.
func (p *Producto) AplicarAjuste(ajuste decimal.Decimal) error {
	if p.Proveedor == nil {
		return domainerr.Wrap(domainerr.ErrMargenInvalido, "producto %s sin proveedor principal", p.Nombre)
	}
	if p.Proveedor.PorcentajeGanancia.Add(ajuste).LessThanOrEqual(decimal.Zero) {
		return domainerr.Wrap(domainerr.ErrMargenInvalido, "producto %s", p.Nombre)
	}
	p.AjusteProducto = ajuste
	return p.CalcularPrecioVenta()
}

// ActualizarCosto sets a new purchase cost (typically from a supplier
// purchase) and reprices with the existing supplier/adjustment configuration.
func (p *Producto) ActualizarCosto(nuevoPrecioCompra decimal.Decimal) error {
	if nuevoPrecioCompra.LessThanOrEqual(decimal.Zero) {
		return domainerr.Wrap(domainerr.ErrCostoInvalido, "producto %s", p.Nombre)
	}
	p.PrecioCompra = nuevoPrecioCompra
	return p.CalcularPrecioVenta()
}

// DescontarStock removes sold units. Stock can never go negative.
func (p *Producto) DescontarStock(cantidad int) error {
	if cantidad > p.Stock {
		return domainerr.Wrap(domainerr.ErrStockInsuficiente, "producto %s", p.Nombre)
	}
	p.Stock -= cantidad
	return nil
}

// IncrementarStock adds purchased units.
func (p *Producto) IncrementarStock(cantidad int) error {
	if cantidad <= 0 {
		return domainerr.Wrap(domainerr.ErrCantidadInvalida, "producto %s", p.Nombre)
	}
	p.Stock += cantidad
	return nil
}

// BajoStockMinimo reports whether the product should raise a stock alert.
func (p *Producto) BajoStockMinimo() bool {
	return p.Stock <= p.StockMinimo
}
