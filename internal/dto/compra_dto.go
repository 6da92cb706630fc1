package dto

import "github.com/shopspring/decimal"

type ItemCompraRequest struct {
	ProductoID           string          `json:"producto_id"            validate:"required,uuid"`
	Cantidad             int             `json:"cantidad"               validate:"required,min=1"`
	PrecioCompraUnitario decimal.Decimal `json:"precio_compra_unitario" validate:"required"`
}

type RegistrarCompraRequest struct {
	ProveedorID   string              `json:"proveedor_id"   validate:"required,uuid"`
	UsuarioID     string              `json:"usuario_id"     validate:"required,uuid"`
	NumeroFactura string              `json:"numero_factura" validate:"required"`
	Items         []ItemCompraRequest `json:"items"          validate:"required,min=1,dive"`
}

type CompraFilter struct {
	ProveedorID string `form:"proveedor_id" validate:"omitempty,uuid"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type DetalleCompraResponse struct {
	ProductoID           string          `json:"producto_id"`
	Producto             string          `json:"producto"`
	Cantidad             int             `json:"cantidad"`
	PrecioCompraUnitario decimal.Decimal `json:"precio_compra_unitario"`
	Subtotal             decimal.Decimal `json:"subtotal"`
}

type CompraResponse struct {
	ID            string                  `json:"id"`
	Fecha         string                  `json:"fecha"`
	ProveedorID   string                  `json:"proveedor_id"`
	NumeroFactura string                  `json:"numero_factura"`
	Total         decimal.Decimal         `json:"total"`
	Detalles      []DetalleCompraResponse `json:"detalles"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
