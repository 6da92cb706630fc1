package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	CodigoBarras string          `json:"codigo_barras" validate:"required"`
	Nombre       string          `json:"nombre"        validate:"required"`
	Categoria    string          `json:"categoria"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"required"`
	// PrecioVenta is only honored for products without proveedor principal;
	// with one, the price is derived from cost and margin.
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	ProveedorID    *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	AjusteProducto decimal.Decimal `json:"ajuste_producto"`
	Stock          int             `json:"stock"        validate:"min=0"`
	StockMinimo    int             `json:"stock_minimo" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Categoria   string `json:"categoria"`
	StockMinimo int    `json:"stock_minimo" validate:"min=0"`
}

type AjusteProductoRequest struct {
	Ajuste decimal.Decimal `json:"ajuste" validate:"required"`
}

type ActualizarCostoRequest struct {
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"required"`
}

type CambiarProveedorRequest struct {
	ProveedorID string `json:"proveedor_id" validate:"required,uuid"`
}

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	Barcode     string `form:"barcode"`
	ProveedorID string `form:"proveedor_id" validate:"omitempty,uuid"`
	Activo      string `form:"activo"` // "false" | "all" | default activos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoResponse struct {
	ID             string          `json:"id"`
	CodigoBarras   string          `json:"codigo_barras"`
	Nombre         string          `json:"nombre"`
	Categoria      string          `json:"categoria,omitempty"`
	PrecioCompra   decimal.Decimal `json:"precio_compra"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	AjusteProducto decimal.Decimal `json:"ajuste_producto"`
	Stock          int             `json:"stock"`
	StockMinimo    int             `json:"stock_minimo"`
	ProveedorID    *string         `json:"proveedor_id,omitempty"`
	Activo         bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type HistorialPrecioResponse struct {
	ID                 string          `json:"id"`
	CostoAntes         decimal.Decimal `json:"costo_antes"`
	CostoDespues       decimal.Decimal `json:"costo_despues"`
	VentaAntes         decimal.Decimal `json:"venta_antes"`
	VentaDespues       decimal.Decimal `json:"venta_despues"`
	PorcentajeAplicado decimal.Decimal `json:"porcentaje_aplicado"`
	Motivo             string          `json:"motivo"`
	Fecha              string          `json:"fecha"`
}

// ConsultaPrecioResponse is the redis-cached payload of the public price
// check endpoint.
type ConsultaPrecioResponse struct {
	Nombre          string          `json:"nombre"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
	Categoria       string          `json:"categoria,omitempty"`
}
