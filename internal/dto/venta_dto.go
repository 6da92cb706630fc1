package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	CajaID     string             `json:"caja_id"    validate:"required,uuid"`
	UsuarioID  string             `json:"usuario_id" validate:"required,uuid"`
	ClienteID  *string            `json:"cliente_id" validate:"omitempty,uuid"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo transferencia credito"`
	Items      []ItemVentaRequest `json:"items"      validate:"required,min=1,dive"`
}

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha  string `form:"fecha"`                     // YYYY-MM-DD; empty = today
	Estado string `form:"estado,default=completada"` // completada | anulada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID           string                 `json:"id"`
	NumeroTicket int                    `json:"numero_ticket"`
	Fecha        string                 `json:"fecha"`
	CajaID       string                 `json:"caja_id"`
	ClienteID    *string                `json:"cliente_id,omitempty"`
	MetodoPago   string                 `json:"metodo_pago"`
	Total        decimal.Decimal        `json:"total"`
	Estado       string                 `json:"estado"`
	Detalles     []DetalleVentaResponse `json:"detalles"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
