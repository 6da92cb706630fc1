package dto

import "github.com/shopspring/decimal"

type CrearProveedorRequest struct {
	Nombre             string          `json:"nombre" validate:"required"`
	NIT                string          `json:"nit"    validate:"required"`
	Celular            *string         `json:"celular"`
	Direccion          *string         `json:"direccion"`
	PorcentajeGanancia decimal.Decimal `json:"porcentaje_ganancia" validate:"required"`
}

type ActualizarPorcentajeRequest struct {
	Porcentaje decimal.Decimal `json:"porcentaje" validate:"required"`
}

type ProveedorResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	NIT                string          `json:"nit"`
	Celular            *string         `json:"celular,omitempty"`
	Direccion          *string         `json:"direccion,omitempty"`
	PorcentajeGanancia decimal.Decimal `json:"porcentaje_ganancia"`
	Activo             bool            `json:"activo"`
}

// CascadaResponse summarizes a margin update: how many products were
// repriced in the same transaction as the supplier change.
type CascadaResponse struct {
	Proveedor             ProveedorResponse `json:"proveedor"`
	ProductosActualizados int               `json:"productos_actualizados"`
}
