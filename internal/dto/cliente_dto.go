package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Nombre       string           `json:"nombre" validate:"required"`
	Cedula       string           `json:"cedula" validate:"required"`
	Celular      *string          `json:"celular"`
	Direccion    *string          `json:"direccion"`
	MontoCredito *decimal.Decimal `json:"monto_credito"`
}

type AbonoRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
}

type ClienteResponse struct {
	ID              string           `json:"id"`
	Nombre          string           `json:"nombre"`
	Cedula          string           `json:"cedula"`
	Celular         *string          `json:"celular,omitempty"`
	Direccion       *string          `json:"direccion,omitempty"`
	MontoCredito    *decimal.Decimal `json:"monto_credito,omitempty"`
	SaldoUtilizado  decimal.Decimal  `json:"saldo_utilizado"`
	SaldoDisponible decimal.Decimal  `json:"saldo_disponible"`
	Activo          bool             `json:"activo"`
}
