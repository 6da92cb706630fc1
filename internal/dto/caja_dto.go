package dto

import "github.com/shopspring/decimal"

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"required"`
}

type CerrarCajaRequest struct {
	MontoFinal decimal.Decimal `json:"monto_final" validate:"required"`
}

type CajaResponse struct {
	ID            string           `json:"id"`
	FechaApertura string           `json:"fecha_apertura"`
	FechaCierre   *string          `json:"fecha_cierre,omitempty"`
	MontoInicial  decimal.Decimal  `json:"monto_inicial"`
	MontoFinal    *decimal.Decimal `json:"monto_final,omitempty"`
	Estado        string           `json:"estado"`
}

// CierreCajaResponse adds the session summary computed at close time:
// how many sales the caja bounded and the cash expected in the drawer.
type CierreCajaResponse struct {
	Caja             CajaResponse    `json:"caja"`
	CantidadVentas   int64           `json:"cantidad_ventas"`
	TotalVentas      decimal.Decimal `json:"total_ventas"`
	EfectivoEsperado decimal.Decimal `json:"efectivo_esperado"`
}
