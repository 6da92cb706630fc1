package model

import (
	"time"

	"napos/internal/domainerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente holds the per-client credit ledger state. SaldoUtilizado starts
// at zero and only moves through UtilizarCredito / Abonar, keeping
// 0 ≤ saldo ≤ monto_credito whenever credit is enabled.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Cedula    string    `gorm:"uniqueIndex;not null"`
	Celular   *string
	Direccion *string
	// MontoCredito nil or zero means the client cannot buy on credit.
	MontoCredito   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SaldoUtilizado decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Activo         bool             `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TieneCreditoHabilitado is true only when a positive credit limit was assigned.
func (c *Cliente) TieneCreditoHabilitado() bool {
	return c.MontoCredito != nil && c.MontoCredito.GreaterThan(decimal.Zero)
}

// SaldoDisponible = approved limit − outstanding balance; zero when disabled.
func (c *Cliente) SaldoDisponible() decimal.Decimal {
	if !c.TieneCreditoHabilitado() {
		return decimal.Zero
	}
	return c.MontoCredito.Sub(c.SaldoUtilizado)
}

// UtilizarCredito charges a credit sale against the client's balance.
func (c *Cliente) UtilizarCredito(monto decimal.Decimal) error {
	if !c.TieneCreditoHabilitado() {
		return domainerr.Wrap(domainerr.ErrCreditoDeshabilitado, "cliente %s", c.Nombre)
	}
	if monto.GreaterThan(c.SaldoDisponible()) {
		return domainerr.Wrap(domainerr.ErrCreditoExcedido, "cliente %s", c.Nombre)
	}
	c.SaldoUtilizado = c.SaldoUtilizado.Add(monto)
	return nil
}

// Abonar registers a partial or total repayment. Over-payment is capped at
// zero, never an error — the balance can never go negative.
func (c *Cliente) Abonar(monto decimal.Decimal) error {
	if monto.LessThanOrEqual(decimal.Zero) {
		return domainerr.Wrap(domainerr.ErrMontoInvalido, "abono de cliente %s", c.Nombre)
	}
	saldo := c.SaldoUtilizado.Sub(monto)
	if saldo.IsNegative() {
		saldo = decimal.Zero
	}
	c.SaldoUtilizado = saldo
	return nil
}

func (c *Cliente) Activar()    { c.Activo = true }
func (c *Cliente) Desactivar() { c.Activo = false }
