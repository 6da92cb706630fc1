package model

import (
	"time"

	"napos/internal/domainerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado values for Caja. The transition is one-way: abierta → cerrada.
const (
	CajaAbierta = "abierta"
	CajaCerrada = "cerrada"
)

// Caja is one cash-drawer session. At most one caja may be abierta across
// the whole system; the partial unique index on (estado) enforces that at
// the storage layer (see infra.NewDatabase).
type Caja struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaApertura time.Time `gorm:"not null"`
	FechaCierre   *time.Time
	MontoInicial  decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	MontoFinal    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado        string           `gorm:"type:varchar(20);not null;default:'abierta'"`
}

func (Caja) TableName() string { return "cajas" }

func (c *Caja) EstaAbierta() bool { return c.Estado == CajaAbierta }

// Cerrar records the closing time and the counted cash amount. A closed
// caja can never be reopened, and closing twice fails.
func (c *Caja) Cerrar(montoFinal decimal.Decimal, ahora time.Time) error {
	if !c.EstaAbierta() {
		return domainerr.ErrCajaYaCerrada
	}
	c.FechaCierre = &ahora
	c.MontoFinal = &montoFinal
	c.Estado = CajaCerrada
	return nil
}
