package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Motivo values for HistorialPrecio rows.
const (
	MotivoCompra           = "compra"
	MotivoCascadaProveedor = "cascada_proveedor"
	MotivoAjusteManual     = "ajuste_manual"
	MotivoCambioProveedor  = "cambio_proveedor"
	MotivoCostoManual      = "costo_manual"
)

// HistorialPrecio records one price change of a product. Rows are
// immutable: never updated, never deleted.
type HistorialPrecio struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProveedorID        *uuid.UUID      `gorm:"type:uuid;index"`
	CostoAntes         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoDespues       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentaAntes         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentaDespues       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PorcentajeAplicado decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Motivo             string          `gorm:"not null"`
	CreatedAt          time.Time
}

func (HistorialPrecio) TableName() string { return "historial_precios" }
