// Package domainerr defines the business error taxonomy shared by all
// services. Every rule violation maps to a named sentinel carrying a Kind,
// so handlers can translate kinds to HTTP statuses without string matching
// and tests can assert with errors.Is.
package domainerr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for transport mapping.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindStateConflict
	KindResourceExhausted
)

// Error is the concrete type behind every sentinel below.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	// Not found
	ErrNoEncontrado = New(KindNotFound, "recurso no encontrado")

	// Validation
	ErrVentaVacia             = New(KindValidation, "la venta debe tener al menos un producto")
	ErrCompraVacia            = New(KindValidation, "la compra debe tener al menos un producto")
	ErrCantidadInvalida       = New(KindValidation, "la cantidad debe ser mayor que cero")
	ErrMontoInvalido          = New(KindValidation, "el monto debe ser mayor que cero")
	ErrMargenInvalido         = New(KindValidation, "el margen efectivo debe ser mayor que cero")
	ErrCostoInvalido          = New(KindValidation, "el precio de compra debe ser mayor que cero")
	ErrCreditoRequiereCliente = New(KindValidation, "una venta a crédito requiere un cliente asociado")
	ErrProductoInactivo       = New(KindValidation, "el producto está inactivo y no puede venderse")
	ErrDuplicado              = New(KindValidation, "ya existe un registro con ese valor único")

	// State conflicts
	ErrCajaYaAbierta     = New(KindStateConflict, "ya existe una caja abierta")
	ErrCajaNoAbierta     = New(KindStateConflict, "no hay una caja abierta")
	ErrCajaYaCerrada     = New(KindStateConflict, "la caja ya está cerrada")
	ErrVentaNoCompletada = New(KindStateConflict, "solo se pueden anular ventas en estado completada")

	// Resource exhausted
	ErrStockInsuficiente    = New(KindResourceExhausted, "stock insuficiente")
	ErrCreditoExcedido      = New(KindResourceExhausted, "el monto supera el saldo de crédito disponible")
	ErrCreditoDeshabilitado = New(KindResourceExhausted, "el cliente no tiene crédito habilitado")
)

// Wrap prefixes a sentinel with instance context ("producto Coca-Cola")
// while keeping errors.Is(err, sentinel) true.
func Wrap(sentinel *Error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// KindOf extracts the Kind from anywhere in the wrap chain; 0 when the
// error is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
