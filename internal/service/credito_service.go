package service

import (
	"context"
	"errors"
	"fmt"

	"napos/internal/domainerr"
	"napos/internal/dto"
	"napos/internal/model"
	"napos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditoService moves the per-client credit ledger. Cargar and Abonar own
// their transaction; the Tx variants run inside a caller-owned one (credit
// sales charge and cancellations repay within the sale's transaction).
type CreditoService interface {
	Abonar(ctx context.Context, clienteID uuid.UUID, monto decimal.Decimal) (*dto.ClienteResponse, error)

	CargarTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal) error
	AbonarTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal) error
}

type creditoService struct {
	clienteRepo repository.ClienteRepository
}

func NewCreditoService(clienteRepo repository.ClienteRepository) CreditoService {
	return &creditoService{clienteRepo: clienteRepo}
}

func (s *creditoService) Abonar(ctx context.Context, clienteID uuid.UUID, monto decimal.Decimal) (*dto.ClienteResponse, error) {
	var cliente *model.Cliente
	txErr := runTx(ctx, s.clienteRepo.DB(), func(tx *gorm.DB) error {
		c, err := s.findClienteTx(tx, clienteID)
		if err != nil {
			return err
		}
		if err := c.Abonar(monto); err != nil {
			return err
		}
		if err := s.clienteRepo.UpdateTx(tx, c); err != nil {
			return err
		}
		cliente = c
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return clienteToResponse(cliente), nil
}

// CargarTx charges a credit sale. The row lock taken by FindByIDTx
// serializes concurrent charges against the same client, so the
// 0 ≤ saldo ≤ monto_credito invariant holds under concurrency.
func (s *creditoService) CargarTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal) error {
	c, err := s.findClienteTx(tx, clienteID)
	if err != nil {
		return err
	}
	if err := c.UtilizarCredito(monto); err != nil {
		return err
	}
	return s.clienteRepo.UpdateTx(tx, c)
}

func (s *creditoService) AbonarTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal) error {
	c, err := s.findClienteTx(tx, clienteID)
	if err != nil {
		return err
	}
	if err := c.Abonar(monto); err != nil {
		return err
	}
	return s.clienteRepo.UpdateTx(tx, c)
}

func (s *creditoService) findClienteTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.clienteRepo.FindByIDTx(tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "cliente %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("buscando cliente %s: %w", id, err)
	}
	return c, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID.String(),
		Nombre:          c.Nombre,
		Cedula:          c.Cedula,
		Celular:         c.Celular,
		Direccion:       c.Direccion,
		MontoCredito:    c.MontoCredito,
		SaldoUtilizado:  c.SaldoUtilizado,
		SaldoDisponible: c.SaldoDisponible(),
		Activo:          c.Activo,
	}
}
