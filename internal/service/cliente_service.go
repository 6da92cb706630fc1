package service

import (
	"context"
	"errors"

	"napos/internal/domainerr"
	"napos/internal/dto"
	"napos/internal/model"
	"napos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, soloActivos bool) ([]dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByCedula(ctx, req.Cedula); err == nil {
		return nil, domainerr.Wrap(domainerr.ErrDuplicado, "cliente con cédula %s", req.Cedula)
	}

	c := &model.Cliente{
		Nombre:       req.Nombre,
		Cedula:       req.Cedula,
		Celular:      req.Celular,
		Direccion:    req.Direccion,
		MontoCredito: req.MontoCredito,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerr.Wrap(domainerr.ErrDuplicado, "cliente con cédula %s", req.Cedula)
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

// Actualizar edits identity and the approved credit limit. Lowering the
// limit below the outstanding balance is allowed — the client simply
// cannot charge more until they repay.
func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.findCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Nombre = req.Nombre
	c.Cedula = req.Cedula
	c.Celular = req.Celular
	c.Direccion = req.Direccion
	c.MontoCredito = req.MontoCredito
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerr.Wrap(domainerr.ErrDuplicado, "cliente con cédula %s", req.Cedula)
		}
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.findCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, soloActivos bool) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	c, err := s.findCliente(ctx, id)
	if err != nil {
		return err
	}
	c.Desactivar()
	return s.repo.Update(ctx, c)
}

func (s *clienteService) Reactivar(ctx context.Context, id uuid.UUID) error {
	c, err := s.findCliente(ctx, id)
	if err != nil {
		return err
	}
	c.Activar()
	return s.repo.Update(ctx, c)
}

func (s *clienteService) findCliente(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "cliente %s", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
