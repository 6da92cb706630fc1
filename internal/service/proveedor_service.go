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

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, soloActivos bool) ([]dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	// ActualizarPorcentaje changes the base margin and reprices every
	// product with this proveedor as principal, atomically.
	ActualizarPorcentaje(ctx context.Context, id uuid.UUID, porcentaje decimal.Decimal) (*dto.CascadaResponse, error)
}

type proveedorService struct {
	repo          repository.ProveedorRepository
	productoRepo  repository.ProductoRepository
	historialRepo repository.HistorialPrecioRepository
	precio        PrecioService
}

func NewProveedorService(
	repo repository.ProveedorRepository,
	productoRepo repository.ProductoRepository,
	historialRepo repository.HistorialPrecioRepository,
	precio PrecioService,
) ProveedorService {
	return &proveedorService{
		repo:          repo,
		productoRepo:  productoRepo,
		historialRepo: historialRepo,
		precio:        precio,
	}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if _, err := s.repo.FindByNIT(ctx, req.NIT); err == nil {
		return nil, domainerr.Wrap(domainerr.ErrDuplicado, "proveedor con NIT %s", req.NIT)
	}
	if _, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, domainerr.Wrap(domainerr.ErrDuplicado, "proveedor %s", req.Nombre)
	}

	p := &model.Proveedor{
		Nombre:    req.Nombre,
		NIT:       req.NIT,
		Celular:   req.Celular,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := p.ActualizarPorcentajeGanancia(req.PorcentajeGanancia); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerr.Wrap(domainerr.ErrDuplicado, "proveedor %s", req.Nombre)
		}
		return nil, err
	}
	return proveedorToResponse(p), nil
}

// Actualizar edits contact data only. The margin has its own endpoint
// because changing it cascades.
func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.findProveedor(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Nombre = req.Nombre
	p.NIT = req.NIT
	p.Celular = req.Celular
	p.Direccion = req.Direccion
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerr.Wrap(domainerr.ErrDuplicado, "proveedor %s", req.Nombre)
		}
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.findProveedor(ctx, id)
	if err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context, soloActivos bool) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProveedor(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, false)
}

func (s *proveedorService) ActualizarPorcentaje(ctx context.Context, id uuid.UUID, porcentaje decimal.Decimal) (*dto.CascadaResponse, error) {
	var proveedor *model.Proveedor
	var actualizados int
	var barcodes []string

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerr.Wrap(domainerr.ErrNoEncontrado, "proveedor %s", id)
		}
		if err != nil {
			return err
		}
		if err := p.ActualizarPorcentajeGanancia(porcentaje); err != nil {
			return err
		}
		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}

		productos, err := s.productoRepo.FindByProveedorIDTx(tx, id)
		if err != nil {
			return err
		}
		for i := range productos {
			prod := &productos[i]
			prod.Proveedor = p
			costoAntes, ventaAntes := prod.PrecioCompra, prod.PrecioVenta
			// A product whose ajuste would push the effective margin to
			// zero or below aborts the whole cascade.
			if err := prod.CalcularPrecioVenta(); err != nil {
				return fmt.Errorf("repreciando producto %s: %w", prod.Nombre, err)
			}
			if err := s.productoRepo.UpdatePreciosTx(tx, prod.ID, prod.PrecioCompra, prod.PrecioVenta, prod.AjusteProducto); err != nil {
				return err
			}
			if err := s.historialRepo.CreateTx(tx, &model.HistorialPrecio{
				ProductoID:         prod.ID,
				ProveedorID:        prod.ProveedorID,
				CostoAntes:         costoAntes,
				CostoDespues:       prod.PrecioCompra,
				VentaAntes:         ventaAntes,
				VentaDespues:       prod.PrecioVenta,
				PorcentajeAplicado: p.PorcentajeGanancia.Add(prod.AjusteProducto),
				Motivo:             model.MotivoCascadaProveedor,
			}); err != nil {
				return err
			}
			barcodes = append(barcodes, prod.CodigoBarras)
		}

		proveedor = p
		actualizados = len(productos)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	for _, b := range barcodes {
		s.precio.InvalidarCache(ctx, b)
	}
	return &dto.CascadaResponse{
		Proveedor:             *proveedorToResponse(proveedor),
		ProductosActualizados: actualizados,
	}, nil
}

func (s *proveedorService) findProveedor(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "proveedor %s", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:                 p.ID.String(),
		Nombre:             p.Nombre,
		NIT:                p.NIT,
		Celular:            p.Celular,
		Direccion:          p.Direccion,
		PorcentajeGanancia: p.PorcentajeGanancia,
		Activo:             p.Activo,
	}
}
