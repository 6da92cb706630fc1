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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// precioCacheKey is the redis key prefix for the public price lookup cache.
const precioCacheKey = "precio:"

// PrecioService owns every repricing path. All of them funnel through the
// same formula (model.CalcularPrecio) and write a historial_precios row in
// the same transaction as the price change.
type PrecioService interface {
	ActualizarCosto(ctx context.Context, productoID uuid.UUID, nuevoCosto decimal.Decimal) (*dto.ProductoResponse, error)
	AplicarAjuste(ctx context.Context, productoID uuid.UUID, ajuste decimal.Decimal) (*dto.ProductoResponse, error)
	CambiarProveedor(ctx context.Context, productoID, proveedorID uuid.UUID) (*dto.ProductoResponse, error)

	// RepreciarCostoTx runs the cost-update path inside a caller-owned
	// transaction (purchases reprice every line within their own tx).
	// The producto must be row-locked with its proveedor preloaded.
	RepreciarCostoTx(tx *gorm.DB, p *model.Producto, nuevoCosto decimal.Decimal, motivo string) error

	InvalidarCache(ctx context.Context, codigoBarras string)
}

type precioService struct {
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	historialRepo repository.HistorialPrecioRepository
	rdb           *redis.Client
}

func NewPrecioService(
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	historialRepo repository.HistorialPrecioRepository,
	rdb *redis.Client,
) PrecioService {
	return &precioService{
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		historialRepo: historialRepo,
		rdb:           rdb,
	}
}

func (s *precioService) ActualizarCosto(ctx context.Context, productoID uuid.UUID, nuevoCosto decimal.Decimal) (*dto.ProductoResponse, error) {
	var producto *model.Producto
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productoRepo.FindByIDTx(tx, productoID)
		if err != nil {
			return productoNoEncontrado(err, productoID)
		}
		if err := s.RepreciarCostoTx(tx, p, nuevoCosto, model.MotivoCostoManual); err != nil {
			return err
		}
		producto = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.InvalidarCache(ctx, producto.CodigoBarras)
	return productoToResponse(producto), nil
}

func (s *precioService) AplicarAjuste(ctx context.Context, productoID uuid.UUID, ajuste decimal.Decimal) (*dto.ProductoResponse, error) {
	var producto *model.Producto
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productoRepo.FindByIDTx(tx, productoID)
		if err != nil {
			return productoNoEncontrado(err, productoID)
		}
		costoAntes, ventaAntes := p.PrecioCompra, p.PrecioVenta
		if err := p.AplicarAjuste(ajuste); err != nil {
			return err
		}
		if err := s.productoRepo.UpdatePreciosTx(tx, p.ID, p.PrecioCompra, p.PrecioVenta, p.AjusteProducto); err != nil {
			return err
		}
		if err := s.registrarHistorialTx(tx, p, costoAntes, ventaAntes, model.MotivoAjusteManual); err != nil {
			return err
		}
		producto = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.InvalidarCache(ctx, producto.CodigoBarras)
	return productoToResponse(producto), nil
}

func (s *precioService) CambiarProveedor(ctx context.Context, productoID, proveedorID uuid.UUID) (*dto.ProductoResponse, error) {
	var producto *model.Producto
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productoRepo.FindByIDTx(tx, productoID)
		if err != nil {
			return productoNoEncontrado(err, productoID)
		}
		nuevo, err := s.proveedorRepo.FindByIDTx(tx, proveedorID)
		if err != nil {
			return domainerr.Wrap(domainerr.ErrNoEncontrado, "proveedor %s", proveedorID)
		}
		costoAntes, ventaAntes := p.PrecioCompra, p.PrecioVenta
		if err := p.CambiarProveedorPrincipal(nuevo); err != nil {
			return err
		}
		if err := s.productoRepo.UpdatePreciosTx(tx, p.ID, p.PrecioCompra, p.PrecioVenta, p.AjusteProducto); err != nil {
			return err
		}
		if err := s.registrarHistorialTx(tx, p, costoAntes, ventaAntes, model.MotivoCambioProveedor); err != nil {
			return err
		}
		producto = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.InvalidarCache(ctx, producto.CodigoBarras)
	return productoToResponse(producto), nil
}

func (s *precioService) RepreciarCostoTx(tx *gorm.DB, p *model.Producto, nuevoCosto decimal.Decimal, motivo string) error {
	costoAntes, ventaAntes := p.PrecioCompra, p.PrecioVenta
	if err := p.ActualizarCosto(nuevoCosto); err != nil {
		return err
	}
	if err := s.productoRepo.UpdatePreciosTx(tx, p.ID, p.PrecioCompra, p.PrecioVenta, p.AjusteProducto); err != nil {
		return err
	}
	return s.registrarHistorialTx(tx, p, costoAntes, ventaAntes, motivo)
}

func (s *precioService) InvalidarCache(ctx context.Context, codigoBarras string) {
	if s.rdb == nil || codigoBarras == "" {
		return
	}
	if err := s.rdb.Del(ctx, precioCacheKey+codigoBarras).Err(); err != nil {
		log.Warn().Err(err).Str("codigo_barras", codigoBarras).Msg("no se pudo invalidar cache de precio")
	}
}

func (s *precioService) registrarHistorialTx(tx *gorm.DB, p *model.Producto, costoAntes, ventaAntes decimal.Decimal, motivo string) error {
	porcentaje := decimal.Zero
	if p.Proveedor != nil {
		porcentaje = p.Proveedor.PorcentajeGanancia.Add(p.AjusteProducto)
	}
	return s.historialRepo.CreateTx(tx, &model.HistorialPrecio{
		ProductoID:         p.ID,
		ProveedorID:        p.ProveedorID,
		CostoAntes:         costoAntes,
		CostoDespues:       p.PrecioCompra,
		VentaAntes:         ventaAntes,
		VentaDespues:       p.PrecioVenta,
		PorcentajeAplicado: porcentaje,
		Motivo:             motivo,
	})
}

func productoNoEncontrado(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerr.Wrap(domainerr.ErrNoEncontrado, "producto %s", id)
	}
	return fmt.Errorf("buscando producto %s: %w", id, err)
}
