package service

import (
	"context"
	"errors"
	"time"

	"napos/internal/domainerr"
	"napos/internal/dto"
	"napos/internal/model"
	"napos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoService covers catalog CRUD. Anything that touches PrecioVenta
// goes through PrecioService instead.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	Historial(ctx context.Context, id uuid.UUID) ([]dto.HistorialPrecioResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	historialRepo repository.HistorialPrecioRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	historialRepo repository.HistorialPrecioRepository,
) ProductoService {
	return &productoService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		historialRepo: historialRepo,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByBarcode(ctx, req.CodigoBarras); err == nil {
		return nil, domainerr.Wrap(domainerr.ErrDuplicado, "código de barras %s", req.CodigoBarras)
	}

	p := &model.Producto{
		CodigoBarras:   req.CodigoBarras,
		Nombre:         req.Nombre,
		Categoria:      req.Categoria,
		PrecioCompra:   req.PrecioCompra,
		PrecioVenta:    req.PrecioVenta,
		AjusteProducto: req.AjusteProducto,
		Stock:          req.Stock,
		StockMinimo:    req.StockMinimo,
		Activo:         true,
	}

	if req.ProveedorID != nil && *req.ProveedorID != "" {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "proveedor %s", *req.ProveedorID)
		}
		proveedor, err := s.proveedorRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "proveedor %s", pid)
		}
		p.ProveedorID = &proveedor.ID
		p.Proveedor = proveedor
		// With a principal supplier the sale price is never taken from
		// the caller: it derives from cost and margin.
		if err := p.CalcularPrecioVenta(); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerr.Wrap(domainerr.ErrDuplicado, "código de barras %s", req.CodigoBarras)
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.findProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Nombre = req.Nombre
	p.Categoria = req.Categoria
	p.StockMinimo = req.StockMinimo
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.findProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductoListResponse{
		Data:  make([]dto.ProductoResponse, 0, len(productos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range productos {
		resp.Data = append(resp.Data, *productoToResponse(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProducto(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, false)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProducto(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, true)
}

func (s *productoService) Historial(ctx context.Context, id uuid.UUID) ([]dto.HistorialPrecioResponse, error) {
	if _, err := s.findProducto(ctx, id); err != nil {
		return nil, err
	}
	historial, err := s.historialRepo.ListByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialPrecioResponse, 0, len(historial))
	for _, h := range historial {
		out = append(out, dto.HistorialPrecioResponse{
			ID:                 h.ID.String(),
			CostoAntes:         h.CostoAntes,
			CostoDespues:       h.CostoDespues,
			VentaAntes:         h.VentaAntes,
			VentaDespues:       h.VentaDespues,
			PorcentajeAplicado: h.PorcentajeAplicado,
			Motivo:             h.Motivo,
			Fecha:              h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *productoService) findProducto(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "producto %s", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:             p.ID.String(),
		CodigoBarras:   p.CodigoBarras,
		Nombre:         p.Nombre,
		Categoria:      p.Categoria,
		PrecioCompra:   p.PrecioCompra,
		PrecioVenta:    p.PrecioVenta,
		AjusteProducto: p.AjusteProducto,
		Stock:          p.Stock,
		StockMinimo:    p.StockMinimo,
		Activo:         p.Activo,
	}
	if p.ProveedorID != nil {
		pid := p.ProveedorID.String()
		resp.ProveedorID = &pid
	}
	return resp
}
