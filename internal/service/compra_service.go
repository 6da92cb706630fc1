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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraService registers supplier purchases: stock in, costos updated and
// sale prices repriced per line, all in one transaction. There is no
// purchase cancellation.
type CompraService interface {
	RegistrarCompra(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	ListCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
}

type compraService struct {
	repo          repository.CompraRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	usuarioRepo   repository.UsuarioRepository
	precio        PrecioService
	now           func() time.Time
}

func NewCompraService(
	repo repository.CompraRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	usuarioRepo repository.UsuarioRepository,
	precio PrecioService,
) CompraService {
	return &compraService{
		repo:          repo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		usuarioRepo:   usuarioRepo,
		precio:        precio,
		now:           time.Now,
	}
}

func (s *compraService) RegistrarCompra(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "proveedor %s", req.ProveedorID)
	}
	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "usuario %s", req.UsuarioID)
	}

	proveedor, err := s.proveedorRepo.FindByID(ctx, proveedorID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "proveedor %s", proveedorID)
	}
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "usuario %s", usuarioID)
	}

	if len(req.Items) == 0 {
		return nil, domainerr.ErrCompraVacia
	}
	for _, item := range req.Items {
		if item.Cantidad <= 0 {
			return nil, domainerr.Wrap(domainerr.ErrCantidadInvalida, "producto %s", item.ProductoID)
		}
		if item.PrecioCompraUnitario.LessThanOrEqual(decimal.Zero) {
			return nil, domainerr.Wrap(domainerr.ErrCostoInvalido, "producto %s", item.ProductoID)
		}
	}

	var compra model.Compra
	var barcodes []string

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var detalles []model.DetalleCompra
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductoID)
			if err != nil {
				return domainerr.Wrap(domainerr.ErrNoEncontrado, "producto %s", item.ProductoID)
			}
			p, err := s.productoRepo.FindByIDTx(tx, pid)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerr.Wrap(domainerr.ErrNoEncontrado, "producto %s", pid)
			}
			if err != nil {
				return err
			}

			if err := s.productoRepo.IncrementarStockTx(tx, pid, item.Cantidad); err != nil {
				return err
			}
			// New supplier cost triggers the repricing of the sale price,
			// audited with motivo compra.
			if err := s.precio.RepreciarCostoTx(tx, p, item.PrecioCompraUnitario, model.MotivoCompra); err != nil {
				return err
			}

			detalles = append(detalles, model.DetalleCompra{
				ProductoID:           pid,
				Cantidad:             item.Cantidad,
				PrecioCompraUnitario: item.PrecioCompraUnitario,
				Subtotal:             item.PrecioCompraUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))),
			})
			barcodes = append(barcodes, p.CodigoBarras)
		}

		compra = model.Compra{
			Fecha:         s.now(),
			ProveedorID:   proveedor.ID,
			UsuarioID:     usuario.ID,
			NumeroFactura: req.NumeroFactura,
			Detalles:      detalles,
		}
		compra.CalcularTotal()
		if err := compra.Validar(); err != nil {
			return err
		}
		return s.repo.CreateTx(tx, &compra)
	})
	if txErr != nil {
		return nil, txErr
	}

	for _, b := range barcodes {
		s.precio.InvalidarCache(ctx, b)
	}
	return compraToResponse(&compra), nil
}

func (s *compraService) ObtenerCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "compra %s", id)
	}
	if err != nil {
		return nil, err
	}
	return compraToResponse(compra), nil
}

func (s *compraService) ListCompras(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	compras, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.CompraListResponse{
		Data:  make([]dto.CompraResponse, 0, len(compras)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range compras {
		resp.Data = append(resp.Data, *compraToResponse(&compras[i]))
	}
	return resp, nil
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	resp := &dto.CompraResponse{
		ID:            c.ID.String(),
		Fecha:         c.Fecha.Format(time.RFC3339),
		ProveedorID:   c.ProveedorID.String(),
		NumeroFactura: c.NumeroFactura,
		Total:         c.Total,
	}
	for _, d := range c.Detalles {
		dr := dto.DetalleCompraResponse{
			ProductoID:           d.ProductoID.String(),
			Cantidad:             d.Cantidad,
			PrecioCompraUnitario: d.PrecioCompraUnitario,
			Subtotal:             d.Subtotal,
		}
		if d.Producto != nil {
			dr.Producto = d.Producto.Nombre
		}
		resp.Detalles = append(resp.Detalles, dr)
	}
	return resp
}
