package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"napos/internal/domainerr"
	"napos/internal/dto"
	"napos/internal/infra"
	"napos/internal/model"
	"napos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	GenerarTicket(ctx context.Context, id uuid.UUID) (string, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	productoRepo   repository.ProductoRepository
	clienteRepo    repository.ClienteRepository
	usuarioRepo    repository.UsuarioRepository
	cajaRepo       repository.CajaRepository
	credito        CreditoService
	notificaciones NotificacionService
	negocio        string
	ticketPath     string
	now            func() time.Time
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
	cajaRepo repository.CajaRepository,
	credito CreditoService,
	notificaciones NotificacionService,
	negocio, ticketPath string,
) VentaService {
	return &ventaService{
		repo:           repo,
		productoRepo:   productoRepo,
		clienteRepo:    clienteRepo,
		usuarioRepo:    usuarioRepo,
		cajaRepo:       cajaRepo,
		credito:        credito,
		notificaciones: notificaciones,
		negocio:        negocio,
		ticketPath:     ticketPath,
		now:            time.Now,
	}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Resolution and validation happen outside the transaction; the transaction
// itself charges credit FIRST, then decrements stock, then persists the
// venta. Any failure rolls everything back — a sale either happens
// completely or not at all.

func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "caja %s", req.CajaID)
	}
	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "usuario %s", req.UsuarioID)
	}

	caja, err := s.cajaRepo.FindByID(ctx, cajaID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "caja %s", cajaID)
	}
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "usuario %s", usuarioID)
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil && *req.ClienteID != "" {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "cliente %s", *req.ClienteID)
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "cliente %s", cid)
		}
		clienteID = &cid
	}

	// Resolve products and snapshot current prices (pre-flight, outside TX)
	type resolvedItem struct {
		productoID   uuid.UUID
		nombre       string
		codigoBarras string
		precio       decimal.Decimal
		cantidad     int
		subtotal     decimal.Decimal
	}

	var resolved []resolvedItem
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "producto %s", item.ProductoID)
		}
		if item.Cantidad <= 0 {
			return nil, domainerr.Wrap(domainerr.ErrCantidadInvalida, "producto %s", item.ProductoID)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "producto %s", item.ProductoID)
		}
		if !p.Activo {
			return nil, domainerr.Wrap(domainerr.ErrProductoInactivo, "producto %s", p.Nombre)
		}
		resolved = append(resolved, resolvedItem{
			productoID:   pid,
			nombre:       p.Nombre,
			codigoBarras: p.CodigoBarras,
			precio:       p.PrecioVenta,
			cantidad:     item.Cantidad,
			subtotal:     p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		})
	}

	if !caja.EstaAbierta() {
		return nil, domainerr.ErrCajaNoAbierta
	}

	venta := model.Venta{
		Fecha:      s.now(),
		MetodoPago: req.MetodoPago,
		ClienteID:  clienteID,
		UsuarioID:  usuario.ID,
		CajaID:     caja.ID,
		Estado:     model.VentaCompletada,
	}
	for _, r := range resolved {
		venta.Detalles = append(venta.Detalles, model.DetalleVenta{
			ProductoID:     r.productoID,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
		})
	}
	venta.CalcularTotal()
	if err := venta.Validar(); err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-check the caja under a row lock: a Cerrar committing after
		// the pre-flight check must not end up with a sale inside it.
		cajaTx, err := s.cajaRepo.FindByIDTx(tx, caja.ID)
		if err != nil {
			return fmt.Errorf("verificando caja %s: %w", caja.ID, err)
		}
		if !cajaTx.EstaAbierta() {
			return domainerr.ErrCajaNoAbierta
		}

		// Credit is charged before stock moves: if the client has no room,
		// no inventory is touched.
		if venta.MetodoPago == model.MetodoCredito {
			if err := s.credito.CargarTx(tx, *venta.ClienteID, venta.Total); err != nil {
				return err
			}
		}

		for _, r := range resolved {
			rows, err := s.productoRepo.DescontarStockTx(tx, r.productoID, r.cantidad)
			if err != nil {
				return fmt.Errorf("descontando stock de %s: %w", r.nombre, err)
			}
			if rows == 0 {
				return domainerr.Wrap(domainerr.ErrStockInsuficiente, "producto %s", r.nombre)
			}
		}

		ticket, err := s.repo.NextTicketNumber(tx)
		if err != nil {
			return err
		}
		venta.NumeroTicket = ticket

		return s.repo.CreateTx(tx, &venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Low-stock alerts, best effort — the sale already committed.
	if s.notificaciones != nil {
		ids := make([]uuid.UUID, 0, len(resolved))
		for _, r := range resolved {
			ids = append(ids, r.productoID)
		}
		if err := s.notificaciones.VerificarProductos(ctx, ids); err != nil {
			log.Warn().Err(err).Int("ticket", venta.NumeroTicket).Msg("verificación de stock mínimo falló")
		}
	}

	resp := ventaToResponse(&venta)
	for i, r := range resolved {
		resp.Detalles[i].Producto = r.nombre
	}
	return resp, nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Exact inverse of RegistrarVenta: the estado flips first (conditionally, so
// that exactly one cancellation wins), then credit is repaid, then stock
// restored. Anulada is terminal.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "venta %s", id)
	}
	if err := venta.Anular(); err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Conditional flip completada → anulada. Zero rows means a
		// concurrent cancellation already restored stock and credit;
		// this one must not do it again.
		rows, err := s.repo.MarcarAnuladaTx(tx, venta.ID)
		if err != nil {
			return fmt.Errorf("anulando venta %s: %w", venta.ID, err)
		}
		if rows == 0 {
			return domainerr.ErrVentaNoCompletada
		}
		if venta.MetodoPago == model.MetodoCredito && venta.ClienteID != nil {
			if err := s.credito.AbonarTx(tx, *venta.ClienteID, venta.Total); err != nil {
				return err
			}
		}
		for _, d := range venta.Detalles {
			if err := s.productoRepo.IncrementarStockTx(tx, d.ProductoID, d.Cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.Wrap(domainerr.ErrNoEncontrado, "venta %s", id)
	}
	if err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, 0, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		resp.Data = append(resp.Data, *ventaToResponse(&ventas[i]))
	}
	return resp, nil
}

// GenerarTicket renders the venta as a thermal-format PDF and returns the
// path of the generated file.
func (s *ventaService) GenerarTicket(ctx context.Context, id uuid.UUID) (string, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", domainerr.Wrap(domainerr.ErrNoEncontrado, "venta %s", id)
	}
	return infra.GenerateTicketPDF(venta, s.negocio, s.ticketPath)
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:           v.ID.String(),
		NumeroTicket: v.NumeroTicket,
		Fecha:        v.Fecha.Format(time.RFC3339),
		CajaID:       v.CajaID.String(),
		MetodoPago:   v.MetodoPago,
		Total:        v.Total,
		Estado:       v.Estado,
	}
	if v.ClienteID != nil {
		cid := v.ClienteID.String()
		resp.ClienteID = &cid
	}
	for _, d := range v.Detalles {
		dr := dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		}
		if d.Producto != nil {
			dr.Producto = d.Producto.Nombre
		}
		resp.Detalles = append(resp.Detalles, dr)
	}
	return resp
}
