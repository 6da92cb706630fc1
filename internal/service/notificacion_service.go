package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"napos/internal/dto"
	"napos/internal/model"
	"napos/internal/repository"
	"napos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NotificacionService raises low-stock alerts: a durable notificación row
// plus a best-effort email through the worker queue. One unread alert per
// product at a time — repeat triggers are suppressed until it is read.
type NotificacionService interface {
	// VerificarProductos checks the given products after a sale.
	VerificarProductos(ctx context.Context, productoIDs []uuid.UUID) error
	// EscanearStockBajo sweeps the whole catalog (cron entry point).
	// Returns how many alerts were raised.
	EscanearStockBajo(ctx context.Context) (int, error)
	Listar(ctx context.Context) ([]dto.NotificacionResponse, error)
	MarcarLeida(ctx context.Context, id uuid.UUID) error
}

type notificacionService struct {
	repo         repository.NotificacionRepository
	productoRepo repository.ProductoRepository
	dispatcher   *worker.Dispatcher
}

func NewNotificacionService(
	repo repository.NotificacionRepository,
	productoRepo repository.ProductoRepository,
	dispatcher *worker.Dispatcher,
) NotificacionService {
	return &notificacionService{
		repo:         repo,
		productoRepo: productoRepo,
		dispatcher:   dispatcher,
	}
}

func (s *notificacionService) VerificarProductos(ctx context.Context, productoIDs []uuid.UUID) error {
	for _, id := range productoIDs {
		p, err := s.productoRepo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("verificando stock de %s: %w", id, err)
		}
		if !p.BajoStockMinimo() {
			continue
		}
		if _, err := s.alertar(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *notificacionService) EscanearStockBajo(ctx context.Context) (int, error) {
	productos, err := s.productoRepo.FindBajoStockMinimo(ctx)
	if err != nil {
		return 0, err
	}
	alertas := 0
	for i := range productos {
		raised, err := s.alertar(ctx, &productos[i])
		if err != nil {
			return alertas, err
		}
		if raised {
			alertas++
		}
	}
	return alertas, nil
}

func (s *notificacionService) Listar(ctx context.Context) ([]dto.NotificacionResponse, error) {
	notificaciones, err := s.repo.ListNoLeidas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificacionResponse, 0, len(notificaciones))
	for _, n := range notificaciones {
		resp := dto.NotificacionResponse{
			ID:        n.ID.String(),
			Severidad: n.Severidad,
			Mensaje:   n.Mensaje,
			Leida:     n.Leida,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.Producto != nil {
			resp.Producto = n.Producto.Nombre
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *notificacionService) MarcarLeida(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarcarLeida(ctx, id)
}

// alertar raises one alert for p unless an unread one is already pending.
// Reports whether a new alert was created.
func (s *notificacionService) alertar(ctx context.Context, p *model.Producto) (bool, error) {
	existe, err := s.repo.ExisteNoLeida(ctx, p.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if existe {
		return false, nil
	}

	severidad := model.SeveridadAdvertencia
	mensaje := fmt.Sprintf("Stock bajo: %s tiene %d unidades (mínimo %d)", p.Nombre, p.Stock, p.StockMinimo)
	if p.Stock == 0 {
		severidad = model.SeveridadCritico
		mensaje = fmt.Sprintf("Sin stock: %s se agotó por completo", p.Nombre)
	}

	if err := s.repo.Create(ctx, &model.Notificacion{
		ProductoID: p.ID,
		Severidad:  severidad,
		Mensaje:    mensaje,
	}); err != nil {
		return false, err
	}

	if s.dispatcher != nil {
		payload := worker.AlertaStockPayload{
			Producto:     p.Nombre,
			CodigoBarras: p.CodigoBarras,
			Stock:        p.Stock,
			StockMinimo:  p.StockMinimo,
			Severidad:    severidad,
		}
		if err := s.dispatcher.EnqueueAlertaStock(ctx, payload); err != nil {
			log.Warn().Err(err).Str("producto", p.Nombre).Msg("no se pudo encolar alerta de stock")
		}
	}
	return true, nil
}
