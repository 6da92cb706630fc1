package repository

import (
	"context"

	"napos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	ListNoLeidas(ctx context.Context) ([]model.Notificacion, error)
	MarcarLeida(ctx context.Context, id uuid.UUID) error
	// ExisteNoLeida avoids duplicate alerts for a product that already has
	// an unread one pending.
	ExisteNoLeida(ctx context.Context, productoID uuid.UUID) (bool, error)
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) ListNoLeidas(ctx context.Context) ([]model.Notificacion, error) {
	var notificaciones []model.Notificacion
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Where("leida = false").
		Order("created_at DESC").
		Find(&notificaciones).Error
	return notificaciones, err
}

func (r *notificacionRepo) MarcarLeida(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("id = ?", id).Update("leida", true).Error
}

func (r *notificacionRepo) ExisteNoLeida(ctx context.Context, productoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("producto_id = ? AND leida = false", productoID).
		Count(&count).Error
	return count > 0, err
}
