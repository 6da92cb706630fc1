package repository

import (
	"context"

	"napos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CajaRepository is the data access contract for cash-drawer sessions.
// FindAbierta returns gorm.ErrRecordNotFound when no caja is open —
// callers translate that into the domain error.
type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	FindAbierta(ctx context.Context) (*model.Caja, error)
	Update(ctx context.Context, c *model.Caja) error
	List(ctx context.Context) ([]model.Caja, error)

	// FindByIDTx row-locks the caja so a concurrent Cerrar serializes
	// against the sale that is being registered.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error)

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("estado = ?", model.CajaAbierta).First(&c).Error
	return &c, err
}

func (r *cajaRepo) Update(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) List(ctx context.Context) ([]model.Caja, error) {
	var cajas []model.Caja
	err := r.db.WithContext(ctx).Order("fecha_apertura DESC").Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) DB() *gorm.DB { return r.db }
