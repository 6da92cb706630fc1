package repository

import (
	"context"

	"napos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Proveedor, error)
	FindByNIT(ctx context.Context, nit string) (*model.Proveedor, error)
	List(ctx context.Context, soloActivos bool) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Proveedor, error)
	UpdateTx(tx *gorm.DB, p *model.Proveedor) error

	DB() *gorm.DB
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) FindByNombre(ctx context.Context, nombre string) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&p).Error
	return &p, err
}

func (r *proveedorRepo) FindByNIT(ctx context.Context, nit string) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Where("nit = ?", nit).First(&p).Error
	return &p, err
}

func (r *proveedorRepo) List(ctx context.Context, soloActivos bool) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	q := r.db.WithContext(ctx)
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&proveedores).Error
	return proveedores, err
}

func (r *proveedorRepo) Update(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *proveedorRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Update("activo", activo).Error
}

func (r *proveedorRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) UpdateTx(tx *gorm.DB, p *model.Proveedor) error {
	return tx.Save(p).Error
}

func (r *proveedorRepo) DB() *gorm.DB { return r.db }
