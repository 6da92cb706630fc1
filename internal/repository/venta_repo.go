package repository

import (
	"context"

	"napos/internal/dto"
	"napos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenCaja aggregates the completada ventas bounded by one caja,
// used for the closing summary.
type ResumenCaja struct {
	CantidadVentas int64
	TotalVentas    decimal.Decimal
	TotalEfectivo  decimal.Decimal
}

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// MarcarAnuladaTx flips completada → anulada conditionally and
	// reports the affected rows; zero means another cancellation (or
	// none-completada state) got there first.
	MarcarAnuladaTx(tx *gorm.DB, id uuid.UUID) (int64, error)
	NextTicketNumber(tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	ResumenPorCaja(ctx context.Context, cajaID uuid.UUID) (*ResumenCaja, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Cliente").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) MarcarAnuladaTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.Venta{}).
		Where("id = ? AND estado = ?", id, model.VentaCompletada).
		Update("estado", model.VentaAnulada)
	return res.RowsAffected, res.Error
}

// NextTicketNumber uses a PostgreSQL sequence so concurrent sales get
// gapless-enough, strictly increasing ticket numbers.
func (r *ventaRepo) NextTicketNumber(tx *gorm.DB) (int, error) {
	var num int
	err := tx.Raw("SELECT nextval('ventas_numero_ticket_seq')").Scan(&num).Error
	return num, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha) = ?", filter.Fecha)
	} else {
		q = q.Where("DATE(fecha) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Detalles.Producto").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) ResumenPorCaja(ctx context.Context, cajaID uuid.UUID) (*ResumenCaja, error) {
	var row struct {
		Cantidad int64
		Total    decimal.Decimal
		Efectivo decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select(`COUNT(*) AS cantidad,
			COALESCE(SUM(total), 0) AS total,
			COALESCE(SUM(total) FILTER (WHERE metodo_pago = ?), 0) AS efectivo`, model.MetodoEfectivo).
		Where("caja_id = ? AND estado = ?", cajaID, model.VentaCompletada).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ResumenCaja{
		CantidadVentas: row.Cantidad,
		TotalVentas:    row.Total,
		TotalEfectivo:  row.Efectivo,
	}, nil
}
