package infra

import (
	"fmt"

	"napos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for every aggregate, then applies the idempotent SQL patches GORM cannot
// express (the partial unique index and the ticket sequence).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema. Also used by the integration
// suite against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Proveedor{},
		&model.Producto{},
		&model.Cliente{},
		&model.Usuario{},
		&model.Caja{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Compra{},
		&model.DetalleCompra{},
		&model.HistorialPrecio{},
		&model.Notificacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one caja abierta, enforced at the storage layer. The
		// service pre-checks, but two concurrent opens only lose the race
		// here.
		{"partial unique index on cajas(estado)", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_cajas_abierta') THEN
    CREATE UNIQUE INDEX uni_cajas_abierta ON cajas (estado) WHERE estado = 'abierta';
  END IF;
END $$`},
		// Ticket numbers come from a sequence consumed inside the sale
		// transaction, so they are gapless only per committed sale but
		// always unique and monotonic.
		{"ticket number sequence", `
CREATE SEQUENCE IF NOT EXISTS ventas_numero_ticket_seq START 1`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
