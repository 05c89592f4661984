package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	masterdatadomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/masterdata/domain"
	merchantdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/merchant/domain"
	productdomain "github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
	"gorm.io/gorm"
)

// Models lists every table in dependency order. Used for dialects without SQL migrations.
func Models() []any {
	return []any{
		&merchantdomain.Merchant{},
		&masterdatadomain.Category{},
		&masterdatadomain.Colour{},
		&masterdatadomain.Size{},
		&productdomain.Product{},
		&productdomain.Variant{},
	}
}

// Run applies the embedded SQL migrations on postgres and falls back to AutoMigrate elsewhere.
func Run(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	if conn.Dialector.Name() != "postgres" {
		if err := conn.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// migrator.Close would close the shared *sql.DB.

	return nil
}
