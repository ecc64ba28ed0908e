package gormdb

import (
	"fmt"
	"log/slog"

	"repair/internal/adapters/out/gormdb/actorrepo"
	"repair/internal/adapters/out/gormdb/orderrepo"
	"repair/internal/adapters/out/gormdb/pickuppointrepo"
	"repair/internal/adapters/out/gormdb/reviewrepo"
	"repair/internal/adapters/out/gormdb/serviceprofilerepo"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects and addresses the database.
type Options struct {
	Driver string
	// DSN is a libpq connection string for postgres or a file path (or
	// "file::memory:") for sqlite.
	DSN string
	Log *slog.Logger
}

// PostgresDSN builds a libpq keyword/value connection string.
func PostgresDSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects with error translation enabled, so unique violations surface
// as gorm.ErrDuplicatedKey on both drivers.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(opts.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	if opts.Driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids "database is locked".
		sqlDB, sqlErr := db.DB()
		if sqlErr != nil {
			return nil, sqlErr
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if opts.Log != nil {
		opts.Log.Info("database connected", "driver", opts.Driver)
	}
	return db, nil
}

// Migrate creates or updates every table the repositories and queries use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&actorrepo.ActorDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.PhotoDTO{},
		&pickuppointrepo.PickupPointDTO{},
		&serviceprofilerepo.ProfileDTO{},
		&serviceprofilerepo.OfferingDTO{},
		&reviewrepo.ReviewDTO{},
	)
}
