package db

import (
	"database/sql"
	"errors"
	"fmt"
	"go-economy-bot/db/migrations"
	"go-economy-bot/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies the embedded migrations to db.
// The migrate instance is not closed because that would close db as well.
func Migrate(db *sql.DB, dialect Dialect) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("cannot open embedded migrations: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case DialectSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case DialectPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("cannot create migration driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	version, _, _ := mig.Version()
	logger.Log.WithField("version", version).Info("Database schema is up to date")
	return nil
}
