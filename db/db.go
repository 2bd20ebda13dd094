package db

import (
	"database/sql"
	"fmt"
	"go-economy-bot/config"
	"go-economy-bot/logger"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder syntax and the migration driver.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Connect opens the database named by the configuration and pings it.
func Connect() (*sql.DB, Dialect, error) {
	cfg := config.AppConfig.Database

	dialect := Dialect(cfg.Driver)
	var connStr, safeConnStr string
	switch dialect {
	case DialectSQLite:
		connStr = cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		safeConnStr = cfg.Path
	case DialectPostgres:
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
		safeConnStr = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Name)
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	log := logger.Log.WithField("driver", dialect).WithField("connection", safeConnStr)
	log.Info("Attempting to connect to the database")

	db, err := sql.Open(string(dialect), connStr)
	if err != nil {
		log.WithError(err).Error("Failed to open database connection")
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	if dialect == DialectSQLite {
		// a single writer avoids SQLITE_BUSY on concurrent read-modify-write
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Error("Failed to ping database")
		db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established successfully")
	return db, dialect, nil
}

// Rebind rewrites ? placeholders into the dialect's native form.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
