// Package sql is the database-backed store. It speaks to PostgreSQL through
// lib/pq and to SQLite through go-sqlite3, and migrates the schema on start.
package sql

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/yatube-dev/yatube/shared/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	queryTimeout = 5 * time.Second
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var embedMigrations embed.FS

type Store struct {
	db     *sqlx.DB
	driver string
	now    func() time.Time
}

// New connects, applies pending migrations and verifies the connection.
func New(driver, dsn string, connCfg ConnectionConfig) (*Store, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
		// one writer at a time, otherwise concurrent requests hit SQLITE_BUSY
		connCfg.MaxOpenConns = 1
		connCfg.MaxIdleConns = 1
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	logger.Log.Info("connecting to db", "driver", driver)
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	connCfg.apply(db)

	if err := migrate(db, driver); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("successfully connected to db", "driver", driver)

	return &Store{
		db:     db,
		driver: driver,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func migrate(db *sqlx.DB, driver string) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations/"+driver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logger.Log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (gooseLogger) Fatalf(format string, v ...any) {
	panic(fmt.Sprintf(format, v...))
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// WithClock replaces the creation timestamp source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Driver() string { return s.driver }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// timestamp is rounded to what both databases keep.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Round(time.Microsecond)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
