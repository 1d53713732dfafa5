package postgres

import (
	"context"
	"errors"
	"fmt"
	"movieapi/proj/internal/storage"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresDB struct {
	Conn *pgxpool.Pool
}

const ErrConflictCode = "23505"

func New(ctx context.Context, storagePath string, maxConns int, maxConnIdleTime time.Duration) (*PostgresDB, error) {
	cfg, err := pgxpool.ParseConfig(storagePath)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	if maxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = maxConnIdleTime
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresDB{Conn: pool}, nil
}

// Migrate applies the embedded goose migrations through a database/sql view of the pool.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	sqlDB := stdlib.OpenDBFromPool(db.Conn)
	defer sqlDB.Close()
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("postgres: applying migrations: %w", err)
	}
	return nil
}

func (db *PostgresDB) Close() {
	db.Conn.Close()
}

// AsStorageErr translates a unique violation into *storage.ConflictError naming the offending column.
func AsStorageErr(err error, table string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == ErrConflictCode {
		return &storage.ConflictError{Field: conflictField(pgErr.ConstraintName, table)}
	}
	return err
}

// conflictField extracts the column from postgres' default "<table>_<column>_key" constraint name.
func conflictField(constraint, table string) string {
	field := strings.TrimPrefix(constraint, table+"_")
	field = strings.TrimSuffix(field, "_key")
	if field == "" {
		return constraint
	}
	return field
}
