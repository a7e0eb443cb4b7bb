// Package postgres wires up the connection pool and schema migrations.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/taskflow-server/internal/config"
	"github.com/jrsteele09/taskflow-server/migrations"
)

// Connect opens a pgx pool against the configured database and verifies
// connectivity before returning it.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, errors.Wrap(err, "[postgres.Connect] pgxpool.New")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "[postgres.Connect] ping")
	}
	return pool, nil
}

// Migrate applies all pending embedded migrations.
func Migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("closing migration connection")
		}
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "[postgres.Migrate] SetDialect")
	}
	if err := goose.Up(db, "."); err != nil {
		return errors.Wrap(err, "[postgres.Migrate] Up")
	}
	return nil
}
