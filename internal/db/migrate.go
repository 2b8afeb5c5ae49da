package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/turnbattle/internal/db/migrations"
)

// RunMigrations brings the catalog schema behind pool up to date and
// returns the resulting schema version.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var version int64
	err := withProvider(pool, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("applying catalog migrations: %w", err)
		}
		for _, r := range results {
			slog.Debug("migration applied",
				"version", r.Source.Version,
				"file", r.Source.Path,
				"duration", r.Duration)
		}

		version, err = p.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		slog.Info("catalog schema ready", "version", version, "applied", len(results))
		return nil
	})
	return version, err
}

// withProvider opens a database/sql handle over pool's connection config,
// which goose needs, and hands a provider for the embedded migrations to fn.
func withProvider(pool *pgxpool.Pool, fn func(p *goose.Provider) error) error {
	connStr := stdlib.RegisterConnConfig(pool.Config().ConnConfig)
	defer stdlib.UnregisterConnConfig(connStr)

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	p, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	return fn(p)
}
