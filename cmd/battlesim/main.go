package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udisondev/turnbattle/internal/config"
	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/db"
)

const ConfigPath = "config/battle.yaml"

type options struct {
	configPath string
	player     string
	encounter  string
	strategy   string
	battles    int
	seed       uint64
	importPath string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.ResolvePath(ConfigPath), "battle config file")
	flag.StringVar(&opts.player, "player", "hero", "player character id")
	flag.StringVar(&opts.encounter, "encounter", "", "encounter id (default: first in catalog)")
	flag.StringVar(&opts.strategy, "strategy", "greedy", "player strategy: attack, greedy, run")
	flag.IntVar(&opts.battles, "n", 1, "number of battles; more than 1 prints a summary only")
	flag.Uint64Var(&opts.seed, "seed", 0, "roller seed (overrides config; 0 keeps config)")
	flag.StringVar(&opts.importPath, "import", "", "import a YAML catalog into PostgreSQL and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.LoadBattle(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	slog.Info("battlesim starting",
		"config", opts.configPath,
		"catalog_source", cfg.CatalogSource,
		"seed", cfg.Seed)

	if opts.importPath != "" {
		return importCatalog(ctx, cfg, opts.importPath)
	}

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	sim, err := newSimulation(cfg, catalog, opts)
	if err != nil {
		return err
	}

	if opts.battles <= 1 {
		return sim.single(ctx, out)
	}
	return sim.batch(ctx, opts.battles, out)
}

func loadCatalog(ctx context.Context, cfg config.Battle) (*data.Catalog, error) {
	if cfg.CatalogSource != config.CatalogPostgres {
		c, err := data.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		return c, nil
	}

	database, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	c, err := db.NewCatalogRepository(database.Pool()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from database: %w", err)
	}
	return c, nil
}

func importCatalog(ctx context.Context, cfg config.Battle, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}
	doc, err := data.Decode(raw)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}

	database, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.NewCatalogRepository(database.Pool()).Import(ctx, doc); err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}
	slog.Info("catalog imported",
		"path", path,
		"skills", len(doc.Skills),
		"characters", len(doc.Characters),
		"encounters", len(doc.Encounters))
	return nil
}

func connect(ctx context.Context, cfg config.Battle) (*db.DB, error) {
	dsn := cfg.Database.DSN()

	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	slog.Info("database connected")

	if _, err := db.RunMigrations(ctx, database.Pool()); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
