package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brainscroller/site/internal/config"
	"github.com/brainscroller/site/internal/logging"
	"github.com/brainscroller/site/internal/migrate"
	"github.com/brainscroller/site/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations for STORE_DRIVER
  fresh       drop the messages table and ledger, then apply every migration`)
	os.Exit(1)
}

func main() {
	cfg, err := config.LoadMigrate()
	if err != nil {
		logging.Setup("info", "json")
		logging.Fatal("config load failed", "error", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "fresh" {
		usage()
	}

	ctx := context.Background()
	store, closeStore := openStore(ctx, cfg.Store)
	defer closeStore()

	dir := findMigrationDir(cfg.Store.Driver)

	var applied int
	if cmd == "fresh" {
		applied, err = migrate.Fresh(ctx, store, dir)
	} else {
		applied, err = migrate.Run(ctx, store, dir)
	}
	if err != nil {
		closeStore()
		logging.Fatal("migration failed", "driver", cfg.Store.Driver, "error", err)
	}

	if applied == 0 {
		slog.Info("all migrations already applied", "driver", cfg.Store.Driver)
	} else {
		slog.Info("migrations completed", "driver", cfg.Store.Driver, "count", applied)
	}
}

func openStore(ctx context.Context, cfg config.StoreConfig) (migrate.Store, func()) {
	switch cfg.Driver {
	case config.StoreSQLite:
		db, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			logging.Fatal("open sqlite failed", "path", cfg.SQLitePath, "error", err)
		}
		return migrate.NewSQLiteStore(db), func() { _ = db.Close() }
	default:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("connect failed", "error", err)
		}
		return migrate.NewPgStore(pool), pool.Close
	}
}

// findMigrationDir looks for migrations/<driver> from the repo root or one level down.
func findMigrationDir(driver string) string {
	dir := filepath.Join("migrations", driver)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = filepath.Join("..", "migrations", driver)
	}
	return dir
}
