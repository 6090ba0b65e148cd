// Package migrate applies the numbered *.up.sql files under a migrations
// directory and records each one in a schema_migrations ledger.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DropAllFile is the script that Fresh runs before re-applying everything.
const DropAllFile = "000_drop_all.sql"

// Store is a database that can hold the migration ledger.
type Store interface {
	EnsureLedger(ctx context.Context) error
	Applied(ctx context.Context, name string) (bool, error)
	// Apply runs script and records name in one transaction.
	Apply(ctx context.Context, name, script string) error
	Exec(ctx context.Context, script string) error
}

// UpFiles returns the .up.sql file names in dir, sorted.
func UpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run applies every migration in dir that the ledger does not list yet and
// returns how many were applied.
func Run(ctx context.Context, s Store, dir string) (int, error) {
	if err := s.EnsureLedger(ctx); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := UpFiles(dir)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")

		done, err := s.Applied(ctx, name)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		script, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := s.Apply(ctx, name, string(script)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}
		applied++
		slog.Info("migration completed", "migration", name)
	}
	return applied, nil
}

// Fresh drops everything with DropAllFile and then runs all migrations.
func Fresh(ctx context.Context, s Store, dir string) (int, error) {
	script, err := os.ReadFile(filepath.Join(dir, DropAllFile))
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", DropAllFile, err)
	}
	slog.Info("dropping all tables")
	if err := s.Exec(ctx, string(script)); err != nil {
		return 0, fmt.Errorf("drop all: %w", err)
	}
	return Run(ctx, s, dir)
}
