package migrations

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// migration is one embedded SQL file. Its version is the numeric prefix of
// the filename, so 003_create_bids.sql is version 3.
type migration struct {
	version  int
	filename string
}

// Run applies every embedded migration newer than the ones recorded in
// schema_migrations, in version order, each in its own transaction.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := appliedFiles(ctx, db)
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	all, err := embedded()
	if err != nil {
		return err
	}

	version := 0
	for _, m := range all {
		if !applied[m.filename] {
			if err := apply(ctx, db, m.filename); err != nil {
				return fmt.Errorf("apply migration %s: %w", m.filename, err)
			}
			slog.Info("migration applied", "version", m.version, "file", m.filename)
		}
		version = m.version
	}

	slog.Debug("auction schema up to date", "version", version)
	return nil
}

// Version returns the highest applied schema version, or 0 on a fresh
// database.
func Version(ctx context.Context, db *sql.DB) (int, error) {
	applied, err := appliedFiles(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("get applied migrations: %w", err)
	}

	version := 0
	for filename := range applied {
		v, err := parseVersion(filename)
		if err != nil {
			return 0, err
		}
		version = max(version, v)
	}
	return version, nil
}

func appliedFiles(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations')",
	).Scan(&exists); err != nil {
		return nil, err
	}
	applied := make(map[string]bool)
	if !exists {
		return applied, nil
	}

	rows, err := db.QueryContext(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}
	return applied, rows.Err()
}

// embedded lists the SQL files in version order. Two files sharing a
// version is an error.
func embedded() ([]migration, error) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		return nil, fmt.Errorf("list migration files: %w", err)
	}

	var all []migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		v, err := parseVersion(entry.Name())
		if err != nil {
			return nil, err
		}
		all = append(all, migration{version: v, filename: entry.Name()})
	}

	slices.SortFunc(all, func(a, b migration) int { return cmp.Compare(a.version, b.version) })
	for i := 1; i < len(all); i++ {
		if all[i].version == all[i-1].version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", all[i-1].filename, all[i].filename, all[i].version)
		}
	}
	return all, nil
}

func parseVersion(filename string) (int, error) {
	prefix, _, ok := strings.Cut(filename, "_")
	if !ok {
		return 0, fmt.Errorf("migration %s: missing version prefix", filename)
	}
	v, err := strconv.Atoi(prefix)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("migration %s: invalid version prefix %q", filename, prefix)
	}
	return v, nil
}

func apply(ctx context.Context, db *sql.DB, filename string) error {
	content, err := fs.ReadFile(FS, filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (filename) VALUES (?)", filename); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}
