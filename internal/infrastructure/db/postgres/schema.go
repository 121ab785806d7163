package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	zlog "github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const dropSchemaSQL = `
DROP TABLE IF EXISTS history;
DROP TABLE IF EXISTS categories;
DROP TABLE IF EXISTS users;
DROP TABLE IF EXISTS items;
`

// Migrate applies the embedded migrations in file name order. Every
// migration is written to be re-runnable.
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		zlog.Info().Str("migration", name).Msg("migration applied")
	}
	return nil
}

// Reset drops every table and re-applies the migrations.
func Reset(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, dropSchemaSQL); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return Migrate(ctx, db)
}
