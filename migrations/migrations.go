// Package migrations embeds the goose SQL migrations so the binary can apply them itself.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed goose_sql/*.sql
var embedded embed.FS

// FS returns the migration files rooted at the migrations directory.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "goose_sql")
	if err != nil {
		// the pattern above guarantees the directory exists
		panic(err)
	}
	return sub
}

// Up applies every pending migration and logs what ran.
func Up(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS())
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		logger.Info().
			Int64("version", r.Source.Version).
			Str("file", r.Source.Path).
			Dur("took", r.Duration).
			Msg("migration applied")
	}
	return nil
}
