package database

import (
	"embed"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var embedMigrations embed.FS

// Migrate applies the embedded migrations for the pool's dialect.
func Migrate(db *DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(db.Dialect.GooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db.DB, path.Join("migrations", db.Dialect.Name)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
