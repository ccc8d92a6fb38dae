package db

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Open connects to the SQLite database at path and brings the schema up to
// date. The DSN pragmas keep WAL mode on and give writers a busy timeout.
func Open(path string, log zerolog.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info().Str("path", path).Msg("opening database")

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database")
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1) // SQLite allows a single writer

	if err := Migrate(sqlDB); err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		return nil, err
	}

	log.Info().Msg("database ready")
	return sqlDB, nil
}

// Migrate applies all pending goose migrations.
func Migrate(sqlDB *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	return nil
}
