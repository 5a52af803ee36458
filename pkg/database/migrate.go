package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the schema if it does not exist yet. It is safe to run
// on every start.
func Migrate(ctx context.Context, db *sql.DB, driver Driver) error {
	var file string
	switch driver {
	case DriverPostgres:
		file = "migrations/postgres.sql"
	case DriverSQLite:
		file = "migrations/sqlite.sql"
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	raw, err := migrations.ReadFile(file)
	if err != nil {
		return fmt.Errorf("database.Migrate read %s: %w", file, err)
	}

	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate: %w", err)
		}
	}
	return nil
}
