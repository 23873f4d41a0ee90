package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies all pending migrations from the given source
// directory (e.g. "file://./migrations"). Returns nil when the schema is
// already current.
func RunMigrations(dsn string, migrationsDir string) error {
	return runMigrations(dsn, migrationsDir, "up", (*migrate.Migrate).Up)
}

// RunMigrationsDown rolls back all applied migrations. Intended for tests and
// local development only.
func RunMigrationsDown(dsn string, migrationsDir string) error {
	return runMigrations(dsn, migrationsDir, "down", (*migrate.Migrate).Down)
}

func runMigrations(dsn, migrationsDir, direction string, apply func(*migrate.Migrate) error) error {
	m, err := migrate.New(migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := apply(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations %s: %w", direction, err)
	}
	return nil
}
