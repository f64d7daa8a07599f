// Package migrations embeds the SQL schema and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

// Runner owns a database/sql handle for the lifetime of a migration run.
type Runner struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// NewRunner opens databaseURL through lib/pq and prepares the embedded source.
func NewRunner(databaseURL string, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(files, ".")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Runner{m: m, logger: logger}, nil
}

// Up applies all pending migrations.
func (r *Runner) Up() error {
	err := r.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logVersion("Migrations applied successfully")
	return nil
}

// Down rolls back every migration.
func (r *Runner) Down() error {
	err := r.m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("No migrations to rollback")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}
	r.logger.Info("Migrations rolled back successfully")
	return nil
}

// Steps migrates n steps up (n > 0) or down (n < 0).
func (r *Runner) Steps(n int) error {
	err := r.m.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to migrate %d steps: %w", n, err)
	}
	r.logVersion("Migrated steps")
	return nil
}

// Version returns the applied version; ok is false on an empty database.
func (r *Runner) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return version, dirty, true, nil
}

// Force marks version as applied and clean without running it.
func (r *Runner) Force(version int) error {
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and the database handle.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (r *Runner) logVersion(msg string) {
	version, dirty, ok, err := r.Version()
	if err != nil || !ok {
		r.logger.Info(msg)
		return
	}
	r.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
