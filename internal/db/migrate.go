package db

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/diewo77/go-videoshop/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// registers the postgres:// database driver
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Tables that must exist once the schema is in place.
var coreTables = []string{"users", "client", "produit", "vendeur", "vente_produit", "acheter"}

// Migrate applies the versioned SQL migrations to databaseURL when useSQL is
// set, and falls back to gorm AutoMigrate otherwise.
func Migrate(db *gorm.DB, useSQL bool, databaseURL string) error {
	if useSQL {
		log.Println("running sql migrations")
		if err := RunSQLMigrations(databaseURL); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return err
		}
	}
	for _, table := range coreTables {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// AutoMigrate creates or alters the tables from the models.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// RunSQLMigrations executes the embedded migrations with golang-migrate.
func RunSQLMigrations(databaseURL string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// MigrationNames lists the embedded migration files, for diagnostics.
func MigrationNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
