package db

import (
	"errors"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the sqlite3 database driver and the file
	// source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tu-inventario/internal/config"
	"tu-inventario/internal/models"
)

// ConnectAndMigrate opens the embedded database and brings the schema up
// to date. With MIGRATIONS=1 the versioned SQL files under ./migrations
// run via golang-migrate; otherwise AutoMigrate keeps the dev loop short.
func ConnectAndMigrate(cfg config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gdb, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if pingErr := gdb.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Printf("[DB] Using database: %s", cfg.DatabasePath)

	if cfg.SQLMigrations {
		if err := runSQLMigrations(cfg.DatabasePath); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(gdb); err != nil {
			return nil, err
		}
	}

	// sanity check: ensure required collections exist
	for _, table := range []string{"products", "inventory_batches", "consumption_records", "notifications"} {
		if !gdb.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	return gdb, nil
}

// AutoMigrate creates or adjusts the four collection tables.
func AutoMigrate(gdb *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Product{}, &models.InventoryBatch{}, &models.ConsumptionRecord{}, &models.Notification{},
	}
	for _, m := range modelsToMigrate {
		if migErr := gdb.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source. Migrations are additive; earlier revisions
// are never cleared on upgrade.
func runSQLMigrations(path string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+path)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
