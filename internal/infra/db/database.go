// Package db opens the relational store behind the repositories.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lifescope/backend/config"
)

const connectTimeout = 5 * time.Second

// Database owns a gorm handle and its connection pool.
type Database struct {
	db     *gorm.DB
	driver string
}

type driver struct {
	dialector func(dsn string) gorm.Dialector
	// prepare runs once on the fresh handle and may tighten the pool config.
	prepare func(db *gorm.DB, cfg *config.DatabaseConfig) error
}

var drivers = map[string]driver{
	"postgres": {dialector: postgres.Open},
	"sqlite": {
		dialector: func(dsn string) gorm.Dialector {
			if dsn == "" {
				dsn = "file::memory:?cache=shared"
			}
			return sqlite.Open(dsn)
		},
		// SQLite serialises writers, so one connection avoids "database is locked".
		prepare: func(db *gorm.DB, cfg *config.DatabaseConfig) error {
			cfg.MaxOpenConns, cfg.MaxIdleConns = 1, 1
			return db.Exec("PRAGMA foreign_keys = ON").Error
		},
	},
}

// Open connects to the store named by cfg.Driver; an empty driver means
// postgres.
func Open(cfg *config.DatabaseConfig) (*Database, error) {
	name := cfg.Driver
	if name == "" {
		name = "postgres"
	}
	d, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(d.dialector(cfg.URL), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", name, err)
	}

	pool := *cfg
	if d.prepare != nil {
		if err := d.prepare(gdb, &pool); err != nil {
			return nil, fmt.Errorf("failed to prepare %s database: %w", name, err)
		}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := Ping(ctx, gdb); err != nil {
		return nil, err
	}

	slog.Info("database connected", "driver", name, "max_open_conns", pool.MaxOpenConns)
	return &Database{db: gdb, driver: name}, nil
}

// Ping checks that the pool behind gdb can reach the server.
func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func (d *Database) DB() *gorm.DB {
	return d.db
}

// Close releases the pool. The handle must not be used afterwards.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close %s database: %w", d.driver, err)
	}
	slog.Debug("database closed", "driver", d.driver)
	return nil
}

// AutoMigrate creates or alters the tables of models.
func (d *Database) AutoMigrate(models ...any) error {
	if err := d.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
