package mock

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/infra/db"
)

var (
	dbOnce sync.Once
	shared *Db
)

// Db is an in-memory SQLite store opened through the production connection
// path, so foreign keys are enforced as they are in the server.
type Db struct {
	DbConn *gorm.DB
	// tables in migration order; parents before children.
	tables []string
	models map[string]any
}

// NewDb opens the shared test database and migrates models, which must be
// given parents first.
func NewDb(models ...any) *Db {
	dbOnce.Do(func() {
		shared = open(models)
	})
	return shared
}

func open(models []any) *Db {
	database, err := db.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		URL:    "file:lifescope_test?mode=memory&cache=shared",
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}

	d := &Db{
		DbConn: database.DB(),
		models: make(map[string]any, len(models)),
	}
	for _, m := range models {
		stmt := &gorm.Statement{DB: d.DbConn}
		if err := stmt.Parse(m); err != nil {
			panic(fmt.Sprintf("failed to parse model %T: %v", m, err))
		}
		d.tables = append(d.tables, stmt.Schema.Table)
		d.models[stmt.Schema.Table] = m
	}

	if err := d.DbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return d
}

// ClearDB empties every table, children first.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		table := d.tables[i]
		if err := d.DbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		err := d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
