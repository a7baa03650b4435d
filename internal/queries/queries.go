// Package queries holds the read models that join several tables, written as
// plain SQL over sqlx.
package queries

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// FromGorm shares the connection pool of a gorm handle with sqlx.
func FromGorm(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	return sqlx.NewDb(sqlDB, driverName(db.Dialector.Name())), nil
}

// driverName maps a gorm dialect to the name sqlx uses for bind variables.
func driverName(dialect string) string {
	switch dialect {
	case "sqlite":
		return "sqlite3"
	default:
		return dialect
	}
}

// baseRepository rebinds "?" placeholders for the target driver.
type baseRepository struct {
	db *sqlx.DB
}

func (r baseRepository) q(query string) string { return r.db.Rebind(query) }
