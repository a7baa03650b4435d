// Package db opens the shop database and brings its schema up to date.
package db

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/diewo77/go-videoshop/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

var passwordRe = regexp.MustCompile(`(password=)(\S+)`)

// GormConfig returns the gorm settings shared by the server and tests.
func GormConfig(debug bool) *gorm.Config {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	return &gorm.Config{Logger: logger.Default.LogMode(level)}
}

// Connect opens PostgreSQL, retrying while the server starts up.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.DSN()
	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn), GormConfig(cfg.Debug))
		if err == nil {
			break
		}
		log.Printf("db connect attempt %d/%d failed: %v", i+1, connectAttempts, err)
		time.Sleep(connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if err := Ping(db); err != nil {
		return nil, err
	}
	log.Printf("[DB] using %s", MaskDSN(dsn))
	return db, nil
}

// Ping checks the connection is usable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("db ping failed: %w", err)
	}
	return nil
}

// MaskDSN hides the password of a key=value DSN.
func MaskDSN(dsn string) string {
	return passwordRe.ReplaceAllString(dsn, `${1}***`)
}
