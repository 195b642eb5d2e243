// Package database opens the relational store and keeps its schema current.
package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Driver identifies a supported database driver.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DefaultDSN is the SQLite file used when no DSN is configured.
const DefaultDSN = "mercprd.db"

// ParseDSN picks the driver for dsn and returns the connection string that
// driver expects. Accepted forms: postgres://..., postgresql://...,
// sqlite://path, file: URIs and plain file paths.
func ParseDSN(dsn string) (Driver, string) {
	switch {
	case dsn == "":
		return DriverSQLite, DefaultDSN
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		// sqlite:///abs/path.db keeps its leading slash.
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://")
	}

	// key=value DSNs (host=... user=...) are PostgreSQL.
	if strings.HasPrefix(dsn, "host=") || strings.Contains(dsn, " host=") {
		return DriverPostgres, dsn
	}
	return DriverSQLite, dsn
}

// Open connects to the store described by dsn. The returned handle is the
// single store handle of the process; release it with Close.
func Open(dsn string, logger gormlogger.Interface) (*gorm.DB, error) {
	driver, conn := ParseDSN(dsn)

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(conn)
	default:
		dialector = sqlite.Open(conn)
	}

	if logger == nil {
		logger = gormlogger.Discard
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if driver == DriverSQLite {
		// One actor, one connection: also keeps in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
