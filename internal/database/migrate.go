package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"mercprd/internal/models"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS produtos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL,
		preco REAL NOT NULL CHECK (preco >= 0),
		quantidade INTEGER NOT NULL CHECK (quantidade >= 0)
	);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS produtos (
		id BIGSERIAL PRIMARY KEY,
		nome TEXT NOT NULL,
		preco DOUBLE PRECISION NOT NULL CHECK (preco >= 0),
		quantidade INTEGER NOT NULL CHECK (quantidade >= 0)
	);`,
}

// Statements run after the is_admin column is guaranteed to exist.
var indexes = []string{
	// At most one row may carry is_admin = 1.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_usuarios_single_admin ON usuarios (is_admin) WHERE is_admin = 1;`,
	`CREATE INDEX IF NOT EXISTS ix_produtos_nome ON produtos (nome);`,
}

const addAdminColumn = `ALTER TABLE usuarios ADD COLUMN is_admin INTEGER DEFAULT 0;`

// Migrate creates missing tables, adds the is_admin column to stores created
// before it existed and installs the indexes. Running it again is a no-op.
func Migrate(db *gorm.DB) error {
	schema := sqliteSchema
	if db.Dialector.Name() == string(DriverPostgres) {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	hasAdmin, err := hasColumn(db, (models.Account{}).TableName(), "is_admin")
	if err != nil {
		return err
	}
	if !hasAdmin {
		if err := db.Exec(addAdminColumn).Error; err != nil {
			return fmt.Errorf("failed to add is_admin column: %w", err)
		}
	}

	if err := checkSingleAdmin(db); err != nil {
		return err
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// checkSingleAdmin fails when a store written before the single-admin index
// holds more than one administrator; the index cannot be built over it.
func checkSingleAdmin(db *gorm.DB) error {
	var admins []string
	err := db.Model(&models.Account{}).
		Where("is_admin = ?", 1).
		Order("username ASC").
		Pluck("username", &admins).Error
	if err != nil {
		return fmt.Errorf("failed to list administrators: %w", err)
	}
	if len(admins) > 1 {
		return fmt.Errorf("store has %d administrator accounts (%s), at most one is allowed: demote all but one before starting",
			len(admins), strings.Join(admins, ", "))
	}
	return nil
}

func hasColumn(db *gorm.DB, table, column string) (bool, error) {
	if db.Dialector.Name() != string(DriverSQLite) {
		return db.Migrator().HasColumn(table, column), nil
	}

	var names []string
	err := db.Raw("SELECT name FROM pragma_table_info(?)", table).Scan(&names).Error
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	for _, name := range names {
		if name == column {
			return true, nil
		}
	}
	return false, nil
}
