package models

import (
	"database/sql/driver"
	"fmt"
)

// Account is a user of the system, stored in the usuarios table.
type Account struct {
	Username string    `json:"username" gorm:"column:username;primaryKey"`
	Password string    `json:"-" gorm:"column:password;not null"` // bcrypt hash, or plaintext on legacy rows
	IsAdmin  AdminFlag `json:"is_admin" gorm:"column:is_admin;default:0"`
}

// TableName maps Account onto the legacy usuarios table.
func (Account) TableName() string { return "usuarios" }

// Role returns the display label of the account's role.
func (a Account) Role() string { return RoleLabel(bool(a.IsAdmin)) }

// AccountSummary is one row of the administrator's account listing.
type AccountSummary struct {
	Username string
	IsAdmin  bool
}

func (s AccountSummary) Role() string { return RoleLabel(s.IsAdmin) }

// Role labels shown in menus and listings.
const (
	RoleAdmin = "Administrador"
	RoleUser  = "Usuário Comum"
)

// RoleLabel returns RoleAdmin or RoleUser.
func RoleLabel(isAdmin bool) string {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// AdminFlag persists a boolean as the INTEGER 0/1 used by the is_admin column.
type AdminFlag bool

// Value implements driver.Valuer.
func (f AdminFlag) Value() (driver.Value, error) {
	if f {
		return int64(1), nil
	}
	return int64(0), nil
}

// Scan implements sql.Scanner.
func (f *AdminFlag) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case int64:
		*f = v != 0
	case int32:
		*f = v != 0
	case bool:
		*f = AdminFlag(v)
	case []byte:
		*f = len(v) > 0 && string(v) != "0"
	case string:
		*f = v != "" && v != "0"
	default:
		return fmt.Errorf("cannot scan %T into AdminFlag", src)
	}
	return nil
}
