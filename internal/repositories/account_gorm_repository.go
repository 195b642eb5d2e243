package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mercprd/internal/apperrors"
	"mercprd/internal/models"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Create inserts a new account. The unique username constraint and the
// single-admin index decide which error a conflicting insert gets.
func (r *GORMAccountRepository) Create(account *models.Account) error {
	err := r.db.Create(account).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewStoreError("create account", err)
	}

	// Both constraints surface as a duplicate key; tell them apart.
	if _, lookupErr := r.GetByUsername(account.Username); lookupErr == nil {
		return fmt.Errorf("username '%s': %w", account.Username, apperrors.ErrDuplicateUsername)
	}
	if account.IsAdmin {
		return apperrors.ErrAdminAlreadyExists
	}
	return fmt.Errorf("username '%s': %w", account.Username, apperrors.ErrDuplicateUsername)
}

// GetByUsername retrieves an account by its lower-cased username.
func (r *GORMAccountRepository) GetByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("username '%s': %w", username, apperrors.ErrAccountNotFound)
		}
		return nil, apperrors.NewStoreError("get account", err)
	}
	return &account, nil
}

// HasAdmin reports whether an administrator exists. The lookup is served by
// the single-admin partial index.
func (r *GORMAccountRepository) HasAdmin() (bool, error) {
	var usernames []string
	err := r.db.Model(&models.Account{}).
		Where("is_admin = ?", 1).
		Limit(1).
		Pluck("username", &usernames).Error
	if err != nil {
		return false, apperrors.NewStoreError("look up administrator", err)
	}
	return len(usernames) > 0, nil
}

// List returns every account ordered by username.
func (r *GORMAccountRepository) List() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("username ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.NewStoreError("list accounts", err)
	}
	return accounts, nil
}

// UpdatePassword overwrites the stored password of username.
func (r *GORMAccountRepository) UpdatePassword(username, password string) error {
	res := r.db.Model(&models.Account{}).
		Where("username = ?", username).
		Update("password", password)
	if res.Error != nil {
		return apperrors.NewStoreError("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("username '%s': %w", username, apperrors.ErrAccountNotFound)
	}
	return nil
}

// Delete removes the account row of username.
func (r *GORMAccountRepository) Delete(username string) error {
	res := r.db.Where("username = ?", username).Delete(&models.Account{})
	if res.Error != nil {
		return apperrors.NewStoreError("delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("username '%s': %w", username, apperrors.ErrAccountNotFound)
	}
	return nil
}
