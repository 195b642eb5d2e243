package repositories

import "mercprd/internal/models"

// AccountRepository defines the interface for account data access.
// Usernames passed in are expected to be lower-cased already.
//
// Create returns apperrors.ErrDuplicateUsername or
// apperrors.ErrAdminAlreadyExists when a unique rule is broken; lookups and
// mutations of unknown usernames return apperrors.ErrAccountNotFound.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByUsername(username string) (*models.Account, error)
	HasAdmin() (bool, error)
	List() ([]models.Account, error) // ordered by username
	UpdatePassword(username, password string) error
	Delete(username string) error
}
