package repositories

import (
	"fmt"
	"sort"
	"sync"

	"mercprd/internal/apperrors"
	"mercprd/internal/models"
)

// MemoryAccountRepository is an in-memory implementation of AccountRepository
// that enforces the same unique rules as the SQL schema.
type MemoryAccountRepository struct {
	accounts map[string]models.Account
	mu       sync.RWMutex
}

// NewMemoryAccountRepository creates a new instance of MemoryAccountRepository.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[string]models.Account),
	}
}

// Create adds a new account.
func (r *MemoryAccountRepository) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Username]; ok {
		return fmt.Errorf("username '%s': %w", account.Username, apperrors.ErrDuplicateUsername)
	}
	if bool(account.IsAdmin) && r.hasAdminLocked() {
		return apperrors.ErrAdminAlreadyExists
	}
	r.accounts[account.Username] = *account
	return nil
}

// GetByUsername returns the account stored under username.
func (r *MemoryAccountRepository) GetByUsername(username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[username]
	if !ok {
		return nil, fmt.Errorf("username '%s': %w", username, apperrors.ErrAccountNotFound)
	}
	return &account, nil
}

// HasAdmin reports whether an administrator exists.
func (r *MemoryAccountRepository) HasAdmin() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.hasAdminLocked(), nil
}

func (r *MemoryAccountRepository) hasAdminLocked() bool {
	for _, a := range r.accounts {
		if a.IsAdmin {
			return true
		}
	}
	return false
}

// List returns all accounts ordered by username.
func (r *MemoryAccountRepository) List() ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountList := make([]models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		accountList = append(accountList, a)
	}
	sort.Slice(accountList, func(i, j int) bool {
		return accountList[i].Username < accountList[j].Username
	})
	return accountList, nil
}

// UpdatePassword overwrites the password of username.
func (r *MemoryAccountRepository) UpdatePassword(username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[username]
	if !ok {
		return fmt.Errorf("username '%s': %w", username, apperrors.ErrAccountNotFound)
	}
	account.Password = password
	r.accounts[username] = account
	return nil
}

// Delete removes the account of username.
func (r *MemoryAccountRepository) Delete(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[username]; !ok {
		return fmt.Errorf("username '%s': %w", username, apperrors.ErrAccountNotFound)
	}
	delete(r.accounts, username)
	return nil
}
