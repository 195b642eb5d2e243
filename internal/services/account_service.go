package services

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"mercprd/internal/apperrors"
	"mercprd/internal/models"
	"mercprd/internal/repositories"
	"mercprd/internal/validation"
)

// AccountService handles registration, authentication and the
// administrator's account management.
type AccountService struct {
	repo   repositories.AccountRepository
	hasher PasswordHasher
	log    logrus.FieldLogger
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo repositories.AccountRepository, hasher PasswordHasher, log logrus.FieldLogger) *AccountService {
	if log == nil {
		log = discardLogger()
	}
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		log:    log,
	}
}

// BootstrapAdmin creates the administrator account. It fails while any
// administrator exists; it does not limit how often it is called.
func (s *AccountService) BootstrapAdmin(username, password string) (*models.Account, error) {
	name, err := validation.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	hasAdmin, err := s.repo.HasAdmin()
	if err != nil {
		return nil, err
	}
	if hasAdmin {
		return nil, apperrors.ErrAdminAlreadyExists
	}
	if err := s.ensureUsernameFree(name); err != nil {
		return nil, err
	}
	if !validation.IsStrongPassword(password) {
		return nil, apperrors.ErrWeakPassword
	}

	account, err := s.create(name, password, true)
	if err != nil {
		return nil, err
	}
	s.log.WithField("username", name).Info("administrator account created")
	return account, nil
}

// Register creates a regular (non-admin) account.
func (s *AccountService) Register(username, password string) (*models.Account, error) {
	name, err := validation.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if !validation.IsStrongPassword(password) {
		return nil, apperrors.ErrWeakPassword
	}
	if err := s.ensureUsernameFree(name); err != nil {
		return nil, err
	}

	account, err := s.create(name, password, false)
	if err != nil {
		return nil, err
	}
	s.log.WithField("username", name).Info("account registered")
	return account, nil
}

// Authenticate returns the account matching username (any case) and
// password (exact). Legacy plaintext credentials are re-hashed on success.
func (s *AccountService) Authenticate(username, password string) (*models.Account, error) {
	name := strings.ToLower(username)

	account, err := s.repo.GetByUsername(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			s.log.WithField("username", name).Warn("login failed: unknown username")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(account.Password, password) {
		s.log.WithField("username", name).Warn("login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(account.Password) {
		s.upgradeCredential(account, password)
	}
	s.log.WithFields(logrus.Fields{"username": name, "admin": bool(account.IsAdmin)}).Info("login succeeded")
	return account, nil
}

// ChangeOwnPassword replaces the password of an account whose current
// credentials are given. The new password may equal the old one.
func (s *AccountService) ChangeOwnPassword(username, currentPassword, newPassword string) error {
	account, err := s.Authenticate(username, currentPassword)
	if err != nil {
		return err
	}
	if !validation.IsStrongPassword(newPassword) {
		return apperrors.ErrWeakPassword
	}
	if err := s.storePassword(account.Username, newPassword); err != nil {
		return err
	}
	s.log.WithField("username", account.Username).Info("password changed by owner")
	return nil
}

// AdminListAccounts returns every account ordered by username.
func (s *AccountService) AdminListAccounts() ([]models.AccountSummary, error) {
	accounts, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	summaries := make([]models.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		summaries = append(summaries, models.AccountSummary{Username: a.Username, IsAdmin: bool(a.IsAdmin)})
	}
	return summaries, nil
}

// AdminSetPassword overwrites the password of any account without checking
// its current credential.
func (s *AccountService) AdminSetPassword(username, newPassword string) error {
	name := strings.ToLower(username)
	if _, err := s.repo.GetByUsername(name); err != nil {
		return err
	}
	if !validation.IsStrongPassword(newPassword) {
		return apperrors.ErrWeakPassword
	}
	if err := s.storePassword(name, newPassword); err != nil {
		return err
	}
	s.log.WithField("username", name).Info("password reset by administrator")
	return nil
}

// AdminDeleteAccount removes an account. Confirmation is the caller's job.
func (s *AccountService) AdminDeleteAccount(username string) error {
	name := strings.ToLower(username)
	if err := s.repo.Delete(name); err != nil {
		return err
	}
	s.log.WithField("username", name).Info("account deleted by administrator")
	return nil
}

// HasAdmin reports whether the administrator account has been created.
func (s *AccountService) HasAdmin() (bool, error) {
	return s.repo.HasAdmin()
}

func (s *AccountService) ensureUsernameFree(name string) error {
	_, err := s.repo.GetByUsername(name)
	switch {
	case err == nil:
		return apperrors.ErrDuplicateUsername
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return nil
	default:
		return err
	}
}

func (s *AccountService) create(name, password string, isAdmin bool) (*models.Account, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	account := &models.Account{
		Username: name,
		Password: hashed,
		IsAdmin:  models.AdminFlag(isAdmin),
	}
	if err := s.repo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) storePassword(name, password string) error {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(name, hashed)
}

// upgradeCredential replaces a legacy or outdated credential. A failure is
// logged and does not fail the login.
func (s *AccountService) upgradeCredential(account *models.Account, password string) {
	hashed, err := s.hasher.Hash(password)
	if err == nil {
		err = s.repo.UpdatePassword(account.Username, hashed)
	}
	if err != nil {
		s.log.WithError(err).WithField("username", account.Username).Warn("could not upgrade stored credential")
		return
	}
	account.Password = hashed
	s.log.WithField("username", account.Username).Info("stored credential upgraded")
}
