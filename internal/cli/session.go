package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mercprd/internal/models"
)

// Session is an authenticated stay in the admin or user menu. It lives
// only in memory and ends on logout.
type Session struct {
	ID      uuid.UUID
	Account *models.Account
	Started time.Time
}

func newSession(account *models.Account, now time.Time) *Session {
	return &Session{
		ID:      uuid.New(),
		Account: account,
		Started: now,
	}
}

// IsAdmin reports whether the session belongs to the administrator.
func (s *Session) IsAdmin() bool {
	return bool(s.Account.IsAdmin)
}

// Fields returns the log fields that correlate entries of one session.
func (s *Session) Fields() logrus.Fields {
	return logrus.Fields{
		"session":  s.ID.String(),
		"username": s.Account.Username,
	}
}
