// Package cli is the interactive text menu of MercPrd. It owns every prompt
// and rendering and routes authenticated sessions by role.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"mercprd/internal/models"
)

// AccountManager is the account behaviour the menus need.
type AccountManager interface {
	BootstrapAdmin(username, password string) (*models.Account, error)
	Register(username, password string) (*models.Account, error)
	Authenticate(username, password string) (*models.Account, error)
	ChangeOwnPassword(username, currentPassword, newPassword string) error
	AdminListAccounts() ([]models.AccountSummary, error)
	AdminSetPassword(username, newPassword string) error
	AdminDeleteAccount(username string) error
	HasAdmin() (bool, error)
}

// ProductManager is the product behaviour the menus need.
type ProductManager interface {
	Create(name, price, quantity string) (*models.Product, error)
	List() ([]models.Product, error)
	Get(id int64) (*models.Product, error)
	Edit(id int64, changes models.ProductChanges) (*models.Product, error)
	Delete(id int64) error
}

// PasswordReader prints prompt and reads a password.
type PasswordReader func(prompt string) (string, error)

// Options configures an App. In and Out default to os.Stdin and os.Stdout.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Accounts AccountManager
	Products ProductManager
	Log      logrus.FieldLogger

	// ReadPassword overrides how passwords are read. When nil, passwords are
	// read without echo if In is a terminal and as plain lines otherwise.
	ReadPassword PasswordReader

	// Now overrides the clock used for the greeting.
	Now func() time.Time
}

// App runs the menu loop against the account and product services.
type App struct {
	in       *bufio.Reader
	out      io.Writer
	accounts AccountManager
	products ProductManager
	log      logrus.FieldLogger
	readPass PasswordReader
	now      func() time.Time
}

// New creates an App from opts.
func New(opts Options) *App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	a := &App{
		in:       bufio.NewReader(opts.In),
		out:      opts.Out,
		accounts: opts.Accounts,
		products: opts.Products,
		log:      opts.Log,
		readPass: opts.ReadPassword,
		now:      opts.Now,
	}
	if a.readPass == nil {
		a.readPass = a.defaultPasswordReader(opts.In)
	}
	return a
}

// Run shows the greeting and the main menu until the user exits or the
// input ends. Closed input is a normal exit.
func (a *App) Run() error {
	a.printf("\n%s Bem-vindo(a) ao Sistema MercPrd.\n", Greeting(a.now()))

	err := a.mainMenu()
	if errors.Is(err, io.EOF) {
		a.log.Debug("input closed, leaving")
		return nil
	}
	return err
}

// Greeting returns the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return "Bom dia!"
	case h >= 12 && h < 18:
		return "Boa tarde!"
	default:
		return "Boa noite!"
	}
}

func (a *App) defaultPasswordReader(in io.Reader) PasswordReader {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return a.prompt
	}
	return func(prompt string) (string, error) {
		a.printf("%s", prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		a.printf("\n")
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
}
