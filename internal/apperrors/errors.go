// Package apperrors defines the error kinds returned by the account and
// product services. Callers match them with errors.Is / errors.As.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateUsername is returned when the lower-cased username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrWeakPassword is returned when a password is shorter than 8 characters
	// or lacks a letter or a digit.
	ErrWeakPassword = errors.New("password must have at least 8 characters, one letter and one digit")

	// ErrInvalidCredentials is returned when no account matches username and password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrAccountNotFound = errors.New("account not found")

	// ErrAdminAlreadyExists is returned when an administrator account already exists.
	ErrAdminAlreadyExists = errors.New("an administrator account already exists")

	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidNumericInput is returned when a price or quantity cannot be
	// parsed as a non-negative number of the required type.
	ErrInvalidNumericInput = errors.New("invalid numeric input")

	// ErrInvalidUsername is returned for blank usernames.
	ErrInvalidUsername = errors.New("username must not be blank")
)

// StoreError wraps a storage failure (connection, IO, constraint the
// service could not classify) together with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err as a StoreError for operation op.
func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is or wraps a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// Message returns the user-facing text for err, in the language of the menu.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateUsername):
		return "Este nome de usuário já existe. Por favor, escolha outro."
	case errors.Is(err, ErrWeakPassword):
		return "A senha deve ter no mínimo 8 caracteres, com pelo menos uma letra e um número."
	case errors.Is(err, ErrInvalidCredentials):
		return "Usuário ou senha inválidos."
	case errors.Is(err, ErrAccountNotFound):
		return "Usuário não encontrado."
	case errors.Is(err, ErrAdminAlreadyExists):
		return "Já existe uma conta de administrador. Não é possível criar outra."
	case errors.Is(err, ErrProductNotFound):
		return "Produto não encontrado."
	case errors.Is(err, ErrInvalidNumericInput):
		return "Preço e quantidade devem ser números não negativos."
	case errors.Is(err, ErrInvalidUsername):
		return "O nome de usuário não pode ficar em branco."
	case IsStoreError(err):
		return "Falha ao acessar o banco de dados: " + err.Error()
	default:
		return "Ocorreu um erro inesperado: " + err.Error()
	}
}
