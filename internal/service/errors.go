package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lshigami/qams/internal/model"
	"gorm.io/gorm"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidPaperState  = errors.New("invalid paper state")
	ErrDuplicateClaim     = errors.New("moderator already holds a claim on this subject")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
)

// InvalidPaperStateError reports a paper whose status does not allow the
// requested operation. It matches ErrInvalidPaperState with errors.Is.
type InvalidPaperStateError struct {
	Actual   model.PaperStatus
	Expected []model.PaperStatus
}

func (e *InvalidPaperStateError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, s := range e.Expected {
		expected[i] = string(s)
	}
	return fmt.Sprintf("paper is %s, expected one of: %s", e.Actual, strings.Join(expected, ", "))
}

func (e *InvalidPaperStateError) Is(target error) bool {
	return target == ErrInvalidPaperState
}

// TransactionError wraps a failure inside a moderation transaction. Nothing
// from the failed transaction was committed.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: transaction rolled back: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

func notFound(what string, id uint) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}

// isRecordNotFound maps gorm's sentinel; other errors pass through untouched.
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isUniqueViolation recognises a unique-constraint failure from any dialect we run on.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
