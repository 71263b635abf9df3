package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// runInTx runs fn in one database transaction: any error rolls everything
// back, and the commit only happens after fn returned nil. Domain errors are
// returned unchanged, anything else is wrapped in a TransactionError.
func runInTx(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	log.Error().Err(err).Str("op", op).Msg("Transaction rolled back")
	return &TransactionError{Op: op, Err: err}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrForbidden,
		ErrNotFound,
		ErrInvalidPaperState,
		ErrDuplicateClaim,
		ErrAlreadyExists,
		ErrValidation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
