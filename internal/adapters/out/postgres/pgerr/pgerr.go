// Package pgerr maps driver errors onto the domain error taxonomy for the
// gorm repositories.
package pgerr

import (
	"errors"

	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes
const (
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
)

// IsUniqueViolation reports a unique or primary key conflict, either raw from
// pgx or translated by gorm (TranslateError) for any dialect.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrUniqueViolation
}

// Translate turns a write error into a domain error. A unique violation on a
// storage-level invariant becomes an InvariantViolationError.
func Translate(err error, invariant string) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewInvariantViolationErrorWithCause(invariant, "unique constraint violated", err)
	}
	return err
}

// NotFound maps gorm.ErrRecordNotFound onto ObjectNotFoundError.
func NotFound(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, id)
	}
	return err
}
