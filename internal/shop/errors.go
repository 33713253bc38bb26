package shop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// ids are uuid columns; a malformed id can match nothing, so repositories
// report it as not-found without a store round trip instead of letting the
// driver fail the encode.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidationError carries per-field messages, surfaced as one uniform 400
// body. Every operation validates its input before touching the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+": "+v)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = msg
	return e
}

func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func Invalid(field, msg string) *ValidationError {
	return NewValidationError().Add(field, msg)
}

func NotFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// postgres error codes worth translating to user-facing failures
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateConstraint maps store constraint violations onto the two
// user-facing error kinds, so a duplicate username or a referenced product
// comes back as a 400 instead of a driver error.
func translateConstraint(err error, field, msg string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
		return Invalid(field, msg)
	}
	return err
}
