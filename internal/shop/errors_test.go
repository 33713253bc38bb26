package shop

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := NotFound("customer", "c-1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "customer c-1")
}

func TestValidationErrorAccumulates(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Add("name", "name is required").Add("price", "price is required")
	err := v.OrNil()
	assert.Error(t, err)

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestTranslateConstraint(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	err := translateConstraint(fmt.Errorf("insert: %w", unique), "username", "username already taken")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "username already taken", ve.Fields["username"])

	// anything that is not a constraint violation passes through untouched
	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateConstraint(plain, "username", "x"))
}
