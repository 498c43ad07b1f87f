// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsConstraintError(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			TableName:      "users",
			ConstraintName: "users_email_key",
		}

		ce := AsConstraintError("fallback", fmt.Errorf("exec: %w", pgErr))
		require.NotNil(t, ce)
		assert.Equal(t, "users", ce.Table)
		assert.Equal(t, "users_email_key", ce.Constraint)
		assert.True(t, ce.IsUnique())
		assert.False(t, ce.IsForeignKey())
		assert.ErrorIs(t, ce, ErrConstraintViolation)

		var unwrapped *pgconn.PgError
		assert.ErrorAs(t, ce, &unwrapped)
	})

	t.Run("foreign key violation keeps fallback table", func(t *testing.T) {
		ce := AsConstraintError("messages", &pgconn.PgError{Code: "23503"})
		require.NotNil(t, ce)
		assert.Equal(t, "messages", ce.Table)
		assert.True(t, ce.IsForeignKey())
	})

	t.Run("non integrity errors", func(t *testing.T) {
		assert.Nil(t, AsConstraintError("users", &pgconn.PgError{Code: "40001"}))
		assert.Nil(t, AsConstraintError("users", errors.New("timeout")))
	})

	t.Run("already classified", func(t *testing.T) {
		orig := &ConstraintError{Table: "users", Code: "23505"}
		assert.Same(t, orig, AsConstraintError("other", fmt.Errorf("wrap: %w", orig)))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w",
		&ConstraintError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&ConstraintError{Code: "23502"}))
	assert.False(t, IsUniqueViolation(ErrNotFound))
	assert.False(t, IsUniqueViolation(nil))
}

func TestAppError(t *testing.T) {
	cause := errors.New("disk full")
	err := InternalError(cause)

	assert.Equal(t, 500, err.StatusCode)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsAppError(fmt.Errorf("handler: %w", err)))
	assert.False(t, IsAppError(cause))

	nf := NotFoundError("user")
	assert.Equal(t, "user not found", nf.Error())
	assert.Equal(t, 404, nf.StatusCode)
}
