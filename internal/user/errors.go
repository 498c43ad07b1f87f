// AngelaMos | 2026
// errors.go

package user

import (
	"fmt"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
)

var (
	ErrNotFound      = fmt.Errorf("user %w", core.ErrNotFound)
	ErrAlreadyExists = fmt.Errorf("user %w", core.ErrAlreadyExists)
)

// AlreadyExistsError reports an email that collides with an existing user.
// It matches ErrAlreadyExists and core.ErrAlreadyExists.
type AlreadyExistsError struct {
	Email string
	Err   error
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists || target == core.ErrAlreadyExists
}

func (e *AlreadyExistsError) Unwrap() error {
	return e.Err
}
