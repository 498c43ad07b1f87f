// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidInput        = errors.New("invalid input")
)

// SQLSTATE codes from the integrity_constraint_violation class (23xxx).
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	integrityClassPrefix    = "23"
)

// ConstraintError is returned by the storage layer when the database rejects a
// write because of an integrity constraint.
type ConstraintError struct {
	Table      string
	Constraint string
	Code       string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf(
			"constraint %s violated on %s (sqlstate %s)",
			e.Constraint,
			e.Table,
			e.Code,
		)
	}
	return fmt.Sprintf("constraint violated on %s (sqlstate %s)", e.Table, e.Code)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func (e *ConstraintError) IsUnique() bool {
	return e.Code == codeUniqueViolation
}

func (e *ConstraintError) IsForeignKey() bool {
	return e.Code == codeForeignKeyViolation
}

// AsConstraintError classifies a driver error. It returns nil when err is not
// an integrity violation.
func AsConstraintError(table string, err error) *ConstraintError {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	if len(pgErr.Code) < 2 || pgErr.Code[:2] != integrityClassPrefix {
		return nil
	}

	if pgErr.TableName != "" {
		table = pgErr.TableName
	}

	return &ConstraintError{
		Table:      table,
		Constraint: pgErr.ConstraintName,
		Code:       pgErr.Code,
		Err:        err,
	}
}

func IsUniqueViolation(err error) bool {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.IsUnique()
	}
	return false
}

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: status,
	}
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		http.StatusNotFound,
		"NOT_FOUND",
		fmt.Sprintf("%s not found", resource),
	)
}

func AlreadyExistsError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "ALREADY_EXISTS", message)
}

func BadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "BAD_REQUEST", message)
}

func ValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", message)
}

func InternalError(err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
