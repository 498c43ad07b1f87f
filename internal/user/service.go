// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
)

// MessageRepository is the slice of the message store a user deletion needs.
type MessageRepository interface {
	SoftDeleteBySenderID(ctx context.Context, senderID string) (int64, error)
}

// Stores are bound to the same transaction inside Transactor.InTx.
type Stores struct {
	Users    Repository
	Messages MessageRepository
}

type Transactor interface {
	InTx(ctx context.Context, fn func(stores Stores) error) error
}

type CreateInput struct {
	Name  string
	Email string
}

type Service struct {
	repo Repository
	tx   Transactor
}

func NewService(repo Repository, tx Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

func (s *Service) CreateUser(
	ctx context.Context,
	in CreateInput,
) (_ *User, err error) {
	ctx, end := core.StartSpan(ctx, "user.create")
	defer func() { end(err) }()

	created, err := s.repo.Create(ctx, &User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		if core.IsUniqueViolation(err) {
			slog.InfoContext(ctx, "user already exists", "email", in.Email)
			return nil, &AlreadyExistsError{Email: in.Email, Err: err}
		}
		return nil, err
	}

	return created, nil
}

// GetUserByEmail returns nil without an error when no active user has the
// email.
func (s *Service) GetUserByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	page store.Page,
) ([]User, int64, error) {
	users, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	patch Patch,
) (_ *User, err error) {
	ctx, end := core.StartSpan(ctx, "user.update",
		attribute.String("user.id", id),
	)
	defer func() { end(err) }()

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if core.IsUniqueViolation(err) {
			email := ""
			if patch.Email != nil {
				email = *patch.Email
			}
			slog.InfoContext(ctx, "user already exists", "email", email)
			return nil, &AlreadyExistsError{Email: email, Err: err}
		}
		return nil, err
	}

	if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// DeleteUser soft deletes the user and every message they sent. Both writes
// commit together or not at all.
func (s *Service) DeleteUser(ctx context.Context, id string) (err error) {
	ctx, end := core.StartSpan(ctx, "user.delete",
		attribute.String("user.id", id),
	)
	defer func() { end(err) }()

	var cascaded int64
	err = s.tx.InTx(ctx, func(st Stores) error {
		user, err := st.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrNotFound
		}

		if err := st.Users.SoftDelete(ctx, id); err != nil {
			return err
		}

		cascaded, err = st.Messages.SoftDeleteBySenderID(ctx, id)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		slog.InfoContext(ctx, "user not found", "user_id", id)
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	core.AddSpanEvent(ctx, "messages.cascaded",
		attribute.Int64("messages.count", cascaded),
	)
	slog.InfoContext(ctx, "user deleted",
		"user_id", id,
		"messages_deleted", cascaded,
	)

	return nil
}
