// AngelaMos | 2026
// repository.go

//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../mocks/mock_user_repository.go -package=mocks -mock_names=Repository=MockUserRepository

package user

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
)

// Repository reads never return soft-deleted users. Lookups that find
// nothing return a nil user and a nil error.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIDForShare also share-locks the row for the rest of the
	// transaction, so a concurrent delete waits for it.
	GetByIDForShare(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id string, patch Patch) (*User, error)
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	List(ctx context.Context, page store.Page) ([]User, error)
	Count(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (store.Stats, error)
}

type repository struct {
	gw *store.Gateway[User, *User]
}

func NewRepository(db core.DBTX) Repository {
	return &repository{gw: store.NewGateway[User](db, Table)}
}

func (r *repository) Create(ctx context.Context, user *User) (*User, error) {
	created, err := r.gw.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := r.gw.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *repository) GetByIDForShare(
	ctx context.Context,
	id string,
) (*User, error) {
	user, err := r.gw.GetByIDForShare(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user for share: %w", err)
	}
	return user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	user, err := r.gw.FindOne(ctx, store.Eq(ColumnEmail, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	patch Patch,
) (*User, error) {
	user, err := r.gw.Update(ctx, id, patch.changes())
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	if err := r.gw.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *repository) HardDelete(ctx context.Context, id string) error {
	if err := r.gw.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("hard delete user: %w", err)
	}
	return nil
}

func (r *repository) List(
	ctx context.Context,
	page store.Page,
) ([]User, error) {
	users, err := r.gw.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	total, err := r.gw.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *repository) Stats(ctx context.Context) (store.Stats, error) {
	stats, err := r.gw.Stats(ctx)
	if err != nil {
		return store.Stats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}
