// AngelaMos | 2026
// service_test.go

package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/mocks"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
	"github.com/carterperez-dev/templates/go-messages/internal/user"
)

// fakeTx runs fn against fixed stores, standing in for a real transaction.
type fakeTx struct {
	stores user.Stores
	calls  int
}

func (f *fakeTx) InTx(_ context.Context, fn func(user.Stores) error) error {
	f.calls++
	return fn(f.stores)
}

type fixture struct {
	users    *mocks.MockUserRepository
	messages *mocks.MockMessageRepository
	tx       *fakeTx
	svc      *user.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	messages := mocks.NewMockMessageRepository(ctrl)
	tx := &fakeTx{stores: user.Stores{Users: users, Messages: messages}}

	return &fixture{
		users:    users,
		messages: messages,
		tx:       tx,
		svc:      user.NewService(users, tx),
	}
}

func uniqueViolation() error {
	return &core.ConstraintError{
		Table:      "users",
		Constraint: "users_email_key",
		Code:       "23505",
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) (*user.User, error) {
				assert.Empty(t, u.ID)
				u.ID = "u-1"
				return u, nil
			})

		got, err := f.svc.CreateUser(ctx, user.CreateInput{
			Name:  "Ada",
			Email: "ada@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.ID)
		assert.Equal(t, "ada@example.com", got.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, uniqueViolation())

		got, err := f.svc.CreateUser(ctx, user.CreateInput{
			Name:  "Ada",
			Email: "ada@example.com",
		})
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, user.ErrAlreadyExists)
		assert.ErrorIs(t, err, core.ErrAlreadyExists)

		var exists *user.AlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "ada@example.com", exists.Email)
	})

	t.Run("other constraint violations are not reclassified", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, &core.ConstraintError{Table: "users", Code: "23502"})

		_, err := f.svc.CreateUser(ctx, user.CreateInput{Name: "Ada"})
		require.ErrorIs(t, err, core.ErrConstraintViolation)
		assert.NotErrorIs(t, err, core.ErrAlreadyExists)
	})
}

func TestGetUserByEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.users.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, nil)

	got, err := f.svc.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		u := &user.User{Name: "Ada"}
		u.ID = "u-1"

		f.users.EXPECT().GetByID(ctx, "u-1").Return(u, nil)

		got, err := f.svc.GetUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Same(t, u, got)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByID(ctx, "u-2").Return(nil, nil)

		_, err := f.svc.GetUser(ctx, "u-2")
		require.ErrorIs(t, err, user.ErrNotFound)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	page := store.Page{Limit: 2, Offset: 4}

	f.users.EXPECT().List(ctx, page).Return([]user.User{{Name: "a"}, {Name: "b"}}, nil)
	f.users.EXPECT().Count(ctx).Return(int64(7), nil)

	users, total, err := f.svc.ListUsers(ctx, page)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.EqualValues(t, 7, total)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	email := "grace@example.com"
	patch := user.Patch{Email: &email}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		updated := &user.User{Name: "Ada", Email: email}

		f.users.EXPECT().Update(gomock.Any(), "u-1", patch).Return(updated, nil)

		got, err := f.svc.UpdateUser(ctx, "u-1", patch)
		require.NoError(t, err)
		assert.Equal(t, email, got.Email)
	})

	t.Run("missing or deleted", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Update(gomock.Any(), "u-1", patch).Return(nil, nil)

		_, err := f.svc.UpdateUser(ctx, "u-1", patch)
		require.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("email taken", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().
			Update(gomock.Any(), "u-1", patch).
			Return(nil, uniqueViolation())

		_, err := f.svc.UpdateUser(ctx, "u-1", patch)
		require.ErrorIs(t, err, user.ErrAlreadyExists)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades inside one transaction", func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(&user.User{}, nil),
			f.users.EXPECT().SoftDelete(gomock.Any(), "u-1").Return(nil),
			f.messages.EXPECT().
				SoftDeleteBySenderID(gomock.Any(), "u-1").
				Return(int64(10), nil),
		)

		require.NoError(t, f.svc.DeleteUser(ctx, "u-1"))
		assert.Equal(t, 1, f.tx.calls)
	})

	t.Run("missing user touches nothing", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(nil, nil)

		err := f.svc.DeleteUser(ctx, "u-1")
		require.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("cascade failure is returned", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("boom")

		f.users.EXPECT().GetByID(gomock.Any(), "u-1").Return(&user.User{}, nil)
		f.users.EXPECT().SoftDelete(gomock.Any(), "u-1").Return(nil)
		f.messages.EXPECT().
			SoftDeleteBySenderID(gomock.Any(), "u-1").
			Return(int64(0), boom)

		err := f.svc.DeleteUser(ctx, "u-1")
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, user.ErrNotFound)
	})
}
