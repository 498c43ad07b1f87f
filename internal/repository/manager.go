// AngelaMos | 2026
// manager.go

// Package repository binds the user and message stores to a connection pool
// or to a single transaction.
package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/message"
	"github.com/carterperez-dev/templates/go-messages/internal/user"
)

type Manager struct {
	db *sqlx.DB
}

func NewManager(db *sqlx.DB) *Manager {
	return &Manager{db: db}
}

// Users returns a user store running each call in its own implicit
// transaction.
func (m *Manager) Users() user.Repository {
	return user.NewRepository(m.db)
}

func (m *Manager) Messages() message.Repository {
	return message.NewRepository(m.db)
}

// InTx hands fn stores that share one transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (m *Manager) InTx(
	ctx context.Context,
	fn func(stores user.Stores) error,
) error {
	return core.InTx(ctx, m.db, nil, func(tx *sqlx.Tx) error {
		return fn(user.Stores{
			Users:    user.NewRepository(tx),
			Messages: message.NewRepository(tx),
		})
	})
}

// MessageTx hands message writes a sender store and a message store that share
// one transaction.
func (m *Manager) MessageTx() message.Transactor {
	return messageTx{db: m.db}
}

type messageTx struct {
	db *sqlx.DB
}

func (t messageTx) InTx(
	ctx context.Context,
	fn func(stores message.Stores) error,
) error {
	return core.InTx(ctx, t.db, nil, func(tx *sqlx.Tx) error {
		return fn(message.Stores{
			Senders:  user.NewRepository(tx),
			Messages: message.NewRepository(tx),
		})
	})
}

var (
	_ user.Transactor    = (*Manager)(nil)
	_ message.Transactor = messageTx{}
)
