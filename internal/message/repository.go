// AngelaMos | 2026
// repository.go

//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../mocks/mock_message_repository.go -package=mocks -mock_names=Repository=MockMessageRepository

package message

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
)

type Repository interface {
	Create(ctx context.Context, msg *Message) (*Message, error)
	GetByID(ctx context.Context, id string) (*Message, error)
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	GetBySenderID(
		ctx context.Context,
		senderID string,
		page store.Page,
	) ([]Message, error)
	CountBySenderID(ctx context.Context, senderID string) (int64, error)
	SoftDeleteBySenderID(ctx context.Context, senderID string) (int64, error)
	Stats(ctx context.Context) (store.Stats, error)
}

type repository struct {
	gw *store.Gateway[Message, *Message]
}

func NewRepository(db core.DBTX) Repository {
	return &repository{gw: store.NewGateway[Message](db, Table)}
}

func (r *repository) Create(
	ctx context.Context,
	msg *Message,
) (*Message, error) {
	created, err := r.gw.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Message, error) {
	msg, err := r.gw.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return msg, nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	if err := r.gw.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (r *repository) HardDelete(ctx context.Context, id string) error {
	if err := r.gw.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("hard delete message: %w", err)
	}
	return nil
}

func (r *repository) GetBySenderID(
	ctx context.Context,
	senderID string,
	page store.Page,
) ([]Message, error) {
	msgs, err := r.gw.List(ctx, page, store.Eq(ColumnSenderID, senderID))
	if err != nil {
		return nil, fmt.Errorf("get messages by sender: %w", err)
	}
	return msgs, nil
}

func (r *repository) CountBySenderID(
	ctx context.Context,
	senderID string,
) (int64, error) {
	total, err := r.gw.Count(ctx, store.Eq(ColumnSenderID, senderID))
	if err != nil {
		return 0, fmt.Errorf("count messages by sender: %w", err)
	}
	return total, nil
}

// SoftDeleteBySenderID marks all of a sender's messages deleted with one
// UPDATE and returns how many changed.
func (r *repository) SoftDeleteBySenderID(
	ctx context.Context,
	senderID string,
) (int64, error) {
	n, err := r.gw.SoftDeleteWhere(ctx, store.Eq(ColumnSenderID, senderID))
	if err != nil {
		return 0, fmt.Errorf("delete messages by sender: %w", err)
	}
	return n, nil
}

func (r *repository) Stats(ctx context.Context) (store.Stats, error) {
	stats, err := r.gw.Stats(ctx)
	if err != nil {
		return store.Stats{}, fmt.Errorf("message stats: %w", err)
	}
	return stats, nil
}
