// AngelaMos | 2026
// service.go

package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
	"github.com/carterperez-dev/templates/go-messages/internal/store"
	"github.com/carterperez-dev/templates/go-messages/internal/user"
)

// SenderRepository resolves the sender of a new message.
type SenderRepository interface {
	GetByIDForShare(ctx context.Context, id string) (*user.User, error)
}

// Stores are bound to the same transaction inside Transactor.InTx.
type Stores struct {
	Senders  SenderRepository
	Messages Repository
}

type Transactor interface {
	InTx(ctx context.Context, fn func(stores Stores) error) error
}

type CreateInput struct {
	SenderID string
	Content  string
}

type Service struct {
	repo Repository
	tx   Transactor
}

func NewService(repo Repository, tx Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

// CreateMessage persists the message only when the sender is an active user.
// Otherwise it returns user.ErrNotFound. The sender row stays share-locked
// until the insert commits, so a concurrent DeleteUser either sees the new
// message or makes the sender lookup fail.
func (s *Service) CreateMessage(
	ctx context.Context,
	in CreateInput,
) (_ *Message, err error) {
	ctx, end := core.StartSpan(ctx, "message.create",
		attribute.String("message.sender_id", in.SenderID),
	)
	defer func() { end(err) }()

	senderID, err := core.ParseID(in.SenderID)
	if err != nil {
		slog.InfoContext(ctx, "sender not found", "sender_id", in.SenderID)
		return nil, user.ErrNotFound
	}

	var created *Message
	err = s.tx.InTx(ctx, func(st Stores) error {
		sender, err := st.Senders.GetByIDForShare(ctx, senderID)
		if err != nil {
			return err
		}
		if sender == nil {
			return user.ErrNotFound
		}

		created, err = st.Messages.Create(ctx, &Message{
			SenderID: senderID,
			Content:  in.Content,
		})
		return err
	})
	if errors.Is(err, user.ErrNotFound) {
		slog.InfoContext(ctx, "sender not found", "sender_id", senderID)
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	return created, nil
}

// GetMessagesBySenderID returns a page of the sender's active messages and
// their total count. Unknown senders yield an empty page.
func (s *Service) GetMessagesBySenderID(
	ctx context.Context,
	senderID string,
	page store.Page,
) ([]Message, int64, error) {
	senderID, err := core.ParseID(senderID)
	if err != nil {
		return []Message{}, 0, nil
	}

	msgs, err := s.repo.GetBySenderID(ctx, senderID, page)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountBySenderID(ctx, senderID)
	if err != nil {
		return nil, 0, err
	}

	return msgs, total, nil
}

func (s *Service) GetMessage(ctx context.Context, id string) (*Message, error) {
	id, err := core.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrNotFound
	}
	return msg, nil
}

func (s *Service) DeleteMessage(ctx context.Context, id string) (err error) {
	ctx, end := core.StartSpan(ctx, "message.delete",
		attribute.String("message.id", id),
	)
	defer func() { end(err) }()

	parsed, err := core.ParseID(id)
	if err != nil {
		slog.InfoContext(ctx, "message not found", "message_id", id)
		return ErrNotFound
	}
	id = parsed

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if msg == nil {
		slog.InfoContext(ctx, "message not found", "message_id", id)
		return ErrNotFound
	}

	return s.repo.SoftDelete(ctx, id)
}
