// AngelaMos | 2026
// dto.go

package message

import (
	"time"

	"github.com/samber/lo"
)

type CreateMessageRequest struct {
	SenderID string `json:"sender_id" validate:"required,uuid"`
	Content  string `json:"content"   validate:"required,max=10000"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagePageResponse is the body of a by-sender listing; Count is the total
// number of the sender's active messages, not the page length.
type MessagePageResponse struct {
	Count    int64             `json:"count"`
	Messages []MessageResponse `json:"messages"`
}

func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func ToMessageResponseList(msgs []Message) []MessageResponse {
	return lo.Map(msgs, func(m Message, _ int) MessageResponse {
		return ToMessageResponse(&m)
	})
}
