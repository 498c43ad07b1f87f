// AngelaMos | 2026
// entity.go

package message

import (
	"github.com/carterperez-dev/templates/go-messages/internal/store"
)

const (
	ColumnSenderID = "sender_id"
	ColumnContent  = "content"
)

// Table is the messages table layout. Messages are immutable after creation
// apart from soft deletion, and carry no updated_at.
var Table = store.Table{
	Name:       "messages",
	Columns:    []string{ColumnSenderID, ColumnContent},
	Filterable: []string{ColumnSenderID},
}

type Message struct {
	store.Base
	SenderID string `db:"sender_id"`
	Content  string `db:"content"`
}
