// AngelaMos | 2026
// entity.go

package store

import (
	"time"
)

// Base carries the columns every soft-deletable row has. Entities embed it.
type Base struct {
	ID        string    `db:"id"`
	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
}

func (b *Base) base() *Base {
	return b
}

// Entity is implemented by any type embedding Base.
type Entity interface {
	base() *Base
}

// EntityPtr constrains a Gateway's pointer type parameter to *T where T
// embeds Base.
type EntityPtr[T any] interface {
	*T
	Entity
}

// Stats reports row counts for one table, including soft-deleted rows.
type Stats struct {
	Active  int64 `db:"active"  json:"active"`
	Deleted int64 `db:"deleted" json:"deleted"`
}
