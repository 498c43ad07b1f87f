// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/templates/go-messages/internal/store"
)

const (
	ColumnName  = "name"
	ColumnEmail = "email"
)

// Table is the users table layout. email carries a UNIQUE constraint across
// all rows, soft-deleted ones included.
var Table = store.Table{
	Name:        "users",
	Columns:     []string{ColumnName, ColumnEmail},
	Mutable:     []string{ColumnName, ColumnEmail},
	Filterable:  []string{ColumnEmail},
	Timestamped: true,
}

type User struct {
	store.Base
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name  *string
	Email *string
}

func (p Patch) changes() store.Changes {
	var c store.Changes
	if p.Name != nil {
		c = c.Set(ColumnName, *p.Name)
	}
	if p.Email != nil {
		c = c.Set(ColumnEmail, *p.Email)
	}
	return c
}
