// AngelaMos | 2026
// table.go

package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
)

const (
	colID        = "id"
	colIsDeleted = "is_deleted"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

// Table describes how one entity type is laid out in storage.
type Table struct {
	Name string
	// Columns are the entity-specific columns, excluding the Base columns
	// and updated_at.
	Columns []string
	// Mutable lists the columns Update may change.
	Mutable []string
	// Filterable lists the columns List and Count may filter on. id is
	// always filterable.
	Filterable []string
	// Timestamped tables carry an updated_at column maintained on every
	// write.
	Timestamped bool
}

func (t Table) selectColumns() []string {
	cols := make([]string, 0, len(t.Columns)+4)
	cols = append(cols, colID)
	cols = append(cols, t.Columns...)
	cols = append(cols, colIsDeleted, colCreatedAt)
	if t.Timestamped {
		cols = append(cols, colUpdatedAt)
	}
	return cols
}

func (t Table) insertColumns() []string {
	cols := make([]string, 0, len(t.Columns)+2)
	cols = append(cols, colID)
	cols = append(cols, t.Columns...)
	cols = append(cols, colIsDeleted)
	return cols
}

func (t Table) returning() string {
	return strings.Join(t.selectColumns(), ", ")
}

func (t Table) isMutable(col string) bool {
	return slices.Contains(t.Mutable, col)
}

func (t Table) isFilterable(col string) bool {
	return col == colID || slices.Contains(t.Filterable, col)
}

// Change sets one column to a value.
type Change struct {
	Column string
	Value  any
}

// Changes is an ordered set of column assignments for a partial update. Only
// the columns present are written.
type Changes []Change

func (c Changes) Set(column string, value any) Changes {
	return append(c, Change{Column: column, Value: value})
}

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Page applies LIMIT and OFFSET after filtering. Zero values disable them.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) validate() error {
	if p.Limit < 0 || p.Offset < 0 {
		return fmt.Errorf(
			"page limit %d offset %d must not be negative: %w",
			p.Limit,
			p.Offset,
			core.ErrInvalidInput,
		)
	}
	return nil
}
