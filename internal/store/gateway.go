// AngelaMos | 2026
// gateway.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/go-messages/internal/core"
)

// activeRows is the only place the soft-delete predicate is spelled out.
// Every default read goes through where().
const activeRows = colIsDeleted + " = false"

const lockForShare = " FOR SHARE"

// Gateway is a soft-delete repository over one table. Rows with
// is_deleted = true are never returned by its read methods.
type Gateway[T any, PT EntityPtr[T]] struct {
	db    core.DBTX
	table Table
}

func NewGateway[T any, PT EntityPtr[T]](
	db core.DBTX,
	table Table,
) *Gateway[T, PT] {
	return &Gateway[T, PT]{db: db, table: table}
}

// Create inserts entity and returns the stored row. An empty ID is replaced
// by a new UUID; is_deleted is always written as false.
func (g *Gateway[T, PT]) Create(ctx context.Context, entity PT) (_ *T, err error) {
	ctx, end := g.span(ctx, "create")
	defer func() { end(err) }()

	b := entity.base()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.IsDeleted = false

	cols := g.table.insertColumns()
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (:%s) RETURNING %s",
		g.table.Name,
		strings.Join(cols, ", "),
		strings.Join(cols, ", :"),
		g.table.returning(),
	)

	bound, args, err := g.db.BindNamed(query, entity)
	if err != nil {
		return nil, fmt.Errorf("create %s: bind: %w", g.table.Name, err)
	}

	var created T
	if err := g.db.GetContext(ctx, &created, bound, args...); err != nil {
		return nil, g.wrapWriteErr("create", err)
	}

	return &created, nil
}

// GetByID returns the active row with the given id, or nil when there is
// none.
func (g *Gateway[T, PT]) GetByID(ctx context.Context, id string) (_ *T, err error) {
	ctx, end := g.span(ctx, "get_by_id")
	defer func() { end(err) }()

	return g.findOne(ctx, "get by id", "", Eq(colID, id))
}

// GetByIDForShare is GetByID holding a share lock on the returned row until
// the enclosing transaction ends. Writers to that row block until then.
func (g *Gateway[T, PT]) GetByIDForShare(
	ctx context.Context,
	id string,
) (_ *T, err error) {
	ctx, end := g.span(ctx, "get_by_id_for_share")
	defer func() { end(err) }()

	return g.findOne(ctx, "get by id for share", lockForShare, Eq(colID, id))
}

// FindOne returns the first active row matching filters, or nil.
func (g *Gateway[T, PT]) FindOne(
	ctx context.Context,
	filters ...Filter,
) (_ *T, err error) {
	ctx, end := g.span(ctx, "find_one")
	defer func() { end(err) }()

	return g.findOne(ctx, "find", "", filters...)
}

func (g *Gateway[T, PT]) findOne(
	ctx context.Context,
	op string,
	lock string,
	filters ...Filter,
) (*T, error) {
	where, args, err := g.where(filters)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, g.table.Name, err)
	}

	query := g.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY %s, %s LIMIT 1%s",
		g.table.returning(),
		g.table.Name,
		where,
		colCreatedAt,
		colID,
		lock,
	))

	var row T
	err = g.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, g.table.Name, err)
	}

	return &row, nil
}

// Update writes only the supplied columns of the active row id and returns
// the refreshed row, or nil when no active row matched.
func (g *Gateway[T, PT]) Update(
	ctx context.Context,
	id string,
	changes Changes,
) (_ *T, err error) {
	ctx, end := g.span(ctx, "update")
	defer func() { end(err) }()

	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	seen := make(map[string]struct{}, len(changes))

	for _, c := range changes {
		if !g.table.isMutable(c.Column) {
			return nil, fmt.Errorf(
				"update %s: column %q is not mutable: %w",
				g.table.Name,
				c.Column,
				core.ErrInvalidInput,
			)
		}
		if _, dup := seen[c.Column]; dup {
			return nil, fmt.Errorf(
				"update %s: column %q set twice: %w",
				g.table.Name,
				c.Column,
				core.ErrInvalidInput,
			)
		}
		seen[c.Column] = struct{}{}

		sets = append(sets, c.Column+" = ?")
		args = append(args, c.Value)
	}

	if g.table.Timestamped {
		sets = append(sets, colUpdatedAt+" = NOW()")
	}

	if len(sets) == 0 {
		return g.findOne(ctx, "update", "", Eq(colID, id))
	}

	where, whereArgs, err := g.where([]Filter{Eq(colID, id)})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", g.table.Name, err)
	}
	args = append(args, whereArgs...)

	query := g.db.Rebind(fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s RETURNING %s",
		g.table.Name,
		strings.Join(sets, ", "),
		where,
		g.table.returning(),
	))

	var row T
	err = g.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, g.wrapWriteErr("update", err)
	}

	return &row, nil
}

// SoftDelete marks the row deleted. Unknown or already deleted ids are not an
// error.
func (g *Gateway[T, PT]) SoftDelete(ctx context.Context, id string) (err error) {
	ctx, end := g.span(ctx, "soft_delete")
	defer func() { end(err) }()

	if _, err := g.softDelete(ctx, []Filter{Eq(colID, id)}); err != nil {
		return fmt.Errorf("soft delete %s: %w", g.table.Name, err)
	}

	return nil
}

// SoftDeleteWhere marks every active row matching filters deleted in a single
// statement and reports how many rows changed. At least one filter is
// required.
func (g *Gateway[T, PT]) SoftDeleteWhere(
	ctx context.Context,
	filters ...Filter,
) (_ int64, err error) {
	ctx, end := g.span(ctx, "soft_delete_where")
	defer func() { end(err) }()

	if len(filters) == 0 {
		return 0, fmt.Errorf(
			"soft delete %s: refusing to delete without a filter: %w",
			g.table.Name,
			core.ErrInvalidInput,
		)
	}

	n, err := g.softDelete(ctx, filters)
	if err != nil {
		return 0, fmt.Errorf("soft delete %s: %w", g.table.Name, err)
	}

	return n, nil
}

func (g *Gateway[T, PT]) softDelete(
	ctx context.Context,
	filters []Filter,
) (int64, error) {
	where, args, err := g.where(filters)
	if err != nil {
		return 0, err
	}

	set := colIsDeleted + " = true"
	if g.table.Timestamped {
		set += ", " + colUpdatedAt + " = NOW()"
	}

	query := g.db.Rebind(fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s",
		g.table.Name,
		set,
		where,
	))

	result, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// HardDelete physically removes the row whatever its deletion state.
func (g *Gateway[T, PT]) HardDelete(ctx context.Context, id string) (err error) {
	ctx, end := g.span(ctx, "hard_delete")
	defer func() { end(err) }()

	query := g.db.Rebind(fmt.Sprintf(
		"DELETE FROM %s WHERE %s = ?",
		g.table.Name,
		colID,
	))

	if _, err := g.db.ExecContext(ctx, query, id); err != nil {
		return g.wrapWriteErr("hard delete", err)
	}

	return nil
}

// List returns active rows matching filters in creation order. The page is
// applied after filtering.
func (g *Gateway[T, PT]) List(
	ctx context.Context,
	page Page,
	filters ...Filter,
) (_ []T, err error) {
	ctx, end := g.span(ctx, "list")
	defer func() { end(err) }()

	if err := page.validate(); err != nil {
		return nil, fmt.Errorf("list %s: %w", g.table.Name, err)
	}

	where, args, err := g.where(filters)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", g.table.Name, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s WHERE %s ORDER BY %s, %s",
		g.table.returning(),
		g.table.Name,
		where,
		colCreatedAt,
		colID,
	)

	if page.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, page.Limit)
	}
	if page.Offset > 0 {
		b.WriteString(" OFFSET ?")
		args = append(args, page.Offset)
	}

	rows := make([]T, 0)
	if err := g.db.SelectContext(ctx, &rows, g.db.Rebind(b.String()), args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", g.table.Name, err)
	}

	return rows, nil
}

// Count returns the number of active rows matching filters.
func (g *Gateway[T, PT]) Count(
	ctx context.Context,
	filters ...Filter,
) (_ int64, err error) {
	ctx, end := g.span(ctx, "count")
	defer func() { end(err) }()

	where, args, err := g.where(filters)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", g.table.Name, err)
	}

	query := g.db.Rebind(fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s",
		g.table.Name,
		where,
	))

	var total int64
	if err := g.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", g.table.Name, err)
	}

	return total, nil
}

// Stats counts active and soft-deleted rows. It deliberately bypasses the
// active predicate.
func (g *Gateway[T, PT]) Stats(ctx context.Context) (_ Stats, err error) {
	ctx, end := g.span(ctx, "stats")
	defer func() { end(err) }()

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE %[1]s = false) AS active,
			COUNT(*) FILTER (WHERE %[1]s = true) AS deleted
		FROM %[2]s`,
		colIsDeleted,
		g.table.Name,
	)

	var stats Stats
	if err := g.db.GetContext(ctx, &stats, query); err != nil {
		return Stats{}, fmt.Errorf("stats %s: %w", g.table.Name, err)
	}

	return stats, nil
}

func (g *Gateway[T, PT]) where(filters []Filter) (string, []any, error) {
	conds := make([]string, 0, len(filters)+1)
	conds = append(conds, activeRows)
	args := make([]any, 0, len(filters))

	for _, f := range filters {
		if !g.table.isFilterable(f.Column) {
			return "", nil, fmt.Errorf(
				"column %q is not filterable: %w",
				f.Column,
				core.ErrInvalidInput,
			)
		}
		conds = append(conds, f.Column+" = ?")
		args = append(args, f.Value)
	}

	return strings.Join(conds, " AND "), args, nil
}

func (g *Gateway[T, PT]) wrapWriteErr(op string, err error) error {
	if ce := core.AsConstraintError(g.table.Name, err); ce != nil {
		return fmt.Errorf("%s %s: %w", op, g.table.Name, ce)
	}
	return fmt.Errorf("%s %s: %w", op, g.table.Name, err)
}

func (g *Gateway[T, PT]) span(
	ctx context.Context,
	op string,
) (context.Context, func(error)) {
	return core.StartSpan(ctx, "store."+g.table.Name+"."+op,
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", g.table.Name),
		attribute.String("db.operation", op),
	)
}
