package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/evidenca/internal/db"
	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

// namedTable holds the shared behaviour of item types and places: both are
// a unique name with a creation time.
type namedTable struct {
	table  string
	entity string
}

var (
	itemTypes = namedTable{table: "item_types", entity: "item type"}
	places    = namedTable{table: "places", entity: "place"}
)

type namedRow struct {
	id        int64
	name      string
	createdAt time.Time
}

func (t namedTable) create(ctx context.Context, q db.Querier, name string, now time.Time) (*namedRow, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	existing, err := t.findByName(ctx, q, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeDuplicateName, "%s %q already exists", t.entity, name)
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO `+t.table+` (name, created_at) VALUES (?, ?)`,
		name, nanos(now),
	)
	if isUniqueViolation(err) {
		return nil, pkgerrors.Newf(pkgerrors.CodeDuplicateName, "%s %q already exists", t.entity, name)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", t.entity, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting %s id: %w", t.entity, err)
	}

	return &namedRow{id: id, name: name, createdAt: fromNanos(nanos(now))}, nil
}

func (t namedTable) get(ctx context.Context, q db.Querier, id int64) (*namedRow, error) {
	return t.scanOne(ctx, q, `SELECT id, name, created_at FROM `+t.table+` WHERE id = ?`, id)
}

func (t namedTable) findByName(ctx context.Context, q db.Querier, name string) (*namedRow, error) {
	return t.scanOne(ctx, q, `SELECT id, name, created_at FROM `+t.table+` WHERE name = ?`, name)
}

func (t namedTable) scanOne(ctx context.Context, q db.Querier, query string, arg any) (*namedRow, error) {
	var row namedRow
	var created int64
	err := q.QueryRowContext(ctx, query, arg).Scan(&row.id, &row.name, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", t.entity, err)
	}
	row.createdAt = fromNanos(created)
	return &row, nil
}

func (t namedTable) list(ctx context.Context, q db.Querier) ([]namedRow, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, created_at FROM `+t.table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", t.entity, err)
	}
	defer rows.Close()

	var out []namedRow
	for rows.Next() {
		var row namedRow
		var created int64
		if err := rows.Scan(&row.id, &row.name, &created); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.entity, err)
		}
		row.createdAt = fromNanos(created)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t namedTable) count(ctx context.Context, q db.Querier) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %ss: %w", t.entity, err)
	}
	return n, nil
}

// rename changes the name of row id and returns the previous name.
func (t namedTable) rename(ctx context.Context, q db.Querier, id int64, name string) (string, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", err
	}

	current, err := t.get(ctx, q, id)
	if err != nil {
		return "", err
	}
	if current == nil {
		return "", pkgerrors.Newf(pkgerrors.CodeNotFound, "%s %d not found", t.entity, id)
	}
	if current.name == name {
		return "", pkgerrors.Newf(pkgerrors.CodeNoOp, "%s %d is already named %q", t.entity, id, name)
	}

	other, err := t.findByName(ctx, q, name)
	if err != nil {
		return "", err
	}
	if other != nil {
		return "", pkgerrors.Newf(pkgerrors.CodeDuplicateName, "%s %q already exists", t.entity, name)
	}

	_, err = q.ExecContext(ctx, `UPDATE `+t.table+` SET name = ? WHERE id = ?`, name, id)
	if isUniqueViolation(err) {
		return "", pkgerrors.Newf(pkgerrors.CodeDuplicateName, "%s %q already exists", t.entity, name)
	}
	if err != nil {
		return "", fmt.Errorf("renaming %s: %w", t.entity, err)
	}
	return current.name, nil
}
