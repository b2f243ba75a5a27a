package rowmapper

import (
	"context"
	"database/sql"
)

// Querier runs SQL queries, it is implemented by *sql.DB, *sql.Tx and *sql.Conn
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query runs query and maps every result set into T
func Query[T any](ctx context.Context, q Querier, query string, args ...any) ([]*T, error) {
	return queryAll[T](ctx, q, nil, query, args...)
}

// Get runs query and maps the first record into T, it returns sql.ErrNoRows if query yields no records
func Get[T any](ctx context.Context, q Querier, query string, args ...any) (*T, error) {
	return queryFirst[T](ctx, q, nil, query, args...)
}

// Query runs query with mapper options
func (m *Mapper[T]) Query(ctx context.Context, q Querier, query string, args ...any) ([]*T, error) {
	return queryAll[T](ctx, q, m.options, query, args...)
}

// Get runs query and maps the first record with mapper options
func (m *Mapper[T]) Get(ctx context.Context, q Querier, query string, args ...any) (*T, error) {
	return queryFirst[T](ctx, q, m.options, query, args...)
}

func queryAll[T any](ctx context.Context, q Querier, opts []Option, SQL string, args ...any) ([]*T, error) {
	rows, err := q.QueryContext(ctx, SQL, args...)
	if err != nil {
		return nil, err
	}
	result, err := Map[T](NewCursor(rows), opts...)
	if closeErr := rows.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func queryFirst[T any](ctx context.Context, q Querier, opts []Option, SQL string, args ...any) (*T, error) {
	rows, err := q.QueryContext(ctx, SQL, args...)
	if err != nil {
		return nil, err
	}
	item, err := MapFirst[T](NewCursor(rows), opts...)
	if closeErr := rows.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, sql.ErrNoRows
	}
	return item, nil
}
