package mystore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

type postgresStore[T any] struct {
	db    *sql.DB
	table string
}

type querier interface {
	ExecContext(c context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(c context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(c context.Context, query string, args ...any) *sql.Row
}

func newPostgresStore[T any](c context.Context, databaseURL string) (*postgresStore[T], func(), error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening postgres connection: %s", err)
	}

	table := "store_" + strings.ToLower(kindOf[T]())

	_, err = db.ExecContext(c, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (uid TEXT PRIMARY KEY, payload JSONB NOT NULL)`, table))
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("error creating table %s: %s", table, err)
	}

	return &postgresStore[T]{
			db:    db,
			table: table,
		}, func() {
			db.Close()
		}, nil
}

func (s *postgresStore[T]) querier(c context.Context) querier {
	if tx, ok := c.Value(ctxTransactionKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *postgresStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	tx, err := s.db.BeginTx(c, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %s", err)
	}

	// Shadow original context with a transactional one
	ctx := context.WithValue(c, ctxTransactionKey{}, tx)

	err = f(ctx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("error rolling back transaction: %s (cause: %s)", rollbackErr, err)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("error committing transaction: %s", err)
	}

	return nil
}

func (s *postgresStore[T]) Put(c context.Context, uid string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling entity %s with uid %s: %s", s.table, uid, err)
	}

	_, err = s.querier(c).ExecContext(c, fmt.Sprintf(
		`INSERT INTO %s (uid, payload) VALUES ($1, $2)
		 ON CONFLICT (uid) DO UPDATE SET payload = EXCLUDED.payload`, s.table), uid, payload)
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %s", s.table, uid, err)
	}

	return nil
}

func (s *postgresStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	var payload []byte
	err := s.querier(c).QueryRowContext(c, fmt.Sprintf(
		`SELECT payload FROM %s WHERE uid = $1`, s.table), uid).Scan(&payload)
	if err == sql.ErrNoRows {
		return *value, false, nil
	}
	if err != nil {
		return *value, false, fmt.Errorf("error fetching entity %s with uid %s: %s", s.table, uid, err)
	}

	err = json.Unmarshal(payload, value)
	if err != nil {
		return *value, false, fmt.Errorf("error unmarshalling entity %s with uid %s: %s", s.table, uid, err)
	}

	return *value, true, nil
}

func (s *postgresStore[T]) List(c context.Context) ([]T, error) {
	return s.selectPayloads(c, fmt.Sprintf(`SELECT payload FROM %s LIMIT 100`, s.table))
}

// Query filters on top-level JSON fields of the stored payload.
func (s *postgresStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s`, s.table)

	args := []any{}
	clauses := []string{}
	for _, f := range filters {
		args = append(args, fmt.Sprintf("%v", f.Value))
		clauses = append(clauses, fmt.Sprintf("payload->>'%s' %s $%d", f.Field, f.Compare, len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	if orderByField != "" {
		query += fmt.Sprintf(" ORDER BY payload->>'%s'", orderByField)
	}

	return s.selectPayloads(c, query, args...)
}

func (s *postgresStore[T]) selectPayloads(c context.Context, query string, args ...any) ([]T, error) {
	rows, err := s.querier(c).QueryContext(c, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying entities %s: %s", s.table, err)
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("error scanning entity %s: %s", s.table, err)
		}
		value := new(T)
		if err := json.Unmarshal(payload, value); err != nil {
			return nil, fmt.Errorf("error unmarshalling entity %s: %s", s.table, err)
		}
		results = append(results, *value)
	}

	return results, rows.Err()
}
