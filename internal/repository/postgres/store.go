// Package postgres is the relational storage adapter built on sqlx and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/repository"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Table names.
const (
	tableUsers           = "users"
	tableStudents        = "students"
	tableClasses         = "classes"
	tableAttendance      = "attendance"
	tableTestResults     = "test_results"
	tableInstallments    = "installments"
	tableTeacherPayments = "teacher_payments"
	tableEvents          = "events"
	tablePublications    = "publication_notes"
	tableStudentNotes    = "student_notes"
)

// QueryObserver receives the duration of every statement, labelled by operation.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// Store implements repository.Store on PostgreSQL.
type Store struct {
	db       *sqlx.DB
	observer QueryObserver
}

var _ repository.Store = (*Store)(nil)

// Option customises a Store.
type Option func(*Store)

// WithObserver reports statement timings to o.
func WithObserver(o QueryObserver) Option {
	return func(s *Store) { s.observer = o }
}

// New wraps an open connection pool. The schema is expected to be migrated already.
func New(db *sqlx.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) observe(op string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveDBQuery("postgres."+op, time.Since(start))
	}
}

func translate(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, fmt.Sprintf("%s: duplicate %s", op, pqErr.Constraint))
		case foreignKeyViolation:
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("%s: unknown reference %s", op, pqErr.Constraint))
		}
	}
	return repository.Persistence(op, err)
}

func columnList(fields mapper.FieldSet) string {
	return strings.Join(mapper.Columns(fields), ", ")
}

func selectQuery(table string, fields mapper.FieldSet, where string) string {
	query := fmt.Sprintf("SELECT %s FROM %s", columnList(fields), table)
	if where != "" {
		query += " WHERE " + where
	}
	return query
}

// insertQuery renders a named INSERT for every column except id.
func insertQuery(table string, fields mapper.FieldSet) string {
	cols := mapper.Columns(fields)[1:]
	named := make([]string, len(cols))
	for i, col := range cols {
		named[i] = ":" + col
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(cols, ", "), strings.Join(named, ", "), columnList(fields))
}

// getOne scans a single row into dest. A missing row yields found == false and no error.
func (s *Store) getOne(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) (bool, error) {
	defer s.observe(op, time.Now())
	if err := s.db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, translate(op, err)
	}
	return true, nil
}

func (s *Store) selectAll(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	defer s.observe(op, time.Now())
	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return translate(op, err)
	}
	return nil
}

// insert binds row by its db tags and scans the RETURNING row into dest.
func (s *Store) insert(ctx context.Context, op, table string, fields mapper.FieldSet, row, dest interface{}) error {
	query, args, err := sqlx.Named(insertQuery(table, fields), row)
	if err != nil {
		return repository.Persistence(op, err)
	}
	_, err = s.getOne(ctx, op, dest, s.db.Rebind(query), args...)
	return err
}

// update applies a domain-keyed partial to one row. Columns are written in field-set order.
func (s *Store) update(ctx context.Context, op, table string, fields mapper.FieldSet, id int64, partial map[string]interface{}, dest interface{}) (bool, error) {
	native := mapper.ToNative(fields, partial)
	sets := make([]string, 0, len(native))
	args := make([]interface{}, 0, len(native)+1)
	for _, col := range mapper.Columns(fields) {
		value, ok := native[col]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(sets, ", "), len(args), columnList(fields))
	return s.getOne(ctx, op, dest, query, args...)
}

func toModels[R, M any](rows []R, fn func(R) M) []M {
	out := make([]M, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

func found[R, M any](ok bool, row R, fn func(R) M) *M {
	if !ok {
		return nil
	}
	m := fn(row)
	return &m
}
