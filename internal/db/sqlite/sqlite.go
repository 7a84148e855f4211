// Package sqlite implements db.Store on SQLite for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
)

// Repository provides methods for working with the database.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ db.Store = (*Repository)(nil)

// New opens the database at path. ":memory:" gives a private in-memory
// database, which is what the tests use.
func New(path string) (*Repository, error) {
	dsn := "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Repository{db: conn, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && (se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	return err
}

func (r *Repository) exists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, table string, id int64) (bool, error) {
	var ok bool
	err := q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id = ?)", id).Scan(&ok)
	return ok, err
}

// toggle flips the (user, target) row inside one transaction. A unique
// violation on insert means a concurrent call already added the row.
func (r *Repository) toggle(ctx context.Context, table, targetTable, targetColumn, entity string, userID, targetID int64) (db.ToggleResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	ok, err := r.exists(ctx, tx, targetTable, targetID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.NotFound(entity)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE user_id = ? AND "+targetColumn+" = ?", userID, targetID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if err := tx.Commit(); err != nil {
			return 0, err
		}
		return db.Removed, nil
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO "+table+" (user_id, "+targetColumn+", created_at) VALUES (?, ?, ?)",
		userID, targetID, r.now())
	switch {
	case isUniqueViolation(err):
		return db.Added, nil
	case isForeignKeyViolation(err):
		return 0, apperr.NotFound(entity)
	case err != nil:
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return db.Added, nil
}

// inList returns "?, ?, ..." for n placeholders and the ids as arguments.
func inList(ids []int64) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return strings.Join(marks, ", "), args
}

// whereClause joins conditions with AND.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
