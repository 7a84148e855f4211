// Package postgres implements db.Store on PostgreSQL through a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type Repository struct {
	Pool *pgxpool.Pool
	now  func() time.Time
}

var _ db.Store = (*Repository)(nil)

func New(ctx context.Context, databaseURL string) (*Repository, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Repository{Pool: pool, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (r *Repository) Close() error {
	r.Pool.Close()
	return nil
}

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeForeignKeyViolation
}

func notFound(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	return err
}

// toggle flips the (user, target) row inside one transaction. ON CONFLICT
// covers a concurrent insert of the same row, which leaves it present.
func (r *Repository) toggle(ctx context.Context, table, targetTable, targetColumn, entity string, userID, targetID int64) (db.ToggleResult, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var ok bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM "+targetTable+" WHERE id = $1)", targetID).Scan(&ok); err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.NotFound(entity)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE user_id = $1 AND "+targetColumn+" = $2", userID, targetID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() > 0 {
		if err := tx.Commit(ctx); err != nil {
			return 0, err
		}
		return db.Removed, nil
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO "+table+" (user_id, "+targetColumn+", created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		userID, targetID, r.now())
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperr.NotFound(entity)
		}
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return db.Added, nil
}

// query accumulates numbered conditions for a WHERE clause.
type query struct {
	conds []string
	args  []any
}

func (q *query) where(cond string, arg any) {
	q.args = append(q.args, arg)
	q.conds = append(q.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(q.args))))
}

func (q *query) clause() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}
