package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db/dbtest"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

// freshRepository connects to the throwaway database named by
// TEST_DATABASE_URL and recreates the schema.
func freshRepository(t *testing.T) *Repository {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	repo, err := New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	_, err = repo.Pool.Exec(ctx, `DROP TABLE IF EXISTS protest_status_history, protest_updates,
		supports, protests, likes, comments, blog_posts, users CASCADE`)
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(ctx))
	return repo
}

func TestRepository(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	dbtest.Run(t, func(t *testing.T) db.Store {
		return freshRepository(t)
	})
}

func TestUnapprovedComments(t *testing.T) {
	repo := freshRepository(t)

	dbtest.RunUnapprovedComments(t, repo, func(t *testing.T, commentID int64) {
		_, err := repo.Pool.Exec(context.Background(), "UPDATE comments SET is_approved = FALSE WHERE id = $1", commentID)
		require.NoError(t, err)
	})
}

// Emails written outside the store keep their case; the index still
// rejects a second account differing only in case.
func TestEmailUniqueIgnoresCase(t *testing.T) {
	repo := freshRepository(t)
	ctx := context.Background()

	_, err := repo.Pool.Exec(ctx, `INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
		VALUES ('imported', 'Imported@Example.com', 'x', 'user', now(), now())`)
	require.NoError(t, err)

	err = repo.CreateUser(ctx, &models.User{Username: "fresh", Email: "imported@example.com", PasswordHash: "x", Role: models.RoleUser})
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestQueryNumbersPlaceholders(t *testing.T) {
	q := &query{conds: []string{"p.is_published"}}
	q.where("p.category = ?", "laws")
	q.where("p.author_id = ?", int64(7))

	require.Equal(t, " WHERE p.is_published AND p.category = $1 AND p.author_id = $2", q.clause())
	require.Len(t, q.args, 2)
}
