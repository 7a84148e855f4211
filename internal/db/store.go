// Package db defines the persistence contract of the API. The postgres and
// sqlite subpackages implement it; dbtest holds the conformance suite both
// must pass.
package db

import (
	"context"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

// ToggleResult reports what a toggle call did to the relation row.
type ToggleResult int

const (
	Added ToggleResult = iota + 1
	Removed
)

func (r ToggleResult) String() string {
	switch r {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Store is implemented by every backend. Lookups of missing rows return an
// error matching apperr.ErrNotFound; unique violations on users match
// apperr.ErrConflict. A viewerID of 0 means an anonymous caller.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error)

	CreatePost(ctx context.Context, p *models.BlogPost) error
	GetPost(ctx context.Context, id int64) (*models.BlogPost, error)
	ListPublishedPosts(ctx context.Context, f models.PostFilter) ([]models.BlogPost, error)
	IncrementPostViews(ctx context.Context, id int64) error
	PostEngagement(ctx context.Context, postID, viewerID int64) (models.PostEngagement, error)
	// PostEngagements loads the engagement of a page of posts in one query.
	// Ids that do not exist are absent from the map.
	PostEngagements(ctx context.Context, postIDs []int64, viewerID int64) (map[int64]models.PostEngagement, error)

	CreateComment(ctx context.Context, c *models.Comment) error
	ListApprovedComments(ctx context.Context, postID int64) ([]models.Comment, error)

	// ToggleLike deletes the (user, post) row if present, inserts it otherwise.
	ToggleLike(ctx context.Context, userID, postID int64) (ToggleResult, error)

	CreateProtest(ctx context.Context, p *models.Protest) error
	GetProtest(ctx context.Context, id int64) (*models.Protest, error)
	ListApprovedProtests(ctx context.Context, f models.ProtestFilter) ([]models.Protest, error)
	IncrementProtestViews(ctx context.Context, id int64) error
	ProtestEngagement(ctx context.Context, protestID, viewerID int64) (models.ProtestEngagement, error)
	ProtestEngagements(ctx context.Context, protestIDs []int64, viewerID int64) (map[int64]models.ProtestEngagement, error)
	SetProtestStatus(ctx context.Context, protestID int64, status models.ProtestStatus, adminID int64, notes string) (*models.Protest, error)
	ProtestStatusHistory(ctx context.Context, protestID int64) ([]models.ProtestStatusChange, error)

	// ToggleSupport deletes the (user, protest) row if present, inserts it otherwise.
	ToggleSupport(ctx context.Context, userID, protestID int64) (ToggleResult, error)

	CreateProtestUpdate(ctx context.Context, u *models.ProtestUpdate) error
	ListProtestUpdates(ctx context.Context, protestID int64) ([]models.ProtestUpdate, error)
}
