// Package dbtest holds the behavioural suite every db.Store must pass.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

// Run executes the suite. newStore must return an empty, migrated store.
func Run(t *testing.T, newStore func(t *testing.T) db.Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s db.Store)
	}{
		{"Users", testUsers},
		{"DuplicateUsername", testDuplicateUsername},
		{"UpdateProfile", testUpdateProfile},
		{"PostVisibility", testPostVisibility},
		{"PostViews", testPostViews},
		{"Comments", testComments},
		{"ToggleLike", testToggleLike},
		{"ToggleLikeConcurrent", testToggleLikeConcurrent},
		{"ToggleNotFound", testToggleNotFound},
		{"ProtestVisibility", testProtestVisibility},
		{"ProtestStatus", testProtestStatus},
		{"ToggleSupport", testToggleSupport},
		{"ProtestUpdates", testProtestUpdates},
		{"Engagements", testEngagements},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

// RunUnapprovedComments checks that a comment taken down by moderation is
// left out of the comment list but still counted on the post. unapprove
// clears is_approved on one comment through the backend's own connection.
func RunUnapprovedComments(t *testing.T, s db.Store, unapprove func(t *testing.T, commentID int64)) {
	ctx := context.Background()
	author := createUser(t, s, models.RoleOrganizer)
	reader := createUser(t, s, models.RoleUser)
	p := createPost(t, s, author.ID, true)

	visible := &models.Comment{PostID: p.ID, UserID: reader.ID, Content: "Shared with my union"}
	hidden := &models.Comment{PostID: p.ID, UserID: reader.ID, Content: "spam link"}
	require.NoError(t, s.CreateComment(ctx, visible))
	require.NoError(t, s.CreateComment(ctx, hidden))
	unapprove(t, hidden.ID)

	comments, err := s.ListApprovedComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, visible.ID, comments[0].ID)

	e, err := s.PostEngagement(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, e.CommentCount)

	byPost, err := s.PostEngagements(ctx, []int64{p.ID}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, byPost[p.ID].CommentCount)
}

var seq int

func createUser(t *testing.T, s db.Store, role models.Role) *models.User {
	t.Helper()
	seq++
	u := &models.User{
		Username:     fmt.Sprintf("user%d", seq),
		Email:        fmt.Sprintf("User%d@Example.com", seq),
		PasswordHash: "hash",
		Role:         role,
		City:         "lahore",
		Bio:          "bio",
		PhoneNumber:  "03001234567",
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func createPost(t *testing.T, s db.Store, authorID int64, published bool) *models.BlogPost {
	t.Helper()
	p := &models.BlogPost{
		Title:       "Know your rights",
		Content:     "Article 16 guarantees peaceful assembly.",
		AuthorID:    authorID,
		Category:    "legal_rights",
		IsPublished: published,
	}
	require.NoError(t, s.CreatePost(context.Background(), p))
	return p
}

func createProtest(t *testing.T, s db.Store, organizerID int64) *models.Protest {
	t.Helper()
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	p := &models.Protest{
		Title:            "Water for Karachi",
		Description:      "March to the water board.",
		Cause:            "water",
		OrganizerID:      organizerID,
		City:             "karachi",
		SpecificLocation: "Teen Talwar",
		StartDatetime:    start,
		EndDatetime:      start.Add(3 * time.Hour),
		IsPeaceful:       true,
		Status:           models.StatusApproved,
		IsVerified:       true,
	}
	require.NoError(t, s.CreateProtest(context.Background(), p))
	return p
}

func testUsers(t *testing.T, s db.Store) {
	ctx := context.Background()
	u := createUser(t, s, models.RoleOrganizer)
	assert.NotZero(t, u.ID)

	got, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, models.RoleOrganizer, got.Role)
	assert.Equal(t, fmt.Sprintf("user%d@example.com", seq), got.Email)

	byName, err := s.GetUserByUsername(ctx, u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = s.GetUserByID(ctx, 999999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testDuplicateUsername(t *testing.T, s db.Store) {
	u := createUser(t, s, models.RoleUser)
	dup := &models.User{Username: u.Username, Email: "other@example.com", PasswordHash: "x", Role: models.RoleUser}

	err := s.CreateUser(context.Background(), dup)
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)

	dup = &models.User{Username: "someone-else", Email: u.Email, PasswordHash: "x", Role: models.RoleUser}
	err = s.CreateUser(context.Background(), dup)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)

	dup = &models.User{Username: "someone-else", Email: strings.ToUpper(u.Email), PasswordHash: "x", Role: models.RoleUser}
	err = s.CreateUser(context.Background(), dup)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func testUpdateProfile(t *testing.T, s db.Store) {
	u := createUser(t, s, models.RoleOrganizer)
	city := models.City("quetta")
	mission := "Clean water for every household"

	got, err := s.UpdateProfile(context.Background(), u.ID, models.ProfileUpdate{City: &city, Mission: &mission})
	require.NoError(t, err)
	assert.Equal(t, city, got.City)
	assert.Equal(t, mission, got.Mission)
	assert.Equal(t, u.Bio, got.Bio)

	_, err = s.UpdateProfile(context.Background(), 999999, models.ProfileUpdate{City: &city})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testPostVisibility(t *testing.T, s db.Store) {
	ctx := context.Background()
	author := createUser(t, s, models.RoleOrganizer)
	published := createPost(t, s, author.ID, true)
	draft := createPost(t, s, author.ID, false)

	assert.NotNil(t, published.PublishedAt)
	assert.Nil(t, draft.PublishedAt)
	assert.Equal(t, author.Username, published.AuthorName)

	posts, err := s.ListPublishedPosts(ctx, models.PostFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, published.ID, posts[0].ID)

	got, err := s.GetPost(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	posts, err = s.ListPublishedPosts(ctx, models.PostFilter{Category: "laws"})
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = s.GetPost(ctx, 999999)
	assert.EqualError(t, err, "Blog post not found")
}

func testPostViews(t *testing.T, s db.Store) {
	ctx := context.Background()
	author := createUser(t, s, models.RoleOrganizer)
	p := createPost(t, s, author.ID, true)

	require.NoError(t, s.IncrementPostViews(ctx, p.ID))
	require.NoError(t, s.IncrementPostViews(ctx, p.ID))

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewsCount)

	assert.ErrorIs(t, s.IncrementPostViews(ctx, 999999), apperr.ErrNotFound)
}

func testComments(t *testing.T, s db.Store) {
	ctx := context.Background()
	author := createUser(t, s, models.RoleOrganizer)
	reader := createUser(t, s, models.RoleUser)
	p := createPost(t, s, author.ID, true)

	c := &models.Comment{PostID: p.ID, UserID: reader.ID, Content: "Very useful"}
	require.NoError(t, s.CreateComment(ctx, c))
	assert.NotZero(t, c.ID)
	assert.True(t, c.IsApproved)
	assert.Equal(t, reader.Username, c.UserName)

	comments, err := s.ListApprovedComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Very useful", comments[0].Content)

	e, err := s.PostEngagement(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, e.CommentCount)

	err = s.CreateComment(ctx, &models.Comment{PostID: 999999, UserID: reader.ID, Content: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testToggleLike(t *testing.T, s db.Store) {
	ctx := context.Background()
	author := createUser(t, s, models.RoleOrganizer)
	reader := createUser(t, s, models.RoleUser)
	p := createPost(t, s, author.ID, true)

	res, err := s.ToggleLike(ctx, reader.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, db.Added, res)

	e, err := s.PostEngagement(ctx, p.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, e.LikeCount)
	assert.True(t, e.IsLiked)

	e, err = s.PostEngagement(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.False(t, e.IsLiked)

	res, err = s.ToggleLike(ctx, reader.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, db.Removed, res)

	e, err = s.PostEngagement(ctx, p.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, e.LikeCount)
	assert.False(t, e.IsLiked)
}

// Concurrent toggles from one user must never leave more than one row.
func testToggleLikeConcurrent(t *testing.T, s db.Store) {
	ctx := context.Background()
	author := createUser(t, s, models.RoleOrganizer)
	reader := createUser(t, s, models.RoleUser)
	p := createPost(t, s, author.ID, true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ToggleLike(ctx, reader.ID, p.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	e, err := s.PostEngagement(ctx, p.ID, reader.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, e.LikeCount, 1)
	assert.Equal(t, e.LikeCount == 1, e.IsLiked)
}

func testToggleNotFound(t *testing.T, s db.Store) {
	u := createUser(t, s, models.RoleUser)

	_, err := s.ToggleLike(context.Background(), u.ID, 999999)
	assert.EqualError(t, err, "Blog post not found")

	_, err = s.ToggleSupport(context.Background(), u.ID, 999999)
	assert.EqualError(t, err, "Protest not found")
}

func testProtestVisibility(t *testing.T, s db.Store) {
	ctx := context.Background()
	organizer := createUser(t, s, models.RoleOrganizer)
	pending := createProtest(t, s, organizer.ID)

	assert.Equal(t, models.StatusPending, pending.Status)
	assert.False(t, pending.IsVerified)
	assert.Equal(t, organizer.Username, pending.OrganizerName)

	list, err := s.ListApprovedProtests(ctx, models.ProtestFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetProtest(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.Title, got.Title)
	assert.True(t, got.StartDatetime.Equal(pending.StartDatetime))

	_, err = s.SetProtestStatus(ctx, pending.ID, models.StatusApproved, organizer.ID, "")
	require.NoError(t, err)

	list, err = s.ListApprovedProtests(ctx, models.ProtestFilter{City: "karachi"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = s.ListApprovedProtests(ctx, models.ProtestFilter{City: "lahore"})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.ListApprovedProtests(ctx, models.ProtestFilter{Status: models.StatusPending})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.IncrementProtestViews(ctx, pending.ID))
	got, err = s.GetProtest(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewsCount)
}

func testProtestStatus(t *testing.T, s db.Store) {
	ctx := context.Background()
	organizer := createUser(t, s, models.RoleOrganizer)
	admin := createUser(t, s, models.RoleAdmin)
	p := createProtest(t, s, organizer.ID)

	approved, err := s.SetProtestStatus(ctx, p.ID, models.StatusApproved, admin.ID, "permit checked")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.True(t, approved.IsVerified)
	assert.NotNil(t, approved.VerifiedAt)
	assert.Equal(t, "permit checked", approved.VerificationNotes)

	rejected, err := s.SetProtestStatus(ctx, p.ID, models.StatusRejected, admin.ID, "route unsafe")
	require.NoError(t, err)
	assert.False(t, rejected.IsVerified)
	assert.Nil(t, rejected.VerifiedAt)

	history, err := s.ProtestStatusHistory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.ElementsMatch(t,
		[]models.ProtestStatus{models.StatusApproved, models.StatusRejected},
		[]models.ProtestStatus{history[0].Status, history[1].Status})
	assert.Equal(t, admin.ID, history[0].AdminID)

	_, err = s.SetProtestStatus(ctx, 999999, models.StatusApproved, admin.ID, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testToggleSupport(t *testing.T, s db.Store) {
	ctx := context.Background()
	organizer := createUser(t, s, models.RoleOrganizer)
	supporter := createUser(t, s, models.RoleUser)
	p := createProtest(t, s, organizer.ID)

	want := []db.ToggleResult{db.Added, db.Removed, db.Added}
	for _, w := range want {
		res, err := s.ToggleSupport(ctx, supporter.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, w, res)
	}

	e, err := s.ProtestEngagement(ctx, p.ID, supporter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, e.SupporterCount)
	assert.True(t, e.IsSupported)

	e, err = s.ProtestEngagement(ctx, p.ID, organizer.ID)
	require.NoError(t, err)
	assert.False(t, e.IsSupported)
}

func testProtestUpdates(t *testing.T, s db.Store) {
	ctx := context.Background()
	organizer := createUser(t, s, models.RoleOrganizer)
	p := createProtest(t, s, organizer.ID)

	u := &models.ProtestUpdate{
		ProtestID:  p.ID,
		AuthorID:   organizer.ID,
		UpdateType: "location",
		Title:      "Moved to Frere Hall",
		Text:       "Assemble at the gate.",
		IsVerified: true,
	}
	require.NoError(t, s.CreateProtestUpdate(ctx, u))
	assert.NotZero(t, u.ID)
	assert.Equal(t, organizer.Username, u.AuthorName)

	updates, err := s.ListProtestUpdates(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, models.UpdateType("location"), updates[0].UpdateType)

	err = s.CreateProtestUpdate(ctx, &models.ProtestUpdate{ProtestID: 999999, AuthorID: organizer.ID, Title: "x", Text: "x", UpdateType: models.UpdateInfo})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func testEngagements(t *testing.T, s db.Store) {
	ctx := context.Background()
	author := createUser(t, s, models.RoleOrganizer)
	reader := createUser(t, s, models.RoleUser)
	liked := createPost(t, s, author.ID, true)
	quiet := createPost(t, s, author.ID, true)

	_, err := s.ToggleLike(ctx, reader.ID, liked.ID)
	require.NoError(t, err)
	_, err = s.ToggleLike(ctx, author.ID, liked.ID)
	require.NoError(t, err)
	require.NoError(t, s.CreateComment(ctx, &models.Comment{PostID: quiet.ID, UserID: reader.ID, Content: "Thanks"}))

	byPost, err := s.PostEngagements(ctx, []int64{liked.ID, quiet.ID, 999999}, reader.ID)
	require.NoError(t, err)
	assert.Len(t, byPost, 2)
	assert.Equal(t, models.PostEngagement{LikeCount: 2, IsLiked: true}, byPost[liked.ID])
	assert.Equal(t, models.PostEngagement{CommentCount: 1}, byPost[quiet.ID])

	byPost, err = s.PostEngagements(ctx, nil, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, byPost)

	supported := createProtest(t, s, author.ID)
	other := createProtest(t, s, author.ID)
	_, err = s.ToggleSupport(ctx, reader.ID, supported.ID)
	require.NoError(t, err)

	byProtest, err := s.ProtestEngagements(ctx, []int64{supported.ID, other.ID}, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProtestEngagement{SupporterCount: 1, IsSupported: true}, byProtest[supported.ID])
	assert.Equal(t, models.ProtestEngagement{}, byProtest[other.ID])

	byProtest, err = s.ProtestEngagements(ctx, []int64{supported.ID}, 0)
	require.NoError(t, err)
	assert.False(t, byProtest[supported.ID].IsSupported)
}
