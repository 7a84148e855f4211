package handlers

import (
	"context"
	"time"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/policy"
)

type postView struct {
	*models.BlogPost
	LikeCount    int  `json:"like_count"`
	CommentCount int  `json:"comment_count"`
	IsLiked      bool `json:"is_liked"`
}

type protestView struct {
	*models.Protest
	SupporterCount int  `json:"supporter_count"`
	IsSupported    bool `json:"is_supported"`
	IsUpcoming     bool `json:"is_upcoming"`
	IsOngoing      bool `json:"is_ongoing"`
	IsCompleted    bool `json:"is_completed"`
}

func newPostView(p *models.BlogPost, e models.PostEngagement) postView {
	return postView{BlogPost: p, LikeCount: e.LikeCount, CommentCount: e.CommentCount, IsLiked: e.IsLiked}
}

func newProtestView(p *models.Protest, e models.ProtestEngagement, now time.Time) protestView {
	state := policy.TemporalState(p.StartDatetime, p.EndDatetime, now)
	return protestView{
		Protest:        p,
		SupporterCount: e.SupporterCount,
		IsSupported:    e.IsSupported,
		IsUpcoming:     state == policy.Upcoming,
		IsOngoing:      state == policy.Ongoing,
		IsCompleted:    state == policy.Completed,
	}
}

// The derived fields are read from the store on every response.
func (h *Handler) postView(ctx context.Context, p *models.BlogPost, viewerID int64) (postView, error) {
	e, err := h.DB.PostEngagement(ctx, p.ID, viewerID)
	if err != nil {
		return postView{}, err
	}
	return newPostView(p, e), nil
}

func (h *Handler) protestView(ctx context.Context, p *models.Protest, viewerID int64, now time.Time) (protestView, error) {
	e, err := h.DB.ProtestEngagement(ctx, p.ID, viewerID)
	if err != nil {
		return protestView{}, err
	}
	return newProtestView(p, e, now), nil
}

// postViews loads the engagement of a whole page with one store call.
func (h *Handler) postViews(ctx context.Context, posts []models.BlogPost, viewerID int64) ([]postView, error) {
	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	byPost, err := h.DB.PostEngagements(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}
	views := make([]postView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i], byPost[posts[i].ID]))
	}
	return views, nil
}

func (h *Handler) protestViews(ctx context.Context, protests []models.Protest, viewerID int64, now time.Time) ([]protestView, error) {
	ids := make([]int64, len(protests))
	for i := range protests {
		ids[i] = protests[i].ID
	}
	byProtest, err := h.DB.ProtestEngagements(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}
	views := make([]protestView, 0, len(protests))
	for i := range protests {
		views = append(views, newProtestView(&protests[i], byProtest[protests[i].ID], now))
	}
	return views, nil
}
