package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/middleware"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/policy"
)

type postRequest struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Content       string          `json:"content" validate:"required"`
	Excerpt       string          `json:"excerpt" validate:"max=300"`
	Category      models.Category `json:"category" validate:"omitempty,category"`
	FeaturedImage string          `json:"featured_image"`
	IsPublished   bool            `json:"is_published"`
	IsFeatured    bool            `json:"is_featured"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListPosts returns published posts only, newest first.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.PostFilter{Category: models.Category(q.Get("category"))}
	if author := q.Get("author"); author != "" {
		id, err := strconv.ParseInt(author, 10, 64)
		if err != nil {
			handleError(w, r, apperr.Invalid("author", "enter a whole number"))
			return
		}
		filter.AuthorID = id
	}
	if featured := q.Get("featured"); featured != "" {
		b, err := strconv.ParseBool(featured)
		if err != nil {
			handleError(w, r, apperr.Invalid("featured", "enter true or false"))
			return
		}
		filter.Featured = &b
	}

	posts, err := h.DB.ListPublishedPosts(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	views, err := h.postViews(r.Context(), posts, middleware.ViewerID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// CreatePost stores a post authored by the caller. Only admins may feature
// a post.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if !policy.CanCreateBlogPosts(user.Role) {
		handleError(w, r, apperr.Forbidden("you cannot create blog posts"))
		return
	}

	var req postRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Category == "" {
		req.Category = models.CategoryGeneral
	}

	post := &models.BlogPost{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		AuthorID:      user.ID,
		Category:      req.Category,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
		IsFeatured:    req.IsFeatured && policy.CanManageContent(user.Role),
	}
	if err := h.DB.CreatePost(r.Context(), post); err != nil {
		handleError(w, r, err)
		return
	}

	v, err := h.postView(r.Context(), post, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// GetPost returns any post by id, published or not, and counts the view.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Blog post")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := h.DB.IncrementPostViews(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	post, err := h.DB.GetPost(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	v, err := h.postView(r.Context(), post, middleware.ViewerID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Blog post")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := h.DB.GetPost(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	comments, err := h.DB.ListApprovedComments(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Blog post")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}

	comment := &models.Comment{
		PostID:  id,
		UserID:  middleware.ViewerID(r.Context()),
		Content: req.Content,
	}
	if err := h.DB.CreateComment(r.Context(), comment); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Blog post")
	if err != nil {
		handleError(w, r, err)
		return
	}

	res, err := h.DB.ToggleLike(r.Context(), middleware.ViewerID(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.Metrics.Toggle("like", res.String())

	if res == db.Removed {
		writeMessage(w, "Post like removed")
		return
	}
	writeMessage(w, "Post liked successfully")
}
