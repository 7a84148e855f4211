package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/middleware"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/policy"
)

type protestRequest struct {
	Title                string       `json:"title" validate:"required,max=200"`
	Description          string       `json:"description" validate:"required"`
	Cause                models.Cause `json:"cause" validate:"required,cause"`
	City                 models.City  `json:"city" validate:"required,city"`
	SpecificLocation     string       `json:"specific_location" validate:"required,max=300"`
	Latitude             *float64     `json:"latitude" validate:"omitempty,latitude"`
	Longitude            *float64     `json:"longitude" validate:"omitempty,longitude"`
	StartDatetime        *time.Time   `json:"start_datetime" validate:"required"`
	EndDatetime          *time.Time   `json:"end_datetime" validate:"required"`
	ExpectedParticipants int          `json:"expected_participants" validate:"gte=0"`
	OrganizerContact     string       `json:"organizer_contact" validate:"max=15"`
	Poster               string       `json:"poster"`
	SupportingDocuments  string       `json:"supporting_documents"`
	IsPeaceful           *bool        `json:"is_peaceful"`
	SafetyGuidelines     string       `json:"safety_guidelines"`
}

type statusRequest struct {
	Status models.ProtestStatus `json:"status" validate:"required"`
	Notes  string               `json:"notes"`
}

type updateRequest struct {
	UpdateType  models.UpdateType `json:"update_type" validate:"omitempty,update_type"`
	Title       string            `json:"title" validate:"required,max=200"`
	Text        string            `json:"text" validate:"required"`
	Image       string            `json:"image"`
	IsImportant bool              `json:"is_important"`
}

// ListProtests returns approved protests only. The status query parameter
// narrows that set further and cannot widen it.
func (h *Handler) ListProtests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ProtestFilter{
		City:   models.City(q.Get("city")),
		Cause:  models.Cause(q.Get("cause")),
		Status: models.ProtestStatus(q.Get("status")),
	}

	protests, err := h.DB.ListApprovedProtests(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	views, err := h.protestViews(r.Context(), protests, middleware.ViewerID(r.Context()), h.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// CreateProtest checks the role, then the caller's profile, then the body
// and the time window. New protests wait for moderation.
func (h *Handler) CreateProtest(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if err := policy.AuthorizeProtestCreation(user); err != nil {
		handleError(w, r, err)
		return
	}

	var req protestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := policy.ValidateProtestWindow(*req.StartDatetime, *req.EndDatetime, h.Now()); err != nil {
		handleError(w, r, err)
		return
	}

	contact := strings.TrimSpace(req.OrganizerContact)
	if contact == "" {
		contact = user.PhoneNumber
	}
	peaceful := true
	if req.IsPeaceful != nil {
		peaceful = *req.IsPeaceful
	}

	protest := &models.Protest{
		Title:                req.Title,
		Description:          req.Description,
		Cause:                req.Cause,
		OrganizerID:          user.ID,
		OrganizerContact:     contact,
		City:                 req.City,
		SpecificLocation:     req.SpecificLocation,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		StartDatetime:        req.StartDatetime.UTC(),
		EndDatetime:          req.EndDatetime.UTC(),
		ExpectedParticipants: req.ExpectedParticipants,
		Poster:               req.Poster,
		SupportingDocuments:  req.SupportingDocuments,
		IsPeaceful:           peaceful,
		SafetyGuidelines:     req.SafetyGuidelines,
	}
	if err := h.DB.CreateProtest(r.Context(), protest); err != nil {
		handleError(w, r, err)
		return
	}

	v, err := h.protestView(r.Context(), protest, user.ID, h.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// GetProtest returns any protest by id regardless of status and counts
// the view.
func (h *Handler) GetProtest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Protest")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := h.DB.IncrementProtestViews(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	protest, err := h.DB.GetProtest(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	v, err := h.protestView(r.Context(), protest, middleware.ViewerID(r.Context()), h.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) ToggleSupport(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Protest")
	if err != nil {
		handleError(w, r, err)
		return
	}

	res, err := h.DB.ToggleSupport(r.Context(), middleware.ViewerID(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.Metrics.Toggle("support", res.String())

	if res == db.Removed {
		writeMessage(w, "Protest support removed")
		return
	}
	writeMessage(w, "Protest supported successfully")
}

// SetProtestStatus is the admin moderation transition. Every call writes a
// history row.
func (h *Handler) SetProtestStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Protest")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}
	if !policy.ValidModerationTarget(req.Status) {
		handleError(w, r, apperr.Invalid("status", `"`+string(req.Status)+`" is not a valid choice`))
		return
	}

	admin := middleware.CurrentUser(r.Context())
	protest, err := h.DB.SetProtestStatus(r.Context(), id, req.Status, admin.ID, strings.TrimSpace(req.Notes))
	if err != nil {
		handleError(w, r, err)
		return
	}

	v, err := h.protestView(r.Context(), protest, admin.ID, h.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) ProtestStatusHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Protest")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := h.DB.GetProtest(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	history, err := h.DB.ProtestStatusHistory(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) ListProtestUpdates(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Protest")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := h.DB.GetProtest(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	updates, err := h.DB.ListProtestUpdates(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

// CreateProtestUpdate is open to the protest's organizer and to admins.
func (h *Handler) CreateProtestUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Protest")
	if err != nil {
		handleError(w, r, err)
		return
	}
	protest, err := h.DB.GetProtest(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	user := middleware.CurrentUser(r.Context())
	if !policy.CanPostProtestUpdate(user, protest) {
		handleError(w, r, apperr.Forbidden("only the organizer can post updates to this protest"))
		return
	}

	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.UpdateType == "" {
		req.UpdateType = models.UpdateInfo
	}

	update := &models.ProtestUpdate{
		ProtestID:   protest.ID,
		AuthorID:    user.ID,
		UpdateType:  req.UpdateType,
		Title:       strings.TrimSpace(req.Title),
		Text:        req.Text,
		Image:       req.Image,
		IsImportant: req.IsImportant,
		IsVerified:  true,
	}
	if err := h.DB.CreateProtestUpdate(r.Context(), update); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, update)
}
