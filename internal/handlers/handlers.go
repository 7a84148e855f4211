// Package handlers implements the JSON API. Each handler decodes and
// validates its request, applies policy, calls the store and shapes the
// response.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/auth"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/observability"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/storage"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	DB       db.Store
	Sessions sessions.Store
	Tokens   *auth.Tokens
	Blob     storage.Blob
	Metrics  *observability.Metrics

	// Now is the request clock used by the time window rules.
	Now func() time.Time
}

func New(store db.Store, cookies sessions.Store, tokens *auth.Tokens, blob storage.Blob, metrics *observability.Metrics) *Handler {
	return &Handler{
		DB:       store,
		Sessions: cookies,
		Tokens:   tokens,
		Blob:     blob,
		Metrics:  metrics,
		Now:      time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps the error taxonomy onto status codes. Anything outside
// it is logged and reported as a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperr.ValidationError
	var conflict *apperr.ConflictError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			conflict.Field: "a user with that " + conflict.Field + " already exists",
		})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON body. Unknown keys, including read-only fields
// such as author or status, are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.Invalid(typeErr.Field, "invalid value")
		}
		return apperr.Invalid("non_field_errors", "malformed JSON body")
	}
	return nil
}

// idParam parses a numeric path parameter. A malformed id cannot match any
// row, so it is reported as not found for entity.
func idParam(r *http.Request, name, entity string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(entity)
	}
	return id, nil
}
