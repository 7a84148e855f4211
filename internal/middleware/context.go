package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

const (
	SessionName    = "session"
	SessionUserKey = "user_id"
)

type contextKey struct{}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// CurrentUser returns the authenticated caller, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(contextKey{}).(*models.User)
	return u
}

// ViewerID is the caller's id, 0 when anonymous.
func ViewerID(ctx context.Context) int64 {
	if u := CurrentUser(ctx); u != nil {
		return u.ID
	}
	return 0
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
