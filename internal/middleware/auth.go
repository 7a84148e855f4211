package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/auth"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

// Authenticate resolves the caller from a bearer token or, failing that,
// the session cookie. A bad bearer token is rejected outright; a stale
// session is treated as anonymous.
func Authenticate(store db.Store, cookies sessions.Store, tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if header := r.Header.Get("Authorization"); header != "" {
				raw, ok := strings.CutPrefix(header, "Bearer ")
				if !ok {
					writeError(w, http.StatusUnauthorized, "invalid authorization header")
					return
				}
				userID, err := tokens.Parse(strings.TrimSpace(raw))
				if err != nil {
					writeError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				user, err := store.GetUserByID(ctx, userID)
				if err != nil {
					if errors.Is(err, apperr.ErrNotFound) {
						writeError(w, http.StatusUnauthorized, "invalid or expired token")
						return
					}
					slog.Error("load token user", "user_id", userID, "error", err)
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
				return
			}

			session, _ := cookies.Get(r, SessionName)
			if userID, ok := session.Values[SessionUserKey].(int64); ok {
				user, err := store.GetUserByID(ctx, userID)
				switch {
				case err == nil:
					ctx = WithUser(ctx, user)
				case errors.Is(err, apperr.ErrNotFound):
				default:
					slog.Error("load session user", "user_id", userID, "error", err)
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, apperr.ErrUnauthenticated.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits authenticated callers holding one of roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, apperr.ErrUnauthenticated.Error())
				return
			}
			if !slices.Contains(roles, user.Role) {
				writeError(w, http.StatusForbidden, "you do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
