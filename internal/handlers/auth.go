package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/auth"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/middleware"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

type registerRequest struct {
	Username    string      `json:"username" validate:"required,max=150"`
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"required"`
	Password2   string      `json:"password2" validate:"required"`
	City        models.City `json:"city" validate:"omitempty,city"`
	PhoneNumber string      `json:"phone_number" validate:"max=15"`
	Role        string      `json:"role" validate:"omitempty,oneof=user organizer"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a user or organizer account. Admin accounts are only
// created from the command line.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}

	if req.Password != req.Password2 {
		handleError(w, r, apperr.Invalid("password", "Password fields didn't match."))
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		handleError(w, r, apperr.Invalid("password", err.Error()))
		return
	}

	role := models.RoleUser
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			handleError(w, r, apperr.Invalid("role", err.Error()))
			return
		}
		role = parsed
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		City:         req.City,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := h.DB.CreateUser(r.Context(), user); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login checks the credentials, starts a cookie session and returns a
// bearer token for API clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}

	invalid := apperr.Invalid("non_field_errors", "Unable to login with provided credentials.")
	user, err := h.DB.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			handleError(w, r, invalid)
			return
		}
		handleError(w, r, err)
		return
	}
	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		handleError(w, r, invalid)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, _ := h.Sessions.Get(r, middleware.SessionName)
	session.Values[middleware.SessionUserKey] = user.ID
	if err := session.Save(r, w); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, middleware.SessionName)
	delete(session.Values, middleware.SessionUserKey)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		handleError(w, r, err)
		return
	}
	writeMessage(w, "Logged out successfully")
}

type profileRequest struct {
	Email            *string      `json:"email" validate:"omitempty,email"`
	City             *models.City `json:"city" validate:"omitempty,city"`
	Bio              *string      `json:"bio"`
	PhoneNumber      *string      `json:"phone_number" validate:"omitempty,max=15"`
	OrganizationName *string      `json:"organization_name" validate:"omitempty,max=200"`
	ContactPerson    *string      `json:"contact_person" validate:"omitempty,max=100"`
	CauseFocus       *string      `json:"cause_focus" validate:"omitempty,max=200"`
	Mission          *string      `json:"mission"`
	ProfileImage     *string      `json:"profile_image"`
	FacebookURL      *string      `json:"facebook_url" validate:"omitempty,url"`
	TwitterURL       *string      `json:"twitter_url" validate:"omitempty,url"`
	WebsiteURL       *string      `json:"website_url" validate:"omitempty,url"`
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.CurrentUser(r.Context()))
}

// UpdateProfile applies a partial update. The role is not editable here.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		handleError(w, r, err)
		return
	}

	user := middleware.CurrentUser(r.Context())
	updated, err := h.DB.UpdateProfile(r.Context(), user.ID, models.ProfileUpdate{
		Email:            req.Email,
		City:             req.City,
		Bio:              req.Bio,
		PhoneNumber:      req.PhoneNumber,
		OrganizationName: req.OrganizationName,
		ContactPerson:    req.ContactPerson,
		CauseFocus:       req.CauseFocus,
		Mission:          req.Mission,
		ProfileImage:     req.ProfileImage,
		FacebookURL:      req.FacebookURL,
		TwitterURL:       req.TwitterURL,
		WebsiteURL:       req.WebsiteURL,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
