package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

const userColumns = `id, username, email, password_hash, role, city, bio, phone_number,
	organization_name, contact_person, cause_focus, mission, profile_image,
	facebook_url, twitter_url, website_url, is_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.City, &u.Bio,
		&u.PhoneNumber, &u.OrganizationName, &u.ContactPerson, &u.CauseFocus, &u.Mission,
		&u.ProfileImage, &u.FacebookURL, &u.TwitterURL, &u.WebsiteURL, &u.IsVerified,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func userConflict(err error) error {
	code, constraint := pgCode(err)
	if code != codeUniqueViolation {
		return err
	}
	if strings.Contains(constraint, "email") {
		return apperr.Conflict("email")
	}
	return apperr.Conflict("username")
}

func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	now := r.now()
	u.Email = strings.ToLower(u.Email)
	err := r.Pool.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, role, city, bio,
		phone_number, organization_name, contact_person, cause_focus, mission, profile_image,
		facebook_url, twitter_url, website_url, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
		RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.Role, u.City, u.Bio,
		u.PhoneNumber, u.OrganizationName, u.ContactPerson, u.CauseFocus, u.Mission, u.ProfileImage,
		u.FacebookURL, u.TwitterURL, u.WebsiteURL, u.IsVerified, now,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return userConflict(err)
	}
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.Pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	return u, notFound(err, "User")
}

// GetUserByUsername matches case-insensitively.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.Pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE lower(username) = lower($1)", username))
	return u, notFound(err, "User")
}

// UpdateProfile applies the non-nil fields and returns the stored user.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	sets := []string{"updated_at = $1"}
	args := []any{r.now()}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if upd.Email != nil {
		add("email", strings.ToLower(*upd.Email))
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.Bio != nil {
		add("bio", *upd.Bio)
	}
	if upd.PhoneNumber != nil {
		add("phone_number", *upd.PhoneNumber)
	}
	if upd.OrganizationName != nil {
		add("organization_name", *upd.OrganizationName)
	}
	if upd.ContactPerson != nil {
		add("contact_person", *upd.ContactPerson)
	}
	if upd.CauseFocus != nil {
		add("cause_focus", *upd.CauseFocus)
	}
	if upd.Mission != nil {
		add("mission", *upd.Mission)
	}
	if upd.ProfileImage != nil {
		add("profile_image", *upd.ProfileImage)
	}
	if upd.FacebookURL != nil {
		add("facebook_url", *upd.FacebookURL)
	}
	if upd.TwitterURL != nil {
		add("twitter_url", *upd.TwitterURL)
	}
	if upd.WebsiteURL != nil {
		add("website_url", *upd.WebsiteURL)
	}
	args = append(args, id)

	u, err := scanUser(r.Pool.QueryRow(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = $"+strconv.Itoa(len(args))+" RETURNING "+userColumns,
		args...))
	if err != nil {
		if code, _ := pgCode(err); code == codeUniqueViolation {
			return nil, apperr.Conflict("email")
		}
		return nil, notFound(err, "User")
	}
	return u, nil
}
