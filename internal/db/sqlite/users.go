package sqlite

import (
	"context"
	"strings"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

const userColumns = `id, username, email, password_hash, role, city, bio, phone_number,
    organization_name, contact_person, cause_focus, mission, profile_image,
    facebook_url, twitter_url, website_url, is_verified, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
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

// CreateUser inserts the account and fills in its id and timestamps.
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, email, password_hash, role, city, bio,
        phone_number, organization_name, contact_person, cause_focus, mission, profile_image,
        facebook_url, twitter_url, website_url, is_verified, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, strings.ToLower(u.Email), u.PasswordHash, u.Role, u.City, u.Bio,
		u.PhoneNumber, u.OrganizationName, u.ContactPerson, u.CauseFocus, u.Mission, u.ProfileImage,
		u.FacebookURL, u.TwitterURL, u.WebsiteURL, u.IsVerified, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "users.email") {
				return apperr.Conflict("email")
			}
			return apperr.Conflict("username")
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	return u, notFound(err, "User")
}

// GetUserByUsername matches case-insensitively.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username))
	return u, notFound(err, "User")
}

// UpdateProfile applies the non-nil fields and returns the stored user.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	sets := []string{"updated_at = ?"}
	args := []any{r.now()}
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
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

	res, err := r.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("email")
		}
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, apperr.NotFound("User")
	}
	return r.GetUserByID(ctx, id)
}
