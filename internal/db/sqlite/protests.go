package sqlite

import (
	"context"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

const protestColumns = `p.id, p.title, p.description, p.cause, p.organizer_id, u.username,
    p.organizer_contact, p.city, p.specific_location, p.latitude, p.longitude, p.start_datetime,
    p.end_datetime, p.expected_participants, p.poster, p.supporting_documents, p.status,
    p.is_verified, p.verification_notes, p.is_peaceful, p.safety_guidelines, p.views_count,
    p.created_at, p.updated_at, p.verified_at`

const protestFrom = ` FROM protests p JOIN users u ON u.id = p.organizer_id`

func scanProtest(row rowScanner) (*models.Protest, error) {
	p := &models.Protest{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Cause, &p.OrganizerID, &p.OrganizerName,
		&p.OrganizerContact, &p.City, &p.SpecificLocation, &p.Latitude, &p.Longitude, &p.StartDatetime,
		&p.EndDatetime, &p.ExpectedParticipants, &p.Poster, &p.SupportingDocuments, &p.Status,
		&p.IsVerified, &p.VerificationNotes, &p.IsPeaceful, &p.SafetyGuidelines, &p.ViewsCount,
		&p.CreatedAt, &p.UpdatedAt, &p.VerifiedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProtest stores the protest as pending and unverified whatever the
// caller put in those fields.
func (r *Repository) CreateProtest(ctx context.Context, p *models.Protest) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx, `INSERT INTO protests (title, description, cause, organizer_id,
        organizer_contact, city, specific_location, latitude, longitude, start_datetime, end_datetime,
        expected_participants, poster, supporting_documents, status, is_verified, verification_notes,
        is_peaceful, safety_guidelines, views_count, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, '', ?, ?, 0, ?, ?)`,
		p.Title, p.Description, p.Cause, p.OrganizerID, p.OrganizerContact, p.City, p.SpecificLocation,
		p.Latitude, p.Longitude, p.StartDatetime.UTC(), p.EndDatetime.UTC(), p.ExpectedParticipants,
		p.Poster, p.SupportingDocuments, models.StatusPending, p.IsPeaceful, p.SafetyGuidelines, now, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("User")
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetProtest(ctx, id)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

// GetProtest applies no visibility predicate.
func (r *Repository) GetProtest(ctx context.Context, id int64) (*models.Protest, error) {
	p, err := scanProtest(r.db.QueryRowContext(ctx, "SELECT "+protestColumns+protestFrom+" WHERE p.id = ?", id))
	return p, notFound(err, "Protest")
}

// ListApprovedProtests always filters on status = approved before the
// caller's filter, so a status filter other than approved yields nothing.
func (r *Repository) ListApprovedProtests(ctx context.Context, f models.ProtestFilter) ([]models.Protest, error) {
	conds := []string{"p.status = ?"}
	args := []any{models.StatusApproved}
	if f.City != "" {
		conds = append(conds, "p.city = ?")
		args = append(args, f.City)
	}
	if f.Cause != "" {
		conds = append(conds, "p.cause = ?")
		args = append(args, f.Cause)
	}
	if f.Status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, f.Status)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+protestColumns+protestFrom+whereClause(conds)+" ORDER BY p.created_at DESC, p.id DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	protests := []models.Protest{}
	for rows.Next() {
		p, err := scanProtest(rows)
		if err != nil {
			return nil, err
		}
		protests = append(protests, *p)
	}
	return protests, rows.Err()
}

func (r *Repository) IncrementProtestViews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE protests SET views_count = views_count + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("Protest")
	}
	return nil
}

func (r *Repository) ProtestEngagement(ctx context.Context, protestID, viewerID int64) (models.ProtestEngagement, error) {
	var e models.ProtestEngagement
	err := r.db.QueryRowContext(ctx, `SELECT
        (SELECT COUNT(*) FROM supports WHERE protest_id = ?),
        EXISTS(SELECT 1 FROM supports WHERE protest_id = ? AND user_id = ?)`,
		protestID, protestID, viewerID).Scan(&e.SupporterCount, &e.IsSupported)
	return e, err
}

func (r *Repository) ProtestEngagements(ctx context.Context, protestIDs []int64, viewerID int64) (map[int64]models.ProtestEngagement, error) {
	byProtest := make(map[int64]models.ProtestEngagement, len(protestIDs))
	if len(protestIDs) == 0 {
		return byProtest, nil
	}
	marks, args := inList(protestIDs)
	rows, err := r.db.QueryContext(ctx, `SELECT p.id,
        (SELECT COUNT(*) FROM supports s WHERE s.protest_id = p.id),
        EXISTS(SELECT 1 FROM supports s WHERE s.protest_id = p.id AND s.user_id = ?)
        FROM protests p WHERE p.id IN (`+marks+`)`, append([]any{viewerID}, args...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var e models.ProtestEngagement
		if err := rows.Scan(&id, &e.SupporterCount, &e.IsSupported); err != nil {
			return nil, err
		}
		byProtest[id] = e
	}
	return byProtest, rows.Err()
}

// SetProtestStatus moves a protest to status and records the transition.
// Approval marks the protest verified; rejection clears verification.
func (r *Repository) SetProtestStatus(ctx context.Context, protestID int64, status models.ProtestStatus, adminID int64, notes string) (*models.Protest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := r.now()
	var query string
	var args []any
	switch status {
	case models.StatusApproved:
		query = "UPDATE protests SET status = ?, is_verified = 1, verified_at = ?, verification_notes = ?, updated_at = ? WHERE id = ?"
		args = []any{status, now, notes, now, protestID}
	case models.StatusRejected:
		query = "UPDATE protests SET status = ?, is_verified = 0, verified_at = NULL, verification_notes = ?, updated_at = ? WHERE id = ?"
		args = []any{status, notes, now, protestID}
	default:
		query = "UPDATE protests SET status = ?, updated_at = ? WHERE id = ?"
		args = []any{status, now, protestID}
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperr.NotFound("Protest")
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO protest_status_history (protest_id, status, notes, admin_id, created_at) VALUES (?, ?, ?, ?, ?)",
		protestID, status, notes, adminID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetProtest(ctx, protestID)
}

func (r *Repository) ProtestStatusHistory(ctx context.Context, protestID int64) ([]models.ProtestStatusChange, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, protest_id, status, notes, admin_id, created_at
        FROM protest_status_history WHERE protest_id = ? ORDER BY created_at DESC, id DESC`, protestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []models.ProtestStatusChange{}
	for rows.Next() {
		var h models.ProtestStatusChange
		if err := rows.Scan(&h.ID, &h.ProtestID, &h.Status, &h.Notes, &h.AdminID, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *Repository) ToggleSupport(ctx context.Context, userID, protestID int64) (db.ToggleResult, error) {
	return r.toggle(ctx, "supports", "protests", "protest_id", "Protest", userID, protestID)
}

// CreateProtestUpdate appends an update to an existing protest.
func (r *Repository) CreateProtestUpdate(ctx context.Context, u *models.ProtestUpdate) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx, `INSERT INTO protest_updates (protest_id, author_id, update_type, title,
        text, image, is_important, is_verified, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ProtestID, u.AuthorID, u.UpdateType, u.Title, u.Text, u.Image, u.IsImportant, u.IsVerified, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("Protest")
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	var username string
	if err := r.db.QueryRowContext(ctx, "SELECT username FROM users WHERE id = ?", u.AuthorID).Scan(&username); err != nil {
		return notFound(err, "User")
	}
	u.ID = id
	u.AuthorName = username
	u.CreatedAt = now
	return nil
}

// ListProtestUpdates returns the updates of one protest, newest first.
func (r *Repository) ListProtestUpdates(ctx context.Context, protestID int64) ([]models.ProtestUpdate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pu.id, pu.protest_id, pu.author_id, u.username, pu.update_type,
        pu.title, pu.text, pu.image, pu.is_important, pu.is_verified, pu.created_at
        FROM protest_updates pu JOIN users u ON u.id = pu.author_id
        WHERE pu.protest_id = ? ORDER BY pu.created_at DESC, pu.id DESC`, protestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := []models.ProtestUpdate{}
	for rows.Next() {
		var u models.ProtestUpdate
		if err := rows.Scan(&u.ID, &u.ProtestID, &u.AuthorID, &u.AuthorName, &u.UpdateType, &u.Title,
			&u.Text, &u.Image, &u.IsImportant, &u.IsVerified, &u.CreatedAt); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}
