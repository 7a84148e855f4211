package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

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

func scanProtest(row pgx.Row) (*models.Protest, error) {
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

// CreateProtest stores the protest as pending and unverified.
func (r *Repository) CreateProtest(ctx context.Context, p *models.Protest) error {
	var id int64
	err := r.Pool.QueryRow(ctx, `INSERT INTO protests (title, description, cause, organizer_id,
		organizer_contact, city, specific_location, latitude, longitude, start_datetime, end_datetime,
		expected_participants, poster, supporting_documents, status, is_verified, is_peaceful,
		safety_guidelines, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, FALSE, $16, $17, $18, $18)
		RETURNING id`,
		p.Title, p.Description, p.Cause, p.OrganizerID, p.OrganizerContact, p.City, p.SpecificLocation,
		p.Latitude, p.Longitude, p.StartDatetime, p.EndDatetime, p.ExpectedParticipants,
		p.Poster, p.SupportingDocuments, models.StatusPending, p.IsPeaceful, p.SafetyGuidelines, r.now(),
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("User")
		}
		return err
	}
	stored, err := r.GetProtest(ctx, id)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

func (r *Repository) GetProtest(ctx context.Context, id int64) (*models.Protest, error) {
	p, err := scanProtest(r.Pool.QueryRow(ctx, "SELECT "+protestColumns+protestFrom+" WHERE p.id = $1", id))
	return p, notFound(err, "Protest")
}

func (r *Repository) ListApprovedProtests(ctx context.Context, f models.ProtestFilter) ([]models.Protest, error) {
	q := &query{}
	q.where("p.status = ?", models.StatusApproved)
	if f.City != "" {
		q.where("p.city = ?", f.City)
	}
	if f.Cause != "" {
		q.where("p.cause = ?", f.Cause)
	}
	if f.Status != "" {
		q.where("p.status = ?", f.Status)
	}

	rows, err := r.Pool.Query(ctx,
		"SELECT "+protestColumns+protestFrom+q.clause()+" ORDER BY p.created_at DESC, p.id DESC", q.args...)
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
	tag, err := r.Pool.Exec(ctx, "UPDATE protests SET views_count = views_count + 1 WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Protest")
	}
	return nil
}

func (r *Repository) ProtestEngagement(ctx context.Context, protestID, viewerID int64) (models.ProtestEngagement, error) {
	var e models.ProtestEngagement
	err := r.Pool.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM supports WHERE protest_id = $1),
		EXISTS(SELECT 1 FROM supports WHERE protest_id = $1 AND user_id = $2)`,
		protestID, viewerID).Scan(&e.SupporterCount, &e.IsSupported)
	return e, err
}

func (r *Repository) ProtestEngagements(ctx context.Context, protestIDs []int64, viewerID int64) (map[int64]models.ProtestEngagement, error) {
	byProtest := make(map[int64]models.ProtestEngagement, len(protestIDs))
	if len(protestIDs) == 0 {
		return byProtest, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT p.id,
		(SELECT COUNT(*) FROM supports s WHERE s.protest_id = p.id),
		EXISTS(SELECT 1 FROM supports s WHERE s.protest_id = p.id AND s.user_id = $1)
		FROM protests p WHERE p.id = ANY($2)`, viewerID, protestIDs)
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

// SetProtestStatus updates the status and writes the history row in one
// transaction.
func (r *Repository) SetProtestStatus(ctx context.Context, protestID int64, status models.ProtestStatus, adminID int64, notes string) (*models.Protest, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := r.now()
	var sql string
	var args []any
	switch status {
	case models.StatusApproved:
		sql = "UPDATE protests SET status = $1, is_verified = TRUE, verified_at = $2, verification_notes = $3, updated_at = $2 WHERE id = $4"
		args = []any{status, now, notes, protestID}
	case models.StatusRejected:
		sql = "UPDATE protests SET status = $1, is_verified = FALSE, verified_at = NULL, verification_notes = $2, updated_at = $3 WHERE id = $4"
		args = []any{status, notes, now, protestID}
	default:
		sql = "UPDATE protests SET status = $1, updated_at = $2 WHERE id = $3"
		args = []any{status, now, protestID}
	}
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Protest")
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO protest_status_history (protest_id, status, notes, admin_id, created_at) VALUES ($1, $2, $3, $4, $5)",
		protestID, status, notes, adminID, now,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetProtest(ctx, protestID)
}

func (r *Repository) ProtestStatusHistory(ctx context.Context, protestID int64) ([]models.ProtestStatusChange, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, protest_id, status, notes, admin_id, created_at
		FROM protest_status_history WHERE protest_id = $1 ORDER BY created_at DESC, id DESC`, protestID)
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

func (r *Repository) CreateProtestUpdate(ctx context.Context, u *models.ProtestUpdate) error {
	err := r.Pool.QueryRow(ctx, `WITH ins AS (
			INSERT INTO protest_updates (protest_id, author_id, update_type, title, text, image,
				is_important, is_verified, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, author_id, created_at
		)
		SELECT ins.id, u.username, ins.created_at FROM ins JOIN users u ON u.id = ins.author_id`,
		u.ProtestID, u.AuthorID, u.UpdateType, u.Title, u.Text, u.Image, u.IsImportant, u.IsVerified, r.now(),
	).Scan(&u.ID, &u.AuthorName, &u.CreatedAt)
	if err != nil && isForeignKeyViolation(err) {
		return apperr.NotFound("Protest")
	}
	return err
}

func (r *Repository) ListProtestUpdates(ctx context.Context, protestID int64) ([]models.ProtestUpdate, error) {
	rows, err := r.Pool.Query(ctx, `SELECT pu.id, pu.protest_id, pu.author_id, u.username, pu.update_type,
		pu.title, pu.text, pu.image, pu.is_important, pu.is_verified, pu.created_at
		FROM protest_updates pu JOIN users u ON u.id = pu.author_id
		WHERE pu.protest_id = $1 ORDER BY pu.created_at DESC, pu.id DESC`, protestID)
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
