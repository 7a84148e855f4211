package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

const postColumns = `p.id, p.title, p.content, p.excerpt, p.author_id, u.username, p.category,
	p.featured_image, p.is_published, p.is_featured, p.views_count, p.created_at, p.updated_at,
	p.published_at`

const postFrom = ` FROM blog_posts p JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.AuthorID, &p.AuthorName, &p.Category,
		&p.FeaturedImage, &p.IsPublished, &p.IsFeatured, &p.ViewsCount, &p.CreatedAt, &p.UpdatedAt,
		&p.PublishedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) CreatePost(ctx context.Context, p *models.BlogPost) error {
	now := r.now()
	if p.IsPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	var id int64
	err := r.Pool.QueryRow(ctx, `INSERT INTO blog_posts (title, content, excerpt, author_id, category,
		featured_image, is_published, is_featured, created_at, updated_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9, $10) RETURNING id`,
		p.Title, p.Content, p.Excerpt, p.AuthorID, p.Category, p.FeaturedImage,
		p.IsPublished, p.IsFeatured, now, p.PublishedAt,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("User")
		}
		return err
	}
	stored, err := r.GetPost(ctx, id)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*models.BlogPost, error) {
	p, err := scanPost(r.Pool.QueryRow(ctx, "SELECT "+postColumns+postFrom+" WHERE p.id = $1", id))
	return p, notFound(err, "Blog post")
}

func (r *Repository) ListPublishedPosts(ctx context.Context, f models.PostFilter) ([]models.BlogPost, error) {
	q := &query{conds: []string{"p.is_published"}}
	if f.Category != "" {
		q.where("p.category = ?", f.Category)
	}
	if f.AuthorID != 0 {
		q.where("p.author_id = ?", f.AuthorID)
	}
	if f.Featured != nil {
		q.where("p.is_featured = ?", *f.Featured)
	}

	rows, err := r.Pool.Query(ctx,
		"SELECT "+postColumns+postFrom+q.clause()+" ORDER BY p.created_at DESC, p.id DESC", q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *Repository) IncrementPostViews(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, "UPDATE blog_posts SET views_count = views_count + 1 WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Blog post")
	}
	return nil
}

func (r *Repository) PostEngagement(ctx context.Context, postID, viewerID int64) (models.PostEngagement, error) {
	var e models.PostEngagement
	err := r.Pool.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM likes WHERE blog_post_id = $1),
		(SELECT COUNT(*) FROM comments WHERE blog_post_id = $1),
		EXISTS(SELECT 1 FROM likes WHERE blog_post_id = $1 AND user_id = $2)`,
		postID, viewerID).Scan(&e.LikeCount, &e.CommentCount, &e.IsLiked)
	return e, err
}

func (r *Repository) PostEngagements(ctx context.Context, postIDs []int64, viewerID int64) (map[int64]models.PostEngagement, error) {
	byPost := make(map[int64]models.PostEngagement, len(postIDs))
	if len(postIDs) == 0 {
		return byPost, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT p.id,
		(SELECT COUNT(*) FROM likes l WHERE l.blog_post_id = p.id),
		(SELECT COUNT(*) FROM comments c WHERE c.blog_post_id = p.id),
		EXISTS(SELECT 1 FROM likes l WHERE l.blog_post_id = p.id AND l.user_id = $1)
		FROM blog_posts p WHERE p.id = ANY($2)`, viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var e models.PostEngagement
		if err := rows.Scan(&id, &e.LikeCount, &e.CommentCount, &e.IsLiked); err != nil {
			return nil, err
		}
		byPost[id] = e
	}
	return byPost, rows.Err()
}

func (r *Repository) CreateComment(ctx context.Context, c *models.Comment) error {
	err := r.Pool.QueryRow(ctx, `WITH ins AS (
			INSERT INTO comments (blog_post_id, user_id, content, is_approved, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, $4, $4)
			RETURNING id, is_approved, created_at, updated_at, user_id
		)
		SELECT ins.id, u.username, ins.is_approved, ins.created_at, ins.updated_at
		FROM ins JOIN users u ON u.id = ins.user_id`,
		c.PostID, c.UserID, c.Content, r.now(),
	).Scan(&c.ID, &c.UserName, &c.IsApproved, &c.CreatedAt, &c.UpdatedAt)
	if err != nil && isForeignKeyViolation(err) {
		return apperr.NotFound("Blog post")
	}
	return err
}

func (r *Repository) ListApprovedComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := r.Pool.Query(ctx, `SELECT c.id, c.blog_post_id, c.user_id, u.username, c.content,
		c.is_approved, c.created_at, c.updated_at
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.blog_post_id = $1 AND c.is_approved
		ORDER BY c.created_at DESC, c.id DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.UserName, &c.Content,
			&c.IsApproved, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *Repository) ToggleLike(ctx context.Context, userID, postID int64) (db.ToggleResult, error) {
	return r.toggle(ctx, "likes", "blog_posts", "blog_post_id", "Blog post", userID, postID)
}
