package sqlite

import (
	"context"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

const postColumns = `p.id, p.title, p.content, p.excerpt, p.author_id, u.username, p.category,
    p.featured_image, p.is_published, p.is_featured, p.views_count, p.created_at, p.updated_at,
    p.published_at`

const postFrom = ` FROM blog_posts p JOIN users u ON u.id = p.author_id`

func scanPost(row rowScanner) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.AuthorID, &p.AuthorName, &p.Category,
		&p.FeaturedImage, &p.IsPublished, &p.IsFeatured, &p.ViewsCount, &p.CreatedAt, &p.UpdatedAt,
		&p.PublishedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePost inserts the post; published_at is stamped when it is published.
func (r *Repository) CreatePost(ctx context.Context, p *models.BlogPost) error {
	now := r.now()
	if p.IsPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO blog_posts (title, content, excerpt, author_id, category,
        featured_image, is_published, is_featured, views_count, created_at, updated_at, published_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		p.Title, p.Content, p.Excerpt, p.AuthorID, p.Category, p.FeaturedImage,
		p.IsPublished, p.IsFeatured, now, now, p.PublishedAt)
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
	stored, err := r.GetPost(ctx, id)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

// GetPost applies no visibility predicate.
func (r *Repository) GetPost(ctx context.Context, id int64) (*models.BlogPost, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, "SELECT "+postColumns+postFrom+" WHERE p.id = ?", id))
	return p, notFound(err, "Blog post")
}

// ListPublishedPosts always filters on is_published before the caller's filter.
func (r *Repository) ListPublishedPosts(ctx context.Context, f models.PostFilter) ([]models.BlogPost, error) {
	conds := []string{"p.is_published = 1"}
	var args []any
	if f.Category != "" {
		conds = append(conds, "p.category = ?")
		args = append(args, f.Category)
	}
	if f.AuthorID != 0 {
		conds = append(conds, "p.author_id = ?")
		args = append(args, f.AuthorID)
	}
	if f.Featured != nil {
		conds = append(conds, "p.is_featured = ?")
		args = append(args, *f.Featured)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+postColumns+postFrom+whereClause(conds)+" ORDER BY p.created_at DESC, p.id DESC", args...)
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
	res, err := r.db.ExecContext(ctx, "UPDATE blog_posts SET views_count = views_count + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("Blog post")
	}
	return nil
}

// PostEngagement counts likes and comments and checks the viewer's like.
func (r *Repository) PostEngagement(ctx context.Context, postID, viewerID int64) (models.PostEngagement, error) {
	var e models.PostEngagement
	err := r.db.QueryRowContext(ctx, `SELECT
        (SELECT COUNT(*) FROM likes WHERE blog_post_id = ?),
        (SELECT COUNT(*) FROM comments WHERE blog_post_id = ?),
        EXISTS(SELECT 1 FROM likes WHERE blog_post_id = ? AND user_id = ?)`,
		postID, postID, postID, viewerID).Scan(&e.LikeCount, &e.CommentCount, &e.IsLiked)
	return e, err
}

func (r *Repository) PostEngagements(ctx context.Context, postIDs []int64, viewerID int64) (map[int64]models.PostEngagement, error) {
	byPost := make(map[int64]models.PostEngagement, len(postIDs))
	if len(postIDs) == 0 {
		return byPost, nil
	}
	marks, args := inList(postIDs)
	rows, err := r.db.QueryContext(ctx, `SELECT p.id,
        (SELECT COUNT(*) FROM likes l WHERE l.blog_post_id = p.id),
        (SELECT COUNT(*) FROM comments c WHERE c.blog_post_id = p.id),
        EXISTS(SELECT 1 FROM likes l WHERE l.blog_post_id = p.id AND l.user_id = ?)
        FROM blog_posts p WHERE p.id IN (`+marks+`)`, append([]any{viewerID}, args...)...)
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

// CreateComment attaches a comment to an existing post.
func (r *Repository) CreateComment(ctx context.Context, c *models.Comment) error {
	now := r.now()
	res, err := r.db.ExecContext(ctx, `INSERT INTO comments (blog_post_id, user_id, content, is_approved, created_at, updated_at)
        VALUES (?, ?, ?, 1, ?, ?)`, c.PostID, c.UserID, c.Content, now, now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("Blog post")
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	var username string
	if err := r.db.QueryRowContext(ctx, "SELECT username FROM users WHERE id = ?", c.UserID).Scan(&username); err != nil {
		return notFound(err, "User")
	}
	c.ID = id
	c.UserName = username
	c.IsApproved = true
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// ListApprovedComments returns the approved comments of one post, newest first.
func (r *Repository) ListApprovedComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT c.id, c.blog_post_id, c.user_id, u.username, c.content,
        c.is_approved, c.created_at, c.updated_at
        FROM comments c JOIN users u ON u.id = c.user_id
        WHERE c.blog_post_id = ? AND c.is_approved = 1
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
