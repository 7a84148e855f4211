package sqlite

import "context"

// Migrate creates the schema. It is idempotent.
func (r *Repository) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT UNIQUE NOT NULL COLLATE NOCASE,
            email TEXT UNIQUE NOT NULL COLLATE NOCASE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            city TEXT NOT NULL DEFAULT '',
            bio TEXT NOT NULL DEFAULT '',
            phone_number TEXT NOT NULL DEFAULT '',
            organization_name TEXT NOT NULL DEFAULT '',
            contact_person TEXT NOT NULL DEFAULT '',
            cause_focus TEXT NOT NULL DEFAULT '',
            mission TEXT NOT NULL DEFAULT '',
            profile_image TEXT NOT NULL DEFAULT '',
            facebook_url TEXT NOT NULL DEFAULT '',
            twitter_url TEXT NOT NULL DEFAULT '',
            website_url TEXT NOT NULL DEFAULT '',
            is_verified BOOLEAN NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS blog_posts (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            content TEXT NOT NULL,
            excerpt TEXT NOT NULL DEFAULT '',
            author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            category TEXT NOT NULL DEFAULT 'general',
            featured_image TEXT NOT NULL DEFAULT '',
            is_published BOOLEAN NOT NULL DEFAULT 0,
            is_featured BOOLEAN NOT NULL DEFAULT 0,
            views_count INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            published_at DATETIME
        )`,
		`CREATE TABLE IF NOT EXISTS comments (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            blog_post_id INTEGER NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
            user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            content TEXT NOT NULL,
            is_approved BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS likes (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            blog_post_id INTEGER NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
            created_at DATETIME NOT NULL,
            UNIQUE(blog_post_id, user_id)
        )`,
		`CREATE TABLE IF NOT EXISTS protests (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            description TEXT NOT NULL,
            cause TEXT NOT NULL,
            organizer_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            organizer_contact TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL,
            specific_location TEXT NOT NULL,
            latitude REAL,
            longitude REAL,
            start_datetime DATETIME NOT NULL,
            end_datetime DATETIME NOT NULL,
            expected_participants INTEGER NOT NULL DEFAULT 0,
            poster TEXT NOT NULL DEFAULT '',
            supporting_documents TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            is_verified BOOLEAN NOT NULL DEFAULT 0,
            verification_notes TEXT NOT NULL DEFAULT '',
            is_peaceful BOOLEAN NOT NULL DEFAULT 1,
            safety_guidelines TEXT NOT NULL DEFAULT '',
            views_count INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            verified_at DATETIME
        )`,
		`CREATE TABLE IF NOT EXISTS supports (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            protest_id INTEGER NOT NULL REFERENCES protests(id) ON DELETE CASCADE,
            created_at DATETIME NOT NULL,
            UNIQUE(user_id, protest_id)
        )`,
		`CREATE TABLE IF NOT EXISTS protest_updates (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            protest_id INTEGER NOT NULL REFERENCES protests(id) ON DELETE CASCADE,
            author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            update_type TEXT NOT NULL DEFAULT 'info',
            title TEXT NOT NULL,
            text TEXT NOT NULL,
            image TEXT NOT NULL DEFAULT '',
            is_important BOOLEAN NOT NULL DEFAULT 0,
            is_verified BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS protest_status_history (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            protest_id INTEGER NOT NULL REFERENCES protests(id) ON DELETE CASCADE,
            status TEXT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            admin_id INTEGER NOT NULL REFERENCES users(id),
            created_at DATETIME NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_blog_posts_published ON blog_posts(is_published, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(blog_post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_protests_status ON protests(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_supports_protest ON supports(protest_id)`,
		`CREATE INDEX IF NOT EXISTS idx_protest_updates_protest ON protest_updates(protest_id)`,
		`CREATE INDEX IF NOT EXISTS idx_status_history_protest ON protest_status_history(protest_id)`,
	}

	for _, query := range queries {
		if _, err := r.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
