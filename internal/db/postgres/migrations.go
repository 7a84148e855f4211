package postgres

import "context"

// Migrate creates the schema. It is idempotent.
func (r *Repository) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL,
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
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username));
	CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email));

	CREATE TABLE IF NOT EXISTS blog_posts (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		excerpt TEXT NOT NULL DEFAULT '',
		author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category TEXT NOT NULL DEFAULT 'general',
		featured_image TEXT NOT NULL DEFAULT '',
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		views_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		published_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		blog_post_id BIGINT NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		is_approved BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS likes (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		blog_post_id BIGINT NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(blog_post_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS protests (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		cause TEXT NOT NULL,
		organizer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		organizer_contact TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL,
		specific_location TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		start_datetime TIMESTAMPTZ NOT NULL,
		end_datetime TIMESTAMPTZ NOT NULL,
		expected_participants INT NOT NULL DEFAULT 0,
		poster TEXT NOT NULL DEFAULT '',
		supporting_documents TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		verification_notes TEXT NOT NULL DEFAULT '',
		is_peaceful BOOLEAN NOT NULL DEFAULT TRUE,
		safety_guidelines TEXT NOT NULL DEFAULT '',
		views_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		verified_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS supports (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		protest_id BIGINT NOT NULL REFERENCES protests(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, protest_id)
	);

	CREATE TABLE IF NOT EXISTS protest_updates (
		id BIGSERIAL PRIMARY KEY,
		protest_id BIGINT NOT NULL REFERENCES protests(id) ON DELETE CASCADE,
		author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		update_type TEXT NOT NULL DEFAULT 'info',
		title TEXT NOT NULL,
		text TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		is_important BOOLEAN NOT NULL DEFAULT FALSE,
		is_verified BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS protest_status_history (
		id BIGSERIAL PRIMARY KEY,
		protest_id BIGINT NOT NULL REFERENCES protests(id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		admin_id BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_blog_posts_published ON blog_posts(is_published, created_at);
	CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(blog_post_id);
	CREATE INDEX IF NOT EXISTS idx_protests_status ON protests(status, created_at);
	CREATE INDEX IF NOT EXISTS idx_supports_protest ON supports(protest_id);
	CREATE INDEX IF NOT EXISTS idx_protest_updates_protest ON protest_updates(protest_id);
	CREATE INDEX IF NOT EXISTS idx_status_history_protest ON protest_status_history(protest_id);
	`

	_, err := r.Pool.Exec(ctx, schema)
	return err
}
