package models

import "time"

type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	City             City      `json:"city"`
	Bio              string    `json:"bio"`
	PhoneNumber      string    `json:"phone_number"`
	OrganizationName string    `json:"organization_name"`
	ContactPerson    string    `json:"contact_person"`
	CauseFocus       string    `json:"cause_focus"`
	Mission          string    `json:"mission"`
	ProfileImage     string    `json:"profile_image"`
	FacebookURL      string    `json:"facebook_url"`
	TwitterURL       string    `json:"twitter_url"`
	WebsiteURL       string    `json:"website_url"`
	IsVerified       bool      `json:"is_verified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileUpdate carries the owner editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Email            *string
	City             *City
	Bio              *string
	PhoneNumber      *string
	OrganizationName *string
	ContactPerson    *string
	CauseFocus       *string
	Mission          *string
	ProfileImage     *string
	FacebookURL      *string
	TwitterURL       *string
	WebsiteURL       *string
}

type BlogPost struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	AuthorID      int64      `json:"author"`
	AuthorName    string     `json:"author_name"`
	Category      Category   `json:"category"`
	FeaturedImage string     `json:"featured_image"`
	IsPublished   bool       `json:"is_published"`
	IsFeatured    bool       `json:"is_featured"`
	ViewsCount    int        `json:"views_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
}

type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"blog_post"`
	UserID     int64     `json:"user"`
	UserName   string    `json:"user_name"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	PostID    int64     `json:"blog_post"`
	CreatedAt time.Time `json:"created_at"`
}

type Protest struct {
	ID                   int64         `json:"id"`
	Title                string        `json:"title"`
	Description          string        `json:"description"`
	Cause                Cause         `json:"cause"`
	OrganizerID          int64         `json:"organizer"`
	OrganizerName        string        `json:"organizer_name"`
	OrganizerContact     string        `json:"organizer_contact"`
	City                 City          `json:"city"`
	SpecificLocation     string        `json:"specific_location"`
	Latitude             *float64      `json:"latitude"`
	Longitude            *float64      `json:"longitude"`
	StartDatetime        time.Time     `json:"start_datetime"`
	EndDatetime          time.Time     `json:"end_datetime"`
	ExpectedParticipants int           `json:"expected_participants"`
	Poster               string        `json:"poster"`
	SupportingDocuments  string        `json:"supporting_documents"`
	Status               ProtestStatus `json:"status"`
	IsVerified           bool          `json:"is_verified"`
	VerificationNotes    string        `json:"verification_notes"`
	IsPeaceful           bool          `json:"is_peaceful"`
	SafetyGuidelines     string        `json:"safety_guidelines"`
	ViewsCount           int           `json:"views_count"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
	VerifiedAt           *time.Time    `json:"verified_at"`
}

type Support struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	ProtestID int64     `json:"protest"`
	CreatedAt time.Time `json:"created_at"`
}

type ProtestUpdate struct {
	ID          int64      `json:"id"`
	ProtestID   int64      `json:"protest"`
	AuthorID    int64      `json:"author"`
	AuthorName  string     `json:"author_name"`
	UpdateType  UpdateType `json:"update_type"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	Image       string     `json:"image"`
	IsImportant bool       `json:"is_important"`
	IsVerified  bool       `json:"is_verified"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ProtestStatusChange is the audit row written by every moderation transition.
type ProtestStatusChange struct {
	ID        int64         `json:"id"`
	ProtestID int64         `json:"protest"`
	Status    ProtestStatus `json:"status"`
	Notes     string        `json:"notes"`
	AdminID   int64         `json:"admin"`
	CreatedAt time.Time     `json:"created_at"`
}

// PostEngagement is computed per read and never stored.
type PostEngagement struct {
	LikeCount    int
	CommentCount int
	IsLiked      bool
}

// ProtestEngagement is computed per read and never stored.
type ProtestEngagement struct {
	SupporterCount int
	IsSupported    bool
}

type PostFilter struct {
	Category Category
	AuthorID int64
	Featured *bool
}

type ProtestFilter struct {
	City   City
	Cause  Cause
	Status ProtestStatus
}
