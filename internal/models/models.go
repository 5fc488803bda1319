package models

import (
	"regexp"
	"time"
)

// Post is a single feed entry. ID is assigned by the posts API; locally
// authored posts carry a negative placeholder ID and Pending=true until a
// refresh brings back server truth.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AuthorID  int64      `json:"author_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	Likes     int        `json:"likes"`
	Comments  int        `json:"comments"`

	Pending bool `json:"-"`
}

// IsPlaceholder reports whether the ID was generated client-side.
func (p Post) IsPlaceholder() bool {
	return p.Pending || p.ID <= 0
}

type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

func (u User) DisplayName() string {
	return u.Username
}

// HasValidEmail checks the shape of the address only.
func (u User) HasValidEmail() bool {
	return emailPattern.MatchString(u.Email)
}
