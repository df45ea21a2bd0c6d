package models

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is a single travel-journal entry owned by one user.
type Post struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"` // owner; equals User.Username
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Date       string   `json:"date"` // RFC3339 / ISO-8601
	Categories []string `json:"categories"`
	Status     string   `json:"status"`             // draft | published
	ImageURL   string   `json:"imageUrl,omitempty"` // data URI or external URL
	Pinned     bool     `json:"pinned"`             // at most one pinned post per user
}
