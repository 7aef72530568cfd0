package model

const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
)

// Tags is a serialized JSON array of strings.
type Post struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Excerpt     string `json:"excerpt" db:"excerpt"`
	Content     string `json:"content" db:"content"`
	ImageURL    string `json:"image_url" db:"image_url"`
	Tags        string `json:"tags" db:"tags"`
	Status      string `json:"status" db:"status"`
	PublishedAt int64  `json:"published_at" db:"published_at"`
	Ctime       int64  `json:"ctime" db:"ctime"`
	Mtime       int64  `json:"mtime" db:"mtime"`
}
