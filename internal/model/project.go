package model

const (
	ProjectStatusDraft     = "DRAFT"
	ProjectStatusPublished = "PUBLISHED"
	ProjectStatusArchived  = "ARCHIVED"
)

// Technologies is a serialized JSON array of strings.
type Project struct {
	ID           string `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Slug         string `json:"slug" db:"slug"`
	Description  string `json:"description" db:"description"`
	Content      string `json:"content" db:"content"`
	ImageURL     string `json:"image_url" db:"image_url"`
	Technologies string `json:"technologies" db:"technologies"`
	GithubURL    string `json:"github_url" db:"github_url"`
	LiveURL      string `json:"live_url" db:"live_url"`
	Category     string `json:"category" db:"category"`
	Featured     bool   `json:"featured" db:"featured"`
	Status       string `json:"status" db:"status"`
	Ctime        int64  `json:"ctime" db:"ctime"`
	Mtime        int64  `json:"mtime" db:"mtime"`
}
