package model

// Profile is the single owner record backing the about page and the AI
// assistant context. Skills is stored as a serialized JSON array of
// {"name": ..., "level": ...} objects and parsed defensively at the edges.
type Profile struct {
	ID          string `json:"id" db:"id"`
	FirstName   string `json:"first_name" db:"first_name"`
	LastName    string `json:"last_name" db:"last_name"`
	Title       string `json:"title" db:"title"`
	Bio         string `json:"bio" db:"bio"`
	Location    string `json:"location" db:"location"`
	Website     string `json:"website" db:"website"`
	GithubURL   string `json:"github_url" db:"github_url"`
	LinkedinURL string `json:"linkedin_url" db:"linkedin_url"`
	TwitterURL  string `json:"twitter_url" db:"twitter_url"`
	ResumeURL   string `json:"resume_url" db:"resume_url"`
	AvatarURL   string `json:"avatar_url" db:"avatar_url"`
	Skills      string `json:"skills" db:"skills"`
	Ctime       int64  `json:"ctime" db:"ctime"`
	Mtime       int64  `json:"mtime" db:"mtime"`
}

type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level,omitempty"`
}
