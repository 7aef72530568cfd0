package service

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hitkalariya/portfolio-api/internal/model"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
	"github.com/hitkalariya/portfolio-api/internal/repo"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ContentService is the content store: public reads for the site pages and
// the assistant context, plus the admin CRUD surface.
type ContentService struct {
	profiles *repo.ProfileRepo
	projects *repo.ProjectRepo
	posts    *repo.PostRepo
	markdown goldmark.Markdown
}

func NewContentService(profiles *repo.ProfileRepo, projects *repo.ProjectRepo, posts *repo.PostRepo) *ContentService {
	return &ContentService{
		profiles: profiles,
		projects: projects,
		posts:    posts,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// ContentStore implementation for the context builder.

func (s *ContentService) GetProfile(ctx context.Context) (*model.Profile, error) {
	return s.profiles.Get(ctx)
}

func (s *ContentService) ListFeaturedProjects(ctx context.Context, limit int) ([]*model.Project, error) {
	return s.projects.ListPublished(ctx, true, limit)
}

func (s *ContentService) ListRecentPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	return s.posts.ListPublished(ctx, limit)
}

// Public reads.

func (s *ContentService) ListPublicProjects(ctx context.Context, featuredOnly bool) ([]*model.Project, error) {
	return s.projects.ListPublished(ctx, featuredOnly, 0)
}

func (s *ContentService) ListPublicPosts(ctx context.Context) ([]*model.Post, error) {
	return s.posts.ListPublished(ctx, 0)
}

// GetPublishedPost returns the post plus its content rendered to HTML.
func (s *ContentService) GetPublishedPost(ctx context.Context, slug string) (*model.Post, string, error) {
	post, err := s.posts.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Content), &buf); err != nil {
		return nil, "", err
	}
	return post, buf.String(), nil
}

// Admin reads: drafts and archived records included, content unrendered
// so the editor round-trips the raw markdown.

func (s *ContentService) ListAllProjects(ctx context.Context) ([]*model.Project, error) {
	return s.projects.ListAll(ctx)
}

func (s *ContentService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	if id == "" {
		return nil, appErr.ErrInvalid
	}
	return s.projects.GetByID(ctx, id)
}

func (s *ContentService) ListAllPosts(ctx context.Context) ([]*model.Post, error) {
	return s.posts.ListAll(ctx)
}

func (s *ContentService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	if id == "" {
		return nil, appErr.ErrInvalid
	}
	return s.posts.GetByID(ctx, id)
}

// Admin writes.

func (s *ContentService) SaveProfile(ctx context.Context, profile *model.Profile) error {
	if strings.TrimSpace(profile.FirstName) == "" || strings.TrimSpace(profile.LastName) == "" {
		return appErr.ErrInvalid
	}
	if len(strings.TrimSpace(profile.Title)) < 2 {
		return appErr.ErrInvalid
	}
	if !isJSONArray(profile.Skills) {
		return appErr.ErrInvalid
	}
	now := time.Now().UnixMilli()
	if profile.ID == "" {
		profile.ID = newID()
		profile.Ctime = now
	}
	profile.Mtime = now
	return s.profiles.Upsert(ctx, profile)
}

func (s *ContentService) CreateProject(ctx context.Context, project *model.Project) error {
	if err := validateProject(project); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	project.ID = newID()
	project.Ctime = now
	project.Mtime = now
	if project.Status == "" {
		project.Status = model.ProjectStatusDraft
	}
	return s.projects.Create(ctx, project)
}

func (s *ContentService) UpdateProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		return appErr.ErrInvalid
	}
	if err := validateProject(project); err != nil {
		return err
	}
	project.Mtime = time.Now().UnixMilli()
	return s.projects.Update(ctx, project)
}

func (s *ContentService) DeleteProject(ctx context.Context, id string) error {
	if id == "" {
		return appErr.ErrInvalid
	}
	return s.projects.Delete(ctx, id)
}

func (s *ContentService) CreatePost(ctx context.Context, post *model.Post) error {
	if err := validatePost(post); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	post.ID = newID()
	post.Ctime = now
	post.Mtime = now
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
	if post.Status == model.PostStatusPublished && post.PublishedAt == 0 {
		post.PublishedAt = now
	}
	return s.posts.Create(ctx, post)
}

func (s *ContentService) UpdatePost(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		return appErr.ErrInvalid
	}
	if err := validatePost(post); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	post.Mtime = now
	if post.Status == model.PostStatusPublished && post.PublishedAt == 0 {
		post.PublishedAt = now
	}
	return s.posts.Update(ctx, post)
}

func (s *ContentService) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return appErr.ErrInvalid
	}
	return s.posts.Delete(ctx, id)
}

func validateProject(project *model.Project) error {
	if len(strings.TrimSpace(project.Title)) < 2 {
		return appErr.ErrInvalid
	}
	if !slugPattern.MatchString(project.Slug) {
		return appErr.ErrInvalid
	}
	if len(strings.TrimSpace(project.Description)) < 10 {
		return appErr.ErrInvalid
	}
	if project.Technologies == "" {
		project.Technologies = "[]"
	}
	if !isJSONArray(project.Technologies) {
		return appErr.ErrInvalid
	}
	switch project.Status {
	case "", model.ProjectStatusDraft, model.ProjectStatusPublished, model.ProjectStatusArchived:
	default:
		return appErr.ErrInvalid
	}
	return nil
}

func validatePost(post *model.Post) error {
	if len(strings.TrimSpace(post.Title)) < 2 {
		return appErr.ErrInvalid
	}
	if !slugPattern.MatchString(post.Slug) {
		return appErr.ErrInvalid
	}
	if len([]rune(post.Excerpt)) > 200 {
		return appErr.ErrInvalid
	}
	if post.Tags == "" {
		post.Tags = "[]"
	}
	if !isJSONArray(post.Tags) {
		return appErr.ErrInvalid
	}
	switch post.Status {
	case "", model.PostStatusDraft, model.PostStatusPublished:
	default:
		return appErr.ErrInvalid
	}
	return nil
}

func isJSONArray(raw string) bool {
	if raw == "" {
		return true
	}
	var arr []json.RawMessage
	return json.Unmarshal([]byte(raw), &arr) == nil
}
