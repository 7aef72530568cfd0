package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hitkalariya/portfolio-api/internal/model"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
)

// maxContextRecords bounds the prompt size: at most this many projects and
// posts make it into the context.
const maxContextRecords = 5

// ContentStore is the read-only view of the site content the assistant
// grounds its answers in.
type ContentStore interface {
	GetProfile(ctx context.Context) (*model.Profile, error)
	ListFeaturedProjects(ctx context.Context, limit int) ([]*model.Project, error)
	ListRecentPosts(ctx context.Context, limit int) ([]*model.Post, error)
}

// ContextBuilder renders the system prompt from live profile, project and
// post records. It is a pure read-and-render operation with no side
// effects; a store outage degrades to a generic static paragraph instead
// of failing the chat request.
type ContextBuilder struct {
	store     ContentStore
	ownerName string
}

func NewContextBuilder(store ContentStore, ownerName string) *ContextBuilder {
	return &ContextBuilder{store: store, ownerName: ownerName}
}

func (b *ContextBuilder) Build(ctx context.Context) string {
	text, err := b.build(ctx)
	if err != nil {
		logutil.GetLogger(ctx).Warn("context build degraded to fallback", zap.Error(err))
		return fmt.Sprintf("You are an AI assistant for %s, an AI/ML Developer. Help visitors learn about their work and expertise.", b.ownerName)
	}
	return text
}

func (b *ContextBuilder) build(ctx context.Context) (string, error) {
	profile, err := b.store.GetProfile(ctx)
	if err != nil && !appErr.IsNotFound(err) {
		return "", err
	}
	projects, err := b.store.ListFeaturedProjects(ctx, maxContextRecords)
	if err != nil {
		return "", err
	}
	posts, err := b.store.ListRecentPosts(ctx, maxContextRecords)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an AI assistant for %s's portfolio website.", b.ownerName)

	if profile != nil {
		fmt.Fprintf(&sb, "\n\nABOUT %s:", strings.ToUpper(b.ownerName))
		fmt.Fprintf(&sb, "\n- Name: %s %s", profile.FirstName, profile.LastName)
		fmt.Fprintf(&sb, "\n- Title: %s", profile.Title)
		fmt.Fprintf(&sb, "\n- Location: %s", orDefault(profile.Location, "Not specified"))
		fmt.Fprintf(&sb, "\n- Bio: %s", profile.Bio)
		fmt.Fprintf(&sb, "\n- GitHub: %s", orDefault(profile.GithubURL, "Not provided"))
		fmt.Fprintf(&sb, "\n- Website: %s", orDefault(profile.Website, "Not provided"))
		if names := parseSkillNames(profile.Skills); len(names) > 0 {
			fmt.Fprintf(&sb, "\n- Skills: %s", strings.Join(names, ", "))
		}
	}

	if len(projects) > 0 {
		sb.WriteString("\n\nFEATURED PROJECTS:")
		for _, project := range projects {
			fmt.Fprintf(&sb, "\n- %s: %s", project.Title, project.Description)
			if techs := parseStringList(project.Technologies); len(techs) > 0 {
				fmt.Fprintf(&sb, " (Technologies: %s)", strings.Join(techs, ", "))
			}
		}
	}

	if len(posts) > 0 {
		sb.WriteString("\n\nRECENT BLOG POSTS:")
		for _, post := range posts {
			fmt.Fprintf(&sb, "\n- %s", post.Title)
			if post.Excerpt != "" {
				fmt.Fprintf(&sb, ": %s", post.Excerpt)
			}
		}
	}

	firstName := b.ownerName
	if fields := strings.Fields(b.ownerName); len(fields) > 0 {
		firstName = fields[0]
	}
	fmt.Fprintf(&sb, "\n\nYour role is to help visitors learn about %s's work, skills, and experience. Be helpful, professional, and knowledgeable about AI/ML and web development topics. Keep responses concise and relevant.", firstName)

	return sb.String(), nil
}

// parseSkillNames decodes the serialized skills field. Malformed data
// drops the skills line only; the rest of the context still renders.
func parseSkillNames(raw string) []string {
	var skills []model.Skill
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil
	}
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill.Name != "" {
			names = append(names, skill.Name)
		}
	}
	return names
}

func parseStringList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
