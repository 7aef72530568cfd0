package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hitkalariya/portfolio-api/internal/model"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

type fakeContentStore struct {
	profile     *model.Profile
	profileErr  error
	projects    []*model.Project
	projectsErr error
	posts       []*model.Post
	postsErr    error
}

func (s *fakeContentStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	return s.profile, s.profileErr
}

func (s *fakeContentStore) ListFeaturedProjects(ctx context.Context, limit int) ([]*model.Project, error) {
	return s.projects, s.projectsErr
}

func (s *fakeContentStore) ListRecentPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	return s.posts, s.postsErr
}

func testProfile() *model.Profile {
	return &model.Profile{
		FirstName: "Hit",
		LastName:  "Kalariya",
		Title:     "AI/ML Developer",
		Bio:       "Builds intelligent systems.",
		Location:  "India",
		GithubURL: "https://github.com/hitkalariya",
		Skills:    `[{"name":"Python","level":5},{"name":"TensorFlow"}]`,
	}
}

func TestContextBuilderRendersFullContext(t *testing.T) {
	store := &fakeContentStore{
		profile: testProfile(),
		projects: []*model.Project{
			{Title: "Churn Predictor", Description: "Predicts churn.", Technologies: `["Python","scikit-learn"]`},
		},
		posts: []*model.Post{
			{Title: "On Embeddings", Excerpt: "A short tour."},
		},
	}

	text := service.NewContextBuilder(store, "Hit Kalariya").Build(context.Background())

	require.True(t, strings.HasPrefix(text, "You are an AI assistant for Hit Kalariya's portfolio website."))
	require.Contains(t, text, "ABOUT HIT KALARIYA:")
	require.Contains(t, text, "- Name: Hit Kalariya")
	require.Contains(t, text, "- Location: India")
	require.Contains(t, text, "- Skills: Python, TensorFlow")
	require.Contains(t, text, "FEATURED PROJECTS:")
	require.Contains(t, text, "- Churn Predictor: Predicts churn. (Technologies: Python, scikit-learn)")
	require.Contains(t, text, "RECENT BLOG POSTS:")
	require.Contains(t, text, "- On Embeddings: A short tour.")
	require.Contains(t, text, "Your role is to help visitors learn about Hit's work")
}

func TestContextBuilderFallsBackOnStoreError(t *testing.T) {
	store := &fakeContentStore{
		profile:     testProfile(),
		projectsErr: errors.New("connection refused"),
	}

	text := service.NewContextBuilder(store, "Hit Kalariya").Build(context.Background())

	require.Equal(t, "You are an AI assistant for Hit Kalariya, an AI/ML Developer. Help visitors learn about their work and expertise.", text)
}

func TestContextBuilderMissingProfileSkipsAboutBlock(t *testing.T) {
	store := &fakeContentStore{
		profileErr: appErr.ErrNotFound,
		projects: []*model.Project{
			{Title: "Churn Predictor", Description: "Predicts churn.", Technologies: `["Python"]`},
		},
	}

	text := service.NewContextBuilder(store, "Hit Kalariya").Build(context.Background())

	require.NotContains(t, text, "ABOUT")
	require.Contains(t, text, "FEATURED PROJECTS:")
}

func TestContextBuilderMalformedSkillsDropsSkillsLineOnly(t *testing.T) {
	profile := testProfile()
	profile.Skills = "{not json"
	store := &fakeContentStore{profile: profile}

	text := service.NewContextBuilder(store, "Hit Kalariya").Build(context.Background())

	require.Contains(t, text, "- Name: Hit Kalariya")
	require.NotContains(t, text, "- Skills:")
}

func TestContextBuilderBlankOwnerName(t *testing.T) {
	store := &fakeContentStore{profile: testProfile()}

	text := service.NewContextBuilder(store, "   ").Build(context.Background())

	require.Contains(t, text, "portfolio website")
	require.Contains(t, text, "Your role is to help visitors")
}

func TestContextBuilderEmptyOptionalFieldsUsePlaceholders(t *testing.T) {
	profile := testProfile()
	profile.Location = ""
	profile.Website = ""
	store := &fakeContentStore{profile: profile}

	text := service.NewContextBuilder(store, "Hit Kalariya").Build(context.Background())

	require.Contains(t, text, "- Location: Not specified")
	require.Contains(t, text, "- Website: Not provided")
}
