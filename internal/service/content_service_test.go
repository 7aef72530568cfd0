package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hitkalariya/portfolio-api/internal/model"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

// Validation runs before any repository call, so invalid inputs can be
// exercised without a database.

func TestCreateProjectRejectsInvalidInput(t *testing.T) {
	svc := service.NewContentService(nil, nil, nil)

	valid := func() *model.Project {
		return &model.Project{
			Title:        "Churn Predictor",
			Slug:         "churn-predictor",
			Description:  "Predicts customer churn from usage data.",
			Technologies: `["Python"]`,
		}
	}

	cases := map[string]func(*model.Project){
		"short title":       func(p *model.Project) { p.Title = "x" },
		"bad slug":          func(p *model.Project) { p.Slug = "Churn Predictor!" },
		"short description": func(p *model.Project) { p.Description = "too short" },
		"bad technologies":  func(p *model.Project) { p.Technologies = "{not an array}" },
		"unknown status":    func(p *model.Project) { p.Status = "LIVE" },
	}
	for name, mutate := range cases {
		project := valid()
		mutate(project)
		require.ErrorIs(t, svc.CreateProject(context.Background(), project), appErr.ErrInvalid, name)
	}
}

func TestCreatePostRejectsInvalidInput(t *testing.T) {
	svc := service.NewContentService(nil, nil, nil)

	valid := func() *model.Post {
		return &model.Post{
			Title: "On Embeddings",
			Slug:  "on-embeddings",
			Tags:  `["ml"]`,
		}
	}

	longExcerpt := make([]rune, 201)
	for i := range longExcerpt {
		longExcerpt[i] = 'a'
	}

	cases := map[string]func(*model.Post){
		"short title":    func(p *model.Post) { p.Title = "x" },
		"bad slug":       func(p *model.Post) { p.Slug = "On Embeddings" },
		"long excerpt":   func(p *model.Post) { p.Excerpt = string(longExcerpt) },
		"bad tags":       func(p *model.Post) { p.Tags = "not json" },
		"unknown status": func(p *model.Post) { p.Status = "LIVE" },
	}
	for name, mutate := range cases {
		post := valid()
		mutate(post)
		require.ErrorIs(t, svc.CreatePost(context.Background(), post), appErr.ErrInvalid, name)
	}
}

func TestUpdateRequiresID(t *testing.T) {
	svc := service.NewContentService(nil, nil, nil)

	require.ErrorIs(t, svc.UpdateProject(context.Background(), &model.Project{}), appErr.ErrInvalid)
	require.ErrorIs(t, svc.UpdatePost(context.Background(), &model.Post{}), appErr.ErrInvalid)
	require.ErrorIs(t, svc.DeleteProject(context.Background(), ""), appErr.ErrInvalid)
	require.ErrorIs(t, svc.DeletePost(context.Background(), ""), appErr.ErrInvalid)

	_, err := svc.GetProject(context.Background(), "")
	require.True(t, appErr.IsInvalid(err))
	_, err = svc.GetPost(context.Background(), "")
	require.True(t, appErr.IsInvalid(err))
}

func TestSaveProfileRejectsInvalidInput(t *testing.T) {
	svc := service.NewContentService(nil, nil, nil)

	cases := map[string]*model.Profile{
		"missing name": {Title: "AI/ML Developer"},
		"short title":  {FirstName: "Hit", LastName: "Kalariya", Title: "x"},
		"bad skills":   {FirstName: "Hit", LastName: "Kalariya", Title: "AI/ML Developer", Skills: "{bad"},
	}
	for name, profile := range cases {
		require.ErrorIs(t, svc.SaveProfile(context.Background(), profile), appErr.ErrInvalid, name)
	}
}
