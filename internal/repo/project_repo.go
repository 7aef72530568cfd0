package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/hitkalariya/portfolio-api/internal/model"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
)

type ProjectRepo struct {
	db *sqlx.DB
}

func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Create(ctx context.Context, project *model.Project) error {
	data := map[string]interface{}{
		"id":           project.ID,
		"title":        project.Title,
		"slug":         project.Slug,
		"description":  project.Description,
		"content":      project.Content,
		"image_url":    project.ImageURL,
		"technologies": project.Technologies,
		"github_url":   project.GithubURL,
		"live_url":     project.LiveURL,
		"category":     project.Category,
		"featured":     project.Featured,
		"status":       project.Status,
		"ctime":        project.Ctime,
		"mtime":        project.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("projects", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr = r.db.Rebind(sqlStr)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if isUniqueViolation(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, project *model.Project) error {
	where := map[string]interface{}{"id": project.ID}
	update := map[string]interface{}{
		"title":        project.Title,
		"slug":         project.Slug,
		"description":  project.Description,
		"content":      project.Content,
		"image_url":    project.ImageURL,
		"technologies": project.Technologies,
		"github_url":   project.GithubURL,
		"live_url":     project.LiveURL,
		"category":     project.Category,
		"featured":     project.Featured,
		"status":       project.Status,
		"mtime":        project.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("projects", where, update)
	if err != nil {
		return err
	}
	sqlStr = r.db.Rebind(sqlStr)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.GetContext(ctx, &project, "SELECT * FROM projects WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) ListPublished(ctx context.Context, featuredOnly bool, limit int) ([]*model.Project, error) {
	query := "SELECT * FROM projects WHERE status = $1 ORDER BY mtime DESC"
	args := []interface{}{model.ProjectStatusPublished}
	if featuredOnly {
		query = "SELECT * FROM projects WHERE status = $1 AND featured = TRUE ORDER BY mtime DESC"
	}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	var projects []*model.Project
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepo) ListAll(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	if err := r.db.SelectContext(ctx, &projects, "SELECT * FROM projects ORDER BY mtime DESC"); err != nil {
		return nil, err
	}
	return projects, nil
}
