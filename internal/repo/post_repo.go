package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/hitkalariya/portfolio-api/internal/model"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
)

type PostRepo struct {
	db *sqlx.DB
}

func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, post *model.Post) error {
	data := map[string]interface{}{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"excerpt":      post.Excerpt,
		"content":      post.Content,
		"image_url":    post.ImageURL,
		"tags":         post.Tags,
		"status":       post.Status,
		"published_at": post.PublishedAt,
		"ctime":        post.Ctime,
		"mtime":        post.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("posts", []map[string]interface{}{data})
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

func (r *PostRepo) Update(ctx context.Context, post *model.Post) error {
	where := map[string]interface{}{"id": post.ID}
	update := map[string]interface{}{
		"title":        post.Title,
		"slug":         post.Slug,
		"excerpt":      post.Excerpt,
		"content":      post.Content,
		"image_url":    post.ImageURL,
		"tags":         post.Tags,
		"status":       post.Status,
		"published_at": post.PublishedAt,
		"mtime":        post.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("posts", where, update)
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

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
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

func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, "SELECT * FROM posts WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepo) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post,
		"SELECT * FROM posts WHERE slug = $1 AND status = $2", slug, model.PostStatusPublished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished returns published posts, newest first.
func (r *PostRepo) ListPublished(ctx context.Context, limit int) ([]*model.Post, error) {
	query := "SELECT * FROM posts WHERE status = $1 ORDER BY published_at DESC"
	args := []interface{}{model.PostStatusPublished}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	var posts []*model.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepo) ListAll(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	if err := r.db.SelectContext(ctx, &posts, "SELECT * FROM posts ORDER BY mtime DESC"); err != nil {
		return nil, err
	}
	return posts, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
