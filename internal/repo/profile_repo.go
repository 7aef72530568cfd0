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

type ProfileRepo struct {
	db *sqlx.DB
}

func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get returns the single profile record. The site has exactly one owner;
// if more than one row exists the newest wins.
func (r *ProfileRepo) Get(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM profiles ORDER BY mtime DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, profile *model.Profile) error {
	existing, err := r.Get(ctx)
	if err != nil && !appErr.IsNotFound(err) {
		return err
	}
	if existing == nil {
		data := map[string]interface{}{
			"id":           profile.ID,
			"first_name":   profile.FirstName,
			"last_name":    profile.LastName,
			"title":        profile.Title,
			"bio":          profile.Bio,
			"location":     profile.Location,
			"website":      profile.Website,
			"github_url":   profile.GithubURL,
			"linkedin_url": profile.LinkedinURL,
			"twitter_url":  profile.TwitterURL,
			"resume_url":   profile.ResumeURL,
			"avatar_url":   profile.AvatarURL,
			"skills":       profile.Skills,
			"ctime":        profile.Ctime,
			"mtime":        profile.Mtime,
		}
		sqlStr, args, err := builder.BuildInsert("profiles", []map[string]interface{}{data})
		if err != nil {
			return err
		}
		sqlStr = r.db.Rebind(sqlStr)
		_, err = r.db.ExecContext(ctx, sqlStr, args...)
		return err
	}
	where := map[string]interface{}{"id": existing.ID}
	update := map[string]interface{}{
		"first_name":   profile.FirstName,
		"last_name":    profile.LastName,
		"title":        profile.Title,
		"bio":          profile.Bio,
		"location":     profile.Location,
		"website":      profile.Website,
		"github_url":   profile.GithubURL,
		"linkedin_url": profile.LinkedinURL,
		"twitter_url":  profile.TwitterURL,
		"resume_url":   profile.ResumeURL,
		"avatar_url":   profile.AvatarURL,
		"skills":       profile.Skills,
		"mtime":        profile.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("profiles", where, update)
	if err != nil {
		return err
	}
	sqlStr = r.db.Rebind(sqlStr)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
