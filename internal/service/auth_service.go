package service

import (
	"context"
	"strings"
	"time"

	"github.com/hitkalariya/portfolio-api/internal/model"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
	"github.com/hitkalariya/portfolio-api/internal/pkg/jwt"
	"github.com/hitkalariya/portfolio-api/internal/pkg/password"
	"github.com/hitkalariya/portfolio-api/internal/repo"
)

type AuthService struct {
	users  *repo.UserRepo
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

func (s *AuthService) Login(ctx context.Context, email, plain string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plain == "" {
		return "", appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return "", appErr.ErrUnauthorized
		}
		return "", err
	}
	if err := password.Compare(user.PasswordHash, plain); err != nil {
		return "", appErr.ErrUnauthorized
	}
	return jwt.GenerateToken(user.ID, user.Role, s.secret, s.ttl)
}

// CreateAdmin provisions the single admin account. Used by the CLI, not
// exposed over HTTP.
func (s *AuthService) CreateAdmin(ctx context.Context, email, plain string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, appErr.ErrInvalid
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, appErr.ErrInvalid
	}
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Ctime:        time.Now().UnixMilli(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
