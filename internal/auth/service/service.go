package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"campground_backend/internal/auth/repository"
	"campground_backend/internal/auth/token"
	"campground_backend/internal/auth/transport"
	"campground_backend/platform/apperr"
	"campground_backend/platform/config"
	"campground_backend/platform/logger"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (repository.User, error)
	GetUserByUsername(ctx context.Context, username string) (repository.User, error)
}

// Service handles account registration and login.
type Service struct {
	repo UserStore
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// NewService creates a new auth service.
func NewService(repo UserStore, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates a new account and returns a signed access token for it.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return transport.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, req.Username, req.Email, string(hash))
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("register", user.Username, true, "")

	return s.issueToken(user)
}

// Login authenticates a username and password pair and returns a signed
// access token. Unknown usernames and wrong passwords produce the same
// error so the response does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
		}
		return transport.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", req.Username, false, "password mismatch")
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("login", user.Username, true, "")

	return s.issueToken(user)
}

func (s *Service) issueToken(user repository.User) (transport.AuthResponse, error) {
	accessToken, err := token.MintAccessToken(s.cfg, user.ID, user.Username)
	if err != nil {
		return transport.AuthResponse{}, fmt.Errorf("mint access token: %w", err)
	}

	return transport.AuthResponse{
		AccessToken: accessToken,
		UserID:      user.ID.String(),
		Username:    user.Username,
	}, nil
}
