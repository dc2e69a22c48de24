package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campground_backend/internal/auth/repository"
	"campground_backend/internal/auth/transport"
	"campground_backend/platform/apperr"
	"campground_backend/platform/logger"
)

type fakeUserStore struct {
	createFn func(ctx context.Context, username, email, passwordHash string) (repository.User, error)
	getFn    func(ctx context.Context, username string) (repository.User, error)
}

func (f *fakeUserStore) CreateUser(ctx context.Context, username, email, passwordHash string) (repository.User, error) {
	return f.createFn(ctx, username, email, passwordHash)
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (repository.User, error) {
	return f.getFn(ctx, username)
}

type testAuthConfig struct{}

func (testAuthConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (testAuthConfig) GetAccessTokenTTL() time.Duration { return 15 * time.Minute }

func TestRegisterHashesPassword(t *testing.T) {
	var storedHash string
	store := &fakeUserStore{
		createFn: func(ctx context.Context, username, email, passwordHash string) (repository.User, error) {
			storedHash = passwordHash
			return repository.User{ID: uuid.New(), Username: username, Email: email, PasswordHash: passwordHash}, nil
		},
	}
	svc := NewService(store, testAuthConfig{}, logger.New("development"))

	resp, err := svc.Register(context.Background(), transport.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if storedHash == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter2hunter2")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected an access token after registration")
	}
	if resp.Username != "alice" {
		t.Errorf("unexpected username in response: %q", resp.Username)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash fixture: %v", err)
	}
	userID := uuid.New()
	store := &fakeUserStore{
		getFn: func(ctx context.Context, username string) (repository.User, error) {
			return repository.User{ID: userID, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}
	svc := NewService(store, testAuthConfig{}, logger.New("development"))

	resp, err := svc.Login(context.Background(), transport.LoginRequest{Username: "alice", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected an access token")
	}
	if resp.UserID != userID.String() {
		t.Errorf("unexpected user id: %q", resp.UserID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash fixture: %v", err)
	}
	store := &fakeUserStore{
		getFn: func(ctx context.Context, username string) (repository.User, error) {
			return repository.User{ID: uuid.New(), Username: "alice", PasswordHash: string(hash)}, nil
		},
	}
	svc := NewService(store, testAuthConfig{}, logger.New("development"))

	_, err = svc.Login(context.Background(), transport.LoginRequest{Username: "alice", Password: "wrong"})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestLoginUnknownUserSameError(t *testing.T) {
	store := &fakeUserStore{
		getFn: func(ctx context.Context, username string) (repository.User, error) {
			return repository.User{}, apperr.NotFound("user not found")
		},
	}
	svc := NewService(store, testAuthConfig{}, logger.New("development"))

	_, err := svc.Login(context.Background(), transport.LoginRequest{Username: "nobody", Password: "whatever"})
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized error for unknown user, got %v", err)
	}
}
