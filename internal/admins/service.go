package admins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"launchpad-api/internal/auth"
	"launchpad-api/internal/content"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSeedIncomplete     = errors.New("default admin email and password are required")
)

type Service struct {
	repo   Repository
	tokens *auth.Manager
	now    func() time.Time
}

func NewService(repo Repository, tokens *auth.Manager) *Service {
	return &Service{repo: repo, tokens: tokens, now: content.Now}
}

// Login never reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	admin, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return LoginResponse{}, ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if err := auth.ComparePassword(admin.Password, password); err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{Subject: admin.ID, Email: admin.Email, Role: admin.Role})
	if err != nil {
		return LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResponse{Token: token, Admin: admin.Profile()}, nil
}

// EnsureDefaultAdmin creates the admin unless one with that email exists.
// The boolean reports whether a document was inserted.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, email, password, name string) (Admin, bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Admin{}, false, ErrSeedIncomplete
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return Admin{}, false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Admin{}, false, err
	}

	now := s.now()
	admin := Admin{
		ID:        content.NewID(),
		Email:     email,
		Password:  hash,
		Name:      name,
		Role:      auth.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := s.repo.FindByEmail(ctx, email)
			if findErr != nil {
				return Admin{}, false, findErr
			}
			return existing, false, nil
		}
		return Admin{}, false, err
	}
	return admin, true, nil
}
