package fullprojects

import (
	"context"
	"time"

	"launchpad-api/internal/auth"
	"launchpad-api/internal/content"

	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Insert(ctx context.Context, item Project) error
	List(ctx context.Context) ([]Project, error)
}

func NewRepository(col *mongo.Collection) Repository {
	return content.NewMongoStore[Project](col)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: content.Now}
}

// Create stores a validated request; imageURL must point at an upload that
// was already saved.
func (s *Service) Create(ctx context.Context, actor auth.Identity, req CreateRequest, imageURL string) (Project, error) {
	if !actor.IsAdmin() {
		return Project{}, content.ErrForbidden
	}

	now := s.now()
	item := Project{
		ID:           content.NewID(),
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     imageURL,
		ExternalLink: req.ExternalLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return Project{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}
