package testimonials

import (
	"context"
	"time"

	"launchpad-api/internal/auth"
	"launchpad-api/internal/content"

	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Insert(ctx context.Context, t Testimonial) error
	List(ctx context.Context) ([]Testimonial, error)
}

func NewRepository(col *mongo.Collection) Repository {
	return content.NewMongoStore[Testimonial](col)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: content.Now}
}

func (s *Service) Create(ctx context.Context, actor auth.Identity, req CreateRequest, photoURL string) (Testimonial, error) {
	if !actor.IsAdmin() {
		return Testimonial{}, content.ErrForbidden
	}

	now := s.now()
	t := Testimonial{
		ID:           content.NewID(),
		Name:         req.Name,
		Role:         req.Role,
		PhotoURL:     photoURL,
		Text:         req.Text,
		ExternalLink: req.ExternalLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return Testimonial{}, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]Testimonial, error) {
	return s.repo.List(ctx)
}
