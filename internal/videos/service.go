package videos

import (
	"context"
	"errors"
	"strings"
	"time"

	"launchpad-api/internal/auth"
	"launchpad-api/internal/content"
	"launchpad-api/internal/validation"
	"launchpad-api/internal/youtube"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound   = errors.New("video project not found")
	ErrInvalidURL = errors.New("unable to extract youtube video id")
)

const emptyUpdateMessage = "At least one property must be provided for update"

type Service struct {
	repo Repository
	val  *validation.Validator
	now  func() time.Time
}

func NewService(repo Repository, val *validation.Validator) *Service {
	return &Service{repo: repo, val: val, now: content.Now}
}

func (s *Service) Create(ctx context.Context, actor auth.Identity, req CreateRequest) (Video, error) {
	if !actor.IsAdmin() {
		return Video{}, content.ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Video{}, validation.Failed(validation.Violation{Path: "body.title", Message: "Title is required"})
	}
	videoID, ok := youtube.ExtractID(req.YouTubeURL)
	if !ok {
		return Video{}, ErrInvalidURL
	}

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	now := s.now()
	v := Video{
		ID:             content.NewID(),
		Title:          title,
		Description:    strings.TrimSpace(req.Description),
		YouTubeVideoID: videoID,
		IsPublished:    isPublished,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Video{}, err
	}
	return v, nil
}

// List returns published videos newest first. Unpublished drafts are included
// only when an admin viewer asks for them.
func (s *Service) List(ctx context.Context, viewer auth.Identity, includeUnpublished bool) ([]Video, error) {
	return s.repo.List(ctx, includeUnpublished && viewer.IsAdmin())
}

func (s *Service) Get(ctx context.Context, actor auth.Identity, id string) (Video, error) {
	if !actor.IsAdmin() {
		return Video{}, content.ErrForbidden
	}
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Video{}, ErrNotFound
		}
		return Video{}, err
	}
	return v, nil
}

// Update applies a partial change. The merged result is validated as a whole
// and youtubeVideoId is re-derived when a new URL is supplied.
func (s *Service) Update(ctx context.Context, actor auth.Identity, id string, req UpdateRequest) (Video, error) {
	if !actor.IsAdmin() {
		return Video{}, content.ErrForbidden
	}
	if req.empty() {
		return Video{}, validation.Failed(validation.Violation{Path: validation.LocationBody, Message: emptyUpdateMessage})
	}

	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return Video{}, err
	}

	merged := document{Title: current.Title, Description: current.Description}
	set := bson.M{}
	if req.Title != nil {
		merged.Title = *req.Title
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		merged.Description = strings.TrimSpace(*req.Description)
		set["description"] = merged.Description
	}
	if req.YouTubeURL != nil {
		merged.YouTubeURL = *req.YouTubeURL
		if merged.YouTubeURL == "" {
			return Video{}, validation.Failed(validation.Violation{Path: "body.youtubeUrl", Message: "YouTube URL is required"})
		}
	}
	if err := s.val.Check(ctx, validation.LocationBody, merged); err != nil {
		return Video{}, err
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return Video{}, validation.Failed(validation.Violation{Path: "body.title", Message: "Title is required"})
	}
	if req.YouTubeURL != nil {
		videoID, ok := youtube.ExtractID(*req.YouTubeURL)
		if !ok {
			return Video{}, ErrInvalidURL
		}
		set["youtubeVideoId"] = videoID
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished
	}
	set["updatedAt"] = s.now()

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Video{}, ErrNotFound
		}
		return Video{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if !actor.IsAdmin() {
		return content.ErrForbidden
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
