package videos

import (
	"strings"
	"time"

	"launchpad-api/internal/content"
)

type Video struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	YouTubeVideoID string    `bson:"youtubeVideoId" json:"youtubeVideoId"`
	IsPublished    bool      `bson:"isPublished" json:"isPublished"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateRequest is validated before trimming: the title length limit applies
// to the raw value, the stored title is trimmed.
type CreateRequest struct {
	Title       string `json:"title" label:"Title" validate:"required,max=150"`
	Description string `json:"description" label:"Description" validate:"max=500"`
	YouTubeURL  string `json:"youtubeUrl" label:"YouTube URL" validate:"required,url"`
	IsPublished *bool  `json:"isPublished"`
}

func (r *CreateRequest) normalize() {
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateRequest carries only the fields present in the PATCH body.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	YouTubeURL  *string `json:"youtubeUrl"`
	IsPublished *bool   `json:"isPublished"`
}

func (r UpdateRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.YouTubeURL == nil && r.IsPublished == nil
}

// document is a video as it would look after an update, checked with the
// same rules as a create.
type document struct {
	Title       string `json:"title" label:"Title" validate:"required,max=150"`
	Description string `json:"description" label:"Description" validate:"max=500"`
	YouTubeURL  string `json:"youtubeUrl" label:"YouTube URL" validate:"omitempty,url"`
}

type idParams struct {
	ID string `json:"id" label:"Video ID" validate:"required,len=24"`
}

type Response struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	YouTubeVideoID string `json:"youtubeVideoId"`
	IsPublished    bool   `json:"isPublished"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// PublicResponse omits the publish flag and update time.
type PublicResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	YouTubeVideoID string `json:"youtubeVideoId"`
	CreatedAt      string `json:"createdAt"`
}

func (v Video) Response() Response {
	return Response{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		YouTubeVideoID: v.YouTubeVideoID,
		IsPublished:    v.IsPublished,
		CreatedAt:      content.Timestamp(v.CreatedAt),
		UpdatedAt:      content.Timestamp(v.UpdatedAt),
	}
}

func (v Video) PublicResponse() PublicResponse {
	return PublicResponse{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		YouTubeVideoID: v.YouTubeVideoID,
		CreatedAt:      content.Timestamp(v.CreatedAt),
	}
}
