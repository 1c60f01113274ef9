package fullprojects

import (
	"net/url"
	"strings"
	"time"

	"launchpad-api/internal/content"
)

type Project struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	ImageURL     string    `bson:"imageUrl" json:"imageUrl"`
	ExternalLink string    `bson:"externalLink" json:"externalLink"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title        string `form:"title" label:"Title" validate:"required,max=150"`
	Description  string `form:"description" label:"Description" validate:"max=500"`
	ExternalLink string `form:"externalLink" label:"External link" validate:"required,httpurl"`
}

func requestFromForm(values url.Values) CreateRequest {
	return CreateRequest{
		Title:        strings.TrimSpace(values.Get("title")),
		Description:  strings.TrimSpace(values.Get("description")),
		ExternalLink: strings.TrimSpace(values.Get("externalLink")),
	}
}

type Response struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	ExternalLink string `json:"externalLink"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func (p Project) Response() Response {
	return Response{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		ExternalLink: p.ExternalLink,
		CreatedAt:    content.Timestamp(p.CreatedAt),
		UpdatedAt:    content.Timestamp(p.UpdatedAt),
	}
}
