package designs

import (
	"net/url"
	"strings"
	"time"

	"launchpad-api/internal/content"
)

type Design struct {
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
	ExternalLink string `form:"externalLink" label:"External link" validate:"omitempty,httpurl"`
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

func (d Design) Response() Response {
	return Response{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		ExternalLink: d.ExternalLink,
		CreatedAt:    content.Timestamp(d.CreatedAt),
		UpdatedAt:    content.Timestamp(d.UpdatedAt),
	}
}
