package testimonials

import (
	"net/url"
	"strings"
	"time"

	"launchpad-api/internal/content"
)

type Testimonial struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	PhotoURL     string    `bson:"photoUrl" json:"photoUrl"`
	Text         string    `bson:"testimonial" json:"testimonial"`
	ExternalLink string    `bson:"externalLink" json:"externalLink"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name         string `form:"name" label:"Name" validate:"required,max=120"`
	Role         string `form:"role" label:"Role" validate:"required,max=150"`
	Text         string `form:"testimonial" label:"Testimonial" validate:"required,min=10,max=1000"`
	ExternalLink string `form:"externalLink" label:"External link" validate:"omitempty,httpurl"`
}

func requestFromForm(values url.Values) CreateRequest {
	return CreateRequest{
		Name:         strings.TrimSpace(values.Get("name")),
		Role:         strings.TrimSpace(values.Get("role")),
		Text:         strings.TrimSpace(values.Get("testimonial")),
		ExternalLink: strings.TrimSpace(values.Get("externalLink")),
	}
}

type Response struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PhotoURL     string `json:"photoUrl"`
	Text         string `json:"testimonial"`
	ExternalLink string `json:"externalLink"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func (t Testimonial) Response() Response {
	return Response{
		ID:           t.ID,
		Name:         t.Name,
		Role:         t.Role,
		PhotoURL:     t.PhotoURL,
		Text:         t.Text,
		ExternalLink: t.ExternalLink,
		CreatedAt:    content.Timestamp(t.CreatedAt),
		UpdatedAt:    content.Timestamp(t.UpdatedAt),
	}
}
