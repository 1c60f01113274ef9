package validation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"launchpad-api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string  `json:"title" label:"Title" validate:"required,max=150"`
	Link  string  `json:"externalLink" label:"External link" validate:"required,httpurl"`
	Note  *string `json:"note,omitempty" label:"Note" validate:"omitempty,min=10"`
}

func TestValidateTitleBoundary(t *testing.T) {
	v := New()
	ctx := context.Background()

	ok := sample{Title: strings.Repeat("a", 150), Link: "https://example.com"}
	assert.Empty(t, v.Validate(ctx, LocationBody, ok))

	tooLong := sample{Title: strings.Repeat("a", 151), Link: "https://example.com"}
	violations := v.Validate(ctx, LocationBody, tooLong)
	require.Len(t, violations, 1)
	assert.Equal(t, "body.title", violations[0].Path)
	assert.Equal(t, "Title must be 150 characters or fewer", violations[0].Message)
}

func TestValidateMessages(t *testing.T) {
	v := New()
	short := "too short"
	violations := v.Validate(context.Background(), LocationBody, sample{Link: "example.com", Note: &short})
	require.Len(t, violations, 3)

	byPath := map[string]string{}
	for _, vi := range violations {
		byPath[vi.Path] = vi.Message
	}
	assert.Equal(t, "Title is required", byPath["body.title"])
	assert.Equal(t, "Enter a valid external link (http or https)", byPath["body.externalLink"])
	assert.Equal(t, "Note should be at least 10 characters", byPath["body.note"])
}

func TestCheckReturnsBadRequest(t *testing.T) {
	err := New().Check(context.Background(), LocationBody, sample{})
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, InvalidPayloadMessage, appErr.Message)
	assert.Len(t, appErr.Details, 2)
}

func TestIsHTTPURL(t *testing.T) {
	for _, good := range []string{
		"http://example.com",
		"https://www.behance.net/gallery/123",
		"HTTPS://Example.org/path?q=1",
		"http://localhost:3000",
	} {
		assert.True(t, IsHTTPURL(good), good)
	}
	for _, bad := range []string{
		"",
		"example.com",
		"www.example.com",
		"ftp://example.com",
		"https://",
		"https://nodot",
		"javascript:alert(1)",
		"https://exa mple.com",
	} {
		assert.False(t, IsHTTPURL(bad), bad)
	}
}

func TestValidateParamLength(t *testing.T) {
	type params struct {
		ID string `json:"id" label:"Video ID" validate:"required,len=24"`
	}
	violations := New().Validate(context.Background(), LocationParams, params{ID: "123"})
	require.Len(t, violations, 1)
	assert.Equal(t, "params.id", violations[0].Path)
	assert.Equal(t, "Invalid video ID", violations[0].Message)
}
