package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title       *string `json:"title"`
	IsPublished *bool   `json:"isPublished"`
}

func decodeString(t *testing.T, body string) (payload, error) {
	t.Helper()
	var p payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	err := DecodeJSON(httptest.NewRecorder(), req, &p)
	return p, err
}

func TestDecodeJSONIgnoresUnknownKeys(t *testing.T) {
	p, err := decodeString(t, `{"title":"Launch","extra":1}`)
	require.NoError(t, err)
	require.NotNil(t, p.Title)
	assert.Equal(t, "Launch", *p.Title)
	assert.Nil(t, p.IsPublished)
}

func TestDecodeJSONTypeMismatchNamesField(t *testing.T) {
	_, err := decodeString(t, `{"isPublished":"yes"}`)
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	violations, ok := appErr.Details.([]validation.Violation)
	require.True(t, ok)
	require.Len(t, violations, 1)
	assert.Equal(t, "body.isPublished", violations[0].Path)
	assert.Equal(t, "Expected boolean, received string", violations[0].Message)
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	_, err := decodeString(t, `{"title":"a"}{"title":"b"}`)
	assert.Error(t, err)
}

func TestDecodeJSONMalformed(t *testing.T) {
	_, err := decodeString(t, `{"title":`)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Malformed JSON body", appErr.Message)
}
