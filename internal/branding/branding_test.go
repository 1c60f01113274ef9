package branding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"launchpad-api/internal/auth"
	"launchpad-api/internal/cache"
	"launchpad-api/internal/content"
	"launchpad-api/internal/content/contenttest"
	"launchpad-api/internal/upload"
	"launchpad-api/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepo struct {
	mu        sync.Mutex
	items     []Item
	lists     int
	insertErr error
}

func (m *memoryRepo) Insert(ctx context.Context, item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.items = append(m.items, item)
	return nil
}

func (m *memoryRepo) List(ctx context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	out := append([]Item(nil), m.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fixture struct {
	repo    *memoryRepo
	handler *Handler
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	repo := &memoryRepo{}
	svc := NewService(repo)
	receiver := upload.NewReceiver(upload.NewLocalStore(dir, "/uploads"), upload.DefaultMaxBytes)
	lists := content.NewListCache(cache.NewMemory(), time.Minute)
	return &fixture{
		repo:    repo,
		handler: NewHandler(svc, validation.New(), receiver, lists, zap.NewNop()),
		dir:     dir,
	}
}

func validFields() map[string]string {
	return map[string]string{
		"title":        "  Northwind rebrand ",
		"description":  "Logo and identity system",
		"externalLink": "https://northwind.example.com/case",
	}
}

func (f *fixture) create(t *testing.T, id auth.Identity, fields map[string]string, files ...contenttest.File) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	f.handler.Create(rr, contenttest.Multipart(t, "/api/branding", id, fields, files...))
	return rr
}

func TestCreateStoresItem(t *testing.T) {
	f := newFixture(t)

	rr := f.create(t, contenttest.Admin, validFields(), contenttest.PNG(imageField))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var got Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.ID, 24)
	assert.Equal(t, "Northwind rebrand", got.Title)
	assert.Equal(t, "https://northwind.example.com/case", got.ExternalLink)
	assert.True(t, strings.HasPrefix(got.ImageURL, "http://agency.test/uploads/"), got.ImageURL)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, got.CreatedAt)

	require.Len(t, f.repo.items, 1)
	assert.Len(t, contenttest.Files(t, f.dir), 1)
}

func TestCreateOptionalDescriptionStoredEmpty(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	delete(fields, "description")

	rr := f.create(t, contenttest.Admin, fields, contenttest.PNG(imageField))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "", f.repo.items[0].Description)
}

func TestCreateTitleBoundary(t *testing.T) {
	f := newFixture(t)

	fields := validFields()
	fields["title"] = strings.Repeat("t", 150)
	rr := f.create(t, contenttest.Admin, fields, contenttest.PNG(imageField))
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	fields["title"] = strings.Repeat("t", 151)
	rr = f.create(t, contenttest.Admin, fields, contenttest.PNG(imageField))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := contenttest.Error(t, rr)
	assert.Equal(t, validation.InvalidPayloadMessage, body.Message)
	assert.Equal(t, []string{"body.title"}, body.Paths())
	assert.Equal(t, "Title must be 150 characters or fewer", body.Details[0].Message)

	assert.Len(t, f.repo.items, 1)
	assert.Len(t, contenttest.Files(t, f.dir), 1)
}

func TestCreateRejectsBareDomainLink(t *testing.T) {
	f := newFixture(t)
	fields := validFields()
	fields["externalLink"] = "northwind.example.com"

	rr := f.create(t, contenttest.Admin, fields, contenttest.PNG(imageField))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := contenttest.Error(t, rr)
	assert.Equal(t, []string{"body.externalLink"}, body.Paths())
	assert.Empty(t, contenttest.Files(t, f.dir))
	assert.Empty(t, f.repo.items)
}

func TestCreateRequiresImage(t *testing.T) {
	f := newFixture(t)

	rr := f.create(t, contenttest.Admin, validFields())
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Image upload is required", contenttest.Error(t, rr).Message)
	assert.Empty(t, f.repo.items)
}

func TestCreateRejectsOversizedImage(t *testing.T) {
	f := newFixture(t)
	big := contenttest.File{Field: imageField, Filename: "big.png", ContentType: "image/png", Body: bytes.Repeat([]byte("a"), 6<<20)}

	rr := f.create(t, contenttest.Admin, validFields(), big)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "File too large", contenttest.Error(t, rr).Message)
	assert.Empty(t, contenttest.Files(t, f.dir))
	assert.Empty(t, f.repo.items)
}

func TestCreateRejectsNonImage(t *testing.T) {
	f := newFixture(t)
	pdf := contenttest.File{Field: imageField, Filename: "brief.pdf", ContentType: "application/pdf", Body: []byte("%PDF")}

	rr := f.create(t, contenttest.Admin, validFields(), pdf)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Only image uploads are allowed", contenttest.Error(t, rr).Message)
}

func TestCreateForbiddenDiscardsUpload(t *testing.T) {
	f := newFixture(t)

	rr := f.create(t, contenttest.Editor, validFields(), contenttest.PNG(imageField))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, contenttest.Files(t, f.dir))
	assert.Empty(t, f.repo.items)
}

func TestCreateDatabaseFailureDiscardsUpload(t *testing.T) {
	f := newFixture(t)
	f.repo.insertErr = errors.New("connection reset")

	rr := f.create(t, contenttest.Admin, validFields(), contenttest.PNG(imageField))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, contenttest.Files(t, f.dir))
}

func TestListNewestFirstAndCached(t *testing.T) {
	f := newFixture(t)
	old := time.Now().Add(-time.Hour).UTC()
	f.repo.items = []Item{
		{ID: "a", Title: "Older", CreatedAt: old, UpdatedAt: old},
		{ID: "b", Title: "Newer", CreatedAt: old.Add(time.Minute), UpdatedAt: old.Add(time.Minute)},
	}

	list := func() []Response {
		rr := httptest.NewRecorder()
		f.handler.List(rr, httptest.NewRequest(http.MethodGet, "/api/branding", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var out []Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		return out
	}

	got := list()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	list()
	assert.Equal(t, 1, f.repo.lists)

	rr := f.create(t, contenttest.Admin, validFields(), contenttest.PNG(imageField))
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, list(), 3)
	assert.Equal(t, 2, f.repo.lists)
}

func TestListEmptyIsArray(t *testing.T) {
	f := newFixture(t)
	rr := httptest.NewRecorder()
	f.handler.List(rr, httptest.NewRequest(http.MethodGet, "/api/branding", nil))
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestServiceRejectsNonAdmin(t *testing.T) {
	svc := NewService(&memoryRepo{})
	_, err := svc.Create(context.Background(), contenttest.Editor, CreateRequest{Title: "x"}, "http://x/y.png")
	assert.ErrorIs(t, err, content.ErrForbidden)
}
