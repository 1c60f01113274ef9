package upload

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	field       string
	filename    string
	contentType string
	body        []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/branding", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Host = "agency.test"
	return req
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestReceiveStoresImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	rc := NewReceiver(NewLocalStore(dir, "/uploads"), 1024)
	rc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	req := multipartRequest(t, map[string]string{"title": "Rebrand"},
		part{field: "image", filename: "logo.png", contentType: "image/png", body: []byte("pngdata")})
	form, err := rc.Receive(httptest.NewRecorder(), req, "image")
	require.NoError(t, err)

	assert.Equal(t, "Rebrand", form.Values.Get("title"))
	require.NotNil(t, form.File)
	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[0-9a-f]{32}\.png$`), form.File.Name)
	assert.Equal(t, int64(7), form.File.Size)
	assert.Equal(t, "http://agency.test/uploads/"+form.File.Name, form.File.URL)

	data, err := os.ReadFile(filepath.Join(dir, form.File.Name))
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(data))
	assert.Equal(t, []string{form.File.Name}, dirEntries(t, dir))
}

func TestReceiveDefaultsExtension(t *testing.T) {
	dir := t.TempDir()
	rc := NewReceiver(NewLocalStore(dir, "uploads"), 1024)

	req := multipartRequest(t, nil, part{field: "photo", filename: "portrait", contentType: "image/jpeg", body: []byte("x")})
	form, err := rc.Receive(httptest.NewRecorder(), req, "photo")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(form.File.Name, ".jpg"), form.File.Name)
}

func TestReceiveWithoutFile(t *testing.T) {
	rc := NewReceiver(NewLocalStore(t.TempDir(), "/uploads"), 1024)
	form, err := rc.Receive(httptest.NewRecorder(), multipartRequest(t, map[string]string{"title": "x"}), "image")
	require.NoError(t, err)
	assert.Nil(t, form.File)
}

func TestReceiveRejectsNonImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	rc := NewReceiver(NewLocalStore(dir, "/uploads"), 1024)

	req := multipartRequest(t, nil, part{field: "image", filename: "notes.txt", contentType: "text/plain", body: []byte("hi")})
	_, err := rc.Receive(httptest.NewRecorder(), req, "image")
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Empty(t, dirEntries(t, dir))
}

func TestReceiveRejectsOversizedWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	rc := NewReceiver(NewLocalStore(dir, "/uploads"), 1024)

	req := multipartRequest(t, nil, part{field: "image", filename: "big.png", contentType: "image/png", body: bytes.Repeat([]byte("a"), 1025)})
	_, err := rc.Receive(httptest.NewRecorder(), req, "image")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, dirEntries(t, dir))
}

func TestReceiveAcceptsExactlyMaxBytes(t *testing.T) {
	rc := NewReceiver(NewLocalStore(t.TempDir(), "/uploads"), 1024)

	req := multipartRequest(t, nil, part{field: "image", filename: "edge.png", contentType: "image/png", body: bytes.Repeat([]byte("a"), 1024)})
	form, err := rc.Receive(httptest.NewRecorder(), req, "image")
	require.NoError(t, err)
	assert.Equal(t, int64(1024), form.File.Size)
}

func TestReceiveRejectsSecondFile(t *testing.T) {
	dir := t.TempDir()
	rc := NewReceiver(NewLocalStore(dir, "/uploads"), 1024)

	req := multipartRequest(t, nil,
		part{field: "image", filename: "a.png", contentType: "image/png", body: []byte("a")},
		part{field: "image", filename: "b.png", contentType: "image/png", body: []byte("b")},
	)
	_, err := rc.Receive(httptest.NewRecorder(), req, "image")
	assert.ErrorIs(t, err, ErrUnexpectedField)
	assert.Empty(t, dirEntries(t, dir))
}

func TestDiscardRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")
	rc := NewReceiver(store, 1024)

	req := multipartRequest(t, nil, part{field: "image", filename: "a.png", contentType: "image/png", body: []byte("a")})
	form, err := rc.Receive(httptest.NewRecorder(), req, "image")
	require.NoError(t, err)

	rc.Discard(context.Background(), form.File)
	assert.Empty(t, dirEntries(t, dir))
}

func TestLocalStoreHandler(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")
	_, err := store.Save(context.Background(), "shot.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".partial-123"), []byte("tmp"), 0o644))

	srv := httptest.NewServer(store.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/uploads/shot.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "img", string(body))

	for _, path := range []string{"/uploads/", "/uploads/.partial-123", "/uploads/missing.png"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestRequestOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "api.agency.test"
	assert.Equal(t, "http://api.agency.test", RequestOrigin(req))

	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://api.agency.test", RequestOrigin(req))

	req.TLS = nil
	req.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https://api.agency.test", RequestOrigin(req))
}

func TestDefaultPublicBase(t *testing.T) {
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com", defaultPublicBase("", "media", "eu-west-1", false))
	assert.Equal(t, "http://minio:9000/media", defaultPublicBase("http://minio:9000", "media", "us-east-1", true))
	assert.Equal(t, "https://media.r2.example.com", defaultPublicBase("https://r2.example.com", "media", "auto", false))
	assert.Equal(t, "https://minio.local", normalizeEndpoint("minio.local/"))
}
