// Package contenttest builds requests and decodes responses for the content
// handler tests.
package contenttest

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"launchpad-api/internal/auth"
	"launchpad-api/internal/middleware"
	"launchpad-api/internal/validation"

	"github.com/stretchr/testify/require"
)

var (
	Admin  = auth.Identity{Subject: "64b7f0c2a1b2c3d4e5f60718", Email: "admin@agency.test", Role: auth.RoleAdmin}
	Editor = auth.Identity{Subject: "64b7f0c2a1b2c3d4e5f60719", Email: "editor@agency.test", Role: "editor"}
)

type File struct {
	Field       string
	Filename    string
	ContentType string
	Body        []byte
}

func PNG(field string) File {
	return File{Field: field, Filename: "shot.png", ContentType: "image/png", Body: []byte("\x89PNG fake")}
}

// Multipart builds a POST to target carrying fields and optional files. The
// request context holds id unless id is the zero value.
func Multipart(t *testing.T, target string, id auth.Identity, fields map[string]string, files ...File) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Filename+`"`)
		h.Set("Content-Type", f.ContentType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(f.Body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Host = "agency.test"
	if id != (auth.Identity{}) {
		req = req.WithContext(middleware.WithIdentity(req.Context(), id))
	}
	return req
}

type ErrorBody struct {
	Message string                 `json:"message"`
	Details []validation.Violation `json:"details"`
}

// Error decodes an error response whose details, if any, are a violation list.
func Error(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var raw struct {
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw), rr.Body.String())
	out := ErrorBody{Message: raw.Message}
	if len(raw.Details) > 0 && raw.Details[0] == '[' {
		require.NoError(t, json.Unmarshal(raw.Details, &out.Details))
	}
	return out
}

// Paths lists the violation paths of body.
func (b ErrorBody) Paths() []string {
	paths := make([]string, 0, len(b.Details))
	for _, v := range b.Details {
		paths = append(paths, v.Path)
	}
	return paths
}

// Files lists the entries of dir, treating a missing dir as empty.
func Files(t *testing.T, dir string) []string {
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
