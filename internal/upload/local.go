package upload

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploads in a directory served read-only under urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// EnsureDir creates the upload directory if it does not exist yet.
func (s *LocalStore) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s *LocalStore) Save(ctx context.Context, name, contentType string, r io.Reader) (int64, error) {
	if err := s.EnsureDir(); err != nil {
		return 0, err
	}
	if name != filepath.Base(name) {
		return 0, errors.New("invalid upload name")
	}

	tmp, err := os.CreateTemp(s.dir, ".partial-*")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}

	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}
	return n, nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if name != filepath.Base(name) {
		return errors.New("invalid upload name")
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStore) URL(r *http.Request, name string) string {
	return RequestOrigin(r) + s.urlPrefix + "/" + name
}

// Handler serves stored files without directory listings or partial files.
func (s *LocalStore) Handler() http.Handler {
	return http.StripPrefix(s.urlPrefix+"/", http.FileServer(filesOnly{http.Dir(s.dir)}))
}

// RequestOrigin rebuilds scheme://host for the current request.
func RequestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return nil, fs.ErrNotExist
	}
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
