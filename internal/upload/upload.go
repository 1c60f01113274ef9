// Package upload receives single-image multipart submissions and hands the
// file to a Store.
//
// Files are filtered by the client-declared Content-Type only. Image content is
// never sniffed or decoded.
package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultMaxBytes = 5 << 20

	defaultExt     = ".jpg"
	maxFieldBytes  = 64 << 10
	formOverhead   = 1 << 20
	randomIDLength = 16
)

var (
	ErrNotImage        = errors.New("only image uploads are allowed")
	ErrTooLarge        = errors.New("file too large")
	ErrUnexpectedField = errors.New("unexpected file field")
	ErrMalformed       = errors.New("malformed multipart body")
)

var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

type Store interface {
	// Save consumes r fully and stores it under name, returning the bytes written.
	Save(ctx context.Context, name, contentType string, r io.Reader) (int64, error)
	Delete(ctx context.Context, name string) error
	URL(r *http.Request, name string) string
}

type File struct {
	Name         string
	OriginalName string
	ContentType  string
	Size         int64
	URL          string
}

type Form struct {
	Values url.Values
	// File is nil when the request carried no file under the expected field.
	File *File
}

type Receiver struct {
	store    Store
	maxBytes int64
	now      func() time.Time
}

func NewReceiver(store Store, maxBytes int64) *Receiver {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Receiver{store: store, maxBytes: maxBytes, now: time.Now}
}

func (rc *Receiver) MaxBytes() int64 {
	return rc.maxBytes
}

// Receive streams the request body, storing at most one file found under
// field. Oversized files are rejected mid-stream and nothing is kept.
func (rc *Receiver) Receive(w http.ResponseWriter, r *http.Request, field string) (*Form, error) {
	form := &Form{Values: url.Values{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, formOverhead)
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		form.Values = r.PostForm
		return form, nil
	default:
		return form, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, rc.maxBytes+formOverhead)
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			rc.Discard(r.Context(), form.File)
			return nil, rc.classify(err)
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			part.Close()
			if err != nil {
				rc.Discard(r.Context(), form.File)
				return nil, rc.classify(err)
			}
			form.Values.Add(part.FormName(), string(value))
			continue
		}

		if part.FormName() != field || form.File != nil {
			part.Close()
			rc.Discard(r.Context(), form.File)
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedField, part.FormName())
		}

		file, err := rc.save(r, part)
		part.Close()
		if err != nil {
			return nil, err
		}
		form.File = file
	}

	return form, nil
}

// Discard removes a stored file after a later pipeline stage failed.
func (rc *Receiver) Discard(ctx context.Context, file *File) {
	if file == nil {
		return
	}
	_ = rc.store.Delete(ctx, file.Name)
}

func (rc *Receiver) save(r *http.Request, part *multipart.Part) (*File, error) {
	contentType := part.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	name, err := rc.filename(part.FileName())
	if err != nil {
		return nil, err
	}

	limited := &limitReader{r: part, remaining: rc.maxBytes}
	size, err := rc.store.Save(r.Context(), name, contentType, limited)
	if err != nil {
		return nil, rc.classify(err)
	}

	return &File{
		Name:         name,
		OriginalName: part.FileName(),
		ContentType:  contentType,
		Size:         size,
		URL:          rc.store.URL(r, name),
	}, nil
}

func (rc *Receiver) filename(original string) (string, error) {
	buf := make([]byte, randomIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	ext := filepath.Ext(original)
	if !safeExt.MatchString(ext) {
		ext = defaultExt
	}
	return fmt.Sprintf("%d-%s%s", rc.now().UnixMilli(), hex.EncodeToString(buf), ext), nil
}

func (rc *Receiver) classify(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, ErrTooLarge), errors.As(err, &maxErr):
		return ErrTooLarge
	case errors.Is(err, ErrNotImage), errors.Is(err, ErrUnexpectedField), errors.Is(err, ErrMalformed):
		return err
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, multipart.ErrMessageTooLarge):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	default:
		return err
	}
}

// limitReader fails with ErrTooLarge as soon as more than remaining bytes
// are read, so oversized files are never fully buffered.
type limitReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, ErrTooLarge
	}
	return n, err
}
