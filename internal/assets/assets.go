// Package assets accepts image uploads for block properties.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/alexisbeaulieu97/pagesmith/internal/ids"
	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
)

const (
	// DefaultMaxBytes caps a single upload.
	DefaultMaxBytes int64 = 5 * 1024 * 1024
	// PublicPrefix is prepended to stored file names in returned URLs.
	PublicPrefix = "/uploads/"
)

// AllowedTypes lists accepted MIME types and the extension stored for each.
var AllowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrorKind classifies a rejected upload.
type ErrorKind string

const (
	KindNoFile    ErrorKind = "no_file"
	KindWrongType ErrorKind = "wrong_type"
	KindTooLarge  ErrorKind = "too_large"
	KindFailed    ErrorKind = "failed"
)

// UploadError reports why an upload was refused.
type UploadError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *UploadError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindNoFile:
		return "upload error: no file provided"
	case KindWrongType:
		return fmt.Sprintf("upload error: invalid file type %s; only JPEG, PNG, WebP and GIF are allowed", e.Detail)
	case KindTooLarge:
		return fmt.Sprintf("upload error: file too large; maximum size is %s", e.Detail)
	default:
		if e.Err != nil {
			return fmt.Sprintf("upload error: %v", e.Err)
		}
		return "upload error: upload failed"
	}
}

// Unwrap exposes the underlying error.
func (e *UploadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an UploadError of kind.
func IsKind(err error, kind ErrorKind) bool {
	var ue *UploadError
	return errors.As(err, &ue) && ue.Kind == kind
}

// Result describes a stored upload.
type Result struct {
	URL      string
	FileName string
	Size     int64
	MIME     string
	Path     string
}

// Store writes uploads into a directory.
type Store struct {
	dir      string
	maxBytes int64
	now      func() time.Time
	logger   ports.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMaxBytes overrides DefaultMaxBytes.
func WithMaxBytes(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l ports.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first successful upload.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, maxBytes: DefaultMaxBytes, now: time.Now, logger: logger.NewNoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

// MaxBytes returns the size cap.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Save validates and stores the content read from r. The type is detected
// from the content; name is the client file name and is only logged.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (Result, error) {
	if r == nil {
		return Result{}, &UploadError{Kind: KindNoFile}
	}

	// One extra byte distinguishes "exactly max" from "over max".
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return Result{}, &UploadError{Kind: KindFailed, Err: err}
	}
	if len(data) == 0 {
		return Result{}, &UploadError{Kind: KindNoFile}
	}
	if int64(len(data)) > s.maxBytes {
		return Result{}, &UploadError{Kind: KindTooLarge, Detail: humanSize(s.maxBytes)}
	}

	mime := mimetype.Detect(data)
	ext, ok := allowedExtension(mime)
	if !ok {
		return Result{}, &UploadError{Kind: KindWrongType, Detail: mime.String()}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, &UploadError{Kind: KindFailed, Err: err}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Result{}, &UploadError{Kind: KindFailed, Err: err}
	}
	fileName := ids.Stamped("", s.now()) + ext
	dest := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return Result{}, &UploadError{Kind: KindFailed, Err: err}
	}

	res := Result{
		URL:      path.Join(PublicPrefix, fileName),
		FileName: fileName,
		Size:     int64(len(data)),
		MIME:     baseMIME(mime.String()),
		Path:     dest,
	}
	s.logger.Info(ctx, "asset uploaded", "source", name, "file", fileName, "bytes", res.Size, "mime", res.MIME)
	return res, nil
}

// SaveFile is Save for a file on disk.
func (s *Store) SaveFile(ctx context.Context, src string) (Result, error) {
	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, &UploadError{Kind: KindNoFile, Err: err}
		}
		return Result{}, &UploadError{Kind: KindFailed, Err: err}
	}
	defer f.Close()
	return s.Save(ctx, filepath.Base(src), f)
}

// Resolve maps a URL returned by Save back to its file path. It reports
// false for anything outside the upload directory.
func (s *Store) Resolve(url string) (string, bool) {
	if !strings.HasPrefix(url, PublicPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, PublicPrefix)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

// Sniff returns the detected MIME type of data without storing it.
func Sniff(data []byte) string {
	return baseMIME(mimetype.Detect(data).String())
}

func allowedExtension(m *mimetype.MIME) (string, bool) {
	for cur := m; cur != nil; cur = cur.Parent() {
		if ext, ok := AllowedTypes[baseMIME(cur.String())]; ok {
			return ext, true
		}
	}
	return "", false
}

func baseMIME(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func humanSize(n int64) string {
	return humanize.IBytes(uint64(n))
}
