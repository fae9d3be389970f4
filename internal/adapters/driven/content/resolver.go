// Package content resolves media locators into bytes the AI providers can
// read. Locators are local paths, file:// URLs or http(s) URLs.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driven.ContentResolver = (*Resolver)(nil)

// Default configuration values.
const (
	DefaultMaxBytes = 50 << 20
	DefaultTimeout  = 60 * time.Second
)

// ErrTooLarge is returned when content exceeds the configured limit.
var ErrTooLarge = errors.New("content exceeds size limit")

// Config holds resolver settings.
type Config struct {
	// BaseDir anchors relative paths. Empty means the working directory.
	BaseDir string

	// MaxBytes caps the content size (default: 50 MiB).
	MaxBytes int64

	// Timeout bounds remote downloads (default: 60s).
	Timeout time.Duration
}

// Resolver reads local files and downloads remote media.
type Resolver struct {
	client   *http.Client
	baseDir  string
	maxBytes int64
}

// NewResolver creates a content resolver.
func NewResolver(cfg Config) *Resolver {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Resolver{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseDir:  cfg.BaseDir,
		maxBytes: cfg.MaxBytes,
	}
}

// Resolve fetches the content behind locator.
func (r *Resolver) Resolve(ctx context.Context, locator string) (*domain.MediaContent, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, fmt.Errorf("%w: empty locator", domain.ErrInvalidInput)
	}

	u, err := url.Parse(locator)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return r.fetch(ctx, locator)
		case "file":
			return r.readFile(u.Path)
		}
	}
	return r.readFile(locator)
}

func (r *Resolver) readFile(path string) (*domain.MediaContent, error) {
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := r.readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	logger.Debug("content: read %d bytes from %s", len(data), path)
	return &domain.MediaContent{
		Locator:  path,
		MimeType: sniff(data, ""),
		Data:     data,
	}, nil
}

func (r *Resolver) fetch(ctx context.Context, locator string) (*domain.MediaContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", locator, resp.StatusCode)
	}
	if resp.ContentLength > r.maxBytes {
		return nil, fmt.Errorf("fetch %s: %w (%d bytes)", locator, ErrTooLarge, resp.ContentLength)
	}

	data, err := r.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", locator, err)
	}

	logger.Debug("content: downloaded %d bytes from %s", len(data), locator)
	return &domain.MediaContent{
		Locator:  locator,
		MimeType: sniff(data, resp.Header.Get("Content-Type")),
		Data:     data,
	}, nil
}

func (r *Resolver) readLimited(src io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(src, r.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, errors.New("content is empty")
	}
	return data, nil
}

// sniff prefers a specific declared media type and falls back to
// detection from the bytes.
func sniff(data []byte, declared string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && isSpecific(mt) {
			return mt
		}
	}
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

func isSpecific(mt string) bool {
	return mt != "application/octet-stream" && mt != "binary/octet-stream" && !strings.HasPrefix(mt, "text/plain")
}
