package image

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tingelabs/tinge/internal/version"
)

// DefaultFetchTimeout bounds a remote image download.
const DefaultFetchTimeout = 10 * time.Second

// IsRemote reports whether ref is an http(s) URL rather than a local path.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// CachingSource resolves both local paths and http(s) URLs. Remote images
// are downloaded once and cached on disk; subsequent loads of the same URL
// hit the cache.
type CachingSource struct {
	local *FileSource

	// CacheDir is where downloaded images are stored.
	// Empty means the user cache directory.
	CacheDir string

	// FetchTimeout bounds each download. Zero means DefaultFetchTimeout.
	FetchTimeout time.Duration
}

// NewCachingSource creates a CachingSource with the default cache location.
func NewCachingSource() *CachingSource {
	return &CachingSource{local: NewFileSource()}
}

// Pixels loads the referenced image, downloading and caching it first when
// ref is a URL.
func (s *CachingSource) Pixels(ref string) (*PixelBuffer, error) {
	if !IsRemote(ref) {
		return s.local.Pixels(ref)
	}

	path, err := s.fetch(context.Background(), ref)
	if err != nil {
		return nil, err
	}
	return s.local.Pixels(path)
}

// fetch downloads a remote image into the cache, returning the local path.
// An already-cached URL is returned without a network round trip.
func (s *CachingSource) fetch(ctx context.Context, rawURL string) (string, error) {
	if err := validateImageURL(rawURL); err != nil {
		return "", err
	}

	cacheDir := s.CacheDir
	if cacheDir == "" {
		dir, err := defaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = dir
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(cacheDir, cacheFilename(rawURL))
	if _, err := os.Stat(cachedPath); err == nil {
		return cachedPath, nil
	}

	data, err := s.download(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if err := os.WriteFile(cachedPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	return cachedPath, nil
}

// download retrieves the URL body with a bounded timeout.
func (s *CachingSource) download(ctx context.Context, rawURL string) ([]byte, error) {
	timeout := s.FetchTimeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("tinge/%s", version.Version))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// validateImageURL rejects URLs with unexpected schemes or no host.
func validateImageURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image URL: %w", err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("invalid image URL scheme (only http and https allowed): %s", scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("image URL must have a hostname")
	}
	return nil
}

// defaultCacheDir returns the per-user download cache location.
func defaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "tinge", "images"), nil
	}
	return filepath.Join(cacheDir, "tinge", "images"), nil
}

// cacheFilename derives a deterministic cache filename from a URL, keeping
// the original extension so the decoder can sniff the format.
func cacheFilename(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	name := fmt.Sprintf("%x", hash[:16])

	ext := filepath.Ext(rawURL)
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return name + ext
}
