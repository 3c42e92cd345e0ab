package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/zap"
)

const _maxImageSize = 10 * 1024 * 1024 // 10 MB

// HTTPFetcher retrieves album art over HTTP(S) or from the local disk
type HTTPFetcher struct {
	logger *zap.Logger
	client *http.Client
}

// NewHTTPFetcher creates a new HTTP-based fetcher instance
func NewHTTPFetcher(logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch downloads image data from the given URL. file:// URLs and plain
// paths are read from disk, as MPRIS players publish cached art that way.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (domain.Artwork, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("%w: bad art url %q: %v", domain.ErrTransient, rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "file":
		return f.readFile(u.Path)
	case "":
		return f.readFile(rawURL)
	default:
		return domain.Artwork{}, fmt.Errorf("%w: unsupported art url scheme %q", domain.ErrTransient, u.Scheme)
	}
}

func (f *HTTPFetcher) fetchHTTP(ctx context.Context, rawURL string) (domain.Artwork, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "nowplaying/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("%w: network error: %v", domain.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Artwork{}, fmt.Errorf("%w: unexpected status code: %d", domain.ErrTransient, resp.StatusCode)
	}

	enc, err := encodingOf(resp.Header.Get("Content-Type"))
	if err != nil {
		return domain.Artwork{}, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, _maxImageSize))
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("%w: failed to read body: %v", domain.ErrTransient, err)
	}

	f.logger.Debug("Image fetched successfully",
		zap.Int("bytes", len(data)),
		zap.String("url", rawURL),
		zap.Stringer("encoding", enc))
	return domain.Artwork{Data: data, Encoding: enc}, nil
}

func (f *HTTPFetcher) readFile(path string) (domain.Artwork, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, _maxImageSize))
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("%w: failed to read %s: %v", domain.ErrTransient, path, err)
	}

	enc, err := encodingOf(http.DetectContentType(data))
	if err != nil {
		return domain.Artwork{}, err
	}

	f.logger.Debug("Image read from disk", zap.Int("bytes", len(data)), zap.String("path", path))
	return domain.Artwork{Data: data, Encoding: enc}, nil
}

// encodingOf maps a content type to an artwork encoding
func encodingOf(contentType string) (domain.Encoding, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch mediaType {
	case "image/jpeg", "image/jpg":
		return domain.EncodingJPEG, nil
	case "image/png":
		return domain.EncodingPNG, nil
	}

	if strings.HasPrefix(mediaType, "image/") {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnsupportedEncoding, mediaType)
	}
	return 0, fmt.Errorf("%w: url is not an image: %s", domain.ErrTransient, contentType)
}
