package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/zap"
)

const _maxBodySize = 1 << 20

// HTTPSource polls a JSON endpoint describing the current playback
type HTTPSource struct {
	logger *zap.Logger
	client *http.Client
	url    string
}

// NewHTTPSource creates a source reading from url
func NewHTTPSource(logger *zap.Logger, url string) *HTTPSource {
	return &HTTPSource{
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
	}
}

// CurrentlyPlaying fetches and decodes one snapshot. A JSON null body, or an
// empty 204 response, means nothing is playing.
func (s *HTTPSource) CurrentlyPlaying(ctx context.Context) (*domain.Playing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: network error: %v", domain.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrTransient, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, _maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", domain.ErrTransient, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var playing domain.Playing
	if err := json.Unmarshal(body, &playing); err != nil {
		s.logger.Debug("Undecodable playback response", zap.ByteString("body", body))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	return &playing, nil
}
