package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// VideoMetadata is what the extraction collaborator returns for a URL.
type VideoMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Platform    string `json:"platform"`
}

// MetadataExtractor resolves a video URL to its public metadata without
// downloading the video.
type MetadataExtractor interface {
	Extract(ctx context.Context, videoURL string) (*VideoMetadata, error)
}

// HTTPMetadataExtractor calls a metadata sidecar service (a yt-dlp wrapper)
// over HTTP. Calls run under a bounded timeout and a circuit breaker so a
// dead sidecar fails fast instead of stalling every request.
type HTTPMetadataExtractor struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*VideoMetadata]
}

func NewHTTPMetadataExtractor(baseURL string, timeout time.Duration) *HTTPMetadataExtractor {
	breaker := gobreaker.NewCircuitBreaker[*VideoMetadata](gobreaker.Settings{
		Name:    "metadata-extractor",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})

	return &HTTPMetadataExtractor{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

// Extract fetches metadata for the URL. Any failure (transport, non-200,
// malformed body) wraps ErrExtraction so the orchestrator can surface it
// verbatim as a terminal result.
func (e *HTTPMetadataExtractor) Extract(ctx context.Context, videoURL string) (*VideoMetadata, error) {
	meta, err := e.breaker.Execute(func() (*VideoMetadata, error) {
		return e.fetch(ctx, videoURL)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return meta, nil
}

func (e *HTTPMetadataExtractor) fetch(ctx context.Context, videoURL string) (*VideoMetadata, error) {
	endpoint := fmt.Sprintf("%s/info?url=%s", e.baseURL, url.QueryEscape(videoURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("extractor returned %d: %s", resp.StatusCode, body)
	}

	var meta VideoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}
