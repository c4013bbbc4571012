package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// Queries run against the video index to detect campaign content. The milk
// score is the mean of the best per-query confidence.
var milkSearchQueries = []string{
	"person drinking milk",
	"glass of milk",
	"milk container",
	"pouring milk",
	"milk mustache",
}

// SearchMatch is one hit from the content search collaborator.
type SearchMatch struct {
	VideoID    string  `json:"video_id"`
	Confidence float64 `json:"confidence"`
}

// ContentSearchService is the capability-scoped seam to the external
// video-understanding API: search an index by text query.
type ContentSearchService interface {
	Search(ctx context.Context, indexID, query string) ([]SearchMatch, error)
}

// HTTPContentSearch talks to the video-understanding API over HTTP with a
// circuit breaker. Frame-level analysis itself is opaque to this system.
type HTTPContentSearch struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]SearchMatch]
}

func NewHTTPContentSearch(baseURL, apiKey string, timeout time.Duration) *HTTPContentSearch {
	breaker := gobreaker.NewCircuitBreaker[[]SearchMatch](gobreaker.Settings{
		Name:    "content-search",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})

	return &HTTPContentSearch{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
	}
}

func (s *HTTPContentSearch) Search(ctx context.Context, indexID, query string) ([]SearchMatch, error) {
	matches, err := s.breaker.Execute(func() ([]SearchMatch, error) {
		return s.search(ctx, indexID, query)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	return matches, nil
}

func (s *HTTPContentSearch) search(ctx context.Context, indexID, query string) ([]SearchMatch, error) {
	payload, err := json.Marshal(map[string]any{
		"index_id":       indexID,
		"query":          query,
		"search_options": []string{"visual", "conversation", "text_in_video"},
		"page_limit":     5,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search returned %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Data []SearchMatch `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return out.Data, nil
}

// MilkScore runs every milk query against the index and averages the best
// per-query confidence. Queries with no hits contribute zero.
func MilkScore(ctx context.Context, search ContentSearchService, indexID string) (float64, error) {
	var total float64
	for _, query := range milkSearchQueries {
		matches, err := search.Search(ctx, indexID, query)
		if err != nil {
			return 0, err
		}
		best := 0.0
		for _, m := range matches {
			if m.Confidence > best {
				best = m.Confidence
			}
		}
		total += best
	}
	return total / float64(len(milkSearchQueries)), nil
}
