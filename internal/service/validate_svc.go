package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/repository"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/pkg/hash"
)

// Submitter placeholder for demo submissions; there is no user system.
const defaultSubmitter = "You"

// Platforms the URL classifier recognizes, mapped to the platform label the
// classifier's affinity rules use.
var supportedPlatforms = map[string]string{
	"youtube.com":      "youtube",
	"youtu.be":         "youtube",
	"vimeo.com":        "vimeo",
	"tiktok.com":       "tiktok",
	"instagram.com":    "instagram",
	"twitter.com":      "twitter",
	"x.com":            "twitter",
	"facebook.com":     "facebook",
	"reddit.com":       "reddit",
	"drive.google.com": "drive",
	"dropbox.com":      "dropbox",
}

var directVideoExtensions = []string{".mp4", ".mov", ".avi", ".webm", ".mkv", ".flv", ".wmv"}

// Source is a resolved submission origin.
type Source struct {
	Kind     model.SourceKind
	URL      string
	FilePath string
	Platform string
	// Staged uploads are removed when validation rejects them.
	Staged bool
}

// ref is the identifying string a dedup key is derived from: the URL for
// remote sources, the original filename for uploads.
func (s Source) ref() string {
	if s.URL != "" {
		return s.URL
	}
	return filepath.Base(s.FilePath)
}

// Outcome bundles everything one validation run produced.
type Outcome struct {
	Result     model.ValidationResult
	Assignment *model.MobAssignment
	VideoInfo  *model.VideoInfo
	// StoreFailed marks a best-effort persistence failure; the scoring
	// outcome above still stands.
	StoreFailed bool
}

// scoreStrategy is one step of the ordered fallback chain. An error moves
// the pipeline to the next strategy; a returned result is definitive.
type scoreStrategy func(ctx context.Context) (model.ValidationResult, error)

// ValidateService orchestrates the pipeline: resolve source, score through
// the strategy chain, classify and persist. Per request the flow is
// Received → Inspecting → Scoring → {Valid → Classifying → Persisted,
// Invalid → Rejected}, with no internal retries.
type ValidateService struct {
	scorer    *ScoreService
	mobs      *MobService
	store     repository.MobStore
	cache     *CacheService
	inspector FileInspector

	extractor      MetadataExtractor    // nil when unconfigured
	search         ContentSearchService // nil when unconfigured
	searchIndexID  string
	extractTimeout time.Duration

	analyzed atomic.Int64
	accepted atomic.Int64
}

func NewValidateService(
	scorer *ScoreService,
	mobs *MobService,
	store repository.MobStore,
	cache *CacheService,
	inspector FileInspector,
	extractor MetadataExtractor,
	search ContentSearchService,
	searchIndexID string,
	extractTimeout time.Duration,
) *ValidateService {
	return &ValidateService{
		scorer:         scorer,
		mobs:           mobs,
		store:          store,
		cache:          cache,
		inspector:      inspector,
		extractor:      extractor,
		search:         search,
		searchIndexID:  searchIndexID,
		extractTimeout: extractTimeout,
	}
}

// ClassifySourceURL resolves a raw URL to its source kind and platform
// label. Unsupported or malformed URLs are input errors and carry actionable
// text for the caller.
func ClassifySourceURL(raw string) (model.SourceKind, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", "", fmt.Errorf("%w: not a valid absolute URL", ErrInput)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", "", fmt.Errorf("%w: only http(s) URLs are supported", ErrInput)
	}

	lower := strings.ToLower(raw)
	for _, ext := range directVideoExtensions {
		if strings.HasSuffix(lower, ext) {
			return model.SourceDirectURL, "direct", nil
		}
	}

	host := strings.ToLower(parsed.Hostname())
	for domain, platform := range supportedPlatforms {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return model.SourcePlatformURL, platform, nil
		}
	}

	return "", "", fmt.Errorf("%w: provide a direct link to a video file or a supported platform URL (YouTube, TikTok, Instagram, Vimeo)", ErrInput)
}

// Validate runs the full pipeline for one submission.
func (s *ValidateService) Validate(ctx context.Context, source Source, hashtags string) (Outcome, error) {
	var outcome Outcome

	switch source.Kind {
	case model.SourceDirectURL, model.SourcePlatformURL:
		outcome = s.validateURL(ctx, source, hashtags)
	case model.SourceFileUpload:
		outcome = s.validateFile(ctx, source, hashtags)
	default:
		return Outcome{}, fmt.Errorf("%w: unknown source kind %q", ErrInput, source.Kind)
	}

	s.analyzed.Add(1)

	if !outcome.Result.IsValid {
		s.cleanupStaged(source)
		return outcome, nil
	}

	// Persistence happens only after the full pipeline succeeds; an aborted
	// request must not leave a partial record, and its staged upload is
	// removed like any other dead end.
	if err := ctx.Err(); err != nil {
		s.cleanupStaged(source)
		return outcome, err
	}

	assignment := outcome.Assignment
	record := model.MobVideo{
		ID:         uuid.NewString(),
		Title:      recordTitle(outcome, source),
		Submitter:  defaultSubmitter,
		Duration:   recordDuration(outcome),
		Confidence: outcome.Result.Confidence,
		AddedAt:    time.Now().UTC(),
	}

	if err := s.store.Append(ctx, assignment.MobID, record); err != nil {
		// Best-effort store: the response still reflects the scoring
		// outcome.
		log.Error().Err(err).Str("mob_id", assignment.MobID).Msg("store append failed")
		outcome.StoreFailed = true
		return outcome, nil
	}
	s.accepted.Add(1)

	log.Info().
		Str("source_key", hash.SourceKey(source.ref())).
		Str("mob_id", assignment.MobID).
		Float64("confidence", outcome.Result.Confidence).
		Msg("submission accepted")

	if err := s.cache.InvalidateMob(ctx, assignment.MobID); err != nil {
		log.Warn().Err(err).Str("mob_id", assignment.MobID).Msg("cache invalidate failed")
	}

	return outcome, nil
}

func (s *ValidateService) validateURL(ctx context.Context, source Source, hashtags string) Outcome {
	meta, err := s.extractMetadata(ctx, source.URL)
	if err != nil {
		// Terminal: a URL that cannot be analyzed never falls through to
		// hashtag-only validity.
		log.Warn().Err(err).Str("url_hash", hash.ShortHash(source.URL, 12)).Msg("metadata extraction failed")
		return Outcome{
			Result: model.ValidationResult{
				IsValid: false,
				Reason:  "Unable to analyze video content - metadata extraction failed",
				Method:  model.MethodSmartURL,
			},
			VideoInfo: &model.VideoInfo{Title: "Unknown"},
		}
	}

	input := model.ScoringInput{
		Title:       meta.Title,
		Description: meta.Description,
		Duration:    meta.Duration,
		Hashtags:    hashtags,
		SourceKind:  source.Kind,
		Platform:    platformLabel(source, meta),
	}

	result := s.scorer.Score(input, MetadataProfile)

	outcome := Outcome{
		Result: result,
		VideoInfo: &model.VideoInfo{
			Title:    meta.Title,
			Duration: meta.Duration,
			Platform: input.Platform,
		},
	}
	if result.IsValid {
		assignment := s.mobs.Classify(input)
		outcome.Assignment = &assignment
	}
	return outcome
}

func (s *ValidateService) validateFile(ctx context.Context, source Source, hashtags string) Outcome {
	info := s.inspector.Inspect(source.FilePath)

	input := model.ScoringInput{
		Title:      filepath.Base(source.FilePath),
		Filename:   filepath.Base(source.FilePath),
		Hashtags:   hashtags,
		SourceKind: model.SourceFileUpload,
		Platform:   "upload",
		FileExists: info.Exists,
		FileSize:   info.Size,
	}

	var strategies []scoreStrategy
	if s.search != nil && info.Exists {
		strategies = append(strategies, func(ctx context.Context) (model.ValidationResult, error) {
			milkScore, err := MilkScore(ctx, s.search, s.searchIndexID)
			if err != nil {
				return model.ValidationResult{}, err
			}
			return s.scorer.ScoreFromSearch(milkScore, hashtags), nil
		})
	}
	strategies = append(strategies, func(context.Context) (model.ValidationResult, error) {
		return s.scorer.Score(input, FileProfile), nil
	})

	result := s.runStrategies(ctx, strategies, hashtags)

	outcome := Outcome{Result: result}
	if result.IsValid {
		assignment := s.mobs.Classify(input)
		outcome.Assignment = &assignment
	}
	return outcome
}

// runStrategies walks the ordered fallback chain. The first strategy that
// returns a result, valid or not, is definitive. Only when every strategy
// errors does the hashtag-only last resort run.
func (s *ValidateService) runStrategies(ctx context.Context, strategies []scoreStrategy, hashtags string) model.ValidationResult {
	for _, strategy := range strategies {
		result, err := strategy(ctx)
		if err == nil {
			return result
		}
		log.Warn().Err(err).Msg("scoring strategy failed, trying next")
	}
	return s.scorer.HashtagOnly(hashtags)
}

func (s *ValidateService) extractMetadata(ctx context.Context, videoURL string) (*VideoMetadata, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: no metadata extractor configured", ErrExtraction)
	}
	ctx, cancel := context.WithTimeout(ctx, s.extractTimeout)
	defer cancel()
	return s.extractor.Extract(ctx, videoURL)
}

func (s *ValidateService) cleanupStaged(source Source) {
	if !source.Staged || source.FilePath == "" {
		return
	}
	if err := os.Remove(source.FilePath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to remove staged upload")
	}
}

// Analyzed returns how many validations ran since startup.
func (s *ValidateService) Analyzed() int64 {
	return s.analyzed.Load()
}

// Accepted returns how many submissions passed and were persisted.
func (s *ValidateService) Accepted() int64 {
	return s.accepted.Load()
}

// ExtractorAvailable reports whether URL metadata extraction is configured.
func (s *ValidateService) ExtractorAvailable() bool {
	return s.extractor != nil
}

// SearchAvailable reports whether the content search collaborator is
// configured.
func (s *ValidateService) SearchAvailable() bool {
	return s.search != nil
}

func recordTitle(outcome Outcome, source Source) string {
	if outcome.VideoInfo != nil && outcome.VideoInfo.Title != "" && outcome.VideoInfo.Title != "Unknown" {
		return outcome.VideoInfo.Title
	}
	if source.FilePath != "" {
		return filepath.Base(source.FilePath)
	}
	return "User Video"
}

func recordDuration(outcome Outcome) int {
	if outcome.VideoInfo != nil {
		return outcome.VideoInfo.Duration
	}
	return 0
}

func platformLabel(source Source, meta *VideoMetadata) string {
	if meta.Platform != "" {
		return strings.ToLower(meta.Platform)
	}
	return source.Platform
}
