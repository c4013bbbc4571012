package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/repository"
)

type fakeExtractor struct {
	meta *VideoMetadata
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, videoURL string) (*VideoMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}

type fakeInspector struct {
	info FileInfo
}

func (f *fakeInspector) Inspect(path string) FileInfo {
	return f.info
}

type fakeSearch struct {
	confidence float64
	err        error
}

func (f *fakeSearch) Search(ctx context.Context, indexID, query string) ([]SearchMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []SearchMatch{{VideoID: "v1", Confidence: f.confidence}}, nil
}

func newTestService(t *testing.T, extractor MetadataExtractor, search ContentSearchService, inspector FileInspector) (*ValidateService, *repository.MemoryMobStore) {
	t.Helper()
	if inspector == nil {
		inspector = NewOSFileInspector()
	}
	store := repository.NewMemoryMobStore()
	svc := NewValidateService(
		NewScoreService(),
		NewMobService(),
		store,
		NewCacheService(""),
		inspector,
		extractor,
		search,
		"test-index",
		time.Second,
	)
	return svc, store
}

func TestClassifySourceURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantKind     model.SourceKind
		wantPlatform string
		wantErr      bool
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=abc", model.SourcePlatformURL, "youtube", false},
		{"youtu.be short link", "https://youtu.be/abc", model.SourcePlatformURL, "youtube", false},
		{"tiktok", "https://www.tiktok.com/@user/video/1", model.SourcePlatformURL, "tiktok", false},
		{"x.com maps to twitter", "https://x.com/user/status/1", model.SourcePlatformURL, "twitter", false},
		{"direct mp4", "https://cdn.example.com/clip.mp4", model.SourceDirectURL, "direct", false},
		{"direct webm", "http://example.com/video.webm", model.SourceDirectURL, "direct", false},
		{"unsupported host", "https://example.com/page", "", "", true},
		{"not a url", "not a url", "", "", true},
		{"ftp scheme", "ftp://example.com/clip.mp4", "", "", true},
		{"lookalike domain", "https://notyoutube.com/watch", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, platform, err := ClassifySourceURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ClassifySourceURL(%q) = %v, %v, want error", tt.url, kind, platform)
				}
				if !errors.Is(err, ErrInput) {
					t.Errorf("error = %v, want ErrInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClassifySourceURL(%q) error: %v", tt.url, err)
			}
			if kind != tt.wantKind || platform != tt.wantPlatform {
				t.Errorf("ClassifySourceURL(%q) = %v, %q, want %v, %q", tt.url, kind, platform, tt.wantKind, tt.wantPlatform)
			}
		})
	}
}

func TestValidateURLPersistsOnSuccess(t *testing.T) {
	extractor := &fakeExtractor{meta: &VideoMetadata{
		Title:    "Mukbang milk drinking challenge",
		Duration: 120,
		Platform: "youtube",
	}}
	svc, store := newTestService(t, extractor, nil, nil)

	outcome, err := svc.Validate(context.Background(), Source{
		Kind:     model.SourcePlatformURL,
		URL:      "https://www.youtube.com/watch?v=abc",
		Platform: "youtube",
	}, "#gotmilk #mukbang")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !outcome.Result.IsValid {
		t.Fatalf("result invalid: %s", outcome.Result.Reason)
	}
	if outcome.Assignment == nil || outcome.Assignment.MobID != "mob003" {
		t.Fatalf("Assignment = %+v, want mob003", outcome.Assignment)
	}

	videos, err := store.List(context.Background(), "mob003")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("stored %d videos, want 1", len(videos))
	}
	v := videos[0]
	if v.Title != "Mukbang milk drinking challenge" || v.Duration != 120 || v.ID == "" {
		t.Errorf("stored record = %+v", v)
	}
	if v.Confidence != outcome.Result.Confidence {
		t.Errorf("stored confidence %.3f, want %.3f", v.Confidence, outcome.Result.Confidence)
	}
	if svc.Analyzed() != 1 || svc.Accepted() != 1 {
		t.Errorf("counters = %d analyzed, %d accepted, want 1/1", svc.Analyzed(), svc.Accepted())
	}
}

func TestValidateURLInvalidNotPersisted(t *testing.T) {
	extractor := &fakeExtractor{meta: &VideoMetadata{
		Title:    "Lamborghini engine review",
		Duration: 300,
	}}
	svc, store := newTestService(t, extractor, nil, nil)

	outcome, err := svc.Validate(context.Background(), Source{
		Kind: model.SourcePlatformURL,
		URL:  "https://www.youtube.com/watch?v=xyz",
	}, "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if outcome.Result.IsValid {
		t.Fatal("off-topic video validated")
	}
	if outcome.Assignment != nil {
		t.Errorf("Assignment = %+v, want nil for invalid result", outcome.Assignment)
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("store holds %d videos, want 0", stats.Total)
	}
	if svc.Analyzed() != 1 || svc.Accepted() != 0 {
		t.Errorf("counters = %d analyzed, %d accepted, want 1/0", svc.Analyzed(), svc.Accepted())
	}
}

func TestValidateExtractionFailureIsTerminal(t *testing.T) {
	// An unreachable extractor must produce a definitive invalid result,
	// never a hashtag-only pass.
	extractor := &fakeExtractor{err: errors.New("upstream down")}
	svc, store := newTestService(t, extractor, nil, nil)

	outcome, err := svc.Validate(context.Background(), Source{
		Kind: model.SourcePlatformURL,
		URL:  "https://www.youtube.com/watch?v=abc",
	}, "#gotmilk #milkmob")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if outcome.Result.IsValid {
		t.Fatal("extraction failure validated on hashtags")
	}
	if outcome.Result.Method != model.MethodSmartURL {
		t.Errorf("Method = %q, want %q", outcome.Result.Method, model.MethodSmartURL)
	}
	if outcome.Result.Reason == "" {
		t.Error("Reason is empty")
	}

	stats, _ := store.Stats(context.Background())
	if stats.Total != 0 {
		t.Errorf("store holds %d videos, want 0", stats.Total)
	}
}

func TestValidateNoExtractorConfigured(t *testing.T) {
	svc, _ := newTestService(t, nil, nil, nil)

	outcome, err := svc.Validate(context.Background(), Source{
		Kind: model.SourcePlatformURL,
		URL:  "https://www.youtube.com/watch?v=abc",
	}, "#gotmilk")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if outcome.Result.IsValid {
		t.Fatal("validated without any extractor")
	}
}

func TestValidateFileUsesSearchWhenConfigured(t *testing.T) {
	search := &fakeSearch{confidence: 0.8}
	svc, store := newTestService(t, nil, search, &fakeInspector{info: FileInfo{Exists: true, Size: 5_000_000}})

	outcome, err := svc.Validate(context.Background(), Source{
		Kind:     model.SourceFileUpload,
		FilePath: "/tmp/uploads/whatever.mp4",
	}, "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !outcome.Result.IsValid {
		t.Fatalf("result invalid: %s", outcome.Result.Reason)
	}
	if outcome.Result.Method != model.MethodContentSearch {
		t.Errorf("Method = %q, want %q", outcome.Result.Method, model.MethodContentSearch)
	}

	stats, _ := store.Stats(context.Background())
	if stats.Total != 1 {
		t.Errorf("store holds %d videos, want 1", stats.Total)
	}
}

func TestValidateFileSearchFailureFallsBackToHeuristics(t *testing.T) {
	search := &fakeSearch{err: errors.New("index unavailable")}
	svc, _ := newTestService(t, nil, search, &fakeInspector{info: FileInfo{Exists: true, Size: 5_000_000}})

	outcome, err := svc.Validate(context.Background(), Source{
		Kind:     model.SourceFileUpload,
		FilePath: "/tmp/uploads/milk_drink_challenge.mp4",
	}, "#gotmilk")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if outcome.Result.Method != model.MethodSimpleFile {
		t.Errorf("Method = %q, want fallback %q", outcome.Result.Method, model.MethodSimpleFile)
	}
	if !outcome.Result.IsValid {
		t.Errorf("heuristic fallback failed: %s", outcome.Result.Reason)
	}
}

func TestValidateMissingFileNeverReachesHashtagFallback(t *testing.T) {
	svc, _ := newTestService(t, nil, &fakeSearch{confidence: 0.9}, &fakeInspector{info: FileInfo{Exists: false}})

	outcome, err := svc.Validate(context.Background(), Source{
		Kind:     model.SourceFileUpload,
		FilePath: "/tmp/uploads/gone.mp4",
	}, "#gotmilk #milkmob")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if outcome.Result.IsValid {
		t.Fatal("missing file validated")
	}
	if outcome.Result.Method == model.MethodHashtagOnly {
		t.Error("missing file fell through to hashtag-only validation")
	}
}

func TestValidateRemovesStagedFileOnRejection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "random_clip.mp4")
	if err := os.WriteFile(path, []byte("tiny"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, _ := newTestService(t, nil, nil, nil)

	outcome, err := svc.Validate(context.Background(), Source{
		Kind:     model.SourceFileUpload,
		FilePath: path,
		Staged:   true,
	}, "")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if outcome.Result.IsValid {
		t.Fatal("tiny off-topic file validated")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("staged file was not removed after rejection")
	}
}

func TestValidateCancelledContextSkipsPersist(t *testing.T) {
	extractor := &fakeExtractor{meta: &VideoMetadata{
		Title:    "Got Milk mukbang challenge",
		Duration: 90,
		Platform: "youtube",
	}}
	svc, store := newTestService(t, extractor, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Validate(ctx, Source{
		Kind: model.SourcePlatformURL,
		URL:  "https://www.youtube.com/watch?v=abc",
	}, "#gotmilk")
	if err == nil {
		t.Fatal("Validate with cancelled context returned nil error")
	}

	stats, statsErr := store.Stats(context.Background())
	if statsErr != nil {
		t.Fatalf("Stats: %v", statsErr)
	}
	if stats.Total != 0 {
		t.Errorf("store holds %d videos after cancelled request, want 0", stats.Total)
	}
}

func TestValidateCancelledContextCleansStagedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "milk_drink_challenge.mp4")
	if err := os.WriteFile(path, []byte("staged"), 0o644); err != nil {
		t.Fatal(err)
	}

	// The inspector reports a healthy upload so the result is valid; the
	// aborted request must still remove the staged file.
	svc, store := newTestService(t, nil, nil, &fakeInspector{info: FileInfo{Exists: true, Size: 5_000_000}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Validate(ctx, Source{
		Kind:     model.SourceFileUpload,
		FilePath: path,
		Staged:   true,
	}, "#gotmilk")
	if err == nil {
		t.Fatal("Validate with cancelled context returned nil error")
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("staged file was not removed after aborted request")
	}
	stats, _ := store.Stats(context.Background())
	if stats.Total != 0 {
		t.Errorf("store holds %d videos after cancelled request, want 0", stats.Total)
	}
}

func TestSourceRef(t *testing.T) {
	url := Source{Kind: model.SourcePlatformURL, URL: "https://youtu.be/abc"}
	if got := url.ref(); got != "https://youtu.be/abc" {
		t.Errorf("url ref = %q", got)
	}

	file := Source{Kind: model.SourceFileUpload, FilePath: "/tmp/uploads/a1b2_clip.mp4"}
	if got := file.ref(); got != "a1b2_clip.mp4" {
		t.Errorf("file ref = %q, want bare filename", got)
	}
}

func TestValidateUnknownSourceKind(t *testing.T) {
	svc, _ := newTestService(t, nil, nil, nil)

	_, err := svc.Validate(context.Background(), Source{Kind: "carrier_pigeon"}, "")
	if !errors.Is(err, ErrInput) {
		t.Errorf("error = %v, want ErrInput", err)
	}
}
