package service

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
)

func TestScoreMetadataProfile(t *testing.T) {
	s := NewScoreService()

	tests := []struct {
		name      string
		input     model.ScoringInput
		wantValid bool
		wantMin   float64
		wantMax   float64
	}{
		{
			name: "rich campaign metadata maxes out",
			input: model.ScoringInput{
				Title:       "Got Milk Challenge - drinking a glass of milk",
				Description: "milk mustache mukbang",
				Duration:    60,
				Hashtags:    "#gotmilk",
			},
			wantValid: true,
			wantMin:   0.95,
			wantMax:   1.0,
		},
		{
			name: "mukbang milk title validates",
			input: model.ScoringInput{
				Title:    "Mukbang milk drinking challenge",
				Duration: 120,
				Hashtags: "#gotmilk",
			},
			wantValid: true,
			wantMin:   0.4,
			wantMax:   0.6,
		},
		{
			name: "off-topic content fails",
			input: model.ScoringInput{
				Title:    "Lamborghini engine review",
				Duration: 300,
			},
			wantValid: false,
			wantMin:   0,
			wantMax:   0.1,
		},
		{
			name: "modest content with hashtags passes",
			input: model.ScoringInput{
				Title:    "milk dairy taste test",
				Duration: 60,
				Hashtags: "#gotmilk",
			},
			wantValid: true,
			wantMin:   0.35,
			wantMax:   0.6,
		},
		{
			name: "same content without hashtags fails",
			input: model.ScoringInput{
				Title:    "milk dairy taste test",
				Duration: 60,
			},
			wantValid: false,
			wantMin:   0.2,
			wantMax:   0.34,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.input, MetadataProfile)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (reason: %s)", got.IsValid, tt.wantValid, got.Reason)
			}
			if got.Confidence < tt.wantMin || got.Confidence > tt.wantMax {
				t.Errorf("Confidence = %.3f, want in [%.3f, %.3f]", got.Confidence, tt.wantMin, tt.wantMax)
			}
			if got.Method != model.MethodSmartURL {
				t.Errorf("Method = %q, want %q", got.Method, model.MethodSmartURL)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	s := NewScoreService()

	inputs := []model.ScoringInput{
		{},
		{Title: strings.Repeat("milk dairy cream butter cheese ", 20), Hashtags: "#gotmilk", Duration: 60},
		{Title: "car racing gaming tech phone", Duration: 2000},
		{Filename: "milk.mp4", FileExists: true, FileSize: 10_000_000, Hashtags: "#milkmob"},
		{Filename: "car_unboxing.avi", FileExists: true, FileSize: 10},
	}
	for _, input := range inputs {
		profile := MetadataProfile
		if input.Filename != "" {
			profile = FileProfile
		}
		got := s.Score(input, profile)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("Score(%+v).Confidence = %.3f, want within [0, 1]", input, got.Confidence)
		}
		if got.ContentScore < 0 {
			t.Errorf("Score(%+v).ContentScore = %.3f, want >= 0", input, got.ContentScore)
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	s := NewScoreService()
	input := model.ScoringInput{
		Title:       "Got Milk mukbang",
		Description: "drinking milk on camera",
		Duration:    42,
		Hashtags:    "#gotmilk #mukbang",
	}

	first := s.Score(input, MetadataProfile)
	second := s.Score(input, MetadataProfile)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScorePrimaryTermMonotonic(t *testing.T) {
	s := NewScoreService()

	weaker := s.Score(model.ScoringInput{Title: "milk video", Duration: 60}, MetadataProfile)
	stronger := s.Score(model.ScoringInput{Title: "milk dairy video", Duration: 60}, MetadataProfile)

	if stronger.Confidence < weaker.Confidence {
		t.Errorf("adding a primary term lowered confidence: %.3f -> %.3f", weaker.Confidence, stronger.Confidence)
	}
}

func TestScoreCategoryCap(t *testing.T) {
	s := NewScoreService()

	// All six primary terms in the title, nothing else: the title-primary
	// category contributes its cap of 0.3, not 6 x 0.15.
	got := s.Score(model.ScoringInput{Title: "milk dairy lactose cream butter cheese"}, MetadataProfile)
	if math.Abs(got.ContentScore-0.3) > 1e-9 {
		t.Errorf("ContentScore = %.3f, want 0.3 (capped)", got.ContentScore)
	}
}

func TestScoreLowContentFloor(t *testing.T) {
	s := NewScoreService()

	// No content signal at all, perfect hashtags: the floor caps confidence
	// at 0.3 so hashtag spam cannot validate.
	got := s.Score(model.ScoringInput{Title: "random video", Hashtags: "#gotmilk #milkmob"}, MetadataProfile)
	if got.IsValid {
		t.Error("hashtag-only submission validated")
	}
	if got.Confidence > 0.3 {
		t.Errorf("Confidence = %.3f, want <= 0.3 under the low-content floor", got.Confidence)
	}
	if !strings.HasPrefix(got.Reason, "Failed: content score too low") {
		t.Errorf("Reason = %q, want low-content failure", got.Reason)
	}
}

func TestScoreValidityThresholdBoundary(t *testing.T) {
	s := NewScoreService()

	// Straddle the metadata profile's 0.35 threshold with natural inputs:
	// two primary terms plus a secondary plus one description context term
	// give content 0.43 and confidence 0.344, just under; the duration bonus
	// lifts the same submission to 0.384, just over.
	below := s.Score(model.ScoringInput{
		Title:       "milk dairy drinking",
		Description: "protein",
	}, MetadataProfile)
	if below.IsValid {
		t.Errorf("confidence %.3f below the 0.35 threshold validated", below.Confidence)
	}
	if below.Confidence < 0.34 || below.Confidence >= 0.35 {
		t.Fatalf("Confidence = %.4f, want just under 0.35", below.Confidence)
	}

	above := s.Score(model.ScoringInput{
		Title:       "milk dairy drinking",
		Description: "protein",
		Duration:    60,
	}, MetadataProfile)
	if !above.IsValid {
		t.Errorf("confidence %.3f above the 0.35 threshold rejected: %s", above.Confidence, above.Reason)
	}

	// The comparison is inclusive: a confidence exactly equal to the
	// threshold validates, and the smallest increment above it does not.
	exact := MetadataProfile
	exact.ValidThreshold = below.Confidence
	if got := s.Score(model.ScoringInput{
		Title:       "milk dairy drinking",
		Description: "protein",
	}, exact); !got.IsValid {
		t.Error("confidence exactly equal to the threshold must validate")
	}

	exact.ValidThreshold = math.Nextafter(below.Confidence, 1)
	if got := s.Score(model.ScoringInput{
		Title:       "milk dairy drinking",
		Description: "protein",
	}, exact); got.IsValid {
		t.Error("confidence one ulp under the threshold must not validate")
	}
}

func TestScoringProfileShape(t *testing.T) {
	if MetadataProfile.Name != "content_80_20" || MetadataProfile.ValidThreshold != 0.35 {
		t.Errorf("metadata profile = %q at %.2f", MetadataProfile.Name, MetadataProfile.ValidThreshold)
	}
	if FileProfile.Name != "file_simple" || FileProfile.ValidThreshold != 0.5 {
		t.Errorf("file profile = %q at %.2f", FileProfile.Name, FileProfile.ValidThreshold)
	}
}

func TestScoreFileProfile(t *testing.T) {
	s := NewScoreService()

	tests := []struct {
		name      string
		input     model.ScoringInput
		wantValid bool
	}{
		{
			name: "milk filename with real size validates",
			input: model.ScoringInput{
				Filename:   "milk_drink_challenge.mp4",
				FileExists: true,
				FileSize:   5_000_000,
				Hashtags:   "#gotmilk",
			},
			wantValid: true,
		},
		{
			name: "tiny file fails despite milk name",
			input: model.ScoringInput{
				Filename:   "milk.mp4",
				FileExists: true,
				FileSize:   1_000,
				Hashtags:   "#gotmilk",
			},
			wantValid: false,
		},
		{
			name: "red flag filename fails",
			input: model.ScoringInput{
				Filename:   "milk_car_racing.mp4",
				FileExists: true,
				FileSize:   5_000_000,
			},
			wantValid: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.input, FileProfile)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (reason: %s)", got.IsValid, tt.wantValid, got.Reason)
			}
			if got.Method != model.MethodSimpleFile {
				t.Errorf("Method = %q, want %q", got.Method, model.MethodSimpleFile)
			}
		})
	}
}

func TestScoreMissingFileNeverValidates(t *testing.T) {
	s := NewScoreService()

	got := s.Score(model.ScoringInput{
		Filename: "gotmilk_challenge.mp4",
		Hashtags: "#gotmilk #milkmob",
	}, FileProfile)

	if got.IsValid {
		t.Error("missing file validated on hashtag evidence")
	}
	if got.ContentScore != 0 {
		t.Errorf("ContentScore = %.3f, want 0 for a missing file", got.ContentScore)
	}
}

func TestScoreFromSearchTiers(t *testing.T) {
	s := NewScoreService()

	tests := []struct {
		name      string
		milkScore float64
		hashtags  string
		wantValid bool
	}{
		{"strong content stands alone", 0.7, "", true},
		{"medium content with hashtags", 0.4, "#gotmilk", true},
		{"medium content without hashtags", 0.4, "", false},
		{"weak content rescued by hashtags", 0.15, "#milkmob", true},
		{"no content at all", 0.05, "#gotmilk", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ScoreFromSearch(tt.milkScore, tt.hashtags)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (reason: %s)", got.IsValid, tt.wantValid, got.Reason)
			}
			if got.Method != model.MethodContentSearch {
				t.Errorf("Method = %q, want %q", got.Method, model.MethodContentSearch)
			}
		})
	}
}

func TestHashtagOnlyFallback(t *testing.T) {
	s := NewScoreService()

	withTags := s.HashtagOnly("#gotmilk")
	if !withTags.IsValid || withTags.Confidence != 0.5 {
		t.Errorf("with tags: IsValid=%v Confidence=%.2f, want valid at 0.5", withTags.IsValid, withTags.Confidence)
	}
	if withTags.Method != model.MethodHashtagOnly {
		t.Errorf("Method = %q, want %q", withTags.Method, model.MethodHashtagOnly)
	}

	withoutTags := s.HashtagOnly("#cars")
	if withoutTags.IsValid || withoutTags.Confidence != 0.1 {
		t.Errorf("without tags: IsValid=%v Confidence=%.2f, want invalid at 0.1", withoutTags.IsValid, withoutTags.Confidence)
	}
}
