package service

import (
	"math"
	"testing"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
)

func TestClassify(t *testing.T) {
	s := NewMobService()

	tests := []struct {
		name    string
		input   model.ScoringInput
		wantMob string
		wantMin float64
	}{
		{
			name: "long youtube mukbang",
			input: model.ScoringInput{
				Title:    "Mukbang milk drinking challenge",
				Platform: "youtube",
				Duration: 120,
				Hashtags: "#mukbang #gotmilk",
			},
			wantMob: "mob003",
			wantMin: 0.8,
		},
		{
			name: "fitness content on youtube",
			input: model.ScoringInput{
				Title:    "protein shake after my workout",
				Platform: "youtube",
				Hashtags: "#protein #workout",
			},
			wantMob: "mob004",
			wantMin: 1.0,
		},
		{
			name: "short tiktok stunt",
			input: model.ScoringInput{
				Title:    "extreme milk stunt",
				Platform: "tiktok",
				Duration: 20,
			},
			wantMob: "mob001",
			wantMin: 0.7,
		},
		{
			name: "artistic instagram post",
			input: model.ScoringInput{
				Title:    "aesthetic milk art photography",
				Platform: "instagram",
				Hashtags: "#milkart",
			},
			wantMob: "mob002",
			wantMin: 0.9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Classify(tt.input)
			if got.MobID != tt.wantMob {
				t.Errorf("MobID = %s (%s), want %s; reasons: %v", got.MobID, got.MobKey, tt.wantMob, got.Reasons)
			}
			if got.Score < tt.wantMin {
				t.Errorf("Score = %.2f, want >= %.2f", got.Score, tt.wantMin)
			}
			if len(got.Reasons) == 0 {
				t.Error("Reasons is empty")
			}
		})
	}
}

func TestClassifyDefaultFallback(t *testing.T) {
	s := NewMobService()

	// No mob-specific signal at all: the default mob takes it with the
	// generic reason and a zero score.
	got := s.Classify(model.ScoringInput{Title: "milk"})
	if got.MobKey != "daily_milk" {
		t.Fatalf("MobKey = %s, want daily_milk", got.MobKey)
	}
	if got.Score != 0 {
		t.Errorf("Score = %.2f, want 0", got.Score)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != genericMatchReason {
		t.Errorf("Reasons = %v, want [%q]", got.Reasons, genericMatchReason)
	}
}

func TestClassifyWeakWinnerFallsBackWithOwnScore(t *testing.T) {
	s := NewMobService()

	// A 35s clip gives only the daily bracket's duration affinity (0.1),
	// which is below the minimum. The default mob takes it but keeps its own
	// computed score rather than inheriting anything.
	got := s.Classify(model.ScoringInput{Title: "milk video", Duration: 35})
	if got.MobKey != "daily_milk" {
		t.Fatalf("MobKey = %s, want daily_milk", got.MobKey)
	}
	if math.Abs(got.Score-0.1) > 1e-9 {
		t.Errorf("Score = %.2f, want 0.1 (default mob's own duration affinity)", got.Score)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != genericMatchReason {
		t.Errorf("Reasons = %v, want [%q]", got.Reasons, genericMatchReason)
	}
}

func TestClassifyTieKeepsFirstDeclared(t *testing.T) {
	s := NewMobService()

	// "art" (Milk Artists) and "food" (Mukbang Masters) each score one title
	// keyword. The earlier-declared mob must win the tie.
	got := s.Classify(model.ScoringInput{Title: "milk art food experiment"})
	if got.MobID != "mob002" {
		t.Errorf("MobID = %s (%s), want mob002 on a tie", got.MobID, got.MobKey)
	}
}
