package service

import (
	"fmt"
	"strings"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/taxonomy"
)

// Weighting shared by every profile: content analysis dominates, hashtags
// can never carry a submission alone.
const (
	contentWeight = 0.8
	hashtagWeight = 0.2

	// Confidence cap applied when the content score sits below a profile's
	// minimum. Prevents hashtag-only spam from passing.
	lowContentConfidenceCap = 0.3

	// Duration adjustment: 5s..15min is a plausible campaign clip.
	minReasonableDuration = 5
	maxReasonableDuration = 900
	durationAdjustment    = 0.05

	// File-signal scoring.
	fileSizeBaseline    = 1_000_000 // >1MB suggests real video content
	fileSizeBonus       = 0.1
	fileSizePenalty     = 0.2
	fileRedFlagPenalty  = 0.3
)

// SignalSet selects which input fields a profile scores.
type SignalSet int

const (
	// MetadataSignals scores title, description and duration from extracted
	// metadata.
	MetadataSignals SignalSet = iota
	// FileSignals scores the filename and file size of a local upload that
	// cannot be remotely inspected.
	FileSignals
)

// ScoringProfile is a named weighting profile. The same engine runs both
// paths; only thresholds and the signal set differ, so the near-duplicate
// scorer variants of earlier revisions collapse into configuration.
type ScoringProfile struct {
	Name            string
	Method          model.ScoringMethod
	Signals         SignalSet
	MinContentScore float64
	ValidThreshold  float64
}

// MetadataProfile scores URL submissions with extracted metadata.
// Documented validity threshold: 0.35.
var MetadataProfile = ScoringProfile{
	Name:            "content_80_20",
	Method:          model.MethodSmartURL,
	Signals:         MetadataSignals,
	MinContentScore: 0.1,
	ValidThreshold:  0.35,
}

// FileProfile scores raw uploads on filename and size alone, with stricter
// thresholds since the signals are weaker. Documented validity threshold: 0.5.
var FileProfile = ScoringProfile{
	Name:            "file_simple",
	Method:          model.MethodSimpleFile,
	Signals:         FileSignals,
	MinContentScore: 0.2,
	ValidThreshold:  0.5,
}

// Metadata-signal categories, in scoring order. Caps apply per category
// before summation.
var metadataCategories = []struct {
	label  string
	terms  func() []string
	field  func(title, desc string) string
	weight float64
	cap    float64
}{
	{"contains campaign-specific content", func() []string { return taxonomy.Campaign },
		func(t, d string) string { return t + "\n" + d }, 0.3, 0.6},
	{"title contains primary milk terms", func() []string { return taxonomy.Primary },
		func(t, _ string) string { return t }, 0.15, 0.3},
	{"description mentions milk/dairy", func() []string { return taxonomy.Primary },
		func(_, d string) string { return d }, 0.1, 0.25},
	{"title contains drink-related terms", func() []string { return taxonomy.Secondary },
		func(t, _ string) string { return t }, 0.1, 0.2},
	{"description contains drink terms", func() []string { return taxonomy.Secondary },
		func(_, d string) string { return d }, 0.05, 0.15},
	{"title contains relevant context", taxonomy.Context,
		func(t, _ string) string { return t }, 0.05, 0.15},
	{"description contains context terms", taxonomy.Context,
		func(_, d string) string { return d }, 0.03, 0.1},
}

// ScoreService is the deterministic confidence scorer. It is a pure function
// of its input and the static taxonomy: no I/O, no shared state.
type ScoreService struct{}

func NewScoreService() *ScoreService {
	return &ScoreService{}
}

// Score computes a ValidationResult for the input under the given profile.
// Calling it twice with identical input yields identical output.
func (s *ScoreService) Score(input model.ScoringInput, profile ScoringProfile) model.ValidationResult {
	var (
		contentScore float64
		trail        []model.Contribution
	)

	switch profile.Signals {
	case FileSignals:
		contentScore, trail = s.scoreFileSignals(input)
	default:
		contentScore, trail = s.scoreMetadataSignals(input)
	}

	// Hashtag analysis: binary, weighted at 20% of the final confidence.
	hashtagScore := 0.0
	hashtagMatch := taxonomy.HashtagMatch(input.Hashtags)
	if hashtagMatch {
		hashtagScore = 1.0
		trail = append(trail, model.Contribution{Label: "campaign hashtags present", Count: 1, Delta: hashtagScore * hashtagWeight})
	}

	final := clamp01(contentScore*contentWeight + hashtagScore*hashtagWeight)

	// Minimum-content floor: weak content caps confidence no matter how
	// strong the hashtags are.
	floorApplied := false
	if contentScore < profile.MinContentScore {
		if final > lowContentConfidenceCap {
			final = lowContentConfidenceCap
		}
		floorApplied = true
		trail = append(trail, model.Contribution{
			Label: fmt.Sprintf("content score below minimum threshold (%.2f < %.2f)", contentScore, profile.MinContentScore),
		})
	}

	isValid := final >= profile.ValidThreshold

	// A file that cannot be inspected at all never validates, not even on
	// hashtag evidence.
	if profile.Signals == FileSignals && !input.FileExists {
		isValid = false
	}

	return model.ValidationResult{
		IsValid:      isValid,
		Confidence:   final,
		ContentScore: contentScore,
		HashtagScore: hashtagScore,
		HashtagMatch: hashtagMatch,
		Reason:       buildReason(isValid, floorApplied, contentScore, final, trail),
		Method:       profile.Method,
		Trail:        trail,
	}
}

// ScoreFromSearch converts a content-search milk score into a
// ValidationResult, combining it with hashtag evidence. Decision tiers: a
// strong content match stands alone; weaker matches need hashtags.
func (s *ScoreService) ScoreFromSearch(milkScore float64, hashtags string) model.ValidationResult {
	hashtagMatch := taxonomy.HashtagMatch(hashtags)
	hashtagScore := 0.0
	if hashtagMatch {
		hashtagScore = 1.0
	}

	isValid := false
	var label string
	switch {
	case milkScore >= 0.6:
		isValid = true
		label = "video clearly shows milk-related content"
	case milkScore >= 0.3 && hashtagMatch:
		isValid = true
		label = "video shows milk content and has appropriate hashtags"
	case milkScore >= 0.1 && hashtagMatch:
		isValid = true
		label = "weak content but valid campaign hashtags"
	case milkScore < 0.1:
		label = "video doesn't show milk-related content"
	default:
		label = "video needs appropriate campaign hashtags like #GotMilk"
	}

	confidence := clamp01(milkScore*contentWeight + hashtagScore*hashtagWeight)

	reason := fmt.Sprintf("Validated: %s (content: %.1f%%)", label, milkScore*100)
	if !isValid {
		reason = fmt.Sprintf("Failed: %s (content: %.1f%%)", label, milkScore*100)
	}

	return model.ValidationResult{
		IsValid:      isValid,
		Confidence:   confidence,
		ContentScore: milkScore,
		HashtagScore: hashtagScore,
		HashtagMatch: hashtagMatch,
		Reason:       reason,
		Method:       model.MethodContentSearch,
		Trail:        []model.Contribution{{Label: label, Count: 1, Delta: milkScore * contentWeight}},
	}
}

// HashtagOnly is the last-resort fallback when every content strategy
// errored. Campaign hashtags alone carry a modest confidence; without them
// the submission fails outright.
func (s *ScoreService) HashtagOnly(hashtags string) model.ValidationResult {
	hashtagMatch := taxonomy.HashtagMatch(hashtags)
	if hashtagMatch {
		return model.ValidationResult{
			IsValid:      true,
			Confidence:   0.5,
			HashtagScore: 1.0,
			HashtagMatch: true,
			Reason:       "Validated: content analysis unavailable, campaign hashtags accepted",
			Method:       model.MethodHashtagOnly,
			Trail:        []model.Contribution{{Label: "campaign hashtag match", Count: 1, Delta: 0.5}},
		}
	}
	return model.ValidationResult{
		IsValid:    false,
		Confidence: 0.1,
		Reason:     "Failed: content analysis unavailable and no campaign hashtags found",
		Method:     model.MethodHashtagOnly,
	}
}

func (s *ScoreService) scoreMetadataSignals(input model.ScoringInput) (float64, []model.Contribution) {
	title := strings.ToLower(input.Title)
	desc := strings.ToLower(input.Description)

	var (
		score float64
		trail []model.Contribution
	)

	for _, c := range metadataCategories {
		cat := taxonomy.KeywordCategory{Name: c.label, Terms: c.terms(), Weight: c.weight, Cap: c.cap}
		matches := cat.Matches(c.field(title, desc))
		if matches == 0 {
			continue
		}
		delta := cat.Contribution(matches)
		score += delta
		trail = append(trail, model.Contribution{
			Label: fmt.Sprintf("%s (%d)", c.label, matches),
			Count: matches,
			Delta: delta,
		})
	}

	// Red flags: penalty scales down once there is already positive milk
	// evidence.
	redFlags := taxonomy.KeywordCategory{Terms: taxonomy.RedFlags}
	flagged := redFlags.Matches(title + "\n" + desc)
	if flagged > 0 {
		perFlag := 0.1
		if score < 0.3 {
			perFlag = 0.2
		}
		penalty := float64(flagged) * perFlag
		if penalty > score {
			penalty = score
		}
		score -= penalty
		trail = append(trail, model.Contribution{
			Label: fmt.Sprintf("contains non-milk content indicators (%d)", flagged),
			Count: flagged,
			Delta: -penalty,
		})
	}

	// Duration adjustment. Unknown duration (0) earns nothing either way.
	switch {
	case input.Duration >= minReasonableDuration && input.Duration <= maxReasonableDuration:
		score += durationAdjustment
		trail = append(trail, model.Contribution{Label: "appropriate duration", Count: 1, Delta: durationAdjustment})
	case input.Duration > maxReasonableDuration:
		delta := -durationAdjustment
		if score < durationAdjustment {
			delta = -score
		}
		score += delta
		trail = append(trail, model.Contribution{Label: "unusually long duration", Count: 1, Delta: delta})
	}

	return score, trail
}

func (s *ScoreService) scoreFileSignals(input model.ScoringInput) (float64, []model.Contribution) {
	if !input.FileExists {
		// Missing file is a definitive content failure.
		return 0, []model.Contribution{{Label: "file missing or unreadable"}}
	}

	filename := strings.ToLower(input.Filename)

	var (
		score float64
		trail []model.Contribution
	)

	primary := taxonomy.KeywordCategory{Terms: taxonomy.Primary, Weight: 0.2, Cap: 0.4}
	primaryMatches := primary.Matches(filename)
	if primaryMatches > 0 {
		delta := primary.Contribution(primaryMatches)
		score += delta
		trail = append(trail, model.Contribution{
			Label: fmt.Sprintf("filename contains primary milk terms (%d)", primaryMatches),
			Count: primaryMatches,
			Delta: delta,
		})
	}

	// Secondary terms only reinforce an existing primary signal in the
	// filename path.
	if primaryMatches > 0 {
		secondary := taxonomy.KeywordCategory{Terms: taxonomy.Secondary, Weight: 0.1, Cap: 0.2}
		if m := secondary.Matches(filename); m > 0 {
			delta := secondary.Contribution(m)
			score += delta
			trail = append(trail, model.Contribution{
				Label: fmt.Sprintf("filename contains drink-related terms (%d)", m),
				Count: m,
				Delta: delta,
			})
		}
	}

	redFlags := taxonomy.KeywordCategory{Terms: taxonomy.RedFlags}
	if flagged := redFlags.Matches(filename); flagged > 0 {
		penalty := float64(flagged) * fileRedFlagPenalty
		if penalty > score {
			penalty = score
		}
		score -= penalty
		trail = append(trail, model.Contribution{
			Label: fmt.Sprintf("filename suggests non-milk content (%d)", flagged),
			Count: flagged,
			Delta: -penalty,
		})
	}

	// File size as a content-existence proxy.
	if input.FileSize > fileSizeBaseline {
		score += fileSizeBonus
		trail = append(trail, model.Contribution{Label: "file size indicates real video content", Count: 1, Delta: fileSizeBonus})
	} else {
		penalty := fileSizePenalty
		if penalty > score {
			penalty = score
		}
		score -= penalty
		trail = append(trail, model.Contribution{Label: "file too small to be real video content", Count: 1, Delta: -penalty})
	}

	return score, trail
}

func buildReason(isValid, floorApplied bool, contentScore, confidence float64, trail []model.Contribution) string {
	labels := make([]string, 0, len(trail))
	for _, c := range trail {
		labels = append(labels, c.Label)
	}

	if isValid {
		return fmt.Sprintf("Validated: %s (confidence: %.1f%%)", strings.Join(labels, ", "), confidence*100)
	}
	if floorApplied {
		return fmt.Sprintf("Failed: content score too low (%.1f%%). Need substantial milk-related content in title/description.", contentScore*100)
	}
	return fmt.Sprintf("Failed: overall confidence too low (%.1f%%). Need stronger milk-related indicators such as primary terms (milk, dairy, cream) or campaign hashtags.", confidence*100)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
