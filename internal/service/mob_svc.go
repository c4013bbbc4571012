package service

import (
	"fmt"
	"strings"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/taxonomy"
)

const (
	titleKeywordWeight    = 0.3
	mobHashtagWeight      = 0.4
	platformAffinityBonus = 0.1
	durationAffinityBonus = 0.1

	// Below this the winner is overridden by the default mob so every valid
	// submission lands somewhere.
	minMobMatchScore = 0.2
)

const genericMatchReason = "general milk content"

// MobService classifies valid submissions into one of the five mobs.
// Pure and deterministic given the input and the static taxonomy.
type MobService struct{}

func NewMobService() *MobService {
	return &MobService{}
}

// Classify scores every mob and returns the best match. Ties resolve to the
// first-declared mob; a winner below the minimum score falls back to the
// default mob with a single generic reason.
func (s *MobService) Classify(input model.ScoringInput) model.MobAssignment {
	title := strings.ToLower(input.Title)
	hashtags := strings.ToLower(input.Hashtags)
	platform := strings.ToLower(input.Platform)

	var (
		best      *taxonomy.MobDefinition
		bestScore float64
		bestWhy   []string
	)

	for i := range taxonomy.Mobs {
		mob := &taxonomy.Mobs[i]
		score, why := scoreMob(mob, title, hashtags, platform, input.Duration)

		// Strictly-greater keeps the first-declared mob on ties.
		if best == nil || score > bestScore {
			best, bestScore, bestWhy = mob, score, why
		}
	}

	if bestScore < minMobMatchScore {
		best = taxonomy.Default()
		bestWhy = []string{genericMatchReason}
		// The default mob keeps its own computed score, which is zero when
		// nothing matched at all.
		bestScore, _ = scoreMob(best, title, hashtags, platform, input.Duration)
	}

	return model.MobAssignment{
		MobID:   best.ID,
		MobKey:  best.Key,
		MobName: best.Name,
		Score:   bestScore,
		Reasons: bestWhy,
	}
}

func scoreMob(mob *taxonomy.MobDefinition, title, hashtags, platform string, duration int) (float64, []string) {
	var (
		score float64
		why   []string
	)

	titleMatches := 0
	for _, kw := range mob.Keywords {
		if strings.Contains(title, kw) {
			titleMatches++
		}
	}
	if titleMatches > 0 {
		score += float64(titleMatches) * titleKeywordWeight
		why = append(why, fmt.Sprintf("title keywords (%d)", titleMatches))
	}

	hashtagMatches := 0
	for _, tag := range mob.Hashtags {
		if strings.Contains(hashtags, tag) {
			hashtagMatches++
		}
	}
	if hashtagMatches > 0 {
		score += float64(hashtagMatches) * mobHashtagWeight
		why = append(why, fmt.Sprintf("hashtag match (%d)", hashtagMatches))
	}

	if platform != "" && mob.PrefersPlatform(platform) {
		score += platformAffinityBonus
		why = append(why, fmt.Sprintf("platform affinity (%s)", platform))
	}

	if mob.Duration.Contains(duration) {
		score += durationAffinityBonus
		why = append(why, "duration affinity")
	}

	return score, why
}
