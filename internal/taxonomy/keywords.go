// Package taxonomy holds the static keyword tables and mob definitions the
// scoring engine runs against. Everything here is immutable at runtime; the
// classifier depends on the mob count and declaration order.
package taxonomy

import "strings"

// KeywordCategory is a named set of lowercase terms with a per-match weight
// and a per-field cap. Weight × match-count is always clamped to the cap
// before summation.
type KeywordCategory struct {
	Name   string
	Terms  []string
	Weight float64
	Cap    float64
}

// Matches counts how many of the category's terms occur as substrings of the
// given text. The text must already be lowercased by the caller.
func (c KeywordCategory) Matches(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, term := range c.Terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}

// Contribution returns the capped score contribution for the given match
// count: min(cap, weight × matches).
func (c KeywordCategory) Contribution(matches int) float64 {
	if matches <= 0 {
		return 0
	}
	score := float64(matches) * c.Weight
	if score > c.Cap {
		return c.Cap
	}
	return score
}

// Primary milk terms. Strong, direct content indicators.
var Primary = []string{"milk", "dairy", "lactose", "cream", "butter", "cheese"}

// Secondary drink-related terms. Work independently of primary matches in
// metadata scoring so drinking videos without "milk" in the title still score.
var Secondary = []string{"drink", "beverage", "glass", "pour", "sip", "gulp", "chug"}

// Context terms: food and fitness settings where milk content typically
// appears. Scored as one union category.
var (
	Food    = []string{"mukbang", "asmr", "eating", "breakfast", "cereal", "cookie", "oreo"}
	Fitness = []string{"protein", "workout", "gym", "muscle", "recovery", "shake", "nutrition"}
)

// Campaign phrases are near-certain indicators and carry a very high weight.
var Campaign = []string{"got milk", "gotmilk", "milk mustache", "milk commercial", "milk ad"}

// RedFlags indicate the content belongs to another vertical entirely.
var RedFlags = []string{
	"car", "auto", "vehicle", "engine", "motor", "drive", "racing", "speed",
	"lamborghini", "ferrari", "porsche", "bmw", "mercedes", "audi",
	"3d print", "printed", "printer", "gaming", "game", "tech", "computer",
	"phone", "iphone", "android", "unbox", "gadget",
}

// CampaignHashtags are the marketing tags that count as a full hashtag
// signal. The bare "milk" entry is deliberate: any hashtag containing the
// substring qualifies.
var CampaignHashtags = []string{"#gotmilk", "#milkmob", "milk"}

// Context returns the food+fitness union used by the context category.
func Context() []string {
	terms := make([]string, 0, len(Food)+len(Fitness))
	terms = append(terms, Food...)
	terms = append(terms, Fitness...)
	return terms
}

// HashtagMatch reports whether the raw hashtag string contains any campaign
// hashtag, case-insensitively.
func HashtagMatch(hashtags string) bool {
	lower := strings.ToLower(hashtags)
	for _, tag := range CampaignHashtags {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}
