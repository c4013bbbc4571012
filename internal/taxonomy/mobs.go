package taxonomy

// DurationBracket is a mob's preferred duration range in seconds. Zero values
// mean unbounded on that side; a zero-valued bracket means no affinity.
type DurationBracket struct {
	Min int
	Max int
}

// Contains reports whether a known (non-zero) duration falls in the bracket.
func (b DurationBracket) Contains(duration int) bool {
	if duration <= 0 || (b.Min == 0 && b.Max == 0) {
		return false
	}
	if b.Min > 0 && duration < b.Min {
		return false
	}
	if b.Max > 0 && duration > b.Max {
		return false
	}
	return true
}

// MobDefinition is one of the five fixed community buckets. Icon and color
// are presentation-only and passed through opaquely.
type MobDefinition struct {
	ID          string
	Key         string
	Name        string
	Description string
	Keywords    []string
	Hashtags    []string
	Platforms   []string
	Duration    DurationBracket
	Icon        string
	Color       string
}

// PrefersPlatform reports whether the mob has an affinity for the platform.
func (m MobDefinition) PrefersPlatform(platform string) bool {
	for _, p := range m.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// DefaultMobKey is the fallback bucket for valid submissions with no
// specific signal.
const DefaultMobKey = "daily_milk"

// Mobs is the full taxonomy in declaration order. The classifier resolves
// score ties to the first-declared mob, so the order here is load-bearing.
var Mobs = []MobDefinition{
	{
		ID:          "mob001",
		Key:         "extreme_milk",
		Name:        "Extreme Milk",
		Description: "Adventurous milk drinking with sports, stunts, and daring activities",
		Keywords:    []string{"extreme", "stunt", "skateboard", "bike", "jump", "trick", "adventure", "dare"},
		Hashtags:    []string{"#extrememilk", "#stunts", "#adventure"},
		Platforms:   []string{"tiktok"},
		Duration:    DurationBracket{Max: 29},
		Icon:        "🏄",
		Color:       "#ff6b35",
	},
	{
		ID:          "mob002",
		Key:         "milk_artists",
		Name:        "Milk Artists",
		Description: "Creative artistic expressions involving milk - art, photography, aesthetics",
		Keywords:    []string{"art", "creative", "aesthetic", "photo", "picture", "beautiful", "artistic", "paint"},
		Hashtags:    []string{"#milkart", "#aesthetic", "#creative"},
		Platforms:   []string{"tiktok", "instagram"},
		Icon:        "🎨",
		Color:       "#4ecdc4",
	},
	{
		ID:          "mob003",
		Key:         "mukbang_masters",
		Name:        "Mukbang Masters",
		Description: "Food enthusiasts featuring milk in eating shows and food content",
		Keywords:    []string{"mukbang", "asmr", "eating", "food", "taste", "review", "delicious"},
		Hashtags:    []string{"#mukbang", "#asmr", "#foodie"},
		Platforms:   []string{"youtube"},
		Duration:    DurationBracket{Min: 61},
		Icon:        "🍽️",
		Color:       "#45b7d1",
	},
	{
		ID:          "mob004",
		Key:         "fitness_fuel",
		Name:        "Fitness Fuel",
		Description: "Athletes and fitness enthusiasts using milk for workout nutrition",
		Keywords:    []string{"workout", "gym", "fitness", "protein", "muscle", "training", "exercise", "athlete"},
		Hashtags:    []string{"#fitnessmilk", "#protein", "#workout"},
		Platforms:   []string{"youtube"},
		Icon:        "💪",
		Color:       "#96ceb4",
	},
	{
		ID:          "mob005",
		Key:         DefaultMobKey,
		Name:        "Daily Milk",
		Description: "Everyday milk moments - breakfast, cooking, family time",
		Keywords:    []string{"breakfast", "morning", "cereal", "coffee", "cooking", "family", "home", "daily"},
		Hashtags:    []string{"#dailymilk", "#breakfast", "#family"},
		Duration:    DurationBracket{Min: 30, Max: 45},
		Icon:        "🥛",
		Color:       "#feca57",
	},
}

// ByID returns the mob with the given ID, or nil.
func ByID(id string) *MobDefinition {
	for i := range Mobs {
		if Mobs[i].ID == id {
			return &Mobs[i]
		}
	}
	return nil
}

// ByKey returns the mob with the given key, or nil.
func ByKey(key string) *MobDefinition {
	for i := range Mobs {
		if Mobs[i].Key == key {
			return &Mobs[i]
		}
	}
	return nil
}

// Default returns the designated fallback mob.
func Default() *MobDefinition {
	return ByKey(DefaultMobKey)
}
