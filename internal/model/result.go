package model

import "time"

// ScoringMethod identifies which scoring path produced a ValidationResult.
type ScoringMethod string

const (
	MethodSmartURL       ScoringMethod = "smart_url_validation"
	MethodSimpleFile     ScoringMethod = "simple_validation"
	MethodContentSearch  ScoringMethod = "content_search"
	MethodHashtagOnly    ScoringMethod = "hashtag_fallback"
)

// Contribution is one audited scoring step: the label that goes into the
// reason string, how many keyword matches fed it and the score delta it
// produced (negative for penalties).
type Contribution struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Delta float64 `json:"delta"`
}

// ValidationResult is the immutable outcome of one validation call.
type ValidationResult struct {
	IsValid      bool           `json:"isValid"`
	Confidence   float64        `json:"confidence"`
	ContentScore float64        `json:"contentScore"`
	HashtagScore float64        `json:"hashtagScore"`
	HashtagMatch bool           `json:"hashtagMatch"`
	Reason       string         `json:"reason"`
	Method       ScoringMethod  `json:"method"`
	Trail        []Contribution `json:"trail,omitempty"`
}

// MobAssignment is the classifier verdict for a valid submission.
type MobAssignment struct {
	MobID   string   `json:"mobId"`
	MobKey  string   `json:"mobKey"`
	MobName string   `json:"mobName"`
	Score   float64  `json:"matchScore"`
	Reasons []string `json:"matchReasons"`
}

// MobVideo is the denormalized record appended to a mob's collection once a
// submission passes validation.
type MobVideo struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Submitter  string    `json:"user"`
	Duration   int       `json:"duration"`
	Confidence float64   `json:"confidence"`
	AddedAt    time.Time `json:"addedAt"`
}
