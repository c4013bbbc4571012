package service

import "errors"

// Error taxonomy for the validation pipeline. A submission that scores below
// threshold is NOT an error; it is a normal negative ValidationResult.
var (
	// ErrInput rejects malformed submissions before scoring, with no side
	// effects.
	ErrInput = errors.New("invalid input")

	// ErrExtraction means the metadata collaborator could not analyze the
	// video. Terminal for the request; never silently treated as valid.
	ErrExtraction = errors.New("metadata extraction failed")

	// ErrSearch means the content search collaborator failed; the pipeline
	// falls through to the next strategy.
	ErrSearch = errors.New("content search failed")

	// ErrStore means the persistence append failed. Logged and surfaced as
	// best-effort: the response still reflects the scoring outcome.
	ErrStore = errors.New("store append failed")
)
