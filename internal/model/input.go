package model

// SourceKind identifies how a submission reached the pipeline.
type SourceKind string

const (
	SourceFileUpload  SourceKind = "file_upload"
	SourceDirectURL   SourceKind = "direct_url"
	SourcePlatformURL SourceKind = "platform_url"
)

// ScoringInput carries every text and metadata signal the scorer and
// classifier consume. It is built once per request and never mutated.
type ScoringInput struct {
	Title       string
	Description string
	Filename    string
	Duration    int // seconds, 0 = unknown
	Hashtags    string
	SourceKind  SourceKind
	Platform    string

	// File-only signals, populated by the file inspector.
	FileExists bool
	FileSize   int64
}
