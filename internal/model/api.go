package model

// ValidateRequest is the JSON body for POST /api/validate.
// Payload is a URL for source_kind "url" or a staged file path for "file"
// (multipart uploads fill it in server-side).
type ValidateRequest struct {
	SourceKind string `json:"source_kind"`
	Payload    string `json:"payload"`
	Hashtags   string `json:"hashtags"`
}

// VideoInfo echoes the extracted metadata back to the caller.
type VideoInfo struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Platform string `json:"platform"`
}

// ValidateResponse is the API response for POST /api/validate.
type ValidateResponse struct {
	Success      bool          `json:"success"`
	IsValid      bool          `json:"isValid"`
	Confidence   float64       `json:"confidence"`
	ContentScore float64       `json:"contentScore"`
	HashtagScore float64       `json:"hashtagScore"`
	Reason       string        `json:"reason"`
	Method       ScoringMethod `json:"validationMethod"`
	MobID        string        `json:"mobId,omitempty"`
	MobName      string        `json:"mobName,omitempty"`
	MobIcon      string        `json:"mobIcon,omitempty"`
	MobColor     string        `json:"mobColor,omitempty"`
	MatchReasons []string      `json:"matchReasons,omitempty"`
	VideoInfo    *VideoInfo    `json:"videoInfo,omitempty"`
}

// MobResponse is the API response for GET /api/mobs/:mobId.
type MobResponse struct {
	MobID         string     `json:"mobId"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Icon          string     `json:"icon"`
	Color         string     `json:"color"`
	Videos        []MobVideo `json:"videos"`
	VideoCount    int        `json:"videoCount"`
	AvgConfidence float64    `json:"avgConfidence"`
}

// StatsResponse is the API response for GET /api/stats.
type StatsResponse struct {
	TotalAnalyzed   int            `json:"totalAnalyzed"`
	TotalAccepted   int            `json:"totalAccepted"`
	MobDistribution map[string]int `json:"mobDistribution"`
	AvgConfidence   float64        `json:"avgConfidence"`
}

// StatusResponse reports collaborator availability for GET /api/status.
type StatusResponse struct {
	MetadataExtractor bool `json:"metadataExtractor"`
	ContentSearch     bool `json:"contentSearch"`
	UploadDir         bool `json:"uploadDir"`
	Cache             bool `json:"cache"`
	PersistentStore   bool `json:"persistentStore"`
}
