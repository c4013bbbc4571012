package middleware

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxMobIDLen    = 16   // mob_videos.mob_id VARCHAR(16)
	MaxTitleLen    = 256  // mob_videos.title VARCHAR(256)
	MaxURLLen      = 2048 // sane browser limit
	MaxHashtagsLen = 512
)

var (
	// mobIDRe matches mob IDs of the form mob001.
	mobIDRe = regexp.MustCompile(`^mob[0-9]{3}$`)
	// uploadExtensions are the video containers accepted for staging.
	uploadExtensions = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true,
		".webm": true, ".mkv": true, ".flv": true, ".wmv": true,
	}
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateMobID checks that a mob ID is well-formed.
func ValidateMobID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "mobId is required"
	}
	if len(id) > MaxMobIDLen {
		return "", "mobId must be at most 16 characters"
	}
	if !mobIDRe.MatchString(id) {
		return "", "mobId must look like mob001"
	}
	return id, ""
}

// ValidateURL checks basic shape and length; platform support is decided by
// the service layer.
func ValidateURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "url is required"
	}
	if len(raw) > MaxURLLen {
		return "", "url is too long"
	}
	return raw, ""
}

// ValidateHashtags trims and truncates the free-form hashtag string. Never
// rejects; hashtags are optional evidence.
func ValidateHashtags(tags string) string {
	tags = strings.TrimSpace(tags)
	if len(tags) > MaxHashtagsLen {
		tags = tags[:MaxHashtagsLen]
	}
	return tags
}

// AllowedUploadExtension reports whether the filename carries a supported
// video extension.
func AllowedUploadExtension(filename string) bool {
	return uploadExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SafeUploadName strips any path components from a client-supplied filename
// so staged files cannot escape the upload directory.
func SafeUploadName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
