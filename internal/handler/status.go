package handler

import (
	"os"

	"github.com/gofiber/fiber/v3"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/service"
)

// StatusHandler reports which optional collaborators this deployment has
// configured, so the frontend can adjust what it offers.
type StatusHandler struct {
	validate  *service.ValidateService
	cache     *service.CacheService
	uploadDir string
	hasDB     bool
}

func NewStatusHandler(validate *service.ValidateService, cache *service.CacheService, uploadDir string, hasDB bool) *StatusHandler {
	return &StatusHandler{validate: validate, cache: cache, uploadDir: uploadDir, hasDB: hasDB}
}

// Get handles GET /api/status
func (h *StatusHandler) Get(c fiber.Ctx) error {
	return c.JSON(model.StatusResponse{
		MetadataExtractor: h.validate.ExtractorAvailable(),
		ContentSearch:     h.validate.SearchAvailable(),
		UploadDir:         dirWritable(h.uploadDir),
		Cache:             h.cache.Enabled(),
		PersistentStore:   h.hasDB,
	})
}

func dirWritable(dir string) bool {
	if dir == "" {
		return false
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
