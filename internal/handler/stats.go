package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/middleware"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/service"
)

type StatsHandler struct {
	catalog  *service.CatalogService
	validate *service.ValidateService
}

func NewStatsHandler(catalog *service.CatalogService, validate *service.ValidateService) *StatsHandler {
	return &StatsHandler{catalog: catalog, validate: validate}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c fiber.Ctx) error {
	data, err := h.catalog.Stats(c.Context(), h.validate.Analyzed())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
