package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/middleware"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/service"
)

type MobHandler struct {
	catalog *service.CatalogService
}

func NewMobHandler(catalog *service.CatalogService) *MobHandler {
	return &MobHandler{catalog: catalog}
}

// List handles GET /api/mobs
func (h *MobHandler) List(c fiber.Ctx) error {
	mobs, err := h.catalog.ListMobs(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load mobs")
	}
	return c.JSON(fiber.Map{"mobs": mobs})
}

// Get handles GET /api/mobs/:mobId
func (h *MobHandler) Get(c fiber.Ctx) error {
	mobID, errMsg := middleware.ValidateMobID(c.Params("mobId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	data, err := h.catalog.Mob(c.Context(), mobID)
	if err != nil {
		if errors.Is(err, service.ErrInput) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Unknown mob")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load mob")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
