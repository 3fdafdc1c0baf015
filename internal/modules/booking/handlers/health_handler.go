package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
)

type HealthHandler struct {
	whatsapp WhatsApp
	llm      string
}

func NewHealthHandler(wa WhatsApp, llmProvider string) *HealthHandler {
	return &HealthHandler{whatsapp: wa, llm: llmProvider}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "wa-booking-bot",
		"provider": h.whatsapp.GetProviderName(),
		"llm":      h.llm,
	})
}

// GetCategories godoc
// @Summary Business categories
// @Description Dropdown options for the business type of a tenant
// @Tags Health
// @Produce json
// @Param lang query string false "en or sw" default(en)
// @Success 200 {array} catalog.Option
// @Router /categories [get]
func (h *HealthHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(catalog.Options(lang.Parse(c.Query("lang"))))
}
