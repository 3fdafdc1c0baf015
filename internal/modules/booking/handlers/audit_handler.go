package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/audit"
)

type AuditHandler struct {
	entries AuditLog
}

func NewAuditHandler(entries AuditLog) *AuditHandler {
	return &AuditHandler{entries: entries}
}

// ListAuditLog godoc
// @Summary Admin changes made to a tenant
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Param actor query string false "Token subject"
// @Param since query string false "RFC 3339 timestamp"
// @Param limit query int false "Max rows" default(50)
// @Success 200 {array} audit.Entry
// @Failure 400 {object} map[string]interface{}
// @Router /tenants/{id}/audit [get]
func (h *AuditHandler) ListAuditLog(c *fiber.Ctx) error {
	filter := audit.Filter{
		TenantID: c.Params("id"),
		Actor:    c.Query("actor"),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return badRequest(c, "limit must be a positive number")
		}
		filter.Limit = min(limit, maxListLimit)
	}

	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "since must be an RFC 3339 timestamp")
		}
		filter.Since = &since
	}

	entries, err := h.entries.List(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entries)
}
