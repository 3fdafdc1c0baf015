package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
)

type KnowledgeHandler struct {
	knowledge KnowledgeService
}

func NewKnowledgeHandler(knowledge KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge}
}

// GetKnowledge godoc
// @Summary Get knowledge base
// @Tags Knowledge
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} models.KnowledgeBase
// @Router /tenants/{id}/knowledge [get]
func (h *KnowledgeHandler) GetKnowledge(c *fiber.Ctx) error {
	kb, err := h.knowledge.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(kb)
}

// UpdateKnowledge godoc
// @Summary Replace business info and/or AI settings
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param data body services.UpdateKnowledgeRequest true "Business info and AI settings"
// @Success 200 {object} models.KnowledgeBase
// @Router /tenants/{id}/knowledge [put]
func (h *KnowledgeHandler) UpdateKnowledge(c *fiber.Ctx) error {
	var req services.UpdateKnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	return h.respond(c)(h.knowledge.Update(c.UserContext(), c.Params("id"), &req))
}

// AddOffering godoc
// @Summary Add an offering
// @Description Pricing tables need an open-ended bucket such as "5+" unless a fixed price is set
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param data body models.Offering true "Offering"
// @Success 201 {object} models.KnowledgeBase
// @Failure 409 {object} map[string]interface{}
// @Router /tenants/{id}/knowledge/offerings [post]
func (h *KnowledgeHandler) AddOffering(c *fiber.Ctx) error {
	var offering models.Offering
	if err := c.BodyParser(&offering); err != nil {
		return badRequest(c, "invalid request")
	}
	kb, err := h.knowledge.AddOffering(c.UserContext(), c.Params("id"), offering)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(kb)
}

// UpdateOffering godoc
// @Summary Replace an offering
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param offeringId path string true "Offering ID"
// @Param data body models.Offering true "Offering"
// @Success 200 {object} models.KnowledgeBase
// @Router /tenants/{id}/knowledge/offerings/{offeringId} [put]
func (h *KnowledgeHandler) UpdateOffering(c *fiber.Ctx) error {
	var offering models.Offering
	if err := c.BodyParser(&offering); err != nil {
		return badRequest(c, "invalid request")
	}
	return h.respond(c)(h.knowledge.UpdateOffering(c.UserContext(), c.Params("id"), c.Params("offeringId"), offering))
}

// RemoveOffering godoc
// @Summary Remove an offering
// @Tags Knowledge
// @Produce json
// @Param id path string true "Tenant ID"
// @Param offeringId path string true "Offering ID"
// @Success 200 {object} models.KnowledgeBase
// @Router /tenants/{id}/knowledge/offerings/{offeringId} [delete]
func (h *KnowledgeHandler) RemoveOffering(c *fiber.Ctx) error {
	return h.respond(c)(h.knowledge.RemoveOffering(c.UserContext(), c.Params("id"), c.Params("offeringId")))
}

// AddFAQ godoc
// @Summary Add a FAQ
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param data body models.FAQ true "FAQ"
// @Success 201 {object} models.KnowledgeBase
// @Router /tenants/{id}/knowledge/faqs [post]
func (h *KnowledgeHandler) AddFAQ(c *fiber.Ctx) error {
	var faq models.FAQ
	if err := c.BodyParser(&faq); err != nil {
		return badRequest(c, "invalid request")
	}
	kb, err := h.knowledge.AddFAQ(c.UserContext(), c.Params("id"), faq)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(kb)
}

// RemoveFAQ godoc
// @Summary Remove a FAQ by position
// @Tags Knowledge
// @Produce json
// @Param id path string true "Tenant ID"
// @Param index path int true "FAQ index"
// @Success 200 {object} models.KnowledgeBase
// @Router /tenants/{id}/knowledge/faqs/{index} [delete]
func (h *KnowledgeHandler) RemoveFAQ(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "index must be a number")
	}
	return h.respond(c)(h.knowledge.RemoveFAQ(c.UserContext(), c.Params("id"), index))
}

// SetLocations godoc
// @Summary Replace pickup locations
// @Tags Knowledge
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param data body []models.Location true "Locations"
// @Success 200 {object} models.KnowledgeBase
// @Router /tenants/{id}/knowledge/locations [put]
func (h *KnowledgeHandler) SetLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := c.BodyParser(&locations); err != nil {
		return badRequest(c, "invalid request")
	}
	return h.respond(c)(h.knowledge.SetLocations(c.UserContext(), c.Params("id"), locations))
}

func (h *KnowledgeHandler) respond(c *fiber.Ctx) func(*models.KnowledgeBase, error) error {
	return func(kb *models.KnowledgeBase, err error) error {
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(kb)
	}
}
