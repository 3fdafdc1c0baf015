package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
)

type TenantHandler struct {
	tenants TenantService
}

func NewTenantHandler(tenants TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// RegisterTenant godoc
// @Summary Register a tenant
// @Description Creates a tenant with the default knowledge base of its business type
// @Tags Tenants
// @Accept json
// @Produce json
// @Param data body services.RegisterRequest true "Tenant"
// @Success 201 {object} models.Tenant
// @Failure 400 {object} map[string]interface{}
// @Router /tenants [post]
func (h *TenantHandler) RegisterTenant(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	tenant, err := h.tenants.Register(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// ListTenants godoc
// @Summary List tenants
// @Tags Tenants
// @Produce json
// @Param active query bool false "Only active tenants"
// @Success 200 {array} models.Tenant
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(c *fiber.Ctx) error {
	activeOnly, _ := strconv.ParseBool(c.Query("active", "false"))

	tenants, err := h.tenants.List(c.UserContext(), activeOnly)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tenants)
}

// GetTenant godoc
// @Summary Get tenant by ID
// @Tags Tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} models.Tenant
// @Failure 404 {object} map[string]interface{}
// @Router /tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *fiber.Ctx) error {
	tenant, err := h.tenants.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tenant)
}

// UpdateTenant godoc
// @Summary Update tenant
// @Description Only the fields present in the body change
// @Tags Tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param data body services.UpdateTenantRequest true "Fields to change"
// @Success 200 {object} models.Tenant
// @Router /tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *fiber.Ctx) error {
	var req services.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	tenant, err := h.tenants.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tenant)
}

// DeleteTenant godoc
// @Summary Delete tenant
// @Description Soft delete, only allowed for deactivated tenants
// @Tags Tenants
// @Param id path string true "Tenant ID"
// @Success 204
// @Failure 409 {object} map[string]interface{}
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *fiber.Ctx) error {
	if err := h.tenants.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeactivateTenant godoc
// @Summary Deactivate tenant
// @Description Stops the bot and drops live conversations
// @Tags Tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} map[string]interface{}
// @Router /tenants/{id}/deactivate [post]
func (h *TenantHandler) DeactivateTenant(c *fiber.Ctx) error {
	if err := h.tenants.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "deactivated"})
}

// ActivateTenant godoc
// @Summary Activate tenant
// @Tags Tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} map[string]interface{}
// @Router /tenants/{id}/activate [post]
func (h *TenantHandler) ActivateTenant(c *fiber.Ctx) error {
	if err := h.tenants.Activate(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "active"})
}

// GetTenantStats godoc
// @Summary Tenant dashboard stats
// @Tags Tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} services.TenantStats
// @Router /tenants/{id}/stats [get]
func (h *TenantHandler) GetTenantStats(c *fiber.Ctx) error {
	stats, err := h.tenants.Stats(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
