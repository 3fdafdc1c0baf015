package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const qrTimeout = 60 * time.Second

type WhatsAppHandler struct {
	whatsapp WhatsApp
	tenants  TenantService
}

func NewWhatsAppHandler(wa WhatsApp, tenants TenantService) *WhatsAppHandler {
	return &WhatsAppHandler{whatsapp: wa, tenants: tenants}
}

// GetQRCode godoc
// @Summary Get WhatsApp pairing QR code
// @Description Starts a fresh device for the tenant and returns the QR to scan
// @Tags WhatsApp
// @Produce image/png
// @Param id path string true "Tenant ID"
// @Success 200 {file} image/png
// @Failure 404 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Router /tenants/{id}/whatsapp/qr [get]
func (h *WhatsAppHandler) GetQRCode(c *fiber.Ctx) error {
	tenantID := c.Params("id")
	if _, err := h.tenants.Get(c.UserContext(), tenantID); err != nil {
		return fail(c, err)
	}

	log.Info().Str("tenant_id", tenantID).Str("provider", h.whatsapp.GetProviderName()).Msg("🔍 Generating QR")

	ctx, cancel := context.WithTimeout(c.UserContext(), qrTimeout)
	defer cancel()

	qr, err := h.whatsapp.PairingQR(ctx, tenantID)
	if err != nil {
		return fail(c, err)
	}

	c.Set("Content-Type", "image/png")
	c.Set("Content-Disposition", "inline; filename=whatsapp-qr.png")
	return c.Send(qr)
}

// GetStatus godoc
// @Summary WhatsApp connection status
// @Tags WhatsApp
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} map[string]interface{}
// @Router /tenants/{id}/whatsapp/status [get]
func (h *WhatsAppHandler) GetStatus(c *fiber.Ctx) error {
	tenantID := c.Params("id")
	tenant, err := h.tenants.Get(c.UserContext(), tenantID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"tenant_id":         tenantID,
		"connected":         h.whatsapp.IsConnected(tenantID),
		"paired":            tenant.DeviceJID != "",
		"whatsapp_number":   tenant.WhatsAppNumber,
		"last_connected_at": tenant.LastConnectedAt,
	})
}

// Disconnect godoc
// @Summary Disconnect and unpair the tenant's device
// @Tags WhatsApp
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} map[string]interface{}
// @Router /tenants/{id}/whatsapp/disconnect [post]
func (h *WhatsAppHandler) Disconnect(c *fiber.Ctx) error {
	tenantID := c.Params("id")
	if _, err := h.tenants.Get(c.UserContext(), tenantID); err != nil {
		return fail(c, err)
	}

	h.whatsapp.StopTenant(tenantID)
	if err := h.tenants.MarkDisconnected(c.UserContext(), tenantID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "disconnected"})
}
