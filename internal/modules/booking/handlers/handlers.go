package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/audit"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/export"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/pricing"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/whatsapp"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
)

// TenantService is the slice of *services.TenantService the API needs.
type TenantService interface {
	Register(ctx context.Context, req *services.RegisterRequest) (*models.Tenant, error)
	Get(ctx context.Context, id string) (*models.Tenant, error)
	List(ctx context.Context, activeOnly bool) ([]models.Tenant, error)
	Update(ctx context.Context, id string, req *services.UpdateTenantRequest) (*models.Tenant, error)
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*services.TenantStats, error)
	MarkDisconnected(ctx context.Context, id string) error
}

type KnowledgeService interface {
	Get(ctx context.Context, tenantID string) (*models.KnowledgeBase, error)
	Update(ctx context.Context, tenantID string, req *services.UpdateKnowledgeRequest) (*models.KnowledgeBase, error)
	AddOffering(ctx context.Context, tenantID string, offering models.Offering) (*models.KnowledgeBase, error)
	UpdateOffering(ctx context.Context, tenantID, offeringID string, offering models.Offering) (*models.KnowledgeBase, error)
	RemoveOffering(ctx context.Context, tenantID, offeringID string) (*models.KnowledgeBase, error)
	AddFAQ(ctx context.Context, tenantID string, faq models.FAQ) (*models.KnowledgeBase, error)
	RemoveFAQ(ctx context.Context, tenantID string, index int) (*models.KnowledgeBase, error)
	SetLocations(ctx context.Context, tenantID string, locations []models.Location) (*models.KnowledgeBase, error)
}

type OrderService interface {
	Get(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, next models.OrderStatus, reason string) (*models.Order, error)
	Stats(ctx context.Context, tenantID string) (*services.OrderStats, error)
}

type OrderExporter interface {
	ExportOrders(ctx context.Context, tenantID string, filter repositories.OrderFilter, format export.Format) (*export.File, error)
}

type AuditLog interface {
	List(ctx context.Context, f audit.Filter) ([]audit.Entry, error)
}

// WhatsApp is the device side of the API. *whatsapp.Manager satisfies it.
type WhatsApp interface {
	GetProviderName() string
	PairingQR(ctx context.Context, tenantID string) ([]byte, error)
	IsConnected(tenantID string) bool
	StopTenant(tenantID string)
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTenantNotFound),
		errors.Is(err, services.ErrKnowledgeNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrTenantActive),
		errors.Is(err, services.ErrDuplicateItem),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, whatsapp.ErrNotPaired),
		errors.Is(err, whatsapp.ErrNotConnected):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, pricing.ErrNoCatchAll),
		errors.Is(err, pricing.ErrInvalidBucket),
		errors.Is(err, pricing.ErrNoBucket):
		return fiber.StatusBadRequest
	case errors.Is(err, whatsapp.ErrQRTimeout), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("❌ Request failed")
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
