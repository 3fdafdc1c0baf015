package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/audit"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/auth"
)

type Handlers struct {
	Health    *HealthHandler
	Tenants   *TenantHandler
	Knowledge *KnowledgeHandler
	Orders    *OrderHandler
	WhatsApp  *WhatsAppHandler
	Audit     *AuditHandler

	// Auth protects /tenants and /orders when set.
	Auth *auth.JWTService
	// Recorder gets one entry per mutating admin request when set.
	Recorder audit.Recorder
}

func passThrough(c *fiber.Ctx) error { return c.Next() }

// SetupRoutes mounts the admin API on app.
func SetupRoutes(app *fiber.App, h Handlers) {
	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check and metrics
	app.Get("/health", h.Health.GetHealth)
	app.Get("/categories", h.Health.GetCategories)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	var guards []fiber.Handler
	operator, owner := fiber.Handler(passThrough), fiber.Handler(passThrough)
	if h.Auth != nil {
		guards = append(guards, auth.Middleware(h.Auth))
		operator = auth.RequireRole(auth.RoleOperator)
		owner = auth.RequireTenant("id")
	}
	if h.Recorder != nil {
		guards = append(guards, audit.Middleware(h.Recorder, "id"))
	}

	// Tenant routes
	tenants := app.Group("/tenants", guards...)
	tenants.Post("/", operator, h.Tenants.RegisterTenant)
	tenants.Get("/", operator, h.Tenants.ListTenants)
	tenants.Get("/:id", owner, h.Tenants.GetTenant)
	tenants.Put("/:id", owner, h.Tenants.UpdateTenant)
	tenants.Delete("/:id", operator, h.Tenants.DeleteTenant)
	tenants.Post("/:id/deactivate", operator, h.Tenants.DeactivateTenant)
	tenants.Post("/:id/activate", operator, h.Tenants.ActivateTenant)
	tenants.Get("/:id/stats", owner, h.Tenants.GetTenantStats)

	// Knowledge base routes
	tenants.Get("/:id/knowledge", owner, h.Knowledge.GetKnowledge)
	tenants.Put("/:id/knowledge", owner, h.Knowledge.UpdateKnowledge)
	tenants.Post("/:id/knowledge/offerings", owner, h.Knowledge.AddOffering)
	tenants.Put("/:id/knowledge/offerings/:offeringId", owner, h.Knowledge.UpdateOffering)
	tenants.Delete("/:id/knowledge/offerings/:offeringId", owner, h.Knowledge.RemoveOffering)
	tenants.Post("/:id/knowledge/faqs", owner, h.Knowledge.AddFAQ)
	tenants.Delete("/:id/knowledge/faqs/:index", owner, h.Knowledge.RemoveFAQ)
	tenants.Put("/:id/knowledge/locations", owner, h.Knowledge.SetLocations)

	// Order routes
	tenants.Get("/:id/orders", owner, h.Orders.ListOrders)
	tenants.Get("/:id/orders/stats", owner, h.Orders.GetOrderStats)
	tenants.Get("/:id/orders/export", owner, h.Orders.ExportOrders)
	orders := app.Group("/orders", guards...)
	orders.Get("/:number", operator, h.Orders.GetOrder)
	orders.Patch("/:number/status", operator, h.Orders.UpdateOrderStatus)

	// WhatsApp routes
	tenants.Get("/:id/whatsapp/qr", owner, h.WhatsApp.GetQRCode)
	tenants.Get("/:id/whatsapp/status", owner, h.WhatsApp.GetStatus)
	tenants.Post("/:id/whatsapp/disconnect", owner, h.WhatsApp.Disconnect)

	// Audit trail
	if h.Audit != nil {
		tenants.Get("/:id/audit", owner, h.Audit.ListAuditLog)
	}
}
