package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/export"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
)

const maxListLimit = 500

type OrderHandler struct {
	orders  OrderService
	reports OrderExporter
}

func NewOrderHandler(orders OrderService, reports OrderExporter) *OrderHandler {
	return &OrderHandler{orders: orders, reports: reports}
}

// ListOrders godoc
// @Summary List a tenant's bookings
// @Tags Orders
// @Produce json
// @Param id path string true "Tenant ID"
// @Param status query string false "pending, confirmed, in_progress, completed or cancelled"
// @Param customer query string false "Customer phone"
// @Param limit query int false "Max rows" default(100)
// @Success 200 {array} models.Order
// @Router /tenants/{id}/orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil || limit <= 0 {
		return badRequest(c, "limit must be a positive number")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	orders, err := h.orders.List(c.UserContext(), repositories.OrderFilter{
		TenantID:      c.Params("id"),
		CustomerPhone: c.Query("customer"),
		Status:        models.OrderStatus(c.Query("status")),
		Limit:         limit,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}

// ExportOrders godoc
// @Summary Download a tenant's bookings
// @Tags Orders
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Tenant ID"
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Param status query string false "Only bookings with this status"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Router /tenants/{id}/orders/export [get]
func (h *OrderHandler) ExportOrders(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	file, err := h.reports.ExportOrders(c.UserContext(), c.Params("id"), repositories.OrderFilter{
		CustomerPhone: c.Query("customer"),
		Status:        models.OrderStatus(c.Query("status")),
	}, format)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.Send(file.Data)
}

// GetOrderStats godoc
// @Summary Booking stats of a tenant
// @Tags Orders
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} services.OrderStats
// @Router /tenants/{id}/orders/stats [get]
func (h *OrderHandler) GetOrderStats(c *fiber.Ctx) error {
	stats, err := h.orders.Stats(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// GetOrder godoc
// @Summary Get booking by number
// @Tags Orders
// @Produce json
// @Param number path string true "Booking number"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]interface{}
// @Router /orders/{number} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.UserContext(), c.Params("number"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

type UpdateStatusRequest struct {
	Status string `json:"status" example:"confirmed"`
	Reason string `json:"reason,omitempty" example:"customer changed plans"`
}

// UpdateOrderStatus godoc
// @Summary Move a booking to a new status
// @Description Status only moves forward; cancelled and completed are final
// @Tags Orders
// @Accept json
// @Produce json
// @Param number path string true "Booking number"
// @Param data body UpdateStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 409 {object} map[string]interface{}
// @Router /orders/{number}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return badRequest(c, "status is required")
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), c.Params("number"), models.OrderStatus(req.Status), req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}
