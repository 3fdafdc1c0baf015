package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/notification"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

const notifyTimeout = 30 * time.Second

// BookingNotifier tells the tenant admin about a new booking and publishes
// the booking event. Delivery is fire-and-forget.
type BookingNotifier struct {
	notifications *notification.Service
	orders        *OrderService
}

func NewBookingNotifier(notifications *notification.Service, orders *OrderService) *BookingNotifier {
	return &BookingNotifier{notifications: notifications, orders: orders}
}

// Notify returns immediately; delivery runs in the background.
func (n *BookingNotifier) Notify(tenant *models.Tenant, order *models.Order) {
	t, o := *tenant, *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		n.deliver(ctx, &t, &o)
	}()
}

func (n *BookingNotifier) deliver(ctx context.Context, tenant *models.Tenant, order *models.Order) {
	tenantID := tenant.ID.String()

	if tenant.AdminPhone == "" {
		log.Warn().Str("tenant_id", tenantID).Msg("⚠️ No admin phone, skipping booking alert")
	} else {
		admin := &notification.AdminContact{Phone: tenant.AdminPhone, Name: tenant.AdminName}
		message := n.orders.FormatOrderNotification(order, tenant)
		if err := n.notifications.SendToTenantAdmin(ctx, tenantID, admin, message); err != nil {
			log.Error().Err(err).Str("order", order.OrderNumber).Msg("❌ Failed to notify admin")
		}
	}

	n.notifications.Publish(ctx, notification.Event{
		Type:        notification.EventBookingCreated,
		TenantID:    tenantID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Order:       order,
		OccurredAt:  time.Now(),
	})
}
