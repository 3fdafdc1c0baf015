package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/notification"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

// OrderService is the booking ledger
type OrderService struct {
	orderRepo repositories.OrderRepo
	node      *snowflake.Node
	publisher notification.Publisher
	loc       *time.Location
	now       func() time.Time

	// single writer for ledger inserts
	mu sync.Mutex
}

func NewOrderService(
	orderRepo repositories.OrderRepo,
	nodeID int64,
	publisher notification.Publisher,
	loc *time.Location,
) (*OrderService, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("invalid ORDER_NODE_ID %d: %w", nodeID, err)
	}
	if publisher == nil {
		publisher = notification.NopPublisher{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		orderRepo: orderRepo,
		node:      node,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
	}, nil
}

// OrderStats aggregates the ledger of one tenant
type OrderStats struct {
	Total            int64                        `json:"total"`
	ByStatus         map[models.OrderStatus]int64 `json:"by_status"`
	Today            int64                        `json:"today"`
	ThisWeek         int64                        `json:"this_week"`
	ThisMonth        int64                        `json:"this_month"`
	Revenue          int64                        `json:"revenue"`
	RevenueThisMonth int64                        `json:"revenue_this_month"`
}

// Create stores a finalized booking with a fresh order number and status pending
func (s *OrderService) Create(ctx context.Context, tenant *models.Tenant, order *models.Order) (*models.Order, error) {
	if order.PartySize < 1 || order.OfferingName == "" || order.Date == "" {
		return nil, fmt.Errorf("%w: offering, party size and date are required", ErrInvalidInput)
	}
	if order.TotalPrice != order.UnitPrice*int64(order.PartySize) {
		return nil, ErrInvalidAmount
	}

	order.TenantID = tenant.ID
	order.OrderNumber = s.generateOrderNumber(tenant.OrderPrefix)
	order.OrderType = tenant.Category().OrderType
	order.CustomerPhone = utils.NormalizePhone(order.CustomerPhone)
	order.Status = models.StatusPending

	s.mu.Lock()
	err := s.orderRepo.Create(ctx, order)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.Booking()
	log.Info().
		Str("tenant_id", tenant.ID.String()).
		Str("order", order.OrderNumber).
		Int64("total", order.TotalPrice).
		Msg("✅ Order created")
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.CustomerPhone != "" {
		filter.CustomerPhone = utils.NormalizePhone(filter.CustomerPhone)
	}
	return s.orderRepo.List(ctx, filter)
}

// UpdateStatus moves an order forward in its lifecycle
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, next models.OrderStatus, reason string) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}

	var previous models.OrderStatus
	order, err := s.orderRepo.UpdateStatus(ctx, orderNumber, func(o *models.Order) error {
		if !o.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
		}
		previous = o.Status
		o.ApplyStatus(next, reason, s.now())
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, notFound(err, ErrOrderNotFound)
	}

	log.Info().Str("order", orderNumber).Str("from", string(previous)).Str("to", string(next)).Msg("🔄 Order status updated")

	event := notification.Event{
		Type:        notification.EventBookingStatusChanged,
		TenantID:    order.TenantID.String(),
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Previous:    string(previous),
		Order:       order,
		OccurredAt:  s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("order", orderNumber).Msg("⚠️ Failed to publish status change")
	}

	return order, nil
}

// Stats counts orders by status and calendar window, and sums completed revenue
func (s *OrderService) Stats(ctx context.Context, tenantID string) (*OrderStats, error) {
	if !validID(tenantID) {
		return nil, ErrTenantNotFound
	}

	byStatus, err := s.orderRepo.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	stats := &OrderStats{ByStatus: make(map[models.OrderStatus]int64)}
	for _, st := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled,
	} {
		stats.ByStatus[st] = byStatus[st]
		stats.Total += byStatus[st]
	}

	now := s.now().In(s.loc)
	windows := []struct {
		period analytics.Period
		dst    *int64
	}{
		{analytics.PeriodToday, &stats.Today},
		{analytics.PeriodThisWeek, &stats.ThisWeek},
		{analytics.PeriodThisMonth, &stats.ThisMonth},
	}
	for _, w := range windows {
		r := analytics.GetDateRangeAt(w.period, now)
		count, err := s.orderRepo.CountCreatedBetween(ctx, tenantID, r.Start, r.End)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s orders: %w", w.period, err)
		}
		*w.dst = count
	}

	if stats.Revenue, err = s.orderRepo.SumRevenue(ctx, tenantID, nil); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	monthStart := analytics.GetDateRangeAt(analytics.PeriodThisMonth, now).Start
	if stats.RevenueThisMonth, err = s.orderRepo.SumRevenue(ctx, tenantID, &monthStart); err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}

	return stats, nil
}

// FormatOrderNotification renders the admin alert for a new booking
func (s *OrderService) FormatOrderNotification(order *models.Order, tenant *models.Tenant) string {
	l := tenant.Language
	label := strings.ToUpper(tenant.Category().OrderTypeLabel.In(l))

	var b strings.Builder
	fmt.Fprintf(&b, "🔔 *NEW %s*\n", label)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "🎯 *%s*\n", order.OfferingName)
	fmt.Fprintf(&b, "👥 People: %d\n", order.PartySize)
	fmt.Fprintf(&b, "📅 Date: %s\n", order.Date)
	if order.Pickup != "" {
		fmt.Fprintf(&b, "📍 Pickup: %s\n", order.Pickup)
	}
	fmt.Fprintf(&b, "💰 Per person: %s\n", utils.FormatMoney(order.Currency, order.UnitPrice))
	fmt.Fprintf(&b, "💵 Total: *%s*\n", utils.FormatMoney(order.Currency, order.TotalPrice))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "📱 Client: *+%s*\n", order.CustomerPhone)
	fmt.Fprintf(&b, "🔖 ID: %s\n", order.OrderNumber)

	created := order.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	fmt.Fprintf(&b, "⏰ %s", created.In(s.loc).Format("02/01/2006 15:04"))
	return b.String()
}

// generateOrderNumber returns PREFIX-<snowflake base36>, unique across tenants
func (s *OrderService) generateOrderNumber(prefix string) string {
	return normalizePrefix(prefix) + "-" + strings.ToUpper(s.node.Generate().Base36())
}
