package notification

import (
	"context"
	"time"
)

// Event types
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Event is the JSON body published for every booking change.
type Event struct {
	Type        string      `json:"type"`
	TenantID    string      `json:"tenant_id"`
	OrderNumber string      `json:"order_number"`
	Status      string      `json:"status"`
	Previous    string      `json:"previous_status,omitempty"`
	Order       interface{} `json:"order,omitempty"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
