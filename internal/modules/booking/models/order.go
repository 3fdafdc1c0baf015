package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// position in the lifecycle, cancelled sits outside the line
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusInProgress: 2,
	StatusCompleted:  3,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok || s == StatusCancelled
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether s may move to next. Status only moves forward,
// possibly skipping steps, or sideways into cancelled from a non-terminal status.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// Order is a finalized booking. Only status fields change after creation.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OrderNumber string    `gorm:"type:text;unique;not null" json:"order_number"`
	OrderType   string    `gorm:"type:text;not null;default:'booking'" json:"order_type"`

	// Customer
	CustomerPhone string `gorm:"type:text;not null;index" json:"customer_phone"`
	CustomerName  string `gorm:"type:text" json:"customer_name"`

	// Booking details
	OfferingID   string `gorm:"type:text" json:"offering_id"`
	OfferingName string `gorm:"type:text;not null" json:"offering_name"`
	PartySize    int    `gorm:"not null" json:"party_size"`
	UnitPrice    int64  `gorm:"not null" json:"unit_price"`
	TotalPrice   int64  `gorm:"not null" json:"total_price"`
	Currency     string `gorm:"type:text;not null" json:"currency"`
	Date         string `gorm:"type:text;not null" json:"date"`
	Pickup       string `gorm:"type:text" json:"pickup"`
	Notes        string `gorm:"type:text" json:"notes"`

	Status       OrderStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`
	ConfirmedAt  *time.Time  `json:"confirmed_at"`
	StartedAt    *time.Time  `json:"started_at"`
	CompletedAt  *time.Time  `json:"completed_at"`
	CancelledAt  *time.Time  `json:"cancelled_at"`
	CancelReason string      `gorm:"type:text" json:"cancel_reason"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate sets UUID before creating
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// ApplyStatus moves the order to next and stamps the matching timestamp.
// Callers check CanTransition first.
func (o *Order) ApplyStatus(next OrderStatus, reason string, at time.Time) {
	o.Status = next
	switch next {
	case StatusConfirmed:
		o.ConfirmedAt = &at
	case StatusInProgress:
		o.StartedAt = &at
	case StatusCompleted:
		o.CompletedAt = &at
	case StatusCancelled:
		o.CancelledAt = &at
		o.CancelReason = reason
	}
}
