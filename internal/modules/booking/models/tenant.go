package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
)

// Tenant is a registered business with its own WhatsApp bot
type Tenant struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyName  string       `gorm:"type:text;not null" json:"company_name"`
	BusinessType catalog.Type `gorm:"type:text;not null;default:'other'" json:"business_type"`

	// Admin contact, receives booking alerts
	AdminName  string `gorm:"type:text" json:"admin_name"`
	AdminPhone string `gorm:"type:text" json:"admin_phone"`

	// WhatsApp device, filled after pairing
	WhatsAppNumber  string     `gorm:"type:text;index" json:"whatsapp_number"`
	DeviceJID       string     `gorm:"type:text" json:"device_jid"`
	LastConnectedAt *time.Time `json:"last_connected_at"`

	// Bot persona
	BotName            string        `gorm:"type:text" json:"bot_name"`
	Language           lang.Language `gorm:"type:text;default:'en'" json:"language"`
	CustomGreeting     string        `gorm:"type:text" json:"custom_greeting"`
	CustomInstructions string        `gorm:"type:text" json:"custom_instructions"`

	OrderPrefix string         `gorm:"type:text;default:'ORD'" json:"order_prefix"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`

	TotalMessages int64 `gorm:"default:0" json:"total_messages"`
	TotalBookings int64 `gorm:"default:0" json:"total_bookings"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name
func (Tenant) TableName() string {
	return "tenants"
}

// BeforeCreate sets UUID before creating
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Category returns the business category of the tenant.
func (t *Tenant) Category() catalog.Category {
	return catalog.Get(catalog.Parse(string(t.BusinessType)))
}

// DisplayBotName falls back to the category default when no name is set.
func (t *Tenant) DisplayBotName() string {
	if t.BotName != "" {
		return t.BotName
	}
	return t.Category().DefaultBotName
}

// IsConnected reports whether a WhatsApp device has been paired.
func (t *Tenant) IsConnected() bool {
	return t.DeviceJID != ""
}
