package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reply sources
const (
	SourceFlow     = "flow"
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceApology  = "apology"
)

// Conversation is one handled turn between a customer and a tenant bot
type Conversation struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerPhone string            `gorm:"type:text;not null" json:"customer_phone"`
	StateBefore   string            `gorm:"type:text" json:"state_before"`
	MessageText   string            `gorm:"type:text" json:"message_text"`
	Reply         string            `gorm:"type:text" json:"reply"`
	Source        string            `gorm:"type:text;default:'flow'" json:"source"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationship
	Tenant Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate sets UUID before creating
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
