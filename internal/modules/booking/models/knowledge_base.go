package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/pricing"
)

// OfferingGroup decides which main menu entry lists an offering.
type OfferingGroup string

const (
	GroupMain     OfferingGroup = "main"
	GroupPackage  OfferingGroup = "package"
	GroupExtended OfferingGroup = "extended"
)

func (g OfferingGroup) Valid() bool {
	switch g {
	case GroupMain, GroupPackage, GroupExtended:
		return true
	}
	return false
}

// KnowledgeBase holds the business facts of one tenant. Lists live in JSONB columns.
type KnowledgeBase struct {
	ID        uuid.UUID                        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID  uuid.UUID                        `gorm:"type:uuid;not null;uniqueIndex" json:"tenant_id"`
	Business  datatypes.JSONType[BusinessInfo] `gorm:"type:jsonb;not null" json:"business"`
	Offerings datatypes.JSONSlice[Offering]    `gorm:"type:jsonb" json:"offerings"`
	Locations datatypes.JSONSlice[Location]    `gorm:"type:jsonb" json:"locations"`
	FAQs      datatypes.JSONSlice[FAQ]         `gorm:"type:jsonb" json:"faqs"`
	AI        datatypes.JSONType[AISettings]   `gorm:"type:jsonb" json:"ai"`
	CreatedAt time.Time                        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                        `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}

// BeforeCreate sets UUID before creating
func (kb *KnowledgeBase) BeforeCreate(tx *gorm.DB) error {
	if kb.ID == uuid.Nil {
		kb.ID = uuid.New()
	}
	return nil
}

// BusinessInfo is the contact and opening hours block.
type BusinessInfo struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Tagline     string     `json:"tagline,omitempty"`
	Location    string     `json:"location,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Website     string     `json:"website,omitempty"`
	Currency    string     `json:"currency"`
	Hours       []DayHours `json:"hours,omitempty"`
	Languages   []string   `json:"languages,omitempty"`
	Inclusions  []string   `json:"inclusions,omitempty"`
	Exclusions  []string   `json:"exclusions,omitempty"`
}

// DayHours is one weekday line. Days are lower-case English names.
type DayHours struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// Offering is anything a customer can book: a tour, a room, a service.
type Offering struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Emoji       string                   `json:"emoji,omitempty"`
	Group       OfferingGroup            `json:"group"`
	Description string                   `json:"description,omitempty"`
	Duration    string                   `json:"duration,omitempty"`
	Highlights  []string                 `json:"highlights,omitempty"`
	FixedPrice  int64                    `json:"fixed_price,omitempty"`
	Pricing     pricing.Table            `json:"pricing,omitempty"`
	ZonePricing map[string]pricing.Table `json:"zone_pricing,omitempty"`
}

// PricingFor returns the table for a pickup zone, or the base table.
func (o Offering) PricingFor(zone string) pricing.Table {
	if t, ok := o.ZonePricing[zone]; ok && len(t) > 0 {
		return t
	}
	return o.Pricing
}

// PriceBounds returns the cheapest and dearest per-person price in a zone.
// A fixed price is both bounds.
func (o Offering) PriceBounds(zone string) (int64, int64) {
	if o.FixedPrice > 0 {
		return o.FixedPrice, o.FixedPrice
	}
	t := o.PricingFor(zone)
	return t.Min(), t.Max()
}

// Location is a pickup area. Several locations may share a pricing zone.
type Location struct {
	ID    string    `json:"id"`
	Zone  string    `json:"zone"`
	Label lang.Text `json:"label"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AISettings overrides the persona used in prompts.
type AISettings struct {
	BotName            string `json:"bot_name,omitempty"`
	Personality        string `json:"personality,omitempty"`
	Greeting           string `json:"greeting,omitempty"`
	Farewell           string `json:"farewell,omitempty"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
}

func (kb *KnowledgeBase) Info() BusinessInfo {
	return kb.Business.Data()
}

func (kb *KnowledgeBase) Settings() AISettings {
	return kb.AI.Data()
}

// Currency returns the business currency, TZS when unset.
func (kb *KnowledgeBase) Currency() string {
	if c := kb.Info().Currency; c != "" {
		return c
	}
	return "TZS"
}

// OfferingsIn returns the offerings of a group in list order.
func (kb *KnowledgeBase) OfferingsIn(group OfferingGroup) []Offering {
	var out []Offering
	for _, o := range kb.Offerings {
		if o.Group == group {
			out = append(out, o)
		}
	}
	return out
}

func (kb *KnowledgeBase) FindOffering(id string) (Offering, bool) {
	for _, o := range kb.Offerings {
		if o.ID == id {
			return o, true
		}
	}
	return Offering{}, false
}
