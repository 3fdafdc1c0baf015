package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

// WeekDays in display order
var WeekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type KnowledgeService struct {
	repo repositories.KnowledgeRepo
	// admin edits are read-modify-write on the JSON columns
	mu sync.Mutex
}

func NewKnowledgeService(repo repositories.KnowledgeRepo) *KnowledgeService {
	return &KnowledgeService{repo: repo}
}

// UpdateKnowledgeRequest replaces the business block and/or AI settings.
type UpdateKnowledgeRequest struct {
	Business *models.BusinessInfo `json:"business,omitempty"`
	AI       *models.AISettings   `json:"ai,omitempty"`
}

// DefaultKnowledge builds the empty knowledge base a new tenant starts with.
func DefaultKnowledge(tenant *models.Tenant) *models.KnowledgeBase {
	hours := make([]models.DayHours, 0, len(WeekDays))
	for _, day := range WeekDays {
		switch day {
		case "saturday":
			hours = append(hours, models.DayHours{Day: day, Open: "09:00", Close: "14:00"})
		case "sunday":
			hours = append(hours, models.DayHours{Day: day, Closed: true})
		default:
			hours = append(hours, models.DayHours{Day: day, Open: "08:00", Close: "18:00"})
		}
	}

	return &models.KnowledgeBase{
		TenantID: tenant.ID,
		Business: datatypes.NewJSONType(models.BusinessInfo{
			Name:     tenant.CompanyName,
			Phone:    tenant.AdminPhone,
			Currency: "TZS",
			Hours:    hours,
		}),
		Offerings: datatypes.JSONSlice[models.Offering]{},
		Locations: datatypes.JSONSlice[models.Location]{},
		FAQs:      datatypes.JSONSlice[models.FAQ]{},
		AI: datatypes.NewJSONType(models.AISettings{
			BotName: tenant.DisplayBotName(),
		}),
	}
}

// CreateDefault stores the default knowledge base of a freshly registered tenant.
func (s *KnowledgeService) CreateDefault(ctx context.Context, tenant *models.Tenant) (*models.KnowledgeBase, error) {
	kb := DefaultKnowledge(tenant)
	if err := s.repo.Create(ctx, kb); err != nil {
		return nil, fmt.Errorf("failed to create knowledge base: %w", err)
	}
	log.Info().Str("tenant_id", tenant.ID.String()).Str("type", string(tenant.BusinessType)).Msg("📚 Default knowledge base created")
	return kb, nil
}

func (s *KnowledgeService) Get(ctx context.Context, tenantID string) (*models.KnowledgeBase, error) {
	if !validID(tenantID) {
		return nil, ErrKnowledgeNotFound
	}
	kb, err := s.repo.GetByTenantID(ctx, tenantID)
	if err != nil {
		return nil, notFound(err, ErrKnowledgeNotFound)
	}
	return kb, nil
}

func (s *KnowledgeService) Update(ctx context.Context, tenantID string, req *UpdateKnowledgeRequest) (*models.KnowledgeBase, error) {
	return s.mutate(ctx, tenantID, func(kb *models.KnowledgeBase) error {
		if req.Business != nil {
			info := *req.Business
			if strings.TrimSpace(info.Name) == "" {
				return fmt.Errorf("%w: business name is required", ErrInvalidInput)
			}
			for _, h := range info.Hours {
				if !isWeekDay(h.Day) {
					return fmt.Errorf("%w: unknown day %q", ErrInvalidInput, h.Day)
				}
			}
			kb.Business = datatypes.NewJSONType(info)
		}
		if req.AI != nil {
			kb.AI = datatypes.NewJSONType(*req.AI)
		}
		return nil
	})
}

// AddOffering appends an offering. The id defaults to a slug of the name.
func (s *KnowledgeService) AddOffering(ctx context.Context, tenantID string, offering models.Offering) (*models.KnowledgeBase, error) {
	if offering.ID == "" {
		offering.ID = slugify(offering.Name)
	}
	if err := validateOffering(&offering); err != nil {
		return nil, err
	}

	return s.mutate(ctx, tenantID, func(kb *models.KnowledgeBase) error {
		if _, exists := kb.FindOffering(offering.ID); exists {
			return fmt.Errorf("%w: offering %q", ErrDuplicateItem, offering.ID)
		}
		kb.Offerings = append(kb.Offerings, offering)
		return nil
	})
}

// UpdateOffering replaces an offering in place, keeping its list position.
func (s *KnowledgeService) UpdateOffering(ctx context.Context, tenantID, offeringID string, offering models.Offering) (*models.KnowledgeBase, error) {
	offering.ID = offeringID
	if err := validateOffering(&offering); err != nil {
		return nil, err
	}

	return s.mutate(ctx, tenantID, func(kb *models.KnowledgeBase) error {
		for i := range kb.Offerings {
			if kb.Offerings[i].ID == offeringID {
				kb.Offerings[i] = offering
				return nil
			}
		}
		return fmt.Errorf("%w: offering %q", ErrItemNotFound, offeringID)
	})
}

func (s *KnowledgeService) RemoveOffering(ctx context.Context, tenantID, offeringID string) (*models.KnowledgeBase, error) {
	return s.mutate(ctx, tenantID, func(kb *models.KnowledgeBase) error {
		for i := range kb.Offerings {
			if kb.Offerings[i].ID == offeringID {
				kb.Offerings = append(kb.Offerings[:i], kb.Offerings[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: offering %q", ErrItemNotFound, offeringID)
	})
}

func (s *KnowledgeService) AddFAQ(ctx context.Context, tenantID string, faq models.FAQ) (*models.KnowledgeBase, error) {
	if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrInvalidInput)
	}
	if faq.ID == "" {
		faq.ID = uuid.NewString()
	}

	return s.mutate(ctx, tenantID, func(kb *models.KnowledgeBase) error {
		for _, f := range kb.FAQs {
			if f.ID == faq.ID {
				return fmt.Errorf("%w: faq %q", ErrDuplicateItem, faq.ID)
			}
		}
		kb.FAQs = append(kb.FAQs, faq)
		return nil
	})
}

// RemoveFAQ deletes the FAQ at a 0-based index.
func (s *KnowledgeService) RemoveFAQ(ctx context.Context, tenantID string, index int) (*models.KnowledgeBase, error) {
	return s.mutate(ctx, tenantID, func(kb *models.KnowledgeBase) error {
		if index < 0 || index >= len(kb.FAQs) {
			return fmt.Errorf("%w: faq index %d", ErrItemNotFound, index)
		}
		kb.FAQs = append(kb.FAQs[:index], kb.FAQs[index+1:]...)
		return nil
	})
}

// SetLocations replaces the pickup locations.
func (s *KnowledgeService) SetLocations(ctx context.Context, tenantID string, locations []models.Location) (*models.KnowledgeBase, error) {
	seen := make(map[string]bool, len(locations))
	for _, loc := range locations {
		if loc.ID == "" || loc.Label.EN == "" {
			return nil, fmt.Errorf("%w: location id and english label are required", ErrInvalidInput)
		}
		if seen[loc.ID] {
			return nil, fmt.Errorf("%w: location %q", ErrDuplicateItem, loc.ID)
		}
		seen[loc.ID] = true
	}

	return s.mutate(ctx, tenantID, func(kb *models.KnowledgeBase) error {
		kb.Locations = append(datatypes.JSONSlice[models.Location]{}, locations...)
		return nil
	})
}

func (s *KnowledgeService) mutate(ctx context.Context, tenantID string, fn func(*models.KnowledgeBase) error) (*models.KnowledgeBase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kb, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := fn(kb); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, kb); err != nil {
		return nil, fmt.Errorf("failed to save knowledge base: %w", err)
	}
	return kb, nil
}

func validateOffering(o *models.Offering) error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("%w: offering name is required", ErrInvalidInput)
	}
	if o.ID == "" {
		return fmt.Errorf("%w: offering id is required", ErrInvalidInput)
	}
	if o.Group == "" {
		o.Group = models.GroupMain
	}
	if !o.Group.Valid() {
		return fmt.Errorf("%w: unknown group %q", ErrInvalidInput, o.Group)
	}
	if o.FixedPrice < 0 {
		return fmt.Errorf("%w: fixed price cannot be negative", ErrInvalidInput)
	}
	if o.FixedPrice == 0 {
		if err := o.Pricing.Validate(); err != nil {
			return fmt.Errorf("offering %q: %w", o.ID, err)
		}
	}
	for zone, t := range o.ZonePricing {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("offering %q zone %q: %w", o.ID, zone, err)
		}
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func isWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

var swahiliDays = map[string]string{
	"monday":    "Jumatatu",
	"tuesday":   "Jumanne",
	"wednesday": "Jumatano",
	"thursday":  "Alhamisi",
	"friday":    "Ijumaa",
	"saturday":  "Jumamosi",
	"sunday":    "Jumapili",
}

// DayName renders a stored weekday for customers.
func DayName(day string, l lang.Language) string {
	if l == lang.Swahili {
		if sw, ok := swahiliDays[day]; ok {
			return sw
		}
	}
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + day[1:]
}

// KnowledgeContext renders the knowledge base as the business block of an
// AI system prompt. section names the offering list (tours, rooms, menu...).
func KnowledgeContext(kb *models.KnowledgeBase, section string, l lang.Language) string {
	if kb == nil {
		return ""
	}

	var b strings.Builder
	info := kb.Info()
	currency := kb.Currency()

	b.WriteString("📋 BUSINESS INFORMATION:\n")
	writeField(&b, "Name", info.Name)
	writeField(&b, "Tagline", info.Tagline)
	writeField(&b, "Description", info.Description)
	writeField(&b, "Location", info.Location)
	writeField(&b, "Phone", info.Phone)
	writeField(&b, "Email", info.Email)
	writeField(&b, "Website", info.Website)
	writeField(&b, "Currency", currency)
	if len(info.Languages) > 0 {
		writeField(&b, "Languages", strings.Join(info.Languages, ", "))
	}

	if len(info.Hours) > 0 {
		b.WriteString("\n🕐 OPERATING HOURS:\n")
		for _, h := range info.Hours {
			if h.Closed {
				fmt.Fprintf(&b, "- %s: %s\n", DayName(h.Day, l), lang.Pick(l, "CLOSED", "IMEFUNGWA"))
				continue
			}
			fmt.Fprintf(&b, "- %s: %s - %s\n", DayName(h.Day, l), h.Open, h.Close)
		}
	}

	if len(kb.Offerings) > 0 {
		if section == "" {
			section = "offerings"
		}
		fmt.Fprintf(&b, "\n🛍️ %s:\n", strings.ToUpper(section))
		for _, o := range kb.Offerings {
			min, max := o.PriceBounds("")
			fmt.Fprintf(&b, "- %s: %s per person", o.Name, utils.FormatMoneyRange(currency, min, max))
			if o.Duration != "" {
				fmt.Fprintf(&b, " (%s)", o.Duration)
			}
			b.WriteString("\n")
			if o.Description != "" {
				fmt.Fprintf(&b, "  %s\n", o.Description)
			}
			if o.FixedPrice == 0 && len(o.Pricing) > 1 {
				for _, tier := range o.Pricing {
					fmt.Fprintf(&b, "  • %s pax: %s\n", tier.Bucket, utils.FormatMoney(currency, tier.Price))
				}
			}
		}
	}

	if len(info.Inclusions) > 0 {
		b.WriteString("\n✅ INCLUSIONS:\n")
		for _, item := range info.Inclusions {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	if len(info.Exclusions) > 0 {
		b.WriteString("\n❌ EXCLUSIONS:\n")
		for _, item := range info.Exclusions {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	if len(kb.FAQs) > 0 {
		b.WriteString("\n❓ FAQs:\n")
		for _, f := range kb.FAQs {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", f.Question, f.Answer)
		}
	}

	if len(kb.Locations) > 0 {
		b.WriteString("\n📍 PICKUP LOCATIONS:\n")
		for _, loc := range kb.Locations {
			fmt.Fprintf(&b, "- %s\n", loc.Label.In(l))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}
