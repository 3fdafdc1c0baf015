package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

// TenantReaper drops live state held for a tenant: sessions, histories, device connections.
type TenantReaper interface {
	ReapTenant(ctx context.Context, tenantID string) error
}

type TenantService struct {
	repo      repositories.TenantRepo
	knowledge *KnowledgeService
	reapers   []TenantReaper
	now       func() time.Time
}

func NewTenantService(repo repositories.TenantRepo, knowledge *KnowledgeService) *TenantService {
	return &TenantService{
		repo:      repo,
		knowledge: knowledge,
		now:       time.Now,
	}
}

// AddReaper registers a component to clean up after Deactivate.
func (s *TenantService) AddReaper(r TenantReaper) {
	s.reapers = append(s.reapers, r)
}

// RegisterRequest represents the request to register a tenant
type RegisterRequest struct {
	CompanyName        string   `json:"company_name"`
	BusinessType       string   `json:"business_type"`
	AdminName          string   `json:"admin_name"`
	AdminPhone         string   `json:"admin_phone"`
	BotName            string   `json:"bot_name,omitempty"`
	Language           string   `json:"language,omitempty"`
	CustomGreeting     string   `json:"custom_greeting,omitempty"`
	CustomInstructions string   `json:"custom_instructions,omitempty"`
	OrderPrefix        string   `json:"order_prefix,omitempty"`
	Tags               []string `json:"tags,omitempty"`
}

// UpdateTenantRequest carries only the fields to change
type UpdateTenantRequest struct {
	CompanyName        *string  `json:"company_name,omitempty"`
	BusinessType       *string  `json:"business_type,omitempty"`
	AdminName          *string  `json:"admin_name,omitempty"`
	AdminPhone         *string  `json:"admin_phone,omitempty"`
	BotName            *string  `json:"bot_name,omitempty"`
	Language           *string  `json:"language,omitempty"`
	CustomGreeting     *string  `json:"custom_greeting,omitempty"`
	CustomInstructions *string  `json:"custom_instructions,omitempty"`
	OrderPrefix        *string  `json:"order_prefix,omitempty"`
	Tags               []string `json:"tags,omitempty"`
}

// TenantStats is the dashboard summary of one tenant
type TenantStats struct {
	CompanyName     string       `json:"company_name"`
	BusinessType    catalog.Type `json:"business_type"`
	IsActive        bool         `json:"is_active"`
	Connected       bool         `json:"connected"`
	WhatsAppNumber  string       `json:"whatsapp_number"`
	TotalMessages   int64        `json:"total_messages"`
	TotalBookings   int64        `json:"total_bookings"`
	CreatedAt       time.Time    `json:"created_at"`
	LastConnectedAt *time.Time   `json:"last_connected_at"`
}

// Register creates a tenant and its default knowledge base
func (s *TenantService) Register(ctx context.Context, req *RegisterRequest) (*models.Tenant, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}

	businessType := catalog.Parse(req.BusinessType)
	tenant := &models.Tenant{
		CompanyName:        strings.TrimSpace(req.CompanyName),
		BusinessType:       businessType,
		AdminName:          req.AdminName,
		AdminPhone:         utils.NormalizePhone(req.AdminPhone),
		BotName:            req.BotName,
		Language:           lang.Parse(req.Language),
		CustomGreeting:     req.CustomGreeting,
		CustomInstructions: req.CustomInstructions,
		OrderPrefix:        normalizePrefix(req.OrderPrefix),
		Tags:               pq.StringArray(req.Tags),
		IsActive:           true,
	}
	if tenant.BotName == "" {
		tenant.BotName = businessType.Category().DefaultBotName
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	if _, err := s.knowledge.CreateDefault(ctx, tenant); err != nil {
		return tenant, err
	}

	log.Info().
		Str("tenant_id", tenant.ID.String()).
		Str("company", tenant.CompanyName).
		Str("type", string(tenant.BusinessType)).
		Msg("✅ Tenant registered")
	return tenant, nil
}

func (s *TenantService) Get(ctx context.Context, id string) (*models.Tenant, error) {
	if !validID(id) {
		return nil, ErrTenantNotFound
	}
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTenantNotFound)
	}
	return tenant, nil
}

func (s *TenantService) GetByWhatsAppNumber(ctx context.Context, number string) (*models.Tenant, error) {
	tenant, err := s.repo.GetByWhatsAppNumber(ctx, utils.NormalizePhone(number))
	if err != nil {
		return nil, notFound(err, ErrTenantNotFound)
	}
	return tenant, nil
}

func (s *TenantService) List(ctx context.Context, activeOnly bool) ([]models.Tenant, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *TenantService) Update(ctx context.Context, id string, req *UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		if strings.TrimSpace(*req.CompanyName) == "" {
			return nil, fmt.Errorf("%w: company name cannot be empty", ErrInvalidInput)
		}
		tenant.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.BusinessType != nil {
		tenant.BusinessType = catalog.Parse(*req.BusinessType)
	}
	if req.AdminName != nil {
		tenant.AdminName = *req.AdminName
	}
	if req.AdminPhone != nil {
		tenant.AdminPhone = utils.NormalizePhone(*req.AdminPhone)
	}
	if req.BotName != nil {
		tenant.BotName = *req.BotName
	}
	if req.Language != nil {
		tenant.Language = lang.Parse(*req.Language)
	}
	if req.CustomGreeting != nil {
		tenant.CustomGreeting = *req.CustomGreeting
	}
	if req.CustomInstructions != nil {
		tenant.CustomInstructions = *req.CustomInstructions
	}
	if req.OrderPrefix != nil {
		tenant.OrderPrefix = normalizePrefix(*req.OrderPrefix)
	}
	if req.Tags != nil {
		tenant.Tags = pq.StringArray(req.Tags)
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return tenant, nil
}

// Deactivate stops the bot of a tenant and drops its live sessions.
// Records stay in place.
func (s *TenantService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate tenant: %w", err)
	}

	for _, r := range s.reapers {
		if err := r.ReapTenant(ctx, id); err != nil {
			log.Warn().Err(err).Str("tenant_id", id).Msg("⚠️ Failed to reap tenant state")
		}
	}

	log.Info().Str("tenant_id", id).Msg("🛑 Tenant deactivated")
	return nil
}

func (s *TenantService) Activate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("failed to activate tenant: %w", err)
	}
	log.Info().Str("tenant_id", id).Msg("✅ Tenant activated")
	return nil
}

// Delete soft-deletes an inactive tenant
func (s *TenantService) Delete(ctx context.Context, id string) error {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if tenant.IsActive {
		return ErrTenantActive
	}
	return s.repo.Delete(ctx, id)
}

// MarkConnected stores the device paired for a tenant
func (s *TenantService) MarkConnected(ctx context.Context, id, number, deviceJID string) error {
	err := s.repo.MarkConnected(ctx, id, utils.NormalizePhone(number), deviceJID, s.now())
	if err != nil {
		return fmt.Errorf("failed to mark tenant connected: %w", err)
	}
	log.Info().Str("tenant_id", id).Str("number", number).Msg("📱 WhatsApp device linked")
	return nil
}

// MarkDisconnected forgets the paired device
func (s *TenantService) MarkDisconnected(ctx context.Context, id string) error {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.MarkConnected(ctx, id, tenant.WhatsAppNumber, "", s.now())
}

func (s *TenantService) RecordMessage(ctx context.Context, id string) error {
	return s.repo.IncrementCounter(ctx, id, "total_messages")
}

func (s *TenantService) RecordBooking(ctx context.Context, id string) error {
	return s.repo.IncrementCounter(ctx, id, "total_bookings")
}

func (s *TenantService) Stats(ctx context.Context, id string) (*TenantStats, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TenantStats{
		CompanyName:     tenant.CompanyName,
		BusinessType:    tenant.BusinessType,
		IsActive:        tenant.IsActive,
		Connected:       tenant.IsConnected(),
		WhatsAppNumber:  tenant.WhatsAppNumber,
		TotalMessages:   tenant.TotalMessages,
		TotalBookings:   tenant.TotalBookings,
		CreatedAt:       tenant.CreatedAt,
		LastConnectedAt: tenant.LastConnectedAt,
	}, nil
}

func normalizePrefix(p string) string {
	p = strings.ToUpper(strings.TrimSpace(p))
	if p == "" {
		return "ORD"
	}
	return p
}
