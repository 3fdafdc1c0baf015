package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Channel represents a notification channel
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelQueue    Channel = "queue"
)

// AdminContact represents admin contact information
type AdminContact struct {
	Phone string
	Name  string
}

// WhatsAppSender sends a text through the WhatsApp device of a tenant
type WhatsAppSender interface {
	SendMessage(ctx context.Context, tenantID, to, message string) error
}

// Service delivers admin alerts over WhatsApp and mirrors events to the queue
type Service struct {
	whatsapp        WhatsAppSender
	publisher       Publisher
	superAdminPhone string // SaaS owner, optional
}

// NewService creates a new notification service. publisher may be nil.
func NewService(whatsapp WhatsAppSender, publisher Publisher, superAdminPhone string) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Service{
		whatsapp:        whatsapp,
		publisher:       publisher,
		superAdminPhone: superAdminPhone,
	}
}

// SendToTenantAdmin sends message to the tenant admin through the tenant's own device
func (s *Service) SendToTenantAdmin(ctx context.Context, tenantID string, admin *AdminContact, message string) error {
	if admin == nil || admin.Phone == "" {
		return fmt.Errorf("tenant %s has no admin phone", tenantID)
	}

	var errs []error
	if err := s.whatsapp.SendMessage(ctx, tenantID, admin.Phone, message); err != nil {
		log.Error().Err(err).Str("tenant_id", tenantID).Str("admin", admin.Phone).Msg("❌ Failed to send WhatsApp to tenant admin")
		errs = append(errs, err)
	} else {
		log.Info().Str("tenant_id", tenantID).Str("admin", admin.Phone).Msg("✅ WhatsApp notification sent to tenant admin")
	}

	if s.superAdminPhone != "" {
		s.sendToSuperAdmin(ctx, tenantID, admin, message)
	}

	return errors.Join(errs...)
}

// sendToSuperAdmin sends a monitoring copy to the SaaS owner
func (s *Service) sendToSuperAdmin(ctx context.Context, tenantID string, tenantAdmin *AdminContact, message string) {
	superAdminMessage := fmt.Sprintf(
		"🏢 *Tenant Admin:* %s (%s)\n\n%s",
		tenantAdmin.Name,
		tenantAdmin.Phone,
		message,
	)

	if err := s.whatsapp.SendMessage(ctx, tenantID, s.superAdminPhone, superAdminMessage); err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to send WhatsApp to super admin")
		return
	}
	log.Debug().Str("super_admin", s.superAdminPhone).Msg("📨 WhatsApp notification sent to super admin")
}

// Publish forwards an event to the queue. Failures are logged and returned.
func (s *Service) Publish(ctx context.Context, event Event) error {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("event", event.Type).Str("order", event.OrderNumber).Msg("❌ Failed to publish event")
		return err
	}
	return nil
}
