package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

// ConversationService appends handled turns to the conversation log
type ConversationService struct {
	repo repositories.ConversationRepo
}

func NewConversationService(repo repositories.ConversationRepo) *ConversationService {
	return &ConversationService{repo: repo}
}

// Turn is one handled message as seen by the router
type Turn struct {
	TenantID      string
	CustomerPhone string
	StateBefore   string
	Message       string
	Reply         string
	Source        string
	Metadata      map[string]interface{}
}

// Log writes the turn in the background. Failures only reach the logs.
func (s *ConversationService) Log(turn Turn) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Save(ctx, turn); err != nil {
			log.Warn().Err(err).Str("tenant_id", turn.TenantID).Msg("⚠️ Failed to log conversation")
		}
	}()
}

func (s *ConversationService) Save(ctx context.Context, turn Turn) error {
	tenantID, err := uuid.Parse(turn.TenantID)
	if err != nil {
		return ErrTenantNotFound
	}
	return s.repo.Create(ctx, &models.Conversation{
		TenantID:      tenantID,
		CustomerPhone: utils.NormalizePhone(turn.CustomerPhone),
		StateBefore:   turn.StateBefore,
		MessageText:   turn.Message,
		Reply:         turn.Reply,
		Source:        turn.Source,
		Metadata:      turn.Metadata,
	})
}

func (s *ConversationService) History(ctx context.Context, tenantID, customerPhone string, limit int) ([]models.Conversation, error) {
	if !validID(tenantID) {
		return nil, ErrTenantNotFound
	}
	return s.repo.ListByCustomer(ctx, tenantID, utils.NormalizePhone(customerPhone), limit)
}
