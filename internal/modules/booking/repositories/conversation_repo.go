package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

type ConversationRepo interface {
	Create(ctx context.Context, conv *models.Conversation) error
	ListByCustomer(ctx context.Context, tenantID, customerPhone string, limit int) ([]models.Conversation, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, conv *models.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *conversationRepo) ListByCustomer(ctx context.Context, tenantID, customerPhone string, limit int) ([]models.Conversation, error) {
	var convs []models.Conversation
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_phone = ?", tenantID, customerPhone).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&convs).Error
	return convs, err
}
