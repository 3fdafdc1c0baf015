package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

type KnowledgeRepo interface {
	GetByTenantID(ctx context.Context, tenantID string) (*models.KnowledgeBase, error)
	Create(ctx context.Context, kb *models.KnowledgeBase) error
	Save(ctx context.Context, kb *models.KnowledgeBase) error
}

type knowledgeRepo struct {
	db *gorm.DB
}

func NewKnowledgeRepo(db *gorm.DB) KnowledgeRepo {
	return &knowledgeRepo{db: db}
}

func (r *knowledgeRepo) GetByTenantID(ctx context.Context, tenantID string) (*models.KnowledgeBase, error) {
	var kb models.KnowledgeBase
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&kb).Error
	if err != nil {
		return nil, err
	}
	return &kb, nil
}

func (r *knowledgeRepo) Create(ctx context.Context, kb *models.KnowledgeBase) error {
	return r.db.WithContext(ctx).Create(kb).Error
}

func (r *knowledgeRepo) Save(ctx context.Context, kb *models.KnowledgeBase) error {
	return r.db.WithContext(ctx).Save(kb).Error
}
