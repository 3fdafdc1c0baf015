package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

type TenantRepo interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	GetByWhatsAppNumber(ctx context.Context, number string) (*models.Tenant, error)
	List(ctx context.Context, activeOnly bool) ([]models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	SetActive(ctx context.Context, id string, active bool) error
	MarkConnected(ctx context.Context, id, number, deviceJID string, at time.Time) error
	IncrementCounter(ctx context.Context, id, column string) error
	Delete(ctx context.Context, id string) error
}

type tenantRepo struct {
	db *gorm.DB
}

func NewTenantRepo(db *gorm.DB) TenantRepo {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) GetByWhatsAppNumber(ctx context.Context, number string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Where("whatsapp_number = ?", number).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) List(ctx context.Context, activeOnly bool) ([]models.Tenant, error) {
	var tenants []models.Tenant
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

func (r *tenantRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *tenantRepo) MarkConnected(ctx context.Context, id, number, deviceJID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"whatsapp_number":   number,
			"device_jid":        deviceJID,
			"last_connected_at": at,
		}).Error
}

// IncrementCounter bumps total_messages or total_bookings in place.
func (r *tenantRepo) IncrementCounter(ctx context.Context, id, column string) error {
	return r.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

func (r *tenantRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Tenant{}, "id = ?", id).Error
}
