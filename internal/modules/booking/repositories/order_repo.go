package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

// OrderFilter narrows List. Empty fields are ignored.
type OrderFilter struct {
	TenantID      string
	CustomerPhone string
	Status        models.OrderStatus
	Limit         int
}

type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	// UpdateStatus loads the order under a row lock and saves whatever fn leaves in it.
	UpdateStatus(ctx context.Context, orderNumber string, fn func(*models.Order) error) (*models.Order, error)
	CountByStatus(ctx context.Context, tenantID string) (map[models.OrderStatus]int64, error)
	CountCreatedBetween(ctx context.Context, tenantID string, start, end time.Time) (int64, error)
	SumRevenue(ctx context.Context, tenantID string, since *time.Time) (int64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.TenantID != "" {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.CustomerPhone != "" {
		query = query.Where("customer_phone = ?", filter.CustomerPhone)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	err := query.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderNumber string, fn func(*models.Order) error) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_number = ?", orderNumber).
			First(&order).Error; err != nil {
			return err
		}
		if err := fn(&order); err != nil {
			return err
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) CountByStatus(ctx context.Context, tenantID string) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *orderRepo) CountCreatedBetween(ctx context.Context, tenantID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("tenant_id = ? AND created_at BETWEEN ? AND ?", tenantID, start, end).
		Count(&count).Error
	return count, err
}

// SumRevenue adds up completed orders, optionally only those created since a point in time.
func (r *orderRepo) SumRevenue(ctx context.Context, tenantID string, since *time.Time) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("tenant_id = ? AND status = ?", tenantID, models.StatusCompleted)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Scan(&total).Error
	return total, err
}
