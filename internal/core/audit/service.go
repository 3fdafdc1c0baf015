package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	writeTimeout = 5 * time.Second
)

// Store persists audit entries
type Store interface {
	Save(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter) ([]Entry, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Save(ctx context.Context, e *Entry) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *gormStore) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := s.db.WithContext(ctx).Model(&Entry{}).Order("created_at DESC").Limit(f.Limit)
	if f.TenantID != "" {
		query = query.Where("tenant_id = ?", f.TenantID)
	}
	if f.Actor != "" {
		query = query.Where("actor = ?", f.Actor)
	}
	if f.Since != nil {
		query = query.Where("created_at >= ?", *f.Since)
	}

	var entries []Entry
	err := query.Find(&entries).Error
	return entries, err
}

// Service provides audit logging functionality
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Save stores e, stamping the creation time when unset
func (s *Service) Save(ctx context.Context, e *Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if err := s.store.Save(ctx, e); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// Record saves e in the background. Failures are logged only.
func (s *Service) Record(e *Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.Save(ctx, e); err != nil {
			log.Error().Err(err).Str("route", e.Route).Str("actor", e.Actor).Msg("❌ Failed to write audit log")
		}
	}()
}

// List returns the newest entries first
func (s *Service) List(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	entries, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}
	return entries, nil
}
