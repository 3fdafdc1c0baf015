package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/notification"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
)

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[string]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[string]*models.Tenant)}
}

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	c := *t
	r.tenants[t.ID.String()] = &c
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *t
	return &c, nil
}

func (r *fakeTenantRepo) GetByWhatsAppNumber(_ context.Context, number string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.WhatsAppNumber == number {
			c := *t
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTenantRepo) List(_ context.Context, activeOnly bool) ([]models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Tenant
	for _, t := range r.tenants {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
	return out, nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.tenants[t.ID.String()] = &c
	return nil
}

func (r *fakeTenantRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tenants[id]; ok {
		t.IsActive = active
	}
	return nil
}

func (r *fakeTenantRepo) MarkConnected(_ context.Context, id, number, jid string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tenants[id]; ok {
		t.WhatsAppNumber = number
		t.DeviceJID = jid
		t.LastConnectedAt = &at
	}
	return nil
}

func (r *fakeTenantRepo) IncrementCounter(_ context.Context, id, column string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch column {
	case "total_messages":
		t.TotalMessages++
	case "total_bookings":
		t.TotalBookings++
	}
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tenants, id)
	return nil
}

type fakeKnowledgeRepo struct {
	mu  sync.Mutex
	kbs map[string]*models.KnowledgeBase
}

func newFakeKnowledgeRepo() *fakeKnowledgeRepo {
	return &fakeKnowledgeRepo{kbs: make(map[string]*models.KnowledgeBase)}
}

func (r *fakeKnowledgeRepo) GetByTenantID(_ context.Context, tenantID string) (*models.KnowledgeBase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kb, ok := r.kbs[tenantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *kb
	return &c, nil
}

func (r *fakeKnowledgeRepo) Create(_ context.Context, kb *models.KnowledgeBase) error {
	return r.Save(context.Background(), kb)
}

func (r *fakeKnowledgeRepo) Save(_ context.Context, kb *models.KnowledgeBase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *kb
	r.kbs[kb.TenantID.String()] = &c
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*models.Order
	now    func() time.Time
}

func newFakeOrderRepo(now func() time.Time) *fakeOrderRepo {
	return &fakeOrderRepo{now: now}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = r.now()
	}
	c := *o
	r.orders = append(r.orders, &c)
	return nil
}

func (r *fakeOrderRepo) GetByOrderNumber(_ context.Context, number string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == number {
			c := *o
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) List(_ context.Context, f repositories.OrderFilter) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if f.TenantID != "" && o.TenantID.String() != f.TenantID {
			continue
		}
		if f.CustomerPhone != "" && o.CustomerPhone != f.CustomerPhone {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, number string, fn func(*models.Order) error) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == number {
			c := *o
			if err := fn(&c); err != nil {
				return nil, err
			}
			*o = c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, tenantID string) (map[models.OrderStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[models.OrderStatus]int64)
	for _, o := range r.orders {
		if o.TenantID.String() == tenantID {
			out[o.Status]++
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CountCreatedBetween(_ context.Context, tenantID string, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if o.TenantID.String() == tenantID && !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) SumRevenue(_ context.Context, tenantID string, since *time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, o := range r.orders {
		if o.TenantID.String() != tenantID || o.Status != models.StatusCompleted {
			continue
		}
		if since != nil && o.CreatedAt.Before(*since) {
			continue
		}
		total += o.TotalPrice
	}
	return total, nil
}

type fakeConversationRepo struct {
	mu    sync.Mutex
	convs []models.Conversation
}

func (r *fakeConversationRepo) Create(_ context.Context, c *models.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.convs = append(r.convs, *c)
	return nil
}

func (r *fakeConversationRepo) ListByCustomer(_ context.Context, tenantID, phone string, limit int) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Conversation
	for _, c := range r.convs {
		if c.TenantID.String() == tenantID && c.CustomerPhone == phone {
			out = append(out, c)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e notification.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendMessage(_ context.Context, tenantID, to, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+"|"+message)
	return nil
}

type reaperFunc func(ctx context.Context, tenantID string) error

func (f reaperFunc) ReapTenant(ctx context.Context, tenantID string) error { return f(ctx, tenantID) }
