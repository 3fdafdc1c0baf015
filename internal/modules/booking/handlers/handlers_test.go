package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/audit"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/auth"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/export"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/pricing"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/whatsapp"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
)

type fakeTenants struct {
	mu           sync.Mutex
	tenants      map[string]*models.Tenant
	disconnected []string
}

func (f *fakeTenants) Register(_ context.Context, req *services.RegisterRequest) (*models.Tenant, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company name is required", services.ErrInvalidInput)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &models.Tenant{ID: uuid.New(), CompanyName: req.CompanyName, BusinessType: catalog.Parse(req.BusinessType), IsActive: true}
	f.tenants[t.ID.String()] = t
	return t, nil
}

func (f *fakeTenants) Get(_ context.Context, id string) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tenants[id]
	if !ok {
		return nil, services.ErrTenantNotFound
	}
	return t, nil
}

func (f *fakeTenants) List(_ context.Context, activeOnly bool) ([]models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Tenant
	for _, t := range f.tenants {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTenants) Update(ctx context.Context, id string, req *services.UpdateTenantRequest) (*models.Tenant, error) {
	t, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CompanyName != nil {
		t.CompanyName = *req.CompanyName
	}
	return t, nil
}

func (f *fakeTenants) setActive(ctx context.Context, id string, active bool) error {
	t, err := f.Get(ctx, id)
	if err != nil {
		return err
	}
	t.IsActive = active
	return nil
}

func (f *fakeTenants) Deactivate(ctx context.Context, id string) error {
	return f.setActive(ctx, id, false)
}

func (f *fakeTenants) Activate(ctx context.Context, id string) error {
	return f.setActive(ctx, id, true)
}

func (f *fakeTenants) Delete(ctx context.Context, id string) error {
	t, err := f.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.IsActive {
		return services.ErrTenantActive
	}
	f.mu.Lock()
	delete(f.tenants, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeTenants) Stats(ctx context.Context, id string) (*services.TenantStats, error) {
	t, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &services.TenantStats{CompanyName: t.CompanyName, IsActive: t.IsActive, TotalMessages: t.TotalMessages}, nil
}

func (f *fakeTenants) MarkDisconnected(_ context.Context, id string) error {
	f.mu.Lock()
	f.disconnected = append(f.disconnected, id)
	f.mu.Unlock()
	return nil
}

type fakeKnowledge struct {
	mu  sync.Mutex
	kbs map[string]*models.KnowledgeBase
}

func (f *fakeKnowledge) Get(_ context.Context, tenantID string) (*models.KnowledgeBase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kb, ok := f.kbs[tenantID]
	if !ok {
		return nil, services.ErrKnowledgeNotFound
	}
	return kb, nil
}

func (f *fakeKnowledge) Update(ctx context.Context, tenantID string, _ *services.UpdateKnowledgeRequest) (*models.KnowledgeBase, error) {
	return f.Get(ctx, tenantID)
}

func (f *fakeKnowledge) AddOffering(ctx context.Context, tenantID string, offering models.Offering) (*models.KnowledgeBase, error) {
	kb, err := f.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if _, ok := kb.FindOffering(offering.ID); ok {
		return nil, fmt.Errorf("%w: offering %s", services.ErrDuplicateItem, offering.ID)
	}
	if offering.FixedPrice == 0 {
		if err := offering.Pricing.Validate(); err != nil {
			return nil, err
		}
	}
	kb.Offerings = append(kb.Offerings, offering)
	return kb, nil
}

func (f *fakeKnowledge) UpdateOffering(ctx context.Context, tenantID, offeringID string, _ models.Offering) (*models.KnowledgeBase, error) {
	kb, err := f.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if _, ok := kb.FindOffering(offeringID); !ok {
		return nil, services.ErrItemNotFound
	}
	return kb, nil
}

func (f *fakeKnowledge) RemoveOffering(ctx context.Context, tenantID, offeringID string) (*models.KnowledgeBase, error) {
	return f.UpdateOffering(ctx, tenantID, offeringID, models.Offering{})
}

func (f *fakeKnowledge) AddFAQ(ctx context.Context, tenantID string, faq models.FAQ) (*models.KnowledgeBase, error) {
	kb, err := f.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	kb.FAQs = append(kb.FAQs, faq)
	return kb, nil
}

func (f *fakeKnowledge) RemoveFAQ(ctx context.Context, tenantID string, index int) (*models.KnowledgeBase, error) {
	kb, err := f.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(kb.FAQs) {
		return nil, services.ErrItemNotFound
	}
	kb.FAQs = append(kb.FAQs[:index], kb.FAQs[index+1:]...)
	return kb, nil
}

func (f *fakeKnowledge) SetLocations(ctx context.Context, tenantID string, locations []models.Location) (*models.KnowledgeBase, error) {
	kb, err := f.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	kb.Locations = locations
	return kb, nil
}

type fakeOrders struct {
	orders     map[string]*models.Order
	lastFilter repositories.OrderFilter
}

func (f *fakeOrders) Get(_ context.Context, number string) (*models.Order, error) {
	o, ok := f.orders[number]
	if !ok {
		return nil, services.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrders) List(_ context.Context, filter repositories.OrderFilter) ([]models.Order, error) {
	f.lastFilter = filter
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", services.ErrInvalidInput, filter.Status)
	}
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, number string, next models.OrderStatus, reason string) (*models.Order, error) {
	o, err := f.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", services.ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	o.CancelReason = reason
	return o, nil
}

func (f *fakeOrders) Stats(_ context.Context, tenantID string) (*services.OrderStats, error) {
	return &services.OrderStats{Total: int64(len(f.orders))}, nil
}

type fakeWhatsApp struct {
	qrErr   error
	stopped []string
}

func (f *fakeWhatsApp) GetProviderName() string { return "fake" }

func (f *fakeWhatsApp) PairingQR(_ context.Context, tenantID string) ([]byte, error) {
	if f.qrErr != nil {
		return nil, f.qrErr
	}
	return []byte("\x89PNG-" + tenantID), nil
}

func (f *fakeWhatsApp) IsConnected(string) bool { return true }

func (f *fakeWhatsApp) StopTenant(tenantID string) {
	f.stopped = append(f.stopped, tenantID)
}

type fakeExporter struct {
	lastTenant string
	lastFilter repositories.OrderFilter
}

func (f *fakeExporter) ExportOrders(_ context.Context, tenantID string, filter repositories.OrderFilter, format export.Format) (*export.File, error) {
	f.lastTenant = tenantID
	f.lastFilter = filter
	if format != export.FormatCSV {
		return nil, fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, format)
	}
	return &export.File{Name: "zanzibar-tours-bookings.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("Booking\nZT-ABC\n")}, nil
}

type fakeAuditLog struct {
	lastFilter audit.Filter
}

func (f *fakeAuditLog) List(_ context.Context, filter audit.Filter) ([]audit.Entry, error) {
	f.lastFilter = filter
	return []audit.Entry{{Actor: "ops", Method: http.MethodPost, Route: "/tenants/:id/deactivate", TenantID: filter.TenantID}}, nil
}

type memRecorder struct {
	entries []*audit.Entry
}

func (r *memRecorder) Record(e *audit.Entry) {
	r.entries = append(r.entries, e)
}

type testAPI struct {
	app       *fiber.App
	tenants   *fakeTenants
	knowledge *fakeKnowledge
	orders    *fakeOrders
	exporter  *fakeExporter
	auditLog  *fakeAuditLog
	recorder  *memRecorder
	whatsapp  *fakeWhatsApp
	tenantID  string
	token     string
}

func newTestAPI(t *testing.T) *testAPI {
	return newTestAPIWithAuth(t, nil)
}

func newTestAPIWithAuth(t *testing.T, jwtService *auth.JWTService) *testAPI {
	t.Helper()
	api := &testAPI{
		tenants:   &fakeTenants{tenants: map[string]*models.Tenant{}},
		knowledge: &fakeKnowledge{kbs: map[string]*models.KnowledgeBase{}},
		orders:    &fakeOrders{orders: map[string]*models.Order{}},
		exporter:  &fakeExporter{},
		auditLog:  &fakeAuditLog{},
		recorder:  &memRecorder{},
		whatsapp:  &fakeWhatsApp{},
	}

	tenant, err := api.tenants.Register(context.Background(), &services.RegisterRequest{CompanyName: "Zanzibar Tours", BusinessType: "tourism"})
	require.NoError(t, err)
	api.tenantID = tenant.ID.String()
	api.knowledge.kbs[api.tenantID] = &models.KnowledgeBase{
		TenantID:  tenant.ID,
		Offerings: []models.Offering{{ID: "spice-farm", Name: "Spice Farm", FixedPrice: 35}},
		FAQs:      []models.FAQ{{ID: "q1", Question: "Lunch?", Answer: "Included"}},
	}
	api.orders.orders["ZT-ABC"] = &models.Order{OrderNumber: "ZT-ABC", TenantID: tenant.ID, Status: models.StatusPending}

	api.app = fiber.New()
	SetupRoutes(api.app, Handlers{
		Health:    NewHealthHandler(api.whatsapp, "gemini"),
		Tenants:   NewTenantHandler(api.tenants),
		Knowledge: NewKnowledgeHandler(api.knowledge),
		Orders:    NewOrderHandler(api.orders, api.exporter),
		WhatsApp:  NewWhatsAppHandler(api.whatsapp, api.tenants),
		Audit:     NewAuditHandler(api.auditLog),
		Auth:      jwtService,
		Recorder:  api.recorder,
	})
	return api
}

func (api *testAPI) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealthAndCategories(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "fake", body["provider"])

	resp, raw = api.do(t, http.MethodGet, "/categories?lang=sw", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var opts []catalog.Option
	require.NoError(t, json.Unmarshal(raw, &opts))
	require.NotEmpty(t, opts)
	assert.Equal(t, catalog.Tourism, opts[0].Value)
	assert.Equal(t, "🌴 Utalii na Safari", opts[0].Label)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "go_goroutines")
}

func TestTenantLifecycle(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodPost, "/tenants", `{"company_name":"Pemba Dive","business_type":"tourism"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode(t, raw)["id"].(string)

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+id, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = api.do(t, http.MethodPut, "/tenants/"+id, `{"company_name":"Pemba Divers"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pemba Divers", decode(t, raw)["company_name"])

	resp, raw = api.do(t, http.MethodDelete, "/tenants/"+id, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, decode(t, raw)["error"], "deactivate it first")

	resp, _ = api.do(t, http.MethodPost, "/tenants/"+id+"/deactivate", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = api.do(t, http.MethodGet, "/tenants?active=true", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var active []models.Tenant
	require.NoError(t, json.Unmarshal(raw, &active))
	assert.Len(t, active, 1)

	resp, _ = api.do(t, http.MethodDelete, "/tenants/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTenantBadRequests(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodPost, "/tenants", `{"company_name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := api.do(t, http.MethodPost, "/tenants", `{"company_name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, raw)["error"], "company name is required")

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+api.tenantID+"/stats", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestKnowledgeRoutes(t *testing.T) {
	api := newTestAPI(t)
	base := "/tenants/" + api.tenantID + "/knowledge"

	resp, _ := api.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, base+"/offerings", `{"id":"spice-farm","name":"Spice Farm","fixed_price":40}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, base+"/offerings", `{"id":"dolphins","name":"Dolphins","pricing":{"1":60}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, base+"/offerings", `{"id":"dolphins","name":"Dolphins","pricing":{"1":60,"2+":50}}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = api.do(t, http.MethodDelete, base+"/offerings/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = api.do(t, http.MethodDelete, base+"/faqs/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodDelete, base+"/faqs/0", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := api.do(t, http.MethodPut, base+"/locations", `[{"id":"nungwi","zone":"north","label":{"en":"Nungwi","sw":"Nungwi"}}]`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "north")

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+uuid.NewString()+"/knowledge", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderRoutes(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodGet, "/tenants/"+api.tenantID+"/orders?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+api.tenantID+"/orders?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+api.tenantID+"/orders?limit=9000&customer=255711000111", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, maxListLimit, api.orders.lastFilter.Limit)
	assert.Equal(t, "255711000111", api.orders.lastFilter.CustomerPhone)

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+api.tenantID+"/orders/stats", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/orders/ZT-NOPE", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPatch, "/orders/ZT-ABC/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := api.do(t, http.MethodPatch, "/orders/ZT-ABC/status", `{"status":"cancelled","reason":"weather"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancelled", decode(t, raw)["status"])

	resp, _ = api.do(t, http.MethodPatch, "/orders/ZT-ABC/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestWhatsAppRoutes(t *testing.T) {
	api := newTestAPI(t)
	base := "/tenants/" + api.tenantID + "/whatsapp"

	resp, raw := api.do(t, http.MethodGet, base+"/qr", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "\x89PNG-"+api.tenantID, string(raw))

	resp, _ = api.do(t, http.MethodGet, "/tenants/"+uuid.NewString()+"/whatsapp/qr", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	api.whatsapp.qrErr = whatsapp.ErrQRTimeout
	resp, _ = api.do(t, http.MethodGet, base+"/qr", "")
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)

	resp, raw = api.do(t, http.MethodGet, base+"/status", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode(t, raw)
	assert.Equal(t, true, status["connected"])
	assert.Equal(t, false, status["paired"])

	resp, _ = api.do(t, http.MethodPost, base+"/disconnect", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{api.tenantID}, api.whatsapp.stopped)
	assert.Equal(t, []string{api.tenantID}, api.tenants.disconnected)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrTenantNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", services.ErrItemNotFound), http.StatusNotFound},
		{services.ErrDuplicateItem, http.StatusConflict},
		{whatsapp.ErrNotPaired, http.StatusConflict},
		{pricing.ErrNoCatchAll, http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorStatus(tt.err), tt.err.Error())
	}
}

func TestExportRoute(t *testing.T) {
	api := newTestAPI(t)
	base := "/tenants/" + api.tenantID + "/orders/export"

	resp, raw := api.do(t, http.MethodGet, base+"?status=pending", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="zanzibar-tours-bookings.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "Booking\nZT-ABC\n", string(raw))
	assert.Equal(t, api.tenantID, api.exporter.lastTenant)
	assert.Equal(t, models.StatusPending, api.exporter.lastFilter.Status)

	resp, _ = api.do(t, http.MethodGet, base+"?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, base+"?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuditRoutes(t *testing.T) {
	api := newTestAPI(t)
	base := "/tenants/" + api.tenantID

	resp, raw := api.do(t, http.MethodGet, base+"/audit?limit=9000&actor=ops&since=2026-06-01T00:00:00Z", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "/tenants/:id/deactivate")
	assert.Equal(t, api.tenantID, api.auditLog.lastFilter.TenantID)
	assert.Equal(t, "ops", api.auditLog.lastFilter.Actor)
	assert.Equal(t, maxListLimit, api.auditLog.lastFilter.Limit)
	require.NotNil(t, api.auditLog.lastFilter.Since)
	assert.Equal(t, time.June, api.auditLog.lastFilter.Since.Month())

	resp, _ = api.do(t, http.MethodGet, base+"/audit?since=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, base+"/audit?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// only mutations are recorded
	assert.Empty(t, api.recorder.entries)
	resp, _ = api.do(t, http.MethodPost, base+"/deactivate", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, api.recorder.entries, 1)
	entry := api.recorder.entries[0]
	assert.Equal(t, "anonymous", entry.Actor)
	assert.Equal(t, api.tenantID, entry.TenantID)
	assert.Equal(t, "/tenants/:id/deactivate", entry.Route)
	assert.Equal(t, http.StatusOK, entry.Status)
}

func TestRoutesWithAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	api := newTestAPIWithAuth(t, jwtService)

	operatorToken, _, err := jwtService.Issue("ops", auth.RoleOperator, "")
	require.NoError(t, err)
	ownerToken, _, err := jwtService.Issue("amani", auth.RoleTenantAdmin, api.tenantID)
	require.NoError(t, err)
	strangerToken, _, err := jwtService.Issue("juma", auth.RoleTenantAdmin, uuid.NewString())
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		method string
		path   string
		want   int
	}{
		{"public health", "", http.MethodGet, "/health", http.StatusOK},
		{"no token", "", http.MethodGet, "/tenants/" + api.tenantID, http.StatusUnauthorized},
		{"garbage token", "nope", http.MethodGet, "/tenants/" + api.tenantID, http.StatusUnauthorized},
		{"operator lists tenants", operatorToken, http.MethodGet, "/tenants", http.StatusOK},
		{"owner cannot list tenants", ownerToken, http.MethodGet, "/tenants", http.StatusForbidden},
		{"owner reads own tenant", ownerToken, http.MethodGet, "/tenants/" + api.tenantID, http.StatusOK},
		{"owner reads own knowledge", ownerToken, http.MethodGet, "/tenants/" + api.tenantID + "/knowledge", http.StatusOK},
		{"stranger is denied", strangerToken, http.MethodGet, "/tenants/" + api.tenantID, http.StatusForbidden},
		{"owner cannot deactivate", ownerToken, http.MethodPost, "/tenants/" + api.tenantID + "/deactivate", http.StatusForbidden},
		{"owner cannot read orders", ownerToken, http.MethodGet, "/orders/ZT-ABC", http.StatusForbidden},
		{"operator reads order", operatorToken, http.MethodGet, "/orders/ZT-ABC", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api.token = tt.token
			resp, _ := api.do(t, tt.method, tt.path, "")
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	// the denied deactivate is still on the trail, with the caller's name
	var denied *audit.Entry
	for _, e := range api.recorder.entries {
		if e.Route == "/tenants/:id/deactivate" {
			denied = e
		}
	}
	require.NotNil(t, denied)
	assert.Equal(t, "amani", denied.Actor)
	assert.Equal(t, http.StatusForbidden, denied.Status)
}
