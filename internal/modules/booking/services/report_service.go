package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/export"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
)

var ledgerHeaders = []string{
	"Booking", "Created", "Customer", "Offering", "Date", "People",
	"Unit price", "Total", "Currency", "Pickup", "Status",
}

// ReportService renders a tenant's ledger as a downloadable file
type ReportService struct {
	tenants  *TenantService
	orders   *OrderService
	exporter *export.Service
	loc      *time.Location
	now      func() time.Time
}

func NewReportService(tenants *TenantService, orders *OrderService, exporter *export.Service, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{tenants: tenants, orders: orders, exporter: exporter, loc: loc, now: time.Now}
}

// ExportOrders renders the bookings matching filter. filter.TenantID is set from tenantID.
func (s *ReportService) ExportOrders(ctx context.Context, tenantID string, filter repositories.OrderFilter, format export.Format) (*export.File, error) {
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	filter.TenantID = tenantID
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	table := &export.Table{
		Title:       tenant.CompanyName + " bookings",
		Description: fmt.Sprintf("%d bookings", len(orders)),
		CreatedAt:   now,
		Headers:     ledgerHeaders,
		Rows:        make([][]interface{}, 0, len(orders)),
		Style:       export.DefaultStyle(),
	}
	if filter.Status != "" {
		table.Description += fmt.Sprintf(" with status %s", filter.Status)
	}
	table.Style.Landscape = true
	table.Style.ColumnWidths[0] = 22
	table.Style.ColumnWidths[3] = 28

	for _, o := range orders {
		table.Rows = append(table.Rows, []interface{}{
			o.OrderNumber,
			o.CreatedAt.In(s.loc).Format("2006-01-02 15:04"),
			o.CustomerPhone,
			o.OfferingName,
			o.Date,
			o.PartySize,
			o.UnitPrice,
			o.TotalPrice,
			o.Currency,
			o.Pickup,
			string(o.Status),
		})
	}

	name := fmt.Sprintf("%s bookings %s", tenant.CompanyName, now.Format("2006-01-02"))
	file, err := s.exporter.Export(table, format, name)
	if err != nil {
		return nil, err
	}

	log.Info().Str("tenant_id", tenantID).Str("format", string(format)).Int("orders", len(orders)).Msg("📤 Ledger exported")
	return file, nil
}
