package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/export"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/repositories"
)

func TestExportOrdersCSV(t *testing.T) {
	tenants, _, _ := newTenantService()
	orders, _, _ := newOrderService(t)
	ctx := context.Background()

	tenant, err := tenants.Register(ctx, &RegisterRequest{CompanyName: "Zanzibar Tours", BusinessType: "tourism"})
	require.NoError(t, err)

	kept, err := orders.Create(ctx, tenant, draftOrder())
	require.NoError(t, err)
	dropped, err := orders.Create(ctx, tenant, draftOrder())
	require.NoError(t, err)
	_, err = orders.UpdateStatus(ctx, dropped.OrderNumber, models.StatusCancelled, "weather")
	require.NoError(t, err)

	reports := NewReportService(tenants, orders, export.NewService(), time.UTC)
	reports.now = func() time.Time { return ledgerNow }

	file, err := reports.ExportOrders(ctx, tenant.ID.String(), repositories.OrderFilter{Status: models.StatusPending}, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "zanzibar-tours-bookings-2026-06-17.csv", file.Name)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(ledgerHeaders, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], kept.OrderNumber+",2026-06-17 10:00,"))
	assert.Contains(t, lines[1], ",Safari Blue,25/12/2026,4,60,240,USD,Stone Town,pending")
}

func TestExportOrdersErrors(t *testing.T) {
	tenants, _, _ := newTenantService()
	orders, _, _ := newOrderService(t)
	ctx := context.Background()
	reports := NewReportService(tenants, orders, export.NewService(), nil)

	_, err := reports.ExportOrders(ctx, uuid.NewString(), repositories.OrderFilter{}, export.FormatCSV)
	assert.ErrorIs(t, err, ErrTenantNotFound)

	tenant, err := tenants.Register(ctx, &RegisterRequest{CompanyName: "Pemba Dive"})
	require.NoError(t, err)

	_, err = reports.ExportOrders(ctx, tenant.ID.String(), repositories.OrderFilter{Status: "lost"}, export.FormatCSV)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = reports.ExportOrders(ctx, tenant.ID.String(), repositories.OrderFilter{}, export.Format("docx"))
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}
