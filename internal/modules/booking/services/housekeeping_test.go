package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/scheduler"
)

type countingSweeper struct {
	calls  int
	maxAge time.Duration
	err    error
}

func (s *countingSweeper) SweepIdle(_ context.Context, maxAge time.Duration) (int, error) {
	s.calls++
	s.maxAge = maxAge
	return 0, s.err
}

func TestHousekeepingRegistersJobs(t *testing.T) {
	tenants, _, _ := newTenantService()
	orders, _, _ := newOrderService(t)
	h := NewHousekeeping(&countingSweeper{}, tenants, orders, 30*time.Minute)

	s := scheduler.New(time.UTC)
	require.NoError(t, h.Register(s, "0 */5 * * * *"))
	assert.Equal(t, []string{JobLedgerSummary, JobSessionSweep}, s.Jobs())

	assert.Error(t, h.Register(scheduler.New(time.UTC), "sometimes"))
}

func TestHousekeepingSweepUsesTTL(t *testing.T) {
	tenants, _, _ := newTenantService()
	orders, _, _ := newOrderService(t)
	sweeper := &countingSweeper{}
	h := NewHousekeeping(sweeper, tenants, orders, 45*time.Minute)

	h.SweepSessions(context.Background())
	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, 45*time.Minute, sweeper.maxAge)

	sweeper.err = errors.New("redis down")
	h.SweepSessions(context.Background())
	assert.Equal(t, 2, sweeper.calls)
}

func TestLedgerSummaryCoversActiveTenants(t *testing.T) {
	tenants, _, _ := newTenantService()
	orders, _, _ := newOrderService(t)
	ctx := context.Background()

	a, err := tenants.Register(ctx, &RegisterRequest{CompanyName: "Zanzibar Tours", BusinessType: "tourism"})
	require.NoError(t, err)
	_, err = tenants.Register(ctx, &RegisterRequest{CompanyName: "Pemba Dive", BusinessType: "tourism"})
	require.NoError(t, err)

	_, err = orders.Create(ctx, a, draftOrder())
	require.NoError(t, err)

	h := NewHousekeeping(&countingSweeper{}, tenants, orders, time.Hour)
	assert.Equal(t, 2, h.LedgerSummary(ctx))

	require.NoError(t, tenants.Deactivate(ctx, a.ID.String()))
	assert.Equal(t, 1, h.LedgerSummary(ctx))
}
