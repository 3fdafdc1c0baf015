package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

const (
	JobSessionSweep  = "session-sweep"
	JobLedgerSummary = "ledger-summary"

	ledgerSummarySchedule = "0 0 20 * * *"
)

// IdleSweeper drops conversations idle for longer than maxAge.
type IdleSweeper interface {
	SweepIdle(ctx context.Context, maxAge time.Duration) (int, error)
}

// Housekeeping holds the scheduled maintenance jobs.
type Housekeeping struct {
	sweeper    IdleSweeper
	tenants    *TenantService
	orders     *OrderService
	sessionTTL time.Duration
	timeout    time.Duration
}

func NewHousekeeping(sweeper IdleSweeper, tenants *TenantService, orders *OrderService, sessionTTL time.Duration) *Housekeeping {
	return &Housekeeping{
		sweeper:    sweeper,
		tenants:    tenants,
		orders:     orders,
		sessionTTL: sessionTTL,
		timeout:    time.Minute,
	}
}

// Register adds the session sweep and the daily ledger summary.
func (h *Housekeeping) Register(s *scheduler.Scheduler, sweepSchedule string) error {
	if err := s.AddJob(JobSessionSweep, sweepSchedule, func() { h.SweepSessions(context.Background()) }); err != nil {
		return err
	}
	return s.AddJob(JobLedgerSummary, ledgerSummarySchedule, func() { h.LedgerSummary(context.Background()) })
}

func (h *Housekeeping) SweepSessions(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if _, err := h.sweeper.SweepIdle(ctx, h.sessionTTL); err != nil {
		log.Error().Err(err).Msg("❌ Session sweep failed")
	}
}

// LedgerSummary logs the day's booking stats of every active tenant.
func (h *Housekeeping) LedgerSummary(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	tenants, err := h.tenants.List(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("❌ Ledger summary: failed to list tenants")
		return 0
	}

	reported := 0
	for _, t := range tenants {
		stats, err := h.orders.Stats(ctx, t.ID.String())
		if err != nil {
			log.Warn().Err(err).Str("tenant_id", t.ID.String()).Msg("⚠️ Ledger summary: stats failed")
			continue
		}
		log.Info().
			Str("tenant_id", t.ID.String()).
			Str("company", t.CompanyName).
			Int64("today", stats.Today).
			Int64("this_month", stats.ThisMonth).
			Int64("pending", stats.ByStatus[models.StatusPending]).
			Int64("revenue_this_month", stats.RevenueThisMonth).
			Msg("📊 Daily booking summary")
		reported++
	}
	return reported
}
