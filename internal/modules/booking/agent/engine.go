// Package agent routes inbound WhatsApp messages through the booking flow
// and the AI responder, one message at a time per conversation.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/session"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/whatsapp"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/flow"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/responder"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

type TenantDirectory interface {
	Get(ctx context.Context, id string) (*models.Tenant, error)
	RecordMessage(ctx context.Context, id string) error
	RecordBooking(ctx context.Context, id string) error
}

type KnowledgeSource interface {
	Get(ctx context.Context, tenantID string) (*models.KnowledgeBase, error)
}

type Answerer interface {
	Respond(ctx context.Context, req responder.Request) responder.Reply
}

type Notifier interface {
	Notify(tenant *models.Tenant, order *models.Order)
}

type ConversationLogger interface {
	Log(turn services.Turn)
}

type Sender interface {
	SendMessage(ctx context.Context, tenantID, to, message string) error
}

// Limiter drops messages that arrive faster than the per-conversation window.
type Limiter interface {
	Allow(key string) bool
	Forget(key string)
	Sweep(idle time.Duration) int
}

// Deps wires the engine. Every field is required.
type Deps struct {
	Tenants       TenantDirectory
	Knowledge     KnowledgeSource
	Sessions      session.Store
	History       session.HistoryStore
	Machine       *flow.Machine
	Responder     Answerer
	Notifier      Notifier
	Conversations ConversationLogger
	Sender        Sender
	Limiter       Limiter
}

type Engine struct {
	tenants       TenantDirectory
	knowledge     KnowledgeSource
	sessions      session.Store
	history       session.HistoryStore
	machine       *flow.Machine
	responder     Answerer
	notifier      Notifier
	conversations ConversationLogger
	sender        Sender
	limiter       Limiter
	locks         *session.KeyedMutex
	now           func() time.Time
}

func NewEngine(d Deps) *Engine {
	return &Engine{
		tenants:       d.Tenants,
		knowledge:     d.Knowledge,
		sessions:      d.Sessions,
		history:       d.History,
		machine:       d.Machine,
		responder:     d.Responder,
		notifier:      d.Notifier,
		conversations: d.Conversations,
		sender:        d.Sender,
		limiter:       d.Limiter,
		locks:         session.NewKeyedMutex(),
		now:           time.Now,
	}
}

// Outcome describes what happened to one inbound message.
type Outcome struct {
	Reply   string
	Source  string
	Order   *models.Order
	Dropped bool
}

// HandleMessage is the entry point for all inbound messages. The reply is
// sent before the conversation lock is released so replies keep their order.
func (e *Engine) HandleMessage(ctx context.Context, msg whatsapp.InboundMessage) Outcome {
	text := strings.TrimSpace(msg.Text)
	phone := utils.NormalizePhone(msg.From)
	key := session.Key{TenantID: msg.TenantID, CustomerID: phone}
	if text == "" || !key.Valid() {
		metrics.Message(metrics.OutcomeIgnored)
		return Outcome{Dropped: true}
	}

	if !e.limiter.Allow(key.String()) {
		log.Warn().Str("tenant_id", msg.TenantID).Str("from", phone).Msg("⚠️ Rate limit: ignoring message (too fast)")
		metrics.Message(metrics.OutcomeRateLimited)
		return Outcome{Dropped: true}
	}

	unlock := e.locks.Lock(key)
	defer unlock()

	tenant, err := e.tenants.Get(ctx, msg.TenantID)
	if err != nil {
		log.Error().Err(err).Str("tenant_id", msg.TenantID).Msg("❌ Failed to resolve tenant")
		metrics.Message(metrics.OutcomeError)
		return Outcome{Dropped: true}
	}
	if !tenant.IsActive {
		metrics.Message(metrics.OutcomeIgnored)
		return Outcome{Dropped: true}
	}

	log.Info().
		Str("tenant_id", msg.TenantID).
		Str("from", phone).
		Str("message", utils.Truncate(text, 50)).
		Msg("📩 Message received")

	out, stateBefore, err := e.process(ctx, tenant, key, text)
	if err != nil {
		log.Error().Err(err).Str("tenant_id", msg.TenantID).Str("from", phone).Msg("❌ Failed to handle message")
		metrics.Message(metrics.OutcomeError)
		out = Outcome{Reply: apology(e.replyLanguage(ctx, tenant, key)), Source: models.SourceApology}
	} else if out.Reply == "" {
		metrics.Message(metrics.OutcomeIgnored)
	} else {
		metrics.Message(metrics.OutcomeHandled)
	}

	if out.Reply != "" {
		if err := e.sender.SendMessage(ctx, msg.TenantID, phone, out.Reply); err != nil {
			log.Error().Err(err).Str("tenant_id", msg.TenantID).Str("to", phone).Msg("❌ Failed to send reply")
		}
		e.conversations.Log(services.Turn{
			TenantID:      msg.TenantID,
			CustomerPhone: phone,
			StateBefore:   string(stateBefore),
			Message:       text,
			Reply:         out.Reply,
			Source:        out.Source,
		})
	}

	if err := e.tenants.RecordMessage(ctx, msg.TenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", msg.TenantID).Msg("⚠️ Failed to count message")
	}

	return out
}

// process runs the flow on a copy of the session. The stored session only
// changes when the whole turn succeeds.
func (e *Engine) process(ctx context.Context, tenant *models.Tenant, key session.Key, text string) (out Outcome, stateBefore session.State, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	kb, kbErr := e.knowledge.Get(ctx, key.TenantID)
	if kbErr != nil {
		log.Warn().Err(kbErr).Str("tenant_id", key.TenantID).Msg("⚠️ No knowledge base, using empty one")
		kb = &models.KnowledgeBase{}
	}

	stored, err := e.sessions.Get(ctx, key)
	if err != nil {
		return Outcome{}, "", fmt.Errorf("load session: %w", err)
	}
	stateBefore = stored.State

	working := stored.Clone()
	if working.Language == "" {
		working.Language = defaultLanguage(tenant)
	}

	res, err := e.machine.Handle(ctx, flow.Input{
		Tenant:    tenant,
		Knowledge: kb,
		Session:   working,
		Text:      text,
		Now:       e.now(),
	})
	if err != nil {
		return Outcome{}, stateBefore, err
	}

	out = Outcome{Reply: res.Reply, Source: models.SourceFlow, Order: res.Order}

	if res.ClearHistory {
		if err := e.history.Clear(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key.String()).Msg("⚠️ Failed to clear chat history")
		}
	}

	if res.Escalate {
		req := responder.Request{Tenant: tenant, Knowledge: kb, Key: key, Text: text}
		if working.LanguageSticky {
			req.Language = working.Language
		}
		if !working.Draft.Empty() {
			draft := working.Draft
			req.Draft = &draft
		}
		reply := e.responder.Respond(ctx, req)
		out.Reply, out.Source = reply.Text, reply.Source
	}

	if err := e.sessions.Save(ctx, working); err != nil {
		log.Error().Err(err).Str("key", key.String()).Msg("❌ Failed to save session")
	}

	if res.Order != nil {
		log.Info().
			Str("tenant_id", key.TenantID).
			Str("order", res.Order.OrderNumber).
			Int64("total", res.Order.TotalPrice).
			Msg("✅ Booking created")
		e.notifier.Notify(tenant, res.Order)
		if err := e.tenants.RecordBooking(ctx, key.TenantID); err != nil {
			log.Warn().Err(err).Str("tenant_id", key.TenantID).Msg("⚠️ Failed to count booking")
		}
	}

	return out, stateBefore, nil
}

func (e *Engine) replyLanguage(ctx context.Context, tenant *models.Tenant, key session.Key) lang.Language {
	if s, err := e.sessions.Get(ctx, key); err == nil && s.Language != "" {
		return s.Language
	}
	return defaultLanguage(tenant)
}

func defaultLanguage(tenant *models.Tenant) lang.Language {
	if tenant.Language == "" {
		return lang.English
	}
	return tenant.Language
}

func apology(l lang.Language) string {
	return lang.Pick(l,
		`🙏 Sorry, something went wrong. Try again or type "menu".`,
		`🙏 Samahani, kuna tatizo. Jaribu tena au andika "menu".`,
	)
}

// SweepIdle drops sessions idle longer than maxAge with their chat history
// and forgets idle rate limiters.
func (e *Engine) SweepIdle(ctx context.Context, maxAge time.Duration) (int, error) {
	keys, err := e.sessions.Sweep(ctx, maxAge)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	for _, key := range keys {
		if err := e.history.Clear(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key.String()).Msg("⚠️ Failed to clear chat history")
		}
	}
	limiters := e.limiter.Sweep(maxAge)

	if len(keys) > 0 || limiters > 0 {
		log.Info().Int("sessions", len(keys)).Int("limiters", limiters).Msg("🧹 Swept idle conversations")
	}
	return len(keys), nil
}

// ReapTenant drops every live conversation of a tenant.
func (e *Engine) ReapTenant(ctx context.Context, tenantID string) error {
	keys, err := e.sessions.ReapTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("reap sessions: %w", err)
	}
	for _, key := range keys {
		if err := e.history.Clear(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key.String()).Msg("⚠️ Failed to clear chat history")
		}
		e.limiter.Forget(key.String())
	}
	log.Info().Str("tenant_id", tenantID).Int("sessions", len(keys)).Msg("🧹 Reaped tenant conversations")
	return nil
}
