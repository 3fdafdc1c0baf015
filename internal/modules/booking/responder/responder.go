// Package responder answers free-text messages: AI completion with a bounded
// retry loop, then rule-based templates when the AI cannot answer.
package responder

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/llm"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/session"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

var errEmptyCompletion = errors.New("responder: empty completion")

// Completer is the AI collaborator. *llm.Service satisfies it.
type Completer interface {
	Enabled() bool
	GenerateResponse(ctx context.Context, systemPrompt string, history []llm.Message, userMessage string) (string, error)
	GetProviderName() string
}

type Config struct {
	AIEnabled       bool
	FallbackEnabled bool
	// MaxRetries is the number of completion attempts before falling back.
	MaxRetries int
	Backoff    time.Duration
	// Timeout bounds each attempt.
	Timeout time.Duration
}

type Request struct {
	Tenant    *models.Tenant
	Knowledge *models.KnowledgeBase
	Key       session.Key
	Text      string
	// Language overrides detection when set.
	Language lang.Language
	// Draft is the unfinished booking of the session, if any.
	Draft *session.Draft
}

type Reply struct {
	Text string
	// Source is one of the models.Source* values.
	Source string
}

type Responder struct {
	ai      Completer
	history session.HistoryStore
	cfg     Config
	sleep   func(ctx context.Context, d time.Duration) error
}

func New(ai Completer, history session.HistoryStore, cfg Config) *Responder {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Responder{ai: ai, history: history, cfg: cfg, sleep: sleepContext}
}

// result of one completion attempt
type attempt int

const (
	attemptSuccess attempt = iota
	attemptRetryable
	attemptTerminal
)

// Respond always returns a non-empty reply.
func (r *Responder) Respond(ctx context.Context, req Request) Reply {
	l := req.Language
	if l == "" {
		l = lang.DetectLanguage(req.Text)
	}
	if req.Knowledge == nil {
		req.Knowledge = &models.KnowledgeBase{}
	}

	if r.aiAvailable() {
		if text, ok := r.complete(ctx, req, l); ok {
			r.remember(ctx, req.Key, req.Text, text)
			return Reply{Text: text, Source: models.SourceAI}
		}
	}

	provider := r.providerName()
	if !r.cfg.FallbackEnabled {
		metrics.AIRequest(provider, metrics.AIApology)
		return Reply{Text: apology(l), Source: models.SourceApology}
	}

	metrics.AIRequest(provider, metrics.AIFallback)
	text := Fallback(req.Tenant, req.Knowledge, req.Text, l)
	log.Info().
		Str("tenant_id", req.Key.TenantID).
		Str("intent", string(lang.DetectIntent(req.Text))).
		Str("lang", string(l)).
		Msg("🔄 Fallback response")
	r.remember(ctx, req.Key, req.Text, text)
	return Reply{Text: text, Source: models.SourceFallback}
}

func (r *Responder) aiAvailable() bool {
	return r.cfg.AIEnabled && r.ai != nil && r.ai.Enabled()
}

func (r *Responder) providerName() string {
	if r.ai == nil {
		return "none"
	}
	return r.ai.GetProviderName()
}

func (r *Responder) complete(ctx context.Context, req Request, l lang.Language) (string, bool) {
	systemPrompt := BuildSystemPrompt(req.Tenant, req.Knowledge, l) + draftContext(req.Draft, req.Knowledge)
	history := r.loadHistory(ctx, req.Key)
	provider := r.providerName()

	for i := 1; i <= r.cfg.MaxRetries; i++ {
		text, outcome, err := r.attempt(ctx, systemPrompt, history, req.Text)
		switch outcome {
		case attemptSuccess:
			metrics.AIRequest(provider, metrics.AISuccess)
			return text, true
		case attemptTerminal:
			log.Warn().Err(err).Str("provider", provider).Msg("⚠️ AI unavailable, using fallback")
			return "", false
		}

		log.Warn().Err(err).
			Str("provider", provider).
			Int("attempt", i).
			Int("max", r.cfg.MaxRetries).
			Msg("⚠️ AI attempt failed")
		if i == r.cfg.MaxRetries {
			break
		}
		metrics.AIRequest(provider, metrics.AIRetry)
		if err := r.sleep(ctx, r.cfg.Backoff); err != nil {
			return "", false
		}
	}
	return "", false
}

func (r *Responder) attempt(ctx context.Context, systemPrompt string, history []llm.Message, text string) (string, attempt, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	reply, err := r.ai.GenerateResponse(attemptCtx, systemPrompt, history, text)
	metrics.ObserveAILatency(r.providerName(), time.Since(start))

	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return "", attemptTerminal, err
	case ctx.Err() != nil:
		// the caller gave up, not the provider
		return "", attemptTerminal, ctx.Err()
	case err != nil:
		return "", attemptRetryable, err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", attemptRetryable, errEmptyCompletion
	}
	return reply, attemptSuccess, nil
}

func (r *Responder) loadHistory(ctx context.Context, key session.Key) []llm.Message {
	if r.history == nil {
		return nil
	}
	turns, err := r.history.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("⚠️ Failed to load chat history")
		return nil
	}
	messages := make([]llm.Message, 0, len(turns)*2)
	for _, t := range turns {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: t.User},
			llm.Message{Role: llm.RoleAssistant, Content: t.Assistant},
		)
	}
	return messages
}

func (r *Responder) remember(ctx context.Context, key session.Key, user, assistant string) {
	if r.history == nil {
		return
	}
	if err := r.history.Append(ctx, key, session.Turn{User: user, Assistant: assistant}); err != nil {
		log.Warn().Err(err).
			Str("key", key.String()).
			Str("message", utils.Truncate(user, 50)).
			Msg("⚠️ Failed to save chat history")
	}
}

func apology(l lang.Language) string {
	return lang.Pick(l,
		"🙏 Sorry, I encountered an issue. Please try again later.",
		"🙏 Samahani, kuna tatizo. Tafadhali jaribu tena baadaye.",
	)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
