package llm

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"
)

// Service wraps LLM provider untuk dependency injection
type Service struct {
	provider LLMProvider
	model    string
}

// NewService creates the LLM service from cfg. A missing API key is not
// fatal: the service comes back disabled and callers use their fallback.
func NewService(ctx context.Context, cfg *ProviderConfig) *Service {
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("provider", string(cfg.Type)).Msg("⚠️ AI provider unavailable, using rule-based replies")
		return &Service{}
	}

	log.Info().Str("provider", provider.GetProviderName()).Str("model", cfg.Model).Msg("🤖 Using LLM provider")
	return &Service{provider: provider, model: cfg.Model}
}

// NewServiceWithProvider creates service with custom provider (for testing)
func NewServiceWithProvider(provider LLMProvider) *Service {
	return &Service{provider: provider}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// GenerateResponse generates AI response
func (s *Service) GenerateResponse(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}
	return s.provider.GenerateResponse(ctx, systemPrompt, history, userMessage)
}

// GetProviderName returns current provider name
func (s *Service) GetProviderName() string {
	if !s.Enabled() {
		return "none"
	}
	return s.provider.GetProviderName()
}

// Close releases provider resources.
func (s *Service) Close() error {
	if c, ok := s.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
