package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var ErrNotConfigured = errors.New("llm: provider not configured")

// Role of a history message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation history sent with a prompt.
type Message struct {
	Role    Role
	Content string
}

// LLMProvider interface untuk multiple AI providers
type LLMProvider interface {
	GenerateResponse(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error)
	GetProviderName() string
}

// ProviderType untuk factory
type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGemini   ProviderType = "gemini"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
)

// ProviderConfig untuk create provider
type ProviderConfig struct {
	Type ProviderType

	// API Keys
	OpenAIKey   string
	GeminiKey   string
	GroqKey     string
	DeepSeekKey string

	// Model configs
	Model       string
	Temperature float32
	MaxTokens   int
}

// APIKey returns the key of the selected provider.
func (c *ProviderConfig) APIKey() string {
	switch c.Type {
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderGemini:
		return c.GeminiKey
	case ProviderGroq:
		return c.GroqKey
	case ProviderDeepSeek:
		return c.DeepSeekKey
	}
	return ""
}

// NewProvider factory untuk create LLM provider
func NewProvider(ctx context.Context, cfg *ProviderConfig) (LLMProvider, error) {
	if cfg.APIKey() == "" {
		switch cfg.Type {
		case ProviderOpenAI, ProviderGemini, ProviderGroq, ProviderDeepSeek:
			return nil, fmt.Errorf("%w: %s API key is empty", ErrNotConfigured, cfg.Type)
		}
	}

	switch cfg.Type {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model, cfg.Temperature, cfg.MaxTokens)

	case ProviderGroq:
		return NewGroqProvider(cfg.GroqKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderDeepSeek:
		return NewDeepSeekProvider(cfg.DeepSeekKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

// LoadProviderFromEnv load config dari environment variables
func LoadProviderFromEnv() *ProviderConfig {
	providerType := os.Getenv("LLM_PROVIDER")
	if providerType == "" {
		providerType = string(ProviderGemini)
	}

	cfg := &ProviderConfig{
		Type:        ProviderType(providerType),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GroqKey:     os.Getenv("GROQ_API_KEY"),
		DeepSeekKey: os.Getenv("DEEPSEEK_API_KEY"),
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.Model = model
	} else {
		// Provider-specific defaults
		switch cfg.Type {
		case ProviderOpenAI:
			cfg.Model = "gpt-4o-mini"
		case ProviderGemini:
			cfg.Model = "gemini-2.5-flash"
		case ProviderGroq:
			cfg.Model = "llama-3.1-8b-instant"
		case ProviderDeepSeek:
			cfg.Model = "deepseek-chat"
		}
	}

	cfg.Temperature = 0.7
	// WhatsApp replies stay short
	cfg.MaxTokens = 1024

	return cfg
}
