package llm

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func NewDeepSeekProvider(apiKey string, model string, temperature float32, maxTokens int) *OpenAIProvider {
	if model == "" {
		model = "deepseek-chat"
	}

	// DeepSeek uses OpenAI-compatible API with custom base URL
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = "https://api.deepseek.com"
	config.HTTPClient = &http.Client{
		Timeout: 60 * time.Second,
	}

	return newCompatibleProvider("DeepSeek", config, model, temperature, maxTokens, 2048)
}
