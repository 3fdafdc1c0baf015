package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

func NewGroqProvider(apiKey string, model string, temperature float32, maxTokens int) *OpenAIProvider {
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	// Groq uses OpenAI-compatible API with custom base URL
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = "https://api.groq.com/openai/v1"

	return newCompatibleProvider("Groq", config, model, temperature, maxTokens, 2048)
}
