package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"synapse/internal/config"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultTimeout = 2 * time.Minute
	defaultSite    = "https://synapse.app"
	defaultApp     = "Synapse"

	maxCompletionTokens = 1024
	temperature         = 0.7
)

// message — одно сообщение диалога chat-completions.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatChoice struct {
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
	Error   *apiError    `json:"error,omitempty"`
}

// OpenRouterConfig — настройка клиента OpenRouter.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Models  config.Models
	Timeout time.Duration
}

// OpenRouter — клиент chat-completions API OpenRouter.
type OpenRouter struct {
	apiKey  string
	baseURL string
	models  config.Models
	http    *http.Client
}

// NewOpenRouter создаёт клиент с настройками по умолчанию.
func NewOpenRouter(apiKey string, models config.Models) *OpenRouter {
	return NewOpenRouterWithConfig(OpenRouterConfig{APIKey: apiKey, Models: models})
}

// NewOpenRouterWithConfig создаёт клиент с явной настройкой.
func NewOpenRouterWithConfig(cfg OpenRouterConfig) *OpenRouter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &OpenRouter{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		models:  cfg.Models,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *OpenRouter) model(tier Tier) string {
	switch tier {
	case TierOpus:
		return c.models.Opus
	case TierSonnet:
		return c.models.Sonnet
	default:
		return c.models.Haiku
	}
}

// Complete отправляет запрос chat-completions и возвращает текст ответа.
func (c *OpenRouter) Complete(ctx context.Context, tier Tier, system, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	messages := make([]message, 0, 2)
	if system != "" {
		messages = append(messages, message{Role: "system", Content: system})
	}
	messages = append(messages, message{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model(tier),
		Messages:    messages,
		MaxTokens:   maxCompletionTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", defaultSite)
	req.Header.Set("X-Title", defaultApp)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if chat.Error != nil {
		return "", fmt.Errorf("API error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}
