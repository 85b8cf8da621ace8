package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiFlash = "gemini-2.5-flash"
	geminiPro   = "gemini-2.5-pro"
)

// Gemini — запасной провайдер через Google GenAI SDK. HAIKU и SONNET
// сопоставлены flash-модели, OPUS — pro.
type Gemini struct {
	client *genai.Client
}

// NewGemini создаёт клиент Gemini.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func geminiModel(tier Tier) string {
	if tier == TierOpus {
		return geminiPro
	}
	return geminiFlash
}

// Complete отправляет запрос GenerateContent и возвращает текст ответа.
func (g *Gemini) Complete(ctx context.Context, tier Tier, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: maxCompletionTokens,
		Temperature:     genai.Ptr[float32](temperature),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel(tier), genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return text, nil
}
