package llm

import (
	"context"

	"synapse/internal/logger"
)

// Tier — ярус модели. Имена унаследованы от первой версии продукта:
// HAIKU для дешёвых извлечений, SONNET для генерации контента,
// OPUS для синтеза.
type Tier string

const (
	TierHaiku  Tier = "HAIKU"
	TierSonnet Tier = "SONNET"
	TierOpus   Tier = "OPUS"
)

// Client — чат-клиент LLM-провайдера. system может быть пустым.
type Client interface {
	Complete(ctx context.Context, tier Tier, system, prompt string) (string, error)
}

type fallbackClient struct {
	primary   Client
	secondary Client
}

// WithFallback возвращает клиент, который при ошибке основного провайдера
// повторяет запрос через запасной.
func WithFallback(primary, secondary Client) Client {
	return &fallbackClient{primary: primary, secondary: secondary}
}

func (f *fallbackClient) Complete(ctx context.Context, tier Tier, system, prompt string) (string, error) {
	out, err := f.primary.Complete(ctx, tier, system, prompt)
	if err == nil {
		return out, nil
	}
	logger.Namespace("llm").Warnf("Primary provider failed, trying fallback: %v", err)
	return f.secondary.Complete(ctx, tier, system, prompt)
}
