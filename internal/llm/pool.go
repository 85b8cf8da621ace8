package llm

import (
	"context"
	"fmt"
	"sync"

	"synapse/internal/config"
)

// MaxKeys — максимум API-ключей в пуле. Генерация вариантов веером
// отправляет по одному запросу на каждый ключ.
const MaxKeys = 4

// Outcome — исход одного вызова в веере. Собираются все исходы,
// и успехи, и ошибки.
type Outcome struct {
	Key     int    `json:"key"`
	Content string `json:"content,omitempty"`
	Err     error  `json:"-"`
}

// Pool держит по клиенту на каждый API-ключ.
type Pool struct {
	clients []Client
}

// NewPool строит пул клиентов OpenRouter из ключей. Лишние ключи
// сверх MaxKeys отбрасываются.
func NewPool(keys []string, models config.Models) *Pool {
	if len(keys) > MaxKeys {
		keys = keys[:MaxKeys]
	}
	clients := make([]Client, 0, len(keys))
	for _, key := range keys {
		clients = append(clients, NewOpenRouter(key, models))
	}
	return &Pool{clients: clients}
}

// NewPoolOf строит пул из готовых клиентов.
func NewPoolOf(clients ...Client) *Pool {
	return &Pool{clients: clients}
}

// Size возвращает число клиентов в пуле.
func (p *Pool) Size() int {
	return len(p.clients)
}

// FanOut отправляет prompt через каждый ключ одновременно и дожидается
// всех исходов. Порядок исходов соответствует порядку ключей, гарантий
// порядка завершения нет.
func (p *Pool) FanOut(ctx context.Context, tier Tier, system, prompt string) []Outcome {
	outcomes := make([]Outcome, len(p.clients))

	var wg sync.WaitGroup
	for i, c := range p.clients {
		wg.Add(1)
		go func(i int, c Client) {
			defer wg.Done()
			content, err := c.Complete(ctx, tier, system, prompt)
			outcomes[i] = Outcome{Key: i, Content: content, Err: err}
		}(i, c)
	}
	wg.Wait()

	return outcomes
}

// Complete выполняет одиночный запрос через первый клиент пула.
func (p *Pool) Complete(ctx context.Context, tier Tier, system, prompt string) (string, error) {
	if len(p.clients) == 0 {
		return "", fmt.Errorf("no API keys configured")
	}
	return p.clients[0].Complete(ctx, tier, system, prompt)
}
