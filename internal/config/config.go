package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
)

// Config хранит настройку сервиса: адрес HTTP API, интервал опроса,
// отраслевые RSS-ленты и привязку ярусов моделей к слагам OpenRouter.
type Config struct {
	ListenAddr    string              `json:"listen_addr"`
	PollInterval  int                 `json:"poll_interval"`
	Queue         string              `json:"queue"`
	IndustryFeeds map[string][]string `json:"industry_feeds"`
	Models        Models              `json:"models"`
	ContextTTL    int                 `json:"context_ttl"`
	TrendCacheTTL int                 `json:"trend_cache_ttl"`
}

// Models сопоставляет ярусы моделей (имена унаследованы от первой версии
// продукта) конкретным слагам OpenRouter.
type Models struct {
	Haiku  string `json:"haiku"`
	Sonnet string `json:"sonnet"`
	Opus   string `json:"opus"`
}

// Validate проверяет, что PollInterval не меньше 5 минут и все ленты — валидные URL.
func (cfg *Config) Validate() error {
	if cfg.PollInterval < 5 {
		return errors.New("poll interval must be at least 5 minutes")
	}
	if len(cfg.IndustryFeeds) == 0 {
		return errors.New("at least one industry feed is required")
	}
	for industry, feeds := range cfg.IndustryFeeds {
		if industry == "" {
			return errors.New("industry name must not be empty")
		}
		for _, u := range feeds {
			if _, err := url.ParseRequestURI(u); err != nil {
				return fmt.Errorf("invalid feed URL: %s", u)
			}
		}
	}
	return nil
}

// LoadConfig читает JSON-файл по пути path, декодирует его в Config
// и заполняет пустые поля значениями по умолчанию.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Queue == "" {
		cfg.Queue = "synapse_tasks"
	}
	if cfg.Models.Haiku == "" {
		cfg.Models.Haiku = "anthropic/claude-3-haiku"
	}
	if cfg.Models.Sonnet == "" {
		cfg.Models.Sonnet = "anthropic/claude-3.5-sonnet"
	}
	if cfg.Models.Opus == "" {
		cfg.Models.Opus = "anthropic/claude-3-opus"
	}
	if cfg.ContextTTL <= 0 {
		cfg.ContextTTL = 60
	}
	if cfg.TrendCacheTTL <= 0 {
		cfg.TrendCacheTTL = 15
	}
	return &cfg, nil
}
