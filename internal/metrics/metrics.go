// Package metrics регистрирует счётчики Prometheus для HTTP API,
// фонового конвейера и внешних вызовов. Отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests считает запросы к API по методу, маршруту и статусу.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synapse_http_requests_total",
		Help: "Number of handled HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPDuration измеряет длительность обработки запросов.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "synapse_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// TasksProcessed считает задачи конвейера по типу и исходу.
	TasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synapse_tasks_processed_total",
		Help: "Number of queue tasks processed by workers.",
	}, []string{"type", "result"})

	// TrendsIngested считает тренды, записанные из лент.
	TrendsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synapse_trends_ingested_total",
		Help: "Number of trend records upserted from industry feeds.",
	})

	// LLMCalls считает обращения к языковым моделям по ярусу и исходу.
	LLMCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synapse_llm_calls_total",
		Help: "Number of language model completions.",
	}, []string{"tier", "result"})

	// PublishAttempts считает попытки публикации по площадке и исходу.
	PublishAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synapse_publish_attempts_total",
		Help: "Number of social publish attempts.",
	}, []string{"platform", "result"})

	// SynthesisConfidence отслеживает распределение уверенности
	// собранных контекстов.
	SynthesisConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "synapse_synthesis_confidence",
		Help:    "Confidence of synthesized business contexts.",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
)
