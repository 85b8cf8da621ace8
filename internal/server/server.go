package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"synapse/internal/cache"
	"synapse/internal/config"
	"synapse/internal/llm"
	"synapse/internal/logger"
	"synapse/internal/models"
	"synapse/internal/publish"
	"synapse/internal/queue"
)

// Store — операции хранилища, нужные HTTP-обработчикам.
type Store interface {
	Ping(ctx context.Context) error
	UpsertProfile(ctx context.Context, p models.BusinessProfile) (models.BusinessProfile, error)
	GetProfile(ctx context.Context, id string) (models.BusinessProfile, error)
	ListProfiles(ctx context.Context) ([]models.BusinessProfile, error)
	ListTrends(ctx context.Context, industry, category string, limit int) ([]models.Trend, error)
	CountTrendsByCategory(ctx context.Context, industry string) (map[string]int, error)
	ListSignals(ctx context.Context, businessID string, limit int) ([]models.CompetitorSignal, error)
	ReplaceIdeas(ctx context.Context, businessID string, ideas []models.CampaignIdea) error
	ListIdeas(ctx context.Context, businessID string) ([]models.CampaignIdea, error)
	InsertPost(ctx context.Context, post models.Post) error
	UpdatePostResult(ctx context.Context, post models.Post) error
	ListPosts(ctx context.Context, businessID string, limit int) ([]models.Post, error)
	CountPostsByStatus(ctx context.Context, businessID string) (map[string]int, error)
}

// ContextService отдаёт собранный контекст бизнеса.
type ContextService interface {
	GetContext(ctx context.Context, businessID string) (models.DeepContext, error)
}

// Enqueuer ставит фоновые задачи в очередь.
type Enqueuer interface {
	PublishTask(queueName string, task queue.Task) error
}

// Server хранит зависимости HTTP-обработчиков.
type Server struct {
	store    Store
	cfg      *config.Config
	pool     *llm.Pool
	registry *publish.Registry
	contexts ContextService
	producer Enqueuer
	trends   *cache.TTL[[]TrendView]
}

// NewServer создаёт новый экземпляр Server с переданными зависимостями.
func NewServer(store Store, cfg *config.Config, pool *llm.Pool, registry *publish.Registry, contexts ContextService, producer Enqueuer) *Server {
	trendTTL := time.Duration(cfg.TrendCacheTTL) * time.Minute
	return &Server{
		store:    store,
		cfg:      cfg,
		pool:     pool,
		registry: registry,
		contexts: contexts,
		producer: producer,
		trends:   cache.New[[]TrendView](trendTTL, time.Minute),
	}
}

// Routes регистрирует все маршруты API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.HealthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/trends", s.GetTrends)

	mux.HandleFunc("POST /api/profiles", s.CreateProfile)
	mux.HandleFunc("GET /api/profiles", s.ListProfiles)
	mux.HandleFunc("GET /api/profiles/{id}", s.GetProfile)
	mux.HandleFunc("POST /api/profiles/{id}/refresh", s.RefreshProfile)

	mux.HandleFunc("GET /api/context/{businessID}", s.GetContext)

	mux.HandleFunc("POST /api/ideas/{businessID}/generate", s.GenerateIdeas)
	mux.HandleFunc("GET /api/ideas/{businessID}", s.GetIdeas)

	mux.HandleFunc("POST /api/content/generate", s.GenerateContent)
	mux.HandleFunc("POST /api/publish", s.PublishPost)
	mux.HandleFunc("GET /api/posts/{businessID}", s.GetPosts)

	mux.HandleFunc("GET /api/templates/campaigns", s.GetCampaignTemplates)
	mux.HandleFunc("GET /api/templates/products", s.GetProductTemplates)

	mux.HandleFunc("GET /api/mirror/{businessID}", s.GetMirror)

	return mux
}

// HealthCheck отвечает 200, если база доступна, иначе 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Namespace("server").Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
