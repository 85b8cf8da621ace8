package server

import (
	"errors"
	"net/http"
	"time"

	"synapse/internal/db"
	"synapse/internal/intel"
	"synapse/internal/logger"
	"synapse/internal/models"
	"synapse/internal/templates"
)

// mirrorResponse — агрегат дашборда: шесть вкладок рабочего цикла
// маркетинга, собранные одним запросом.
type mirrorResponse struct {
	BusinessID string       `json:"business_id"`
	Measure    measureTab   `json:"measure"`
	Intend     intendTab    `json:"intend"`
	Reimagine  reimagineTab `json:"reimagine"`
	Reach      reachTab     `json:"reach"`
	Optimize   optimizeTab  `json:"optimize"`
	Reflect    reflectTab   `json:"reflect"`
}

type measureTab struct {
	TopTrends  []TrendView    `json:"top_trends"`
	Categories map[string]int `json:"categories,omitempty"`
	Signals    int            `json:"competitor_signals"`
}

type intendTab struct {
	Profile models.BusinessProfile `json:"profile"`
}

type reimagineTab struct {
	Ideas []models.CampaignIdea `json:"ideas"`
}

type reachTab struct {
	ConfiguredPlatforms []models.Platform `json:"configured_platforms"`
	RecentPosts         []models.Post     `json:"recent_posts"`
}

type ideaScore struct {
	IdeaID    string                `json:"idea_id"`
	Title     string                `json:"title"`
	Score     float64               `json:"score"`
	Breakdown models.ScoreBreakdown `json:"breakdown"`
}

type optimizeTab struct {
	Scores   []ideaScore           `json:"scores"`
	Triggers []models.TriggerScore `json:"triggers,omitempty"`
}

type reflectTab struct {
	PostCounts    map[string]int `json:"post_counts,omitempty"`
	LastPublished *time.Time     `json:"last_published,omitempty"`
	Confidence    float64        `json:"context_confidence"`
	Narrative     string         `json:"narrative,omitempty"`
}

// GetMirror собирает все вкладки дашборда для бизнеса. Обязателен
// только профиль: недоступные секции приходят пустыми, а не валят
// весь ответ.
func (s *Server) GetMirror(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("businessID")
	ctx := r.Context()

	profile, err := s.store.GetProfile(ctx, businessID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	log := logger.Namespace("server")
	resp := mirrorResponse{
		BusinessID: businessID,
		Intend:     intendTab{Profile: profile},
	}

	trends, err := s.store.ListTrends(ctx, profile.Industry, "", 5)
	if err != nil {
		log.Warnf("Mirror: failed to load trends: %v", err)
	}
	views := make([]TrendView, len(trends))
	for i, t := range trends {
		views[i] = TrendView{Trend: t, Lifecycle: intel.EstimateLifecycle(t)}
	}
	resp.Measure.TopTrends = views
	if counts, err := s.store.CountTrendsByCategory(ctx, profile.Industry); err == nil {
		resp.Measure.Categories = counts
	}
	if signals, err := s.store.ListSignals(ctx, businessID, 20); err == nil {
		resp.Measure.Signals = len(signals)
	}

	if ideas, err := s.store.ListIdeas(ctx, businessID); err == nil {
		resp.Reimagine.Ideas = ideas
		scores := make([]ideaScore, len(ideas))
		for i, idea := range ideas {
			scores[i] = ideaScore{IdeaID: idea.ID, Title: idea.Title, Score: idea.Score, Breakdown: idea.Breakdown}
		}
		resp.Optimize.Scores = scores
	}
	resp.Optimize.Triggers = intel.MatchTriggers(uvpText(profile))

	if s.registry != nil {
		resp.Reach.ConfiguredPlatforms = s.registry.Configured()
	}
	if posts, err := s.store.ListPosts(ctx, businessID, 10); err == nil {
		resp.Reach.RecentPosts = posts
		for _, p := range posts {
			if p.PublishedAt == nil {
				continue
			}
			if resp.Reflect.LastPublished == nil || p.PublishedAt.After(*resp.Reflect.LastPublished) {
				resp.Reflect.LastPublished = p.PublishedAt
			}
		}
	}

	if counts, err := s.store.CountPostsByStatus(ctx, businessID); err == nil {
		resp.Reflect.PostCounts = counts
	}
	if dc, err := s.contexts.GetContext(ctx, businessID); err == nil {
		resp.Reflect.Confidence = dc.Confidence
		resp.Reflect.Narrative = dc.Narrative
		if len(dc.Psychology.Triggers) > 0 {
			resp.Optimize.Triggers = dc.Psychology.Triggers
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetCampaignTemplates возвращает реестр шаблонов кампаний.
func (s *Server) GetCampaignTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, templates.Campaigns)
}

// GetProductTemplates возвращает отраслевые подачи. Параметр industry
// сужает список.
func (s *Server) GetProductTemplates(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	if industry == "" {
		writeJSON(w, http.StatusOK, templates.Products)
		return
	}
	writeJSON(w, http.StatusOK, templates.ProductsForIndustry(industry))
}
