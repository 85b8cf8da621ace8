package server

import (
	"fmt"
	"net/http"
	"strconv"

	"synapse/internal/intel"
	"synapse/internal/models"
)

const (
	defaultTrendLimit = 20
	maxTrendLimit     = 100
)

// TrendView — тренд с вычисленной стадией жизненного цикла.
type TrendView struct {
	models.Trend
	Lifecycle models.Lifecycle `json:"lifecycle"`
}

// GetTrends возвращает тренды отрасли с их жизненным циклом.
// Параметр industry обязателен, category и limit опциональны.
func (s *Server) GetTrends(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	if industry == "" {
		writeError(w, http.StatusBadRequest, "industry query parameter is required")
		return
	}
	category := r.URL.Query().Get("category")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultTrendLimit
	}
	if limit > maxTrendLimit {
		limit = maxTrendLimit
	}

	key := fmt.Sprintf("%s|%s|%d", industry, category, limit)
	if views, ok := s.trends.Get(key); ok {
		writeJSON(w, http.StatusOK, views)
		return
	}

	trends, err := s.store.ListTrends(r.Context(), industry, category, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load trends")
		return
	}

	views := make([]TrendView, len(trends))
	for i, t := range trends {
		views[i] = TrendView{Trend: t, Lifecycle: intel.EstimateLifecycle(t)}
	}

	s.trends.Set(key, views)
	writeJSON(w, http.StatusOK, views)
}
