package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"synapse/internal/db"
	"synapse/internal/intel"
	"synapse/internal/models"
	"synapse/internal/templates"
)

const (
	trendPoolSize = 20
	maxIdeas      = 12
)

// GenerateIdeas собирает идеи кампаний: каждый свежий тренд отрасли
// прогоняется через шаблоны своей категории, идеи оцениваются и
// ранжируются. Прежний набор идей бизнеса замещается целиком.
func (s *Server) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("businessID")

	profile, err := s.store.GetProfile(r.Context(), businessID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	trends, err := s.store.ListTrends(r.Context(), profile.Industry, "", trendPoolSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load trends")
		return
	}

	// Психология и доказательства берутся из собранного контекста,
	// если он есть; иначе считаются по одному профилю.
	matched := intel.MatchTriggers(uvpText(profile))
	proofs := profile.ProofPoints
	if dc, err := s.contexts.GetContext(r.Context(), businessID); err == nil {
		if len(dc.Psychology.Triggers) > 0 {
			matched = dc.Psychology.Triggers
		}
		if len(dc.ProofPoints) > 0 {
			proofs = dc.ProofPoints
		}
	}
	proofSupport := intel.ProofSupport(proofs)
	product := firstProduct(profile.Industry)

	now := time.Now()
	var ideas []models.CampaignIdea
	for _, trend := range trends {
		lc := intel.EstimateLifecycle(trend)
		relevance := intel.ScoreRelevance(trend, profile.UVP)
		vars := templates.VarsFor(profile, trend, product)

		for _, tpl := range templates.ForCategory(trend.Category) {
			fit := intel.TriggerFit(matched, tpl.Triggers)
			score, breakdown := intel.ScoreIdea(relevance, lc.Momentum, fit, proofSupport)

			ideas = append(ideas, models.CampaignIdea{
				ID:         uuid.NewString(),
				BusinessID: businessID,
				TemplateID: tpl.ID,
				TrendTitle: trend.Title,
				Title:      tpl.Name + ": " + trend.Title,
				Hook:       templates.Render(tpl.HookPattern, vars),
				Platforms:  tpl.Platforms,
				Score:      score,
				Breakdown:  breakdown,
				CreatedAt:  now,
			})
		}
	}

	intel.RankIdeas(ideas)
	if len(ideas) > maxIdeas {
		ideas = ideas[:maxIdeas]
	}

	if err := s.store.ReplaceIdeas(r.Context(), businessID, ideas); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save ideas")
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

// GetIdeas возвращает сохранённые идеи бизнеса по убыванию оценки.
func (s *Server) GetIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := s.store.ListIdeas(r.Context(), r.PathValue("businessID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load ideas")
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

func uvpText(p models.BusinessProfile) string {
	parts := []string{p.UVP.TargetCustomer, p.UVP.TransformationGoal, p.UVP.UniqueSolution}
	parts = append(parts, p.UVP.Differentiators...)
	return strings.Join(parts, " ")
}

func firstProduct(industry string) templates.ProductTemplate {
	products := templates.ProductsForIndustry(industry)
	if len(products) == 0 {
		return templates.ProductTemplate{}
	}
	return products[0]
}
