package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"synapse/internal/db"
	"synapse/internal/llm"
	"synapse/internal/logger"
	"synapse/internal/metrics"
	"synapse/internal/models"
	"synapse/internal/publish"
	"synapse/internal/templates"
)

const contentSystem = "You are a social media copywriter for small businesses. Write ready-to-post content, no preamble, no hashtag spam."

type generateContentRequest struct {
	BusinessID string          `json:"business_id"`
	IdeaID     string          `json:"idea_id"`
	Platform   models.Platform `json:"platform"`
}

type contentVariant struct {
	Key     int    `json:"key"`
	Content string `json:"content"`
}

// GenerateContent ведёт идею через веер моделей: один и тот же промпт
// уходит на все ключи параллельно, клиенту возвращаются все удавшиеся
// варианты. Отказ отдельного ключа вариант не блокирует; каждый вариант
// проходит модерацию площадки до выдачи.
func (s *Server) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req generateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.BusinessID == "" || req.IdeaID == "" || req.Platform == "" {
		writeError(w, http.StatusBadRequest, "business_id, idea_id and platform are required")
		return
	}
	limit := publish.LengthLimit(req.Platform)
	if limit == 0 {
		writeError(w, http.StatusBadRequest, "unsupported platform: "+string(req.Platform))
		return
	}

	profile, err := s.store.GetProfile(r.Context(), req.BusinessID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	idea, ok := s.findIdea(r.Context(), req.BusinessID, req.IdeaID)
	if !ok {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}

	prompt := buildContentPrompt(profile, idea, req.Platform, limit)
	outcomes := s.pool.FanOut(r.Context(), llm.TierSonnet, contentSystem, prompt)

	variants := make([]contentVariant, 0, len(outcomes))
	failed := 0
	for _, out := range outcomes {
		if out.Err != nil {
			metrics.LLMCalls.WithLabelValues(string(llm.TierSonnet), "error").Inc()
			failed++
			continue
		}
		metrics.LLMCalls.WithLabelValues(string(llm.TierSonnet), "ok").Inc()
		if err := publish.Moderate(req.Platform, out.Content); err != nil {
			logger.Namespace("server").Warnf("Variant from key %d rejected: %v", out.Key, err)
			failed++
			continue
		}
		variants = append(variants, contentVariant{Key: out.Key, Content: out.Content})
	}

	if len(variants) == 0 {
		writeError(w, http.StatusBadGateway, "no usable variants generated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"variants": variants,
		"failed":   failed,
	})
}

func (s *Server) findIdea(ctx context.Context, businessID, ideaID string) (models.CampaignIdea, bool) {
	ideas, err := s.store.ListIdeas(ctx, businessID)
	if err != nil {
		return models.CampaignIdea{}, false
	}
	for _, idea := range ideas {
		if idea.ID == ideaID {
			return idea, true
		}
	}
	return models.CampaignIdea{}, false
}

func buildContentPrompt(p models.BusinessProfile, idea models.CampaignIdea, platform models.Platform, limit int) string {
	vars := templates.VarsFor(p, models.Trend{Title: idea.TrendTitle}, firstProduct(p.Industry))

	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s post for %s (%s).\n", platform, p.Name, p.Industry)
	fmt.Fprintf(&b, "Angle: %s\n", idea.Hook)
	if tpl, ok := templates.CampaignByID(idea.TemplateID); ok {
		fmt.Fprintf(&b, "Structure to follow: %s\n", templates.Render(tpl.BodyPattern, vars))
		fmt.Fprintf(&b, "Call to action: %s\n", tpl.CTA)
	}
	fmt.Fprintf(&b, "Target customer: %s. Promise: %s.\n", p.UVP.TargetCustomer, p.UVP.TransformationGoal)
	if vars.ProofPoint != "" {
		fmt.Fprintf(&b, "Proof you may cite: %s\n", vars.ProofPoint)
	}
	fmt.Fprintf(&b, "Hard limit: %d characters. Return the post text only.", limit)
	return b.String()
}

type publishRequest struct {
	BusinessID string          `json:"business_id"`
	IdeaID     string          `json:"idea_id,omitempty"`
	Platform   models.Platform `json:"platform"`
	Content    string          `json:"content"`
}

// PublishPost отправляет контент на площадку. Пост записывается в
// историю до публикации и обновляется её результатом, так что и
// неудачные попытки остаются видимыми.
func (s *Server) PublishPost(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.BusinessID == "" || req.Platform == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "business_id, platform and content are required")
		return
	}
	if publish.LengthLimit(req.Platform) == 0 {
		writeError(w, http.StatusBadRequest, "unsupported platform: "+string(req.Platform))
		return
	}

	post := models.Post{
		ID:         uuid.NewString(),
		BusinessID: req.BusinessID,
		IdeaID:     req.IdeaID,
		Platform:   req.Platform,
		Content:    req.Content,
		Status:     models.PostDraft,
		CreatedAt:  time.Now(),
	}
	if err := s.store.InsertPost(r.Context(), post); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record post")
		return
	}

	res, pubErr := s.registry.Publish(r.Context(), req.Platform, req.Content)

	if res.Success {
		now := time.Now()
		post.Status = models.PostPublished
		post.PlatformPostID = res.PostID
		post.PublishedAt = &now
	} else {
		post.Status = models.PostFailed
		post.Error = res.Error
	}
	if err := s.store.UpdatePostResult(r.Context(), post); err != nil {
		logger.Namespace("server").Warnf("Failed to update post %s: %v", post.ID, err)
	}

	result := "ok"
	if pubErr != nil {
		result = "error"
	}
	metrics.PublishAttempts.WithLabelValues(string(req.Platform), result).Inc()

	status := http.StatusOK
	switch {
	case pubErr == nil:
	case errors.Is(pubErr, publish.ErrRejected):
		status = http.StatusBadRequest
	case publish.IsNotImplemented(pubErr):
		status = http.StatusNotImplemented
	default:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]any{
		"success": res.Success,
		"post_id": post.ID,
		"result":  res,
	})
}

// GetPosts возвращает историю публикаций бизнеса.
func (s *Server) GetPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 50
	}

	posts, err := s.store.ListPosts(r.Context(), r.PathValue("businessID"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}
