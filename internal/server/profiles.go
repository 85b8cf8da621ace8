package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"synapse/internal/db"
	"synapse/internal/logger"
	"synapse/internal/models"
	"synapse/internal/queue"
)

// CreateProfile сохраняет профиль бизнеса. Без ID профиль создаётся,
// с существующим ID — обновляется.
func (s *Server) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var p models.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if p.Name == "" || p.Industry == "" {
		writeError(w, http.StatusBadRequest, "name and industry are required")
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	saved, err := s.store.UpsertProfile(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// ListProfiles возвращает все профили.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profiles")
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// GetProfile возвращает профиль по ID.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProfile(r.Context(), r.PathValue("id"))
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RefreshProfile ставит в очередь полный цикл обновления данных
// бизнеса: ленты его отрасли, скрейпинг конкурентов и пересборку
// контекста. Отвечает 202 с числом поставленных задач.
func (s *Server) RefreshProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	profile, err := s.store.GetProfile(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	log := logger.Namespace("server")
	tasks := make([]queue.Task, 0, len(profile.CompetitorURLs)+2)
	for _, feedURL := range s.cfg.IndustryFeeds[profile.Industry] {
		tasks = append(tasks, queue.Task{Type: queue.TaskRefreshFeed, Industry: profile.Industry, FeedURL: feedURL})
	}
	for _, pageURL := range profile.CompetitorURLs {
		tasks = append(tasks, queue.Task{Type: queue.TaskScrapeCompetitor, BusinessID: id, PageURL: pageURL})
	}
	tasks = append(tasks, queue.Task{Type: queue.TaskSynthesizeContext, BusinessID: id})

	queued := 0
	for _, task := range tasks {
		if err := s.producer.PublishTask(s.cfg.Queue, task); err != nil {
			log.Errorf("Failed to enqueue %s task: %v", task.Type, err)
			continue
		}
		queued++
	}
	if queued == 0 {
		writeError(w, http.StatusInternalServerError, "failed to enqueue refresh tasks")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"success": true, "queued": queued})
}

// GetContext возвращает собранный контекст бизнеса.
func (s *Server) GetContext(w http.ResponseWriter, r *http.Request) {
	dc, err := s.contexts.GetContext(r.Context(), r.PathValue("businessID"))
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "context not synthesized yet")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load context")
		return
	}
	writeJSON(w, http.StatusOK, dc)
}
