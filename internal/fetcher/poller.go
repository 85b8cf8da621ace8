package fetcher

import (
	"context"
	"time"

	"synapse/internal/config"
	"synapse/internal/db"
	"synapse/internal/logger"
	"synapse/internal/queue"
)

// StartPolling периодически наполняет очередь фоновыми задачами:
// обновление отраслевых лент, скрейпинг страниц конкурентов и
// пересборка контекста для бизнесов с устаревшим снимком.
func StartPolling(ctx context.Context, producer *queue.Producer, database *db.Database, cfg *config.Config) {
	interval := time.Duration(cfg.PollInterval) * time.Minute
	log := logger.Log.WithFields(map[string]interface{}{
		"service":  "poller",
		"interval": interval.String(),
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Info("Starting new polling cycle")
			enqueueCycle(ctx, producer, database, cfg)

		case <-ctx.Done():
			log.Info("Stopping poller by context")
			return
		}
	}
}

func enqueueCycle(ctx context.Context, producer *queue.Producer, database *db.Database, cfg *config.Config) {
	log := logger.Namespace("poller")
	enqueued := 0

	for industry, feeds := range cfg.IndustryFeeds {
		for _, feedURL := range feeds {
			task := queue.Task{Type: queue.TaskRefreshFeed, Industry: industry, FeedURL: feedURL}
			if err := producer.PublishTask(cfg.Queue, task); err != nil {
				log.Errorf("Failed to enqueue feed refresh for %s: %v", feedURL, err)
				continue
			}
			enqueued++
		}
	}

	profiles, err := database.ListProfiles(ctx)
	if err != nil {
		log.Errorf("Failed to list profiles: %v", err)
	}
	for _, p := range profiles {
		for _, pageURL := range p.CompetitorURLs {
			task := queue.Task{Type: queue.TaskScrapeCompetitor, BusinessID: p.ID, PageURL: pageURL}
			if err := producer.PublishTask(cfg.Queue, task); err != nil {
				log.Errorf("Failed to enqueue competitor scrape for %s: %v", pageURL, err)
				continue
			}
			enqueued++
		}
	}

	stale, err := database.ListStaleContexts(ctx, cfg.ContextTTL)
	if err != nil {
		log.Errorf("Failed to list stale contexts: %v", err)
	}
	for _, businessID := range stale {
		task := queue.Task{Type: queue.TaskSynthesizeContext, BusinessID: businessID}
		if err := producer.PublishTask(cfg.Queue, task); err != nil {
			log.Errorf("Failed to enqueue context synthesis for %s: %v", businessID, err)
			continue
		}
		enqueued++
	}

	log.Infof("Polling cycle enqueued %d tasks", enqueued)
}
