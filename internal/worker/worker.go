package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"synapse/internal/fetcher"
	"synapse/internal/intel"
	"synapse/internal/logger"
	"synapse/internal/metrics"
	"synapse/internal/models"
	"synapse/internal/queue"
)

// Store — операции хранилища, нужные обработчикам задач.
type Store interface {
	UpsertTrend(ctx context.Context, t models.Trend) (int, error)
	SaveSignal(ctx context.Context, businessID string, sig models.CompetitorSignal) error
}

// SignalFetcher снимает сигналы со страницы конкурента.
type SignalFetcher interface {
	FetchSignals(ctx context.Context, pageURL string) (*models.CompetitorSignal, error)
}

// Synthesizer пересобирает контекст бизнеса.
type Synthesizer interface {
	Synthesize(ctx context.Context, businessID string) (models.DeepContext, error)
}

type Worker struct {
	store   Store
	scraper SignalFetcher
	synth   Synthesizer
}

func NewWorker(store Store, scraper SignalFetcher, synth Synthesizer) *Worker {
	return &Worker{store: store, scraper: scraper, synth: synth}
}

// HandleTask разбирает конверт задачи и передаёт её профильному
// обработчику. Ошибка возвращается наружу, чтобы Consumer вернул
// сообщение в очередь.
func (w *Worker) HandleTask(body []byte) error {
	ctx := context.Background()

	var task queue.Task
	if err := json.Unmarshal(body, &task); err != nil {
		metrics.TasksProcessed.WithLabelValues("unknown", "error").Inc()
		return fmt.Errorf("decode task: %w", err)
	}

	var err error
	switch task.Type {
	case queue.TaskRefreshFeed:
		err = w.handleRefreshFeed(ctx, task)
	case queue.TaskScrapeCompetitor:
		err = w.handleScrapeCompetitor(ctx, task)
	case queue.TaskSynthesizeContext:
		err = w.handleSynthesizeContext(ctx, task)
	default:
		// Неизвестный тип не возвращаем в очередь
		logger.Log.Warnf("Unknown task type: %s", task.Type)
		metrics.TasksProcessed.WithLabelValues(task.Type, "skipped").Inc()
		return nil
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.TasksProcessed.WithLabelValues(task.Type, result).Inc()
	return err
}

func (w *Worker) handleRefreshFeed(ctx context.Context, task queue.Task) error {
	log := logger.Log.WithFields(map[string]interface{}{
		"url":      task.FeedURL,
		"industry": task.Industry,
	})
	log.Info("Processing industry feed")

	rss, err := fetcher.FetchRSS(task.FeedURL)
	if err != nil {
		log.Errorf("Fetch failed: %v", err)
		return err
	}

	saved := 0
	for _, item := range rss.Channel.Items {
		trend := models.Trend{
			Industry:    task.Industry,
			Title:       item.Title,
			Description: item.Description,
			Category:    intel.DetectCategory(item.Title, item.Description),
			Link:        item.Link,
		}
		if _, err := w.store.UpsertTrend(ctx, trend); err != nil {
			log.Warnf("Save trend failed: %v", err)
			continue
		}
		saved++
	}

	metrics.TrendsIngested.Add(float64(saved))
	log.Infof("Processed %d of %d items", saved, len(rss.Channel.Items))
	return nil
}

func (w *Worker) handleScrapeCompetitor(ctx context.Context, task queue.Task) error {
	log := logger.Log.WithFields(map[string]interface{}{
		"url":         task.PageURL,
		"business_id": task.BusinessID,
	})
	log.Info("Scraping competitor page")

	sig, err := w.scraper.FetchSignals(ctx, task.PageURL)
	if err != nil {
		log.Errorf("Scrape failed: %v", err)
		return err
	}

	if err := w.store.SaveSignal(ctx, task.BusinessID, *sig); err != nil {
		log.Errorf("Save signal failed: %v", err)
		return err
	}

	log.Infof("Saved competitor signal with %d offers", len(sig.Offers))
	return nil
}

func (w *Worker) handleSynthesizeContext(ctx context.Context, task queue.Task) error {
	log := logger.Log.WithField("business_id", task.BusinessID)
	log.Info("Synthesizing business context")

	dc, err := w.synth.Synthesize(ctx, task.BusinessID)
	if err != nil {
		log.Errorf("Synthesis failed: %v", err)
		return err
	}

	metrics.SynthesisConfidence.Observe(dc.Confidence)
	return nil
}
