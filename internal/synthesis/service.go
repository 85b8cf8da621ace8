package synthesis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"synapse/internal/cache"
	"synapse/internal/llm"
	"synapse/internal/logger"
	"synapse/internal/models"
)

// Результаты отдельных экстракторов живут дольше готового контекста:
// сырьё меняется медленнее, чем его интерпретация.
const extractorCacheTTL = 30 * time.Minute

// Service собирает DeepContext бизнеса: параллельный веер экстракторов,
// мегапромпт и одно обращение к старшей модели за нарративом. Готовый
// контекст кэшируется в памяти и снимком сохраняется в Postgres.
type Service struct {
	store      Store
	llm        llm.Client
	extractors []Extractor
	contexts   *cache.TTL[models.DeepContext]
	results    *cache.TTL[ExtractionResult]
}

// NewService строит сервис со стандартным набором экстракторов.
// ttl задаёт срок жизни готового контекста в кэше.
func NewService(store Store, client llm.Client, ttl time.Duration) *Service {
	return &Service{
		store: store,
		llm:   client,
		extractors: []Extractor{
			NewTrendsExtractor(store),
			NewCompetitorExtractor(store),
			NewPsychologyExtractor(client),
			NewProofExtractor(),
		},
		contexts: cache.New[models.DeepContext](ttl, time.Minute),
		results:  cache.New[ExtractionResult](extractorCacheTTL, time.Minute),
	}
}

// NewServiceWith строит сервис с явным набором экстракторов.
func NewServiceWith(store Store, client llm.Client, ttl time.Duration, extractors ...Extractor) *Service {
	s := NewService(store, client, ttl)
	s.extractors = extractors
	return s
}

// Synthesize выполняет полный цикл сборки контекста. Отказ отдельного
// экстрактора не срывает сборку и лишь снижает итоговую уверенность;
// отказ модели синтеза возвращается как ошибка.
func (s *Service) Synthesize(ctx context.Context, businessID string) (models.DeepContext, error) {
	log := logger.Namespace("synthesis")

	profile, err := s.store.GetProfile(ctx, businessID)
	if err != nil {
		return models.DeepContext{}, fmt.Errorf("load profile: %w", err)
	}

	start := time.Now()
	results := s.runExtractors(ctx, profile)

	narrative, err := s.llm.Complete(ctx, llm.TierOpus, synthesisSystem, BuildMegaPrompt(profile, results))
	if err != nil {
		return models.DeepContext{}, fmt.Errorf("synthesis model: %w", err)
	}

	dc := assembleContext(profile, results, narrative)
	s.contexts.Set(businessID, dc)
	if err := s.store.SaveContext(ctx, dc); err != nil {
		log.Warnf("Failed to snapshot context for %s: %v", businessID, err)
	}

	log.WithFields(map[string]interface{}{
		"business_id": businessID,
		"confidence":  dc.Confidence,
		"duration":    time.Since(start).String(),
	}).Info("Context synthesized")
	return dc, nil
}

// GetContext возвращает контекст из кэша или последнего снимка в базе.
func (s *Service) GetContext(ctx context.Context, businessID string) (models.DeepContext, error) {
	if dc, ok := s.contexts.Get(businessID); ok {
		return dc, nil
	}
	dc, err := s.store.GetContext(ctx, businessID)
	if err != nil {
		return models.DeepContext{}, err
	}
	s.contexts.Set(businessID, dc)
	return dc, nil
}

// Invalidate сбрасывает кэшированный контекст и сырьё экстракторов,
// чтобы следующая сборка прошла по свежим данным.
func (s *Service) Invalidate(businessID string) {
	s.contexts.Delete(businessID)
	for _, ex := range s.extractors {
		s.results.Delete(businessID + ":" + ex.ID())
	}
}

// runExtractors запускает все экстракторы параллельно и дожидается
// каждого: упавшие возвращают результат с Success=false вместо того,
// чтобы оборвать остальных.
func (s *Service) runExtractors(ctx context.Context, p models.BusinessProfile) []ExtractionResult {
	results := make([]ExtractionResult, len(s.extractors))

	var wg sync.WaitGroup
	for i, ex := range s.extractors {
		wg.Add(1)
		go func(i int, ex Extractor) {
			defer wg.Done()
			results[i] = s.runOne(ctx, ex, p)
		}(i, ex)
	}
	wg.Wait()

	return results
}

func (s *Service) runOne(ctx context.Context, ex Extractor, p models.BusinessProfile) ExtractionResult {
	key := p.ID + ":" + ex.ID()
	if res, ok := s.results.Get(key); ok {
		res.Metadata.FromCache = true
		return res
	}

	start := time.Now()
	res, err := ex.Extract(ctx, p)
	res.Metadata.ExtractorID = ex.ID()
	res.Metadata.TimingMS = time.Since(start).Milliseconds()
	res.Metadata.Timestamp = time.Now()

	if err != nil {
		logger.Namespace("synthesis").Warnf("Extractor %s failed: %v", ex.ID(), err)
		res.Success = false
		res.Err = err.Error()
		return res
	}

	res.Success = true
	s.results.Set(key, res)
	return res
}

// CombineConfidence сводит уверенности извлечений в одну оценку:
// среднее по успешным, умноженное на долю успешных.
func CombineConfidence(results []ExtractionResult) float64 {
	if len(results) == 0 {
		return 0
	}

	sum := 0.0
	ok := 0
	for _, r := range results {
		if r.Success {
			sum += r.Confidence.Overall
			ok++
		}
	}
	if ok == 0 {
		return 0
	}
	return (sum / float64(ok)) * (float64(ok) / float64(len(results)))
}

func assembleContext(p models.BusinessProfile, results []ExtractionResult, narrative string) models.DeepContext {
	dc := models.DeepContext{
		BusinessID:  p.ID,
		Narrative:   narrative,
		Confidence:  CombineConfidence(results),
		GeneratedAt: time.Now(),
	}

	for _, res := range results {
		if !res.Success {
			continue
		}
		switch data := res.Data.(type) {
		case models.IndustryIntel:
			dc.Industry = data
		case models.CompetitiveIntel:
			dc.Competitive = data
		case models.PsychologyProfile:
			dc.Psychology = data
		case []models.ProofPoint:
			dc.ProofPoints = data
		}
	}
	return dc
}
