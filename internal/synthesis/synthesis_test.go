package synthesis_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"synapse/internal/llm"
	"synapse/internal/models"
	"synapse/internal/synthesis"
)

type stubStore struct {
	mu          sync.Mutex
	profile     models.BusinessProfile
	profileErr  error
	trends      []models.Trend
	signals     []models.CompetitorSignal
	snapshot    models.DeepContext
	snapshotErr error
	saved       []models.DeepContext
	getCalls    int
}

func (s *stubStore) GetProfile(ctx context.Context, id string) (models.BusinessProfile, error) {
	if s.profileErr != nil {
		return models.BusinessProfile{}, s.profileErr
	}
	return s.profile, nil
}

func (s *stubStore) SaveContext(ctx context.Context, dc models.DeepContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, dc)
	return nil
}

func (s *stubStore) GetContext(ctx context.Context, businessID string) (models.DeepContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.snapshotErr != nil {
		return models.DeepContext{}, s.snapshotErr
	}
	return s.snapshot, nil
}

func (s *stubStore) ListTrends(ctx context.Context, industry, category string, limit int) ([]models.Trend, error) {
	return s.trends, nil
}

func (s *stubStore) CountTrendsByCategory(ctx context.Context, industry string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range s.trends {
		counts[t.Category]++
	}
	return counts, nil
}

func (s *stubStore) ListSignals(ctx context.Context, businessID string, limit int) ([]models.CompetitorSignal, error) {
	return s.signals, nil
}

type stubLLM struct {
	mu      sync.Mutex
	replies map[llm.Tier]string
	errs    map[llm.Tier]error
	calls   []llm.Tier
}

func (s *stubLLM) Complete(ctx context.Context, tier llm.Tier, system, prompt string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, tier)
	s.mu.Unlock()
	if err := s.errs[tier]; err != nil {
		return "", err
	}
	return s.replies[tier], nil
}

func testStore() *stubStore {
	return &stubStore{
		profile: models.BusinessProfile{
			ID:       "biz-1",
			Name:     "Beanline Coffee",
			Industry: "restaurants",
			UVP: models.UVP{
				TargetCustomer:     "busy local coffee shop regulars",
				TransformationGoal: "proven growth without the guesswork",
				UniqueSolution:     "simple loyalty rewards in minutes",
			},
			ProofPoints: []models.ProofPoint{
				{Kind: "review", Text: "Best espresso in town", Source: "Google"},
				{Kind: "metric", Text: "4.9 stars across 300 reviews"},
			},
		},
		trends: []models.Trend{
			{ID: 1, Industry: "restaurants", Title: "Oat milk demand rises", Category: "consumer", SourceCount: 4},
			{ID: 2, Industry: "restaurants", Title: "New food safety rules", Category: "regulation", SourceCount: 2},
		},
		signals: []models.CompetitorSignal{
			{URL: "https://rival.example", Title: "Rival Cafe", Offers: []string{"20% off lattes"}},
		},
	}
}

func TestSynthesize_FullCycle(t *testing.T) {
	store := testStore()
	model := &stubLLM{replies: map[llm.Tier]string{
		llm.TierHaiku: "The audience responds to convenience.",
		llm.TierOpus:  "Strategic narrative about coffee.",
	}}

	svc := synthesis.NewService(store, model, time.Minute)
	dc, err := svc.Synthesize(context.Background(), "biz-1")
	require.NoError(t, err)

	require.Equal(t, "biz-1", dc.BusinessID)
	require.Equal(t, "Strategic narrative about coffee.", dc.Narrative)
	require.Len(t, dc.Industry.TopTrends, 2)
	require.Len(t, dc.Competitive.Signals, 1)
	require.NotEmpty(t, dc.Psychology.Triggers)
	require.Equal(t, "The audience responds to convenience.", dc.Psychology.Summary)
	require.Len(t, dc.ProofPoints, 2)
	require.Greater(t, dc.Confidence, 0.0)
	require.LessOrEqual(t, dc.Confidence, 1.0)

	// Снимок ушёл в хранилище
	require.Len(t, store.saved, 1)
	require.Equal(t, dc.BusinessID, store.saved[0].BusinessID)
}

func TestSynthesize_ProfileMissing(t *testing.T) {
	store := testStore()
	store.profileErr = errors.New("profile not found")
	svc := synthesis.NewService(store, &stubLLM{}, time.Minute)

	_, err := svc.Synthesize(context.Background(), "ghost")
	require.Error(t, err)
	require.Contains(t, err.Error(), "profile")
}

func TestSynthesize_ModelFailure(t *testing.T) {
	store := testStore()
	model := &stubLLM{errs: map[llm.Tier]error{
		llm.TierHaiku: errors.New("rate limited"),
		llm.TierOpus:  errors.New("rate limited"),
	}}
	svc := synthesis.NewService(store, model, time.Minute)

	_, err := svc.Synthesize(context.Background(), "biz-1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "synthesis model")
}

func TestSynthesize_PsychologyDegradesWithoutModel(t *testing.T) {
	store := testStore()

	healthy := &stubLLM{replies: map[llm.Tier]string{
		llm.TierHaiku: "summary",
		llm.TierOpus:  "narrative",
	}}
	svcHealthy := synthesis.NewService(store, healthy, time.Minute)
	full, err := svcHealthy.Synthesize(context.Background(), "biz-1")
	require.NoError(t, err)

	// HAIKU падает, OPUS работает: портрет строится без резюме,
	// итоговая уверенность ниже.
	degraded := &stubLLM{
		replies: map[llm.Tier]string{llm.TierOpus: "narrative"},
		errs:    map[llm.Tier]error{llm.TierHaiku: errors.New("overloaded")},
	}
	svcDegraded := synthesis.NewService(&stubStore{
		profile: store.profile,
		trends:  store.trends,
		signals: store.signals,
	}, degraded, time.Minute)
	partial, err := svcDegraded.Synthesize(context.Background(), "biz-1")
	require.NoError(t, err)

	require.Empty(t, partial.Psychology.Summary)
	require.NotEmpty(t, partial.Psychology.Triggers)
	require.Less(t, partial.Confidence, full.Confidence)
}

type countingExtractor struct {
	id    string
	res   synthesis.ExtractionResult
	err   error
	calls int
	mu    sync.Mutex
}

func (c *countingExtractor) ID() string { return c.id }

func (c *countingExtractor) Extract(ctx context.Context, p models.BusinessProfile) (synthesis.ExtractionResult, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.res, c.err
}

func TestSynthesize_CachesExtractorResults(t *testing.T) {
	store := testStore()
	model := &stubLLM{replies: map[llm.Tier]string{llm.TierOpus: "narrative"}}

	ex := &countingExtractor{
		id: "industry_trends",
		res: synthesis.ExtractionResult{
			Data:       models.IndustryIntel{TopTrends: store.trends},
			Confidence: synthesis.Confidence{Overall: 0.8, DataQuality: 0.8, SourceCount: 2},
		},
	}
	svc := synthesis.NewServiceWith(store, model, time.Minute, ex)

	_, err := svc.Synthesize(context.Background(), "biz-1")
	require.NoError(t, err)
	_, err = svc.Synthesize(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Equal(t, 1, ex.calls, "second run must reuse the cached extraction")

	// После сброса кэша экстрактор выполняется заново
	svc.Invalidate("biz-1")
	_, err = svc.Synthesize(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Equal(t, 2, ex.calls)
}

func TestSynthesize_FailedExtractorDoesNotAbort(t *testing.T) {
	store := testStore()
	model := &stubLLM{replies: map[llm.Tier]string{llm.TierOpus: "narrative"}}

	good := &countingExtractor{
		id: "proof_points",
		res: synthesis.ExtractionResult{
			Data:       store.profile.ProofPoints,
			Confidence: synthesis.Confidence{Overall: 0.9},
		},
	}
	bad := &countingExtractor{id: "competitor_signals", err: errors.New("scrape backlog")}

	svc := synthesis.NewServiceWith(store, model, time.Minute, good, bad)
	dc, err := svc.Synthesize(context.Background(), "biz-1")
	require.NoError(t, err)

	require.Len(t, dc.ProofPoints, 2)
	require.Empty(t, dc.Competitive.Signals)
	require.InDelta(t, 0.45, dc.Confidence, 1e-9, "half the extractors failed, confidence halves")
}

func TestCombineConfidence(t *testing.T) {
	cases := []struct {
		name     string
		results  []synthesis.ExtractionResult
		expected float64
	}{
		{
			name: "all successful",
			results: []synthesis.ExtractionResult{
				{Success: true, Confidence: synthesis.Confidence{Overall: 0.8}},
				{Success: true, Confidence: synthesis.Confidence{Overall: 0.6}},
			},
			expected: 0.7,
		},
		{
			name: "half failed",
			results: []synthesis.ExtractionResult{
				{Success: true, Confidence: synthesis.Confidence{Overall: 0.8}},
				{Success: false},
			},
			expected: 0.4,
		},
		{
			name: "all failed",
			results: []synthesis.ExtractionResult{
				{Success: false},
				{Success: false},
			},
			expected: 0,
		},
		{name: "empty", results: nil, expected: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := synthesis.CombineConfidence(tc.results)
			if got < tc.expected-1e-9 || got > tc.expected+1e-9 {
				t.Errorf("CombineConfidence() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBuildMegaPrompt(t *testing.T) {
	store := testStore()
	results := []synthesis.ExtractionResult{
		{
			Success:    true,
			Data:       models.IndustryIntel{TopTrends: store.trends},
			Confidence: synthesis.Confidence{Overall: 0.8},
			Metadata:   synthesis.Metadata{ExtractorID: "industry_trends"},
		},
		{
			Success:  false,
			Err:      "scrape backlog",
			Metadata: synthesis.Metadata{ExtractorID: "competitor_signals"},
		},
	}

	prompt := synthesis.BuildMegaPrompt(store.profile, results)

	require.Contains(t, prompt, "Beanline Coffee")
	require.Contains(t, prompt, "## industry_trends (confidence: 0.80)")
	require.Contains(t, prompt, "Oat milk demand rises")
	require.Contains(t, prompt, "## competitor_signals (confidence: 0.00)")
	require.Contains(t, prompt, "extraction failed: scrape backlog")
	require.True(t, strings.HasSuffix(prompt, "Respond with the narrative only."))
}

func TestGetContext_FallsBackToSnapshot(t *testing.T) {
	store := testStore()
	store.snapshot = models.DeepContext{BusinessID: "biz-1", Narrative: "stored narrative", Confidence: 0.5}
	svc := synthesis.NewService(store, &stubLLM{}, time.Minute)

	dc, err := svc.GetContext(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Equal(t, "stored narrative", dc.Narrative)

	// Второе чтение обслуживается из кэша
	_, err = svc.GetContext(context.Background(), "biz-1")
	require.NoError(t, err)
	require.Equal(t, 1, store.getCalls)
}
