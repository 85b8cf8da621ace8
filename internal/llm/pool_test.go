package llm_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"synapse/internal/llm"

	"github.com/stretchr/testify/require"
)

type stubClient struct {
	content string
	err     error
	calls   atomic.Int32
}

func (s *stubClient) Complete(ctx context.Context, tier llm.Tier, system, prompt string) (string, error) {
	s.calls.Add(1)
	return s.content, s.err
}

func TestFanOut_CollectsAllOutcomes(t *testing.T) {
	ok1 := &stubClient{content: "variant one"}
	bad := &stubClient{err: errors.New("rate limit exceeded")}
	ok2 := &stubClient{content: "variant two"}

	pool := llm.NewPoolOf(ok1, bad, ok2)
	outcomes := pool.FanOut(context.Background(), llm.TierSonnet, "", "prompt")

	require.Len(t, outcomes, 3)
	require.Equal(t, "variant one", outcomes[0].Content)
	require.NoError(t, outcomes[0].Err)
	require.Error(t, outcomes[1].Err)
	require.Equal(t, "variant two", outcomes[2].Content)
	require.NoError(t, outcomes[2].Err)

	// Каждому клиенту достался ровно один запрос.
	require.Equal(t, int32(1), ok1.calls.Load())
	require.Equal(t, int32(1), bad.calls.Load())
	require.Equal(t, int32(1), ok2.calls.Load())
}

func TestFanOut_AllFailed(t *testing.T) {
	pool := llm.NewPoolOf(
		&stubClient{err: errors.New("boom")},
		&stubClient{err: errors.New("boom")},
	)
	outcomes := pool.FanOut(context.Background(), llm.TierSonnet, "", "prompt")

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		require.Error(t, o.Err)
	}
}

func TestNewPool_CapsKeys(t *testing.T) {
	keys := []string{"k1", "k2", "k3", "k4", "k5", "k6"}
	pool := llm.NewPool(keys, testModels)
	require.Equal(t, llm.MaxKeys, pool.Size())
}

func TestPoolComplete_Empty(t *testing.T) {
	pool := llm.NewPoolOf()
	_, err := pool.Complete(context.Background(), llm.TierHaiku, "", "p")
	require.Error(t, err)
}

func TestWithFallback(t *testing.T) {
	primary := &stubClient{err: errors.New("provider down")}
	secondary := &stubClient{content: "from fallback"}

	client := llm.WithFallback(primary, secondary)
	out, err := client.Complete(context.Background(), llm.TierOpus, "", "p")

	require.NoError(t, err)
	require.Equal(t, "from fallback", out)
	require.Equal(t, int32(1), primary.calls.Load())
	require.Equal(t, int32(1), secondary.calls.Load())
}

func TestWithFallback_PrimaryHealthy(t *testing.T) {
	primary := &stubClient{content: "from primary"}
	secondary := &stubClient{content: "never used"}

	client := llm.WithFallback(primary, secondary)
	out, err := client.Complete(context.Background(), llm.TierOpus, "", "p")

	require.NoError(t, err)
	require.Equal(t, "from primary", out)
	require.Equal(t, int32(0), secondary.calls.Load())
}
