package intent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	"github.com/tanpawarit/chative-retail-orchestrator/agent/llm"
)

func TestNewSelectsDetector(t *testing.T) {
	t.Parallel()

	d, err := New(context.Background(), llm.Config{Mode: "heuristic"})
	require.NoError(t, err)
	require.IsType(t, &HeuristicDetector{}, d)

	for _, mode := range []string{"zeroshot", "chat_label", "planner"} {
		d, err := New(context.Background(), llm.Config{
			Mode:        mode,
			APIKey:      "hf_test",
			Timeout:     time.Second,
			MaxRetries:  1,
			ZeroShotURL: "https://example.com/models/bart",
			BaseURL:     "https://example.com/v1",
			Model:       "m",
		})
		require.NoError(t, err, mode)
		require.IsType(t, &ResilientDetector{}, d, mode)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), llm.Config{Mode: "planner"})
	require.ErrorIs(t, err, contractx.ErrValidation)
}
