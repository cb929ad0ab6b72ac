package intent

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
)

type fakeChatModel struct {
	content string
	err     error
	calls   int
	last    []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.calls++
	f.last = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func TestPlannerDetectMapsFirstAgent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		content     string
		purchase    bool
		affirmation bool
		label       string
	}{
		{
			name:     "inventory",
			content:  `{"reasoning":"check stock first","next_agents":["inventory","payment"]}`,
			purchase: true,
			label:    "inventory",
		},
		{
			name:        "payment with fence",
			content:     "```json\n{\"reasoning\":\"user agreed\",\"next_agents\":[\"payment_agent\"]}\n```",
			affirmation: true,
			label:       "payment",
		},
		{
			name:    "end",
			content: `Sure! {"reasoning":"small talk","next_agents":["end"]}`,
			label:   "end",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeChatModel{content: tc.content}
			d, err := NewPlannerDetector(context.Background(), fake, "planner prompt")
			require.NoError(t, err)

			sig, err := d.Detect(context.Background(), contractx.DetectRequest{
				Message:  "I want to buy a Red Shirt",
				CartItem: "",
			})
			require.NoError(t, err)
			require.Equal(t, tc.purchase, sig.Purchase)
			require.Equal(t, tc.affirmation, sig.Affirmation)
			require.Equal(t, tc.label, sig.Label)
			require.Equal(t, SourcePlanner, sig.Source)
			require.NotEmpty(t, sig.Reasoning)

			require.Len(t, fake.last, 2)
			require.Equal(t, "planner prompt", fake.last[0].Content)
			require.Contains(t, fake.last[1].Content, "I want to buy a Red Shirt")
		})
	}
}

func TestPlannerDetectMalformed(t *testing.T) {
	t.Parallel()

	for _, content := range []string{
		`not json at all`,
		`{"reasoning":"nothing to do","next_agents":[]}`,
		`{"reasoning":"?","next_agents":["warehouse"]}`,
	} {
		fake := &fakeChatModel{content: content}
		d, err := NewPlannerDetector(context.Background(), fake, "planner prompt")
		require.NoError(t, err)

		_, err = d.Detect(context.Background(), contractx.DetectRequest{Message: "hi"})
		require.ErrorIs(t, err, contractx.ErrMalformedResponse, content)
	}
}

func TestDecisionSignalsSchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := decisionSignals(contractx.Decision{Reasoning: "?", NextAgents: nil})
	require.ErrorIs(t, err, contractx.ErrSchemaViolation)

	sig, err := decisionSignals(contractx.Decision{NextAgents: []string{" Inventory Agent "}})
	require.NoError(t, err)
	require.True(t, sig.Purchase)
}

func TestPlannerDetectModelFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeChatModel{err: errors.New("connection refused")}
	d, err := NewPlannerDetector(context.Background(), fake, "planner prompt")
	require.NoError(t, err)

	_, err = d.Detect(context.Background(), contractx.DetectRequest{Message: "hi"})
	require.ErrorIs(t, err, contractx.ErrClassifierUnavailable)
	require.ErrorIs(t, err, contractx.ErrModelInvoke)
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	require.Equal(t, `{"a":1}`, extractJSONObject("```json\n{\"a\":1}\n```"))
	require.Equal(t, "plain", extractJSONObject("  plain "))
}
