package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

const SourcePlanner = "planner"

// PlannerDetector asks a chat model for a structured decision and maps the
// first planned worker onto signals. Planning beyond that is advisory; the
// router still owns every transition.
type PlannerDetector struct {
	runner compose.Runnable[map[string]any, *schema.Message]
	parser schema.MessageParser[contractx.Decision]
}

var _ contractx.IntentDetector = (*PlannerDetector)(nil)

func NewPlannerDetector(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*PlannerDetector, error) {
	if chatModel == nil {
		return nil, errors.New("planner chat model is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: planner", contractx.ErrPromptMissing)
	}

	runner, err := compilePlannerGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, err
	}
	return &PlannerDetector{
		runner: runner,
		parser: schema.NewMessageJSONParser[contractx.Decision](&schema.MessageJSONParseConfig{
			ParseFrom: schema.MessageParseFromContent,
		}),
	}, nil
}

func (p *PlannerDetector) Detect(ctx context.Context, req contractx.DetectRequest) (statex.Signals, error) {
	if strings.TrimSpace(req.Message) == "" {
		return statex.Signals{Source: SourcePlanner}, nil
	}

	payload, err := json.Marshal(map[string]any{
		"last_message": req.Message,
		"cart_item":    req.CartItem,
		"item_status":  req.ItemStatus,
	})
	if err != nil {
		return statex.Signals{}, fmt.Errorf("%w: marshal planner payload: %v", contractx.ErrValidation, err)
	}

	msg, err := p.runner.Invoke(ctx, map[string]any{"input": string(payload)})
	if err != nil {
		return statex.Signals{}, fmt.Errorf("%w: %w: planner invoke: %v", contractx.ErrClassifierUnavailable, contractx.ErrModelInvoke, err)
	}

	decision, err := p.parser.Parse(ctx, msg)
	if err != nil {
		return statex.Signals{}, fmt.Errorf("%w: decode planner decision: %v", contractx.ErrMalformedResponse, err)
	}
	return decisionSignals(decision)
}

func decisionSignals(d contractx.Decision) (statex.Signals, error) {
	if len(d.NextAgents) == 0 {
		return statex.Signals{}, fmt.Errorf("%w: %w: next_agents is empty", contractx.ErrMalformedResponse, contractx.ErrSchemaViolation)
	}

	first := normalizeAgent(d.NextAgents[0])
	sig := statex.Signals{
		Label:     first,
		Reasoning: strings.TrimSpace(d.Reasoning),
		Source:    SourcePlanner,
	}
	switch statex.Step(first) {
	case statex.StepInventory:
		sig.Purchase = true
	case statex.StepPayment:
		sig.Affirmation = true
	case statex.StepRecommendation, statex.StepFulfillment, statex.StepEnd:
	default:
		return statex.Signals{}, fmt.Errorf("%w: %w: unknown agent %q", contractx.ErrMalformedResponse, contractx.ErrSchemaViolation, d.NextAgents[0])
	}
	return sig, nil
}

// normalizeAgent accepts "Inventory", "inventory_agent" and "inventory-agent".
func normalizeAgent(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "_agent")
	n = strings.TrimSuffix(n, "-agent")
	n = strings.TrimSuffix(n, " agent")
	return n
}
