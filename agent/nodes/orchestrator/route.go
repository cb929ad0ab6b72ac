package orchestratornode

import (
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	"github.com/tanpawarit/chative-retail-orchestrator/agent/router"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

// Route runs the transition table once and writes the decision onto the
// record. Once the hop budget is spent every worker decision becomes end.
func Route(in *TurnState) (*TurnState, error) {
	if in == nil || in.Record == nil {
		return nil, fmt.Errorf("%w: turn state is incomplete", contractx.ErrValidation)
	}

	d := router.Route(in.Record)
	if d.Next.IsWorker() && hopBudgetSpent(in) {
		log.Warn().
			Str("session_id", in.SessionID).
			Int("hops", in.Hops).
			Str("wanted", string(d.Next)).
			Msg(ErrHopLimit.Error())
		d = router.Decision{Rule: RuleHopLimit, Next: statex.StepEnd}
	}
	d.Apply(in.Record)

	log.Debug().
		Str("session_id", in.SessionID).
		Str("rule", d.Rule).
		Str("next", string(d.Next)).
		Msg("routed")
	in.trace(contractx.TraceEvent{Node: NodeRoute, Rule: d.Rule, Next: d.Next})
	return in, nil
}

// NextNode maps the record's next step to a graph node.
func NextNode(in *TurnState) (string, error) {
	if in == nil || in.Record == nil {
		return "", fmt.Errorf("%w: turn state is incomplete", contractx.ErrValidation)
	}
	if in.Record.NextStep.IsWorker() {
		return string(in.Record.NextStep), nil
	}
	return NodeSaveState, nil
}

// AfterClassify skips routing when the classifier was unavailable.
func AfterClassify(in *TurnState) (string, error) {
	if in == nil || in.Record == nil {
		return "", fmt.Errorf("%w: turn state is incomplete", contractx.ErrValidation)
	}
	if in.ClassifierDown {
		in.Record.NextStep = statex.StepEnd
		return NodeSaveState, nil
	}
	return NodeRoute, nil
}
