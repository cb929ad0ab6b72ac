package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

func ValidateAndSaveState(
	ctx context.Context,
	in *TurnState,
	store statex.Store,
) (*TurnState, error) {
	if in == nil || in.Record == nil {
		return nil, fmt.Errorf("%w: turn record is nil", contractx.ErrValidation)
	}

	// Every completed turn rests at end; the next turn starts from none.
	in.Record.NextStep = statex.StepEnd
	if err := in.Record.Validate(); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Record); err != nil {
		return nil, err
	}

	return in, nil
}
