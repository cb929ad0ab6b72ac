package orchestratornode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

// DispatchWorker runs the worker for step against a copy of the record and
// merges its update. Workers never touch NextStep.
func DispatchWorker(
	ctx context.Context,
	in *TurnState,
	step statex.Step,
	catalog contractx.WorkerCatalog,
) (*TurnState, error) {
	if in == nil || in.Record == nil {
		return nil, fmt.Errorf("%w: turn state is incomplete", contractx.ErrValidation)
	}
	if in.Record.NextStep != step {
		return nil, fmt.Errorf("%w: dispatch %s while next step is %s", contractx.ErrValidation, step, in.Record.NextStep)
	}

	update, err := runWorker(ctx, in.Record, step, catalog)
	if err != nil {
		return nil, err
	}
	if err := in.Record.Apply(update); err != nil {
		return nil, fmt.Errorf("apply %s update: %w", step, err)
	}

	in.Hops++
	in.trace(contractx.TraceEvent{
		Node:    string(step),
		Message: strings.Join(update.Messages, " | "),
	})
	return in, nil
}

func runWorker(
	ctx context.Context,
	rec *statex.Record,
	step statex.Step,
	catalog contractx.WorkerCatalog,
) (statex.Update, error) {
	w, err := catalog.Lookup(step)
	if err != nil {
		return statex.Update{}, err
	}
	if step == statex.StepInventory && strings.TrimSpace(rec.CartItem) == "" {
		return statex.Update{}, fmt.Errorf("%w: inventory needs an item", statex.ErrEmptyCart)
	}

	update, err := w.Run(ctx, rec.Clone())
	if err != nil {
		return statex.Update{}, fmt.Errorf("worker %s: %w", step, err)
	}
	return update, nil
}
