package orchestratornode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

func LoadOrCreateState(
	ctx context.Context,
	in *TurnState,
	store statex.Store,
	userID string,
	channel string,
) (*TurnState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: turn state is nil", contractx.ErrValidation)
	}

	rec, err := loadOrCreateRecord(ctx, store, in.SessionID, userID, channel)
	if err != nil {
		return nil, err
	}
	in.Record = rec
	return in, nil
}

func loadOrCreateRecord(
	ctx context.Context,
	store statex.Store,
	sessionID string,
	userID string,
	channel string,
) (*statex.Record, error) {
	rec, err := store.Load(ctx, sessionID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, statex.ErrStateNotFound) {
		return nil, err
	}

	return statex.NewRecord(sessionID, userID, channel), nil
}
