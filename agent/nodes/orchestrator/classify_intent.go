package orchestratornode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
)

// ClassifyIntent stores signals for the latest message on the record. A
// classifier that stays unavailable ends the turn without routing.
func ClassifyIntent(ctx context.Context, in *TurnState, detector contractx.IntentDetector) (*TurnState, error) {
	if in == nil || in.Record == nil {
		return nil, fmt.Errorf("%w: turn state is incomplete", contractx.ErrValidation)
	}

	sig, err := detector.Detect(ctx, contractx.DetectRequest{
		Message:    in.Text,
		CartItem:   in.Record.CartItem,
		ItemStatus: in.Record.ItemStatus,
	})
	if err != nil {
		if !errors.Is(err, contractx.ErrClassifierUnavailable) && !errors.Is(err, contractx.ErrMalformedResponse) {
			return nil, err
		}
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("classifier unavailable, ending turn")
		in.ClassifierDown = true
		in.trace(contractx.TraceEvent{Node: NodeClassifyIntent, Message: err.Error()})
		return in, nil
	}

	in.Record.Signals = sig
	in.trace(contractx.TraceEvent{Node: NodeClassifyIntent, Message: describeSignals(sig.Label, sig.Source)})
	return in, nil
}

func describeSignals(label, source string) string {
	if label == "" {
		label = "none"
	}
	if source == "" {
		return label
	}
	return label + " (" + source + ")"
}
