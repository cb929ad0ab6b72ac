package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
)

// BeginTurn appends the user's text and resets the routing decision. Replies
// produced later in the turn are everything after this message.
func BeginTurn(in *TurnState) (*TurnState, error) {
	if in == nil || in.Record == nil {
		return nil, fmt.Errorf("%w: turn state is incomplete", contractx.ErrValidation)
	}

	in.Record.BeginTurn(in.Text)
	in.replyStart = len(in.Record.Messages)
	return in, nil
}
