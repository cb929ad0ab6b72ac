package orchestratornode

import (
	"errors"
	"strings"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

var (
	ErrInvalidSession = statex.ErrInvalidSession
	ErrHopLimit       = errors.New("hop limit reached")
)

type GraphInput struct {
	SessionID string
	Text      string
}

// GraphOutput is the observable result of one turn.
type GraphOutput struct {
	Events  []contractx.TraceEvent
	Replies []string
	Final   statex.Step
	Record  *statex.Record
}

// TurnState travels through every node of a turn.
type TurnState struct {
	SessionID string
	Text      string
	MaxHops   int

	Record *statex.Record
	Events []contractx.TraceEvent
	Hops   int

	// ClassifierDown ends the turn before routing.
	ClassifierDown bool

	replyStart int
}

func (s *TurnState) trace(ev contractx.TraceEvent) {
	s.Events = append(s.Events, ev)
}

// ValidateRequest accepts empty text; it simply routes to end.
func ValidateRequest(in GraphInput, maxHops int) (*TurnState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	return &TurnState{
		SessionID: sessionID,
		Text:      strings.TrimSpace(in.Text),
		MaxHops:   maxHops,
	}, nil
}
