package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

func FinalizeReply(in *TurnState) (GraphOutput, error) {
	if in == nil || in.Record == nil {
		return GraphOutput{}, fmt.Errorf("%w: turn state is nil", contractx.ErrValidation)
	}

	var replies []string
	if in.replyStart <= len(in.Record.Messages) {
		for _, msg := range in.Record.Messages[in.replyStart:] {
			if statex.IsSystemMessage(msg) {
				replies = append(replies, statex.ReplyText(msg))
			}
		}
	}

	return GraphOutput{
		Events:  append([]contractx.TraceEvent(nil), in.Events...),
		Replies: replies,
		Final:   in.Record.NextStep,
		Record:  in.Record.Clone(),
	}, nil
}
