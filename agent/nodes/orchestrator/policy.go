package orchestratornode

const (
	NodeValidateRequest = "validate_request"
	NodeLoadState       = "load_or_create_state"
	NodeBeginTurn       = "begin_turn"
	NodeClassifyIntent  = "classify_intent"
	NodeRoute           = "route"
	NodeSaveState       = "validate_and_save_state"
	NodeFinalizeReply   = "finalize_reply"

	RuleHopLimit = "hop_limit"
)

// DefaultMaxHops covers the longest path: inventory, recommendation,
// payment, fulfillment.
const DefaultMaxHops = 4

func hopBudgetSpent(in *TurnState) bool {
	return in.Hops >= in.MaxHops
}

// MaxRunSteps bounds graph supersteps for a turn: the fixed prefix and
// suffix with some slack, plus a worker and a route per hop.
func MaxRunSteps(maxHops int) int {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return 10 + 2*(maxHops+1)
}
