package contract

import (
	"strings"

	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

type DetectorMode string

const (
	DetectorHeuristic DetectorMode = "heuristic"
	DetectorZeroShot  DetectorMode = "zeroshot"
	DetectorChatLabel DetectorMode = "chat_label"
	DetectorPlanner   DetectorMode = "planner"
)

// FallbackPolicy decides what happens when a remote detector keeps failing.
type FallbackPolicy string

const (
	FallbackHeuristic FallbackPolicy = "heuristic"
	FallbackEnd       FallbackPolicy = "end"
)

type DetectRequest struct {
	Message    string            `json:"message"`
	CartItem   string            `json:"cart_item,omitempty"`
	ItemStatus statex.ItemStatus `json:"item_status,omitempty"`
}

// Label is one of the fixed intent classes a classifier may return.
type Label string

const (
	LabelPurchaseInquiry Label = "purchase inquiry"
	LabelCheckInventory  Label = "check inventory"
	LabelPaymentIssue    Label = "payment issue"
	LabelShippingStatus  Label = "shipping status"
	LabelAffirmation     Label = "affirmation"
	LabelDenial          Label = "denial"
)

// CandidateLabels is the label set sent to classifiers, in a stable order.
var CandidateLabels = []Label{
	LabelPurchaseInquiry,
	LabelCheckInventory,
	LabelPaymentIssue,
	LabelShippingStatus,
	LabelAffirmation,
	LabelDenial,
}

func ParseLabel(raw string) (Label, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, l := range CandidateLabels {
		if normalized == string(l) {
			return l, true
		}
	}
	return "", false
}

// Signals maps a label onto the router's signal set.
func (l Label) Signals() statex.Signals {
	return statex.Signals{
		Purchase:    l == LabelPurchaseInquiry,
		Affirmation: l == LabelAffirmation,
		Label:       string(l),
	}
}

// Decision is the structured plan a chat model returns:
// a short reasoning plus the workers it would run, in order.
type Decision struct {
	Reasoning  string   `json:"reasoning"`
	NextAgents []string `json:"next_agents"`
}

// TraceEvent is one observable hop of a turn.
type TraceEvent struct {
	Node    string      `json:"node"`
	Rule    string      `json:"rule,omitempty"`
	Next    statex.Step `json:"next,omitempty"`
	Message string      `json:"message,omitempty"`
}
