// Package intent turns a user message into routing signals, either locally
// with keyword rules or through a remote classifier.
package intent

import (
	"context"
	"strings"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

const SourceHeuristic = "heuristic"

// HeuristicDetector matches lowercase keywords anywhere in the message.
type HeuristicDetector struct {
	PurchaseKeywords    []string
	AffirmationKeywords []string
}

var _ contractx.IntentDetector = (*HeuristicDetector)(nil)

func NewHeuristicDetector() *HeuristicDetector {
	return &HeuristicDetector{
		PurchaseKeywords:    []string{"buy"},
		AffirmationKeywords: []string{"yes"},
	}
}

func (h *HeuristicDetector) Detect(_ context.Context, req contractx.DetectRequest) (statex.Signals, error) {
	msg := strings.ToLower(strings.TrimSpace(req.Message))
	sig := statex.Signals{Source: SourceHeuristic}
	if msg == "" {
		return sig, nil
	}

	sig.Purchase = containsAny(msg, h.PurchaseKeywords)
	sig.Affirmation = containsAny(msg, h.AffirmationKeywords)
	switch {
	case sig.Purchase:
		sig.Label = string(contractx.LabelPurchaseInquiry)
	case sig.Affirmation:
		sig.Label = string(contractx.LabelAffirmation)
	}
	return sig, nil
}

func containsAny(msg string, keywords []string) bool {
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" && strings.Contains(msg, k) {
			return true
		}
	}
	return false
}
