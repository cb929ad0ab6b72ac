// Package router decides the next step of a turn from the record alone.
package router

import (
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

// Decision is the outcome of one router invocation.
type Decision struct {
	Rule     string
	Next     statex.Step
	CartItem string // set only by the purchase rule
}

// Apply writes the decision into rec. NextStep is always overwritten.
func (d Decision) Apply(rec *statex.Record) {
	if rec == nil {
		return
	}
	rec.NextStep = d.Next
	if d.CartItem != "" {
		rec.CartItem = d.CartItem
	}
}

// Rule is one row of the transition table. Rules are evaluated in order and
// the first guard that holds wins; conditions overlap on purpose.
type Rule struct {
	Name   string
	Guard  func(rec *statex.Record) bool
	Action func(rec *statex.Record) Decision
}

const (
	RulePurchaseIntent   = "purchase_intent"
	RuleAfterPayment     = "after_payment"
	RuleAfterFulfillment = "after_fulfillment"
	RuleStockRecovery    = "stock_recovery"
	RuleAffirmation      = "affirmation"
	RuleFallback         = "fallback"
)

var table = []Rule{
	{
		Name: RulePurchaseIntent,
		Guard: func(rec *statex.Record) bool {
			return rec.Signals.Purchase && rec.ItemStatus == statex.ItemStatusUnset
		},
		Action: func(rec *statex.Record) Decision {
			return Decision{
				Rule:     RulePurchaseIntent,
				Next:     statex.StepInventory,
				CartItem: ExtractItem(rec.LatestMessage()),
			}
		},
	},
	{
		Name:   RuleAfterPayment,
		Guard:  func(rec *statex.Record) bool { return rec.NextStep == statex.StepPayment },
		Action: goTo(RuleAfterPayment, statex.StepFulfillment),
	},
	{
		Name:   RuleAfterFulfillment,
		Guard:  func(rec *statex.Record) bool { return rec.NextStep == statex.StepFulfillment },
		Action: goTo(RuleAfterFulfillment, statex.StepEnd),
	},
	{
		Name: RuleStockRecovery,
		Guard: func(rec *statex.Record) bool {
			return rec.ItemStatus == statex.ItemStatusOutOfStock &&
				rec.NextStep != statex.StepRecommendation &&
				!rec.Recommended
		},
		Action: goTo(RuleStockRecovery, statex.StepRecommendation),
	},
	{
		Name: RuleAffirmation,
		Guard: func(rec *statex.Record) bool {
			return rec.Signals.Affirmation || rec.NextStep == statex.StepRecommendation
		},
		Action: goTo(RuleAffirmation, statex.StepPayment),
	},
	{
		Name:   RuleFallback,
		Guard:  func(*statex.Record) bool { return true },
		Action: goTo(RuleFallback, statex.StepEnd),
	},
}

func goTo(rule string, next statex.Step) func(*statex.Record) Decision {
	return func(*statex.Record) Decision {
		return Decision{Rule: rule, Next: next}
	}
}

// Route evaluates the table against rec. It does not modify rec.
func Route(rec *statex.Record) Decision {
	if rec == nil {
		return Decision{Rule: RuleFallback, Next: statex.StepEnd}
	}
	for _, r := range table {
		if r.Guard(rec) {
			return r.Action(rec)
		}
	}
	return Decision{Rule: RuleFallback, Next: statex.StepEnd}
}
