package state

import (
	"errors"
	"fmt"
	"strings"
)

// Record is the conversation/transaction state threaded through a turn.
// - Routing: NextStep is rewritten by the router on every hop
// - Transaction: CartItem + ItemStatus + Recommended, cleared only by Reset
type Record struct {
	// Identity
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Channel   string `json:"channel"`

	Messages []string `json:"messages,omitempty"` // append-only within a turn

	// Transaction
	CartItem    string     `json:"cart_item,omitempty"`
	ItemStatus  ItemStatus `json:"item_status,omitempty"`
	Recommended bool       `json:"recommended,omitempty"` // stock-out recovery already offered

	NextStep Step    `json:"next_step"`
	Signals  Signals `json:"signals"` // describes the latest user message only
}

type Step string

const (
	StepNone           Step = "none"
	StepInventory      Step = "inventory"
	StepRecommendation Step = "recommendation"
	StepPayment        Step = "payment"
	StepFulfillment    Step = "fulfillment"
	StepEnd            Step = "end"
)

// Workers lists the steps backed by a worker, in pipeline order.
var Workers = []Step{StepInventory, StepRecommendation, StepPayment, StepFulfillment}

func (s Step) IsWorker() bool {
	switch s {
	case StepInventory, StepRecommendation, StepPayment, StepFulfillment:
		return true
	default:
		return false
	}
}

func (s Step) IsTerminal() bool {
	return s == StepEnd
}

type ItemStatus string

const (
	ItemStatusUnset      ItemStatus = ""
	ItemStatusInStock    ItemStatus = "in_stock"
	ItemStatusOutOfStock ItemStatus = "out_of_stock"
)

// Signals are the intent markers found in the latest message.
type Signals struct {
	Purchase    bool   `json:"purchase,omitempty"`
	Affirmation bool   `json:"affirmation,omitempty"`
	Label       string `json:"label,omitempty"`
	Reasoning   string `json:"reasoning,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Update is the partial change a worker may make to a record.
// Workers never touch NextStep.
type Update struct {
	Messages    []string   `json:"messages,omitempty"`
	ItemStatus  ItemStatus `json:"item_status,omitempty"`
	Recommended bool       `json:"recommended,omitempty"`
}

const SystemPrefix = "System:"

var (
	ErrInvalidTransition = errors.New("invalid item status transition")
	ErrEmptyCart         = errors.New("cart item is empty")
	ErrInvalidStep       = errors.New("invalid next step")
)

func NewRecord(sessionID, userID, channel string) *Record {
	return &Record{
		SessionID: sessionID,
		UserID:    userID,
		Channel:   channel,
		Messages:  make([]string, 0, 8),
		NextStep:  StepNone,
	}
}

// SystemReply tags text as a system-originated reply.
func SystemReply(text string) string {
	return SystemPrefix + " " + strings.TrimSpace(text)
}

func IsSystemMessage(msg string) bool {
	return strings.HasPrefix(strings.TrimSpace(msg), SystemPrefix)
}

// ReplyText strips the system tag from msg.
func ReplyText(msg string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg), SystemPrefix))
}

/* ----------------------------- Record helpers ---------------------------- */

// LatestMessage returns the last transcript entry, or "" when empty.
func (r *Record) LatestMessage() string {
	if r == nil || len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

// BeginTurn appends the user's text and clears the routing decision.
func (r *Record) BeginTurn(text string) {
	r.Messages = append(r.Messages, text)
	r.NextStep = StepNone
	r.Signals = Signals{}
}

// Apply merges a worker update. A different status on an already classified
// item is rejected. Signals are left alone so they keep describing the
// user's message until the next BeginTurn.
func (r *Record) Apply(u Update) error {
	if r == nil {
		return errors.New("nil record")
	}
	if u.ItemStatus != ItemStatusUnset {
		switch {
		case r.ItemStatus == ItemStatusUnset:
			r.ItemStatus = u.ItemStatus
		case r.ItemStatus != u.ItemStatus:
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.ItemStatus, u.ItemStatus)
		}
	}
	if u.Recommended {
		r.Recommended = true
	}
	if len(u.Messages) > 0 {
		r.Messages = append(r.Messages, u.Messages...)
	}
	return nil
}

// Reset clears everything but the session identifiers.
func (r *Record) Reset() {
	r.Messages = r.Messages[:0]
	r.CartItem = ""
	r.ItemStatus = ItemStatusUnset
	r.Recommended = false
	r.NextStep = StepNone
	r.Signals = Signals{}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Messages = append(make([]string, 0, len(r.Messages)+4), r.Messages...)
	return &out
}

func (r *Record) Validate() error {
	if r == nil {
		return errors.New("nil record")
	}
	if strings.TrimSpace(r.SessionID) == "" {
		return ErrInvalidSession
	}
	switch r.NextStep {
	case StepNone, StepInventory, StepRecommendation, StepPayment, StepFulfillment, StepEnd:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStep, r.NextStep)
	}
	switch r.ItemStatus {
	case ItemStatusUnset, ItemStatusInStock, ItemStatusOutOfStock:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, r.ItemStatus)
	}
	if r.ItemStatus != ItemStatusUnset && strings.TrimSpace(r.CartItem) == "" {
		return fmt.Errorf("%w: status %s without item", ErrEmptyCart, r.ItemStatus)
	}
	return nil
}
