package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	nodex "github.com/tanpawarit/chative-retail-orchestrator/agent/nodes/orchestrator"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

var (
	ErrInvalidSession = nodex.ErrInvalidSession
	ErrHopLimit       = nodex.ErrHopLimit
)

const RuleHopLimit = nodex.RuleHopLimit

// TurnResult carries the trace, the system replies, and the record after a
// turn.
type TurnResult = nodex.GraphOutput

type Config struct {
	UserID  string
	Channel string
	MaxHops int
}

type Orchestrator struct {
	store    statex.Store
	detector contractx.IntentDetector
	catalog  contractx.WorkerCatalog

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	userID  string
	channel string
	maxHops int

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

func New(
	store statex.Store,
	detector contractx.IntentDetector,
	catalog contractx.WorkerCatalog,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if detector == nil {
		return nil, errors.New("intent detector is required")
	}
	if catalog == nil {
		return nil, errors.New("worker catalog is required")
	}

	userID := strings.TrimSpace(cfg.UserID)
	if userID == "" {
		userID = "user_01"
	}
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = "terminal"
	}
	maxHops := cfg.MaxHops
	if maxHops <= 0 {
		maxHops = nodex.DefaultMaxHops
	}

	o := &Orchestrator{
		store:    store,
		detector: detector,
		catalog:  catalog,
		userID:   userID,
		channel:  channel,
		maxHops:  maxHops,
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}

	graphRunner, err := o.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage runs one turn for sessionID. Turns of the same session are
// serialized; a failed turn leaves the stored record untouched.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID string, text string) (TurnResult, error) {
	unlock := o.lockSession(sessionID)
	defer unlock()

	start := o.now()
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("turn failed")
		return TurnResult{}, err
	}

	log.Debug().
		Str("session_id", sessionID).
		Int("events", len(out.Events)).
		Int("replies", len(out.Replies)).
		Str("final", string(out.Final)).
		Dur("took", o.now().Sub(start)).
		Msg("turn complete")
	return out, nil
}

// Reset forgets everything stored for sessionID.
func (o *Orchestrator) Reset(ctx context.Context, sessionID string) error {
	unlock := o.lockSession(sessionID)
	defer unlock()

	if err := o.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	log.Info().Str("session_id", sessionID).Msg("session reset")
	return nil
}

func (o *Orchestrator) lockSession(sessionID string) func() {
	key := strings.TrimSpace(sessionID)

	o.locksMu.Lock()
	mu, ok := o.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		o.locks[key] = mu
	}
	o.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
