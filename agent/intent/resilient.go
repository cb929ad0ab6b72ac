package intent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

const SourceFallback = "heuristic_fallback"

type ResilientConfig struct {
	Name       string
	Timeout    time.Duration // per attempt
	MaxRetries int
	RetryWait  time.Duration
	Policy     contractx.FallbackPolicy
}

// ResilientDetector bounds a remote detector with a per-attempt timeout and a
// retry budget. When the budget is spent it either falls back to keywords or
// reports ErrClassifierUnavailable, depending on Policy.
type ResilientDetector struct {
	remote   contractx.IntentDetector
	fallback contractx.IntentDetector
	cfg      ResilientConfig
}

var _ contractx.IntentDetector = (*ResilientDetector)(nil)

func NewResilientDetector(remote contractx.IntentDetector, cfg ResilientConfig) (*ResilientDetector, error) {
	if remote == nil {
		return nil, errors.New("remote detector is required")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be > 0", contractx.ErrValidation)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Policy != contractx.FallbackEnd {
		cfg.Policy = contractx.FallbackHeuristic
	}
	if cfg.Name == "" {
		cfg.Name = "remote"
	}
	return &ResilientDetector{
		remote:   remote,
		fallback: NewHeuristicDetector(),
		cfg:      cfg,
	}, nil
}

func (r *ResilientDetector) Detect(ctx context.Context, req contractx.DetectRequest) (statex.Signals, error) {
	var (
		sig     statex.Signals
		attempt int
	)

	op := func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()

		out, err := r.remote.Detect(attemptCtx, req)
		if err == nil {
			sig = out
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if errors.Is(err, contractx.ErrMalformedResponse) || errors.Is(err, contractx.ErrValidation) {
			return backoff.Permanent(err)
		}

		log.Warn().
			Err(err).
			Str("detector", r.cfg.Name).
			Int("attempt", attempt).
			Msg("intent detector attempt failed")
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.cfg.RetryWait), uint64(r.cfg.MaxRetries)),
		ctx,
	)
	err := backoff.Retry(op, policy)
	if err == nil {
		return sig, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return statex.Signals{}, ctxErr
	}

	log.Warn().
		Err(err).
		Str("detector", r.cfg.Name).
		Int("attempts", attempt).
		Str("policy", string(r.cfg.Policy)).
		Msg("intent detector exhausted, applying fallback")

	if r.cfg.Policy == contractx.FallbackEnd {
		if errors.Is(err, contractx.ErrClassifierUnavailable) || errors.Is(err, contractx.ErrMalformedResponse) {
			return statex.Signals{}, err
		}
		return statex.Signals{}, fmt.Errorf("%w: %v", contractx.ErrClassifierUnavailable, err)
	}

	fb, fbErr := r.fallback.Detect(ctx, req)
	if fbErr != nil {
		return statex.Signals{}, fbErr
	}
	fb.Source = SourceFallback
	return fb, nil
}
