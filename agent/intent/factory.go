package intent

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	"github.com/tanpawarit/chative-retail-orchestrator/agent/llm"
	"github.com/tanpawarit/chative-retail-orchestrator/agent/prompt"
	hfrouterx "github.com/tanpawarit/chative-retail-orchestrator/pkg/hfrouter"
)

// New builds the detector selected by cfg.Mode. Remote modes come wrapped in
// a ResilientDetector.
func New(ctx context.Context, cfg llm.Config) (contractx.IntentDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode := cfg.DetectorMode()
	if mode == contractx.DetectorHeuristic {
		log.Info().Str("mode", string(mode)).Msg("intent detector ready")
		return NewHeuristicDetector(), nil
	}

	prompts := prompt.LoadPromptSet()
	if err := prompts.Validate(); err != nil {
		return nil, err
	}

	var (
		remote contractx.IntentDetector
		err    error
	)
	switch mode {
	case contractx.DetectorZeroShot:
		remote, err = NewZeroShotDetector(cfg.ZeroShotURL, cfg.APIKey,
			WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	case contractx.DetectorChatLabel:
		hcfg := cfg.HFRouterFor(mode)
		remote, err = NewChatLabelDetector(hfrouterx.NewClient(hcfg), prompts.Label, ChatLabelConfig{
			Model:       hcfg.ModelName(),
			Temperature: hcfg.Temperature,
			MaxTokens:   cfg.MaxCompletionToken,
		})
	case contractx.DetectorPlanner:
		hcfg := cfg.HFRouterFor(mode)
		chatModel, mErr := hcfg.New(ctx)
		if mErr != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, mErr)
		}
		remote, err = NewPlannerDetector(ctx, chatModel, prompts.Planner)
	default:
		return nil, fmt.Errorf("%w: unknown intent mode %q", contractx.ErrValidation, mode)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s detector: %w", mode, err)
	}

	detector, err := NewResilientDetector(remote, ResilientConfig{
		Name:       string(mode),
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryWait:  cfg.RetryWait,
		Policy:     cfg.FallbackPolicy(),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("mode", string(mode)).
		Str("fallback", string(cfg.FallbackPolicy())).
		Dur("timeout", cfg.Timeout).
		Int("max_retries", cfg.MaxRetries).
		Msg("intent detector ready")
	return detector, nil
}
