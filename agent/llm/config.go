package llm

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	hfrouterx "github.com/tanpawarit/chative-retail-orchestrator/pkg/hfrouter"
)

// Config selects and tunes the intent detector. Loaded with prefix INTENT.
type Config struct {
	Mode     string `envconfig:"MODE" default:"heuristic"`     // heuristic | zeroshot | chat_label | planner
	Fallback string `envconfig:"FALLBACK" default:"heuristic"` // heuristic | end

	Timeout    time.Duration `envconfig:"TIMEOUT" default:"10s"` // per attempt
	MaxRetries int           `envconfig:"MAX_RETRIES" split_words:"true" default:"1"`
	RetryWait  time.Duration `envconfig:"RETRY_WAIT" split_words:"true" default:"500ms"`

	APIKey      string `envconfig:"API_KEY" split_words:"true"`
	ZeroShotURL string `envconfig:"ZERO_SHOT_URL" split_words:"true" default:"https://router.huggingface.co/hf-inference/models/facebook/bart-large-mnli"`

	BaseURL            string  `envconfig:"BASE_URL" split_words:"true" default:"https://router.huggingface.co/v1"`
	Model              string  `envconfig:"MODEL" default:"HuggingFaceH4/zephyr-7b-beta:featherless-ai"`
	LabelModel         string  `envconfig:"LABEL_MODEL" split_words:"true"`
	PlannerModel       string  `envconfig:"PLANNER_MODEL" split_words:"true"`
	Temperature        float32 `envconfig:"TEMPERATURE" default:"0.1"`
	MaxCompletionToken int     `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"250"`
}

func (c Config) DetectorMode() contractx.DetectorMode {
	mode := contractx.DetectorMode(strings.ToLower(strings.TrimSpace(c.Mode)))
	if mode == "" {
		return contractx.DetectorHeuristic
	}
	return mode
}

func (c Config) FallbackPolicy() contractx.FallbackPolicy {
	if contractx.FallbackPolicy(strings.ToLower(strings.TrimSpace(c.Fallback))) == contractx.FallbackEnd {
		return contractx.FallbackEnd
	}
	return contractx.FallbackHeuristic
}

func (c Config) Validate() error {
	mode := c.DetectorMode()
	switch mode {
	case contractx.DetectorHeuristic:
		return nil
	case contractx.DetectorZeroShot, contractx.DetectorChatLabel, contractx.DetectorPlanner:
	default:
		return fmt.Errorf("%w: unknown intent mode %q", contractx.ErrValidation, c.Mode)
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: api key is required for intent mode %s", contractx.ErrValidation, mode)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be > 0", contractx.ErrValidation)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must be >= 0", contractx.ErrValidation)
	}
	if mode == contractx.DetectorZeroShot {
		if _, err := url.ParseRequestURI(strings.TrimSpace(c.ZeroShotURL)); err != nil {
			return fmt.Errorf("%w: invalid zero-shot url: %v", contractx.ErrValidation, err)
		}
	}
	return nil
}

// HFRouterFor returns the chat-completions config for a chat-backed mode.
func (c Config) HFRouterFor(mode contractx.DetectorMode) hfrouterx.Config {
	modelName := strings.TrimSpace(c.Model)

	switch mode {
	case contractx.DetectorChatLabel:
		if v := strings.TrimSpace(c.LabelModel); v != "" {
			modelName = v
		}
	case contractx.DetectorPlanner:
		if v := strings.TrimSpace(c.PlannerModel); v != "" {
			modelName = v
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return hfrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
	}
}
