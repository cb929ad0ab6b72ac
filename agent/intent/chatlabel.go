package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

const SourceChatLabel = "chat_label"

type ChatLabelConfig struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// ChatLabelDetector asks a chat-completion model to answer with one label.
type ChatLabelDetector struct {
	client       *openaisdk.Client
	systemPrompt string
	cfg          ChatLabelConfig
}

var _ contractx.IntentDetector = (*ChatLabelDetector)(nil)

func NewChatLabelDetector(client *openaisdk.Client, systemPrompt string, cfg ChatLabelConfig) (*ChatLabelDetector, error) {
	if client == nil {
		return nil, errors.New("chat label client is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: label", contractx.ErrPromptMissing)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("chat label model is required")
	}
	return &ChatLabelDetector{client: client, systemPrompt: systemPrompt, cfg: cfg}, nil
}

func (d *ChatLabelDetector) Detect(ctx context.Context, req contractx.DetectRequest) (statex.Signals, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return statex.Signals{Source: SourceChatLabel}, nil
	}

	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(strings.TrimSpace(d.cfg.Model)),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(d.systemPrompt),
			openaisdk.UserMessage(text),
		},
		Temperature: openaisdk.Float(float64(d.cfg.Temperature)),
	}
	if d.cfg.MaxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(d.cfg.MaxTokens))
	}

	resp, err := d.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openaisdk.Error
		if errors.As(err, &apiErr) {
			return statex.Signals{}, fmt.Errorf("%w: %w", contractx.ErrClassifierUnavailable, &HTTPStatusError{
				StatusCode: apiErr.StatusCode,
				URL:        "chat/completions",
				Body:       truncate(apiErr.Error(), 512),
			})
		}
		return statex.Signals{}, fmt.Errorf("%w: chat completion: %v", contractx.ErrClassifierUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return statex.Signals{}, fmt.Errorf("%w: chat completion returned no choices", contractx.ErrMalformedResponse)
	}

	label, ok := matchLabel(resp.Choices[0].Message.Content)
	if !ok {
		return statex.Signals{}, fmt.Errorf("%w: no known label in %q", contractx.ErrMalformedResponse,
			truncate(resp.Choices[0].Message.Content, 120))
	}

	sig := label.Signals()
	sig.Source = SourceChatLabel
	return sig, nil
}

// matchLabel picks the label that appears first in free-form model output.
func matchLabel(content string) (contractx.Label, bool) {
	lower := strings.ToLower(content)
	if l, ok := contractx.ParseLabel(strings.Trim(lower, " \t\r\n.\"'`")); ok {
		return l, true
	}

	best := -1
	var found contractx.Label
	for _, l := range contractx.CandidateLabels {
		idx := strings.Index(lower, string(l))
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			found = l
		}
	}
	return found, best >= 0
}
