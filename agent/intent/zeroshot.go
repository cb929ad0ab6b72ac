package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

const (
	SourceZeroShot       = "zeroshot"
	maxResponseSizeBytes = 1 << 20
)

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// zeroShotScore is one entry of the list-shaped response.
type zeroShotScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// zeroShotColumns is the older column-shaped response.
type zeroShotColumns struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
	Error  string    `json:"error"`
}

type ZeroShotOption func(*ZeroShotDetector)

func WithHTTPClient(client *http.Client) ZeroShotOption {
	return func(d *ZeroShotDetector) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// ZeroShotDetector asks a zero-shot text classification endpoint for the
// best label among contract.CandidateLabels.
type ZeroShotDetector struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

var _ contractx.IntentDetector = (*ZeroShotDetector)(nil)

func NewZeroShotDetector(endpoint, token string, opts ...ZeroShotOption) (*ZeroShotDetector, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("zero-shot endpoint is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid zero-shot endpoint: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("zero-shot token is required")
	}

	d := &ZeroShotDetector{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

func (d *ZeroShotDetector) Detect(ctx context.Context, req contractx.DetectRequest) (statex.Signals, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return statex.Signals{Source: SourceZeroShot}, nil
	}

	labels := make([]string, 0, len(contractx.CandidateLabels))
	for _, l := range contractx.CandidateLabels {
		labels = append(labels, string(l))
	}
	body, err := json.Marshal(zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels},
	})
	if err != nil {
		return statex.Signals{}, fmt.Errorf("%w: marshal zero-shot request: %v", contractx.ErrValidation, err)
	}

	raw, err := d.post(ctx, body)
	if err != nil {
		return statex.Signals{}, err
	}

	top, err := decodeZeroShot(raw)
	if err != nil {
		return statex.Signals{}, err
	}
	label, ok := contractx.ParseLabel(top)
	if !ok {
		return statex.Signals{}, fmt.Errorf("%w: unknown label %q", contractx.ErrMalformedResponse, top)
	}

	sig := label.Signals()
	sig.Source = SourceZeroShot
	return sig, nil
}

func (d *ZeroShotDetector) post(ctx context.Context, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build zero-shot request: %v", contractx.ErrValidation, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+d.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: execute zero-shot request: %v", contractx.ErrClassifierUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read zero-shot response: %v", contractx.ErrClassifierUnavailable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %w", contractx.ErrClassifierUnavailable, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			URL:        d.endpoint,
			Body:       truncate(string(raw), 512),
		})
	}
	return raw, nil
}

// decodeZeroShot returns the best label from either response shape.
func decodeZeroShot(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)

	if bytes.HasPrefix(trimmed, []byte("[")) {
		var scores []zeroShotScore
		if err := json.Unmarshal(trimmed, &scores); err != nil {
			return "", fmt.Errorf("%w: decode zero-shot list: %v", contractx.ErrMalformedResponse, err)
		}
		best := -1
		for i, s := range scores {
			if strings.TrimSpace(s.Label) == "" {
				continue
			}
			if best < 0 || s.Score > scores[best].Score {
				best = i
			}
		}
		if best < 0 {
			return "", fmt.Errorf("%w: zero-shot response has no labels", contractx.ErrMalformedResponse)
		}
		return scores[best].Label, nil
	}

	var cols zeroShotColumns
	if err := json.Unmarshal(trimmed, &cols); err != nil {
		return "", fmt.Errorf("%w: decode zero-shot object: %v", contractx.ErrMalformedResponse, err)
	}
	if cols.Error != "" {
		return "", fmt.Errorf("%w: %s", contractx.ErrClassifierUnavailable, cols.Error)
	}
	if len(cols.Labels) == 0 {
		return "", fmt.Errorf("%w: zero-shot response has no labels", contractx.ErrMalformedResponse)
	}
	best := 0
	if len(cols.Scores) == len(cols.Labels) {
		for i := range cols.Scores {
			if cols.Scores[i] > cols.Scores[best] {
				best = i
			}
		}
	}
	return cols.Labels[best], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
