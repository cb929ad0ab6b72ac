package intent

import (
	"context"
	"testing"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
)

func TestHeuristicDetector(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		message     string
		purchase    bool
		affirmation bool
	}{
		{name: "buy", message: "I want to buy a Red Shirt", purchase: true},
		{name: "uppercase buy", message: "BUY IT NOW", purchase: true},
		{name: "yes", message: "Yes please", affirmation: true},
		{name: "both", message: "yes, buy it", purchase: true, affirmation: true},
		{name: "neither", message: "hello there"},
		{name: "empty", message: "   "},
	}

	d := NewHeuristicDetector()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig, err := d.Detect(context.Background(), contractx.DetectRequest{Message: tc.message})
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if sig.Purchase != tc.purchase || sig.Affirmation != tc.affirmation {
				t.Fatalf("Detect(%q) = %+v", tc.message, sig)
			}
			if sig.Source != SourceHeuristic {
				t.Fatalf("source = %q", sig.Source)
			}
		})
	}
}
