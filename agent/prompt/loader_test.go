package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSet(t *testing.T) {
	t.Parallel()

	p := LoadPromptSet()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !strings.Contains(p.Planner, "next_agents") {
		t.Fatal("planner prompt must describe next_agents")
	}
	// the planner prompt is rendered as an f-string template
	if strings.ContainsAny(p.Planner, "{}") {
		t.Fatal("planner prompt must not contain template braces")
	}
	for _, label := range []string{"purchase inquiry", "affirmation", "denial"} {
		if !strings.Contains(p.Label, label) {
			t.Fatalf("label prompt missing %q", label)
		}
	}
}
