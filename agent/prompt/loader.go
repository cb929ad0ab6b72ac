package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
)

var (
	//go:embed template/planner.txt
	plannerRaw string

	//go:embed template/label.txt
	labelRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Planner string
	Label   string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Planner: strings.TrimSpace(plannerRaw),
		Label:   strings.TrimSpace(labelRaw),
	}
}

func (p PromptSet) Validate() error {
	if p.Planner == "" {
		return fmt.Errorf("%w: planner", contractx.ErrPromptMissing)
	}
	if p.Label == "" {
		return fmt.Errorf("%w: label", contractx.ErrPromptMissing)
	}
	return nil
}
