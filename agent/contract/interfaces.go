package contract

import (
	"context"

	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

// IntentDetector turns the latest user message into routing signals.
type IntentDetector interface {
	Detect(ctx context.Context, req DetectRequest) (statex.Signals, error)
}

// Worker is a single-purpose step. It reads a copy of the record and returns
// the fields it wants changed; it never decides the next step.
type Worker interface {
	Name() statex.Step
	Run(ctx context.Context, rec *statex.Record) (statex.Update, error)
}

type WorkerCatalog interface {
	Lookup(step statex.Step) (Worker, error)
}
