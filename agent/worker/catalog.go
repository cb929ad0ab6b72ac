// Package worker holds the stub backend capabilities a turn can invoke.
package worker

import (
	"context"
	"fmt"
	"sort"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

type Config struct {
	OutOfStockMarker string `split_words:"true" default:"red"`
	AlternativeItem  string `split_words:"true" default:"Blue Shirt"`
	TrackingID       string `split_words:"true" default:"#BLU-999"`
}

var DefaultConfig = Config{
	OutOfStockMarker: "red",
	AlternativeItem:  "Blue Shirt",
	TrackingID:       "#BLU-999",
}

// Func adapts a plain function to contract.Worker.
type Func struct {
	Step statex.Step
	Fn   func(ctx context.Context, rec *statex.Record) (statex.Update, error)
}

func (f Func) Name() statex.Step { return f.Step }

func (f Func) Run(ctx context.Context, rec *statex.Record) (statex.Update, error) {
	return f.Fn(ctx, rec)
}

type Catalog struct {
	workers map[statex.Step]contractx.Worker
}

var _ contractx.WorkerCatalog = (*Catalog)(nil)

func NewCatalog(workers ...contractx.Worker) *Catalog {
	c := &Catalog{workers: make(map[statex.Step]contractx.Worker, len(workers))}
	for _, w := range workers {
		if w == nil {
			continue
		}
		c.workers[w.Name()] = w
	}
	return c
}

// DefaultCatalog wires the four stub workers.
func DefaultCatalog(cfg Config) *Catalog {
	cfg = withDefaults(cfg)
	return NewCatalog(
		NewInventory(cfg.OutOfStockMarker),
		NewRecommendation(cfg.AlternativeItem),
		NewPayment(),
		NewFulfillment(cfg.TrackingID),
	)
}

func (c *Catalog) Lookup(step statex.Step) (contractx.Worker, error) {
	if c != nil {
		if w, ok := c.workers[step]; ok {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: step=%s", contractx.ErrUnknownWorker, step)
}

// Steps lists registered steps in pipeline order; unknown steps sort last.
func (c *Catalog) Steps() []statex.Step {
	if c == nil {
		return nil
	}
	order := make(map[statex.Step]int, len(statex.Workers))
	for i, s := range statex.Workers {
		order[s] = i
	}
	steps := make([]statex.Step, 0, len(c.workers))
	for s := range c.workers {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool {
		oi, okI := order[steps[i]]
		oj, okJ := order[steps[j]]
		switch {
		case okI && okJ:
			return oi < oj
		case okI != okJ:
			return okI
		default:
			return steps[i] < steps[j]
		}
	})
	return steps
}

func withDefaults(cfg Config) Config {
	if cfg.OutOfStockMarker == "" {
		cfg.OutOfStockMarker = DefaultConfig.OutOfStockMarker
	}
	if cfg.AlternativeItem == "" {
		cfg.AlternativeItem = DefaultConfig.AlternativeItem
	}
	if cfg.TrackingID == "" {
		cfg.TrackingID = DefaultConfig.TrackingID
	}
	return cfg
}
