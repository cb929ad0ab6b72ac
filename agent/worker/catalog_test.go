package worker

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
	statex "github.com/tanpawarit/chative-retail-orchestrator/agent/state"
)

func TestDefaultCatalogSteps(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog(Config{})
	steps := catalog.Steps()
	want := []statex.Step{statex.StepInventory, statex.StepRecommendation, statex.StepPayment, statex.StepFulfillment}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step[%d] = %s, want %s", i, steps[i], want[i])
		}
		w, err := catalog.Lookup(want[i])
		if err != nil {
			t.Fatalf("Lookup(%s) error = %v", want[i], err)
		}
		if w.Name() != want[i] {
			t.Fatalf("Lookup(%s).Name() = %s", want[i], w.Name())
		}
	}
}

func TestCatalogLookupUnknown(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog(DefaultConfig)
	for _, step := range []statex.Step{statex.StepNone, statex.StepEnd, "shipping"} {
		if _, err := catalog.Lookup(step); !errors.Is(err, contractx.ErrUnknownWorker) {
			t.Fatalf("Lookup(%s) error = %v, want ErrUnknownWorker", step, err)
		}
	}
}

func TestInventoryOutOfStockMarker(t *testing.T) {
	t.Parallel()

	inv := NewInventory("red")
	rec := statex.NewRecord("s1", "user_01", "terminal")
	rec.CartItem = "Red Shirt"

	u, err := inv.Run(context.Background(), rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if u.ItemStatus != statex.ItemStatusOutOfStock {
		t.Fatalf("ItemStatus = %q, want out_of_stock", u.ItemStatus)
	}
	if len(u.Messages) != 1 || !statex.IsSystemMessage(u.Messages[0]) {
		t.Fatalf("unexpected messages: %#v", u.Messages)
	}
}

func TestInventoryInStock(t *testing.T) {
	t.Parallel()

	inv := NewInventory("red")
	rec := statex.NewRecord("s1", "user_01", "terminal")
	rec.CartItem = "Blue Shirt"

	u, err := inv.Run(context.Background(), rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if u.ItemStatus != statex.ItemStatusInStock {
		t.Fatalf("ItemStatus = %q, want in_stock", u.ItemStatus)
	}
}

func TestInventoryIdempotent(t *testing.T) {
	t.Parallel()

	inv := NewInventory("red")
	for _, item := range []string{"Red Shirt", "Blue Shirt", "bored cat"} {
		rec := statex.NewRecord("s1", "user_01", "terminal")
		rec.CartItem = item

		first, err := inv.Run(context.Background(), rec)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		second, err := inv.Run(context.Background(), rec)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if first.ItemStatus != second.ItemStatus {
			t.Fatalf("item %q: %q then %q", item, first.ItemStatus, second.ItemStatus)
		}

		if err := rec.Apply(first); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if err := rec.Apply(second); err != nil {
			t.Fatalf("second Apply() error = %v", err)
		}
	}
}

func TestStubWorkerReplies(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog(DefaultConfig)
	rec := statex.NewRecord("s1", "user_01", "terminal")
	rec.CartItem = "Red Shirt"

	cases := []struct {
		step        statex.Step
		reply       string
		recommended bool
	}{
		{statex.StepRecommendation, "System: Found alternative 'Blue Shirt' (Same Style).", true},
		{statex.StepPayment, "System: Payment Authorized.", false},
		{statex.StepFulfillment, "System: Order Shipped. Tracking ID: #BLU-999", false},
	}

	for _, tc := range cases {
		w, err := catalog.Lookup(tc.step)
		if err != nil {
			t.Fatalf("Lookup(%s) error = %v", tc.step, err)
		}
		u, err := w.Run(context.Background(), rec.Clone())
		if err != nil {
			t.Fatalf("%s Run() error = %v", tc.step, err)
		}
		if len(u.Messages) != 1 || u.Messages[0] != tc.reply {
			t.Fatalf("%s messages = %#v, want %q", tc.step, u.Messages, tc.reply)
		}
		if u.Recommended != tc.recommended {
			t.Fatalf("%s Recommended = %v", tc.step, u.Recommended)
		}
		if u.ItemStatus != statex.ItemStatusUnset {
			t.Fatalf("%s must not set item status, got %q", tc.step, u.ItemStatus)
		}
	}
}

func TestFuncAdapter(t *testing.T) {
	t.Parallel()

	called := false
	w := Func{
		Step: statex.StepPayment,
		Fn: func(ctx context.Context, rec *statex.Record) (statex.Update, error) {
			called = true
			return statex.Update{}, nil
		},
	}
	catalog := NewCatalog(w, nil)
	got, err := catalog.Lookup(statex.StepPayment)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if _, err := got.Run(context.Background(), statex.NewRecord("s", "u", "c")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !called {
		t.Fatal("wrapped func not called")
	}
}
