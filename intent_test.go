package solin

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestResolveFastPath(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("must not be called")}
	resolver := &Resolver{Generator: generator}

	tests := []string{
		"start expense tracker",
		"Please START Expense Tracker now",
		"could you open expense tracker",
		"begin expense tracker!",
	}
	for _, input := range tests {
		intent, err := resolver.Resolve(context.Background(), input)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", input, err)
		}
		if intent.Action != "start_expense_tracker" {
			t.Errorf("Resolve(%q).Action = %q, want start_expense_tracker", input, intent.Action)
		}
	}
	if generator.calls != 0 {
		t.Errorf("fast path made %d network calls, want 0", generator.calls)
	}
}

func TestResolveThroughGenerator(t *testing.T) {
	generator := &fakeGenerator{
		reply: "Here you go:\n```json\n{\"action\": \"add_expense\", \"params\": {\"amount\": 250, \"description\": \"lunch\"}}\n```",
	}
	resolver := &Resolver{Generator: generator}

	intent, err := resolver.Resolve(context.Background(), "I spent 250 on lunch")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if intent.Action != "add_expense" {
		t.Errorf("Action = %q, want add_expense", intent.Action)
	}
	if got, ok := intent.Params["amount"].(float64); !ok || got != 250 {
		t.Errorf("Params[amount] = %v, want 250", intent.Params["amount"])
	}
}

func TestResolveMissingParamsDefaultsEmpty(t *testing.T) {
	resolver := &Resolver{Generator: &fakeGenerator{reply: `{"action": "expense_status"}`}}
	intent, err := resolver.Resolve(context.Background(), "how are my expenses")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if intent.Params == nil {
		t.Error("Params is nil, want an empty map")
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name      string
		generator *fakeGenerator
		want      error
	}{
		{"generator failure", &fakeGenerator{err: fmt.Errorf("down")}, ErrUnresolved},
		{"no object in reply", &fakeGenerator{reply: "I cannot help with that."}, ErrNoObject},
		{"object without action", &fakeGenerator{reply: `{"params": {}}`}, ErrMalformedObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &Resolver{Generator: tt.generator}
			_, err := resolver.Resolve(context.Background(), "something unusual")
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve error = %v, want %v", err, tt.want)
			}
		})
	}
}
