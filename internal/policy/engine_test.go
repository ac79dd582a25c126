package policy

import (
	"context"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func TestEvaluateAllowsOwner(t *testing.T) {
	engine := newTestEngine(t)

	decision, err := engine.Evaluate(context.Background(), AccessInput{
		UserID:  "u1",
		OwnerID: "u1",
		Kind:    "session",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionAllow {
		t.Fatalf("expected allow, got %q", decision)
	}
}

func TestEvaluateDeniesMismatch(t *testing.T) {
	engine := newTestEngine(t)

	cases := []struct {
		name  string
		input AccessInput
	}{
		{"other owner", AccessInput{UserID: "u1", OwnerID: "u2", Kind: "session"}},
		{"empty owner", AccessInput{UserID: "u1", OwnerID: "", Kind: "session"}},
		{"empty caller", AccessInput{UserID: "", OwnerID: "", Kind: "journey"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := engine.Evaluate(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if decision != DecisionDeny {
				t.Fatalf("expected deny, got %q", decision)
			}
		})
	}
}

func TestNewEngineRejectsBrokenPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package chat_access\n\ndecision := {")
	if err == nil {
		t.Fatal("expected an error for a broken policy")
	}
}
