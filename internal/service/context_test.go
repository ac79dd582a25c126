package service

import (
	"testing"

	"github.com/devishh/chloe-api/internal/adapter/llm"
	"github.com/devishh/chloe-api/internal/domain"
)

func TestAssembleContext(t *testing.T) {
	history := []domain.Message{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	}

	messages := assembleContext("be kind", history, userTurn("bye"))
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != domain.RoleSystem || messages[0].Content != "be kind" {
		t.Fatalf("expected system prompt at index 0, got %+v", messages[0])
	}
	if messages[1].Content != "hi" || messages[2].Content != "hello" {
		t.Fatalf("history out of order: %+v", messages)
	}
	if messages[3].Role != domain.RoleUser || messages[3].Content != "bye" {
		t.Fatalf("unexpected trailing turn: %+v", messages[3])
	}

	// History content passes through verbatim; inputs are not mutated.
	if history[0].Content != "hi" || history[1].Content != "hello" {
		t.Fatalf("history was mutated: %+v", history)
	}
}

func TestAssembleContextNoTrailing(t *testing.T) {
	messages := assembleContext("be kind", nil, nil)
	if len(messages) != 1 {
		t.Fatalf("expected just the system prompt, got %+v", messages)
	}
	if messages[0] != (llm.ChatMessage{Role: domain.RoleSystem, Content: "be kind"}) {
		t.Fatalf("unexpected system message: %+v", messages[0])
	}
}

func TestGreetingTurn(t *testing.T) {
	turn := greetingTurn(startGreetingTemplate, "Sam")
	if turn.Role != domain.RoleUser {
		t.Fatalf("expected user role, got %q", turn.Role)
	}
	if turn.Content != "Hi, I'm Sam. We haven't talked before. Say hello and introduce yourself briefly." {
		t.Fatalf("unexpected greeting: %q", turn.Content)
	}
}

func TestPromptKeyFor(t *testing.T) {
	session := &domain.Conversation{Kind: domain.KindSession}
	if key := promptKeyFor(session); key != domain.GeneralPromptKey {
		t.Fatalf("expected general key, got %q", key)
	}

	journey := &domain.Conversation{Kind: domain.KindJourney, JourneyKey: "grounding"}
	if key := promptKeyFor(journey); key != "grounding" {
		t.Fatalf("expected journey key, got %q", key)
	}
}
