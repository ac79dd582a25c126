package service

import (
	"context"
	"log"
	"strings"

	"github.com/devishh/chloe-api/internal/adapter/llm"
	"github.com/devishh/chloe-api/internal/domain"
)

// defaultName is used in greeting turns when no preferred name is on file.
const defaultName = "friend"

// Greeting templates for the synthetic user turns of the start and
// resume flows. {name} is replaced with the caller's preferred name.
const (
	startGreetingTemplate  = "Hi, I'm {name}. We haven't talked before. Say hello and introduce yourself briefly."
	resumeGreetingTemplate = "Hi, it's {name} again. Greet me and pick up our conversation where we left off."
)

// assembleContext builds the outbound message list: system prompt first,
// stored history verbatim in chronological order, then an optional
// trailing turn. Pure transformation; inputs are not mutated.
func assembleContext(systemPrompt string, history []domain.Message, trailing *llm.ChatMessage) []llm.ChatMessage {
	out := make([]llm.ChatMessage, 0, len(history)+2)
	out = append(out, llm.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	for _, msg := range history {
		out = append(out, llm.ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	if trailing != nil {
		out = append(out, *trailing)
	}
	return out
}

// greetingTurn renders a synthetic user turn from a template and the
// caller's name.
func greetingTurn(template, name string) *llm.ChatMessage {
	return userTurn(strings.ReplaceAll(template, "{name}", name))
}

// userTurn wraps content as a user message.
func userTurn(content string) *llm.ChatMessage {
	return &llm.ChatMessage{
		Role:    domain.RoleUser,
		Content: content,
	}
}

// preferredName returns the caller's preferred display name, falling back
// to the default when no profile or no name is on file. Profile lookups
// never fail a request.
func (s *Service) preferredName(ctx context.Context, userID string) string {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		log.Printf("WARN: failed to load profile for %s: %v", userID, err)
		return defaultName
	}
	if profile == nil || profile.PreferredName == "" {
		return defaultName
	}
	return profile.PreferredName
}
