package service

import (
	"context"
	"fmt"

	"github.com/devishh/chloe-api/internal/domain"
)

// selectPrompt returns the content of the active prompt for key. A
// conversation cannot proceed without its system prompt, so a missing
// prompt is a hard failure.
func (s *Service) selectPrompt(ctx context.Context, key string) (string, error) {
	prompt, err := s.store.GetPrompt(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to get prompt: %w", err)
	}
	if prompt == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrPromptNotFound, key)
	}
	return prompt.Content, nil
}

// selectJourneyPrompts returns the journey's system prompt and kickoff
// seed prompt. Both are required: the kickoff flow has no other source
// for its first user turn, so a missing seed fails the request.
func (s *Service) selectJourneyPrompts(ctx context.Context, key string) (systemPrompt, seedPrompt string, err error) {
	seedKey := key + domain.SeedPromptSuffix
	prompts, err := s.store.GetPrompts(ctx, []string{key, seedKey})
	if err != nil {
		return "", "", fmt.Errorf("failed to get prompts: %w", err)
	}

	systemPrompt, ok := prompts[key]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", domain.ErrPromptNotFound, key)
	}
	seedPrompt, ok = prompts[seedKey]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", domain.ErrPromptNotFound, seedKey)
	}
	return systemPrompt, seedPrompt, nil
}

// promptKeyFor resolves which system prompt a conversation uses: the
// journey's classification key for journeys, the general key otherwise.
func promptKeyFor(conv *domain.Conversation) string {
	if conv.Kind == domain.KindJourney && conv.JourneyKey != "" {
		return conv.JourneyKey
	}
	return domain.GeneralPromptKey
}
