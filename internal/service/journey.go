package service

import (
	"context"
	"fmt"

	"github.com/devishh/chloe-api/internal/domain"
)

// ListJourneys returns the active journey catalog in display order.
func (s *Service) ListJourneys(ctx context.Context) ([]domain.JourneyListItem, error) {
	journeys, err := s.store.ListJourneys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}

	items := make([]domain.JourneyListItem, 0, len(journeys))
	for _, j := range journeys {
		items = append(items, domain.JourneyListItem{
			Key:         j.Key,
			Title:       j.Title,
			Description: j.Description,
			Theme:       j.Theme,
			Metadata:    j.Metadata,
		})
	}
	return items, nil
}

// ResolveJourney returns the caller's active journey conversation for the
// classification key, creating it if none exists. An unknown or inactive
// key is reported as not found.
func (s *Service) ResolveJourney(ctx context.Context, userID, key string) (*domain.ResolveJourneyResponse, error) {
	journey, err := s.store.GetJourney(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get journey: %w", err)
	}
	if journey == nil {
		return nil, domain.ErrNotFound
	}

	conv, err := s.getOrCreateJourney(ctx, userID, journey)
	if err != nil {
		return nil, err
	}

	return &domain.ResolveJourneyResponse{
		ConversationID: conv.ConversationID,
		Key:            journey.Key,
		Title:          journey.Title,
	}, nil
}

// KickoffJourney produces the first assistant turn of a journey. The
// context is the journey's system prompt plus its seed prompt as the sole
// user turn; the seed itself is not persisted. If anything fails after
// resolution, the conversation is removed so the next resolve recreates
// it cleanly.
func (s *Service) KickoffJourney(ctx context.Context, userID, conversationID string) (*domain.TurnResponse, error) {
	conv, err := s.resolveOwned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.Kind != domain.KindJourney || conv.JourneyKey == "" {
		return nil, domain.ErrNotFound
	}
	if conv.MessageCount > 0 {
		return nil, domain.ErrJourneyStarted
	}

	systemPrompt, seedPrompt, err := s.selectJourneyPrompts(ctx, conv.JourneyKey)
	if err != nil {
		return nil, err
	}

	messages := assembleContext(systemPrompt, nil, userTurn(seedPrompt))
	text, err := s.llmClient.Complete(ctx, messages)
	if err != nil {
		s.cleanupConversation(ctx, conv.ConversationID)
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	assistant, err := s.commitAssistantTurn(ctx, conv.ConversationID, text)
	if err != nil {
		s.cleanupConversation(ctx, conv.ConversationID)
		return nil, err
	}

	return &domain.TurnResponse{
		ConversationID: conv.ConversationID,
		MessageID:      assistant.MessageID,
		Role:           assistant.Role,
		Content:        assistant.Content,
		Ordinal:        assistant.Ordinal,
		CreatedAt:      assistant.CreatedAt,
	}, nil
}
