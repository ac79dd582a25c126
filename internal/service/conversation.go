package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/devishh/chloe-api/internal/domain"
	"github.com/devishh/chloe-api/internal/policy"
)

func newConversationID() string {
	return "conv_" + uuid.NewString()
}

func newMessageID() string {
	return "msg_" + uuid.NewString()
}

// resolveOwned looks up a conversation and checks the caller may act on
// it. An ownership mismatch is reported as ErrNotFound, the same as a
// missing conversation, so callers cannot probe for existence.
func (s *Service) resolveOwned(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}

	decision, err := s.policyEngine.Evaluate(ctx, policy.AccessInput{
		UserID:  userID,
		OwnerID: conv.UserID,
		Kind:    string(conv.Kind),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate access policy: %w", err)
	}
	if decision != policy.DecisionAllow {
		return nil, domain.ErrNotFound
	}
	return conv, nil
}

// getOrCreateJourney reuses the caller's active journey conversation for
// the key or creates one with a single insert. A rare concurrent
// duplicate is an accepted edge case, not resolved here.
func (s *Service) getOrCreateJourney(ctx context.Context, userID string, journey *domain.Journey) (*domain.Conversation, error) {
	conv, err := s.store.GetActiveJourney(ctx, userID, journey.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up journey conversation: %w", err)
	}
	if conv != nil {
		return conv, nil
	}

	conv = &domain.Conversation{
		ConversationID: newConversationID(),
		UserID:         userID,
		Kind:           domain.KindJourney,
		JourneyKey:     journey.Key,
		Title:          journey.Title,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create journey conversation: %w", err)
	}
	return conv, nil
}

// cleanupConversation removes a conversation created earlier in the same
// request so a partial creation looks like a no-op to the caller. Best
// effort: a failed cleanup is logged and never escalated.
func (s *Service) cleanupConversation(ctx context.Context, conversationID string) {
	if err := s.store.DeleteConversation(ctx, conversationID); err != nil {
		log.Printf("WARN: failed to clean up conversation %s: %v", conversationID, err)
	}
}
