package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devishh/chloe-api/internal/domain"
)

// StartSession creates a new session conversation and greets the caller.
// If anything fails after the conversation insert, the row is removed
// again so the partial creation looks like a no-op.
func (s *Service) StartSession(ctx context.Context, userID string) (*domain.StartSessionResponse, error) {
	name := s.preferredName(ctx, userID)

	// Resolve the prompt before inserting anything so a missing prompt
	// leaves no orphan behind.
	systemPrompt, err := s.selectPrompt(ctx, domain.GeneralPromptKey)
	if err != nil {
		return nil, err
	}

	conv := &domain.Conversation{
		ConversationID: newConversationID(),
		UserID:         userID,
		Kind:           domain.KindSession,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	messages := assembleContext(systemPrompt, nil, greetingTurn(startGreetingTemplate, name))
	text, err := s.llmClient.Complete(ctx, messages)
	if err != nil {
		s.cleanupConversation(ctx, conv.ConversationID)
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	if _, err := s.commitAssistantTurn(ctx, conv.ConversationID, text); err != nil {
		s.cleanupConversation(ctx, conv.ConversationID)
		return nil, err
	}

	return &domain.StartSessionResponse{
		ConversationID: conv.ConversationID,
		Content:        text,
		NameUsed:       name,
	}, nil
}

// ResumeSession greets the caller on an existing conversation: the
// assembled context is the system prompt, the bounded history, and a
// synthetic resume turn. Only the assistant's reply is persisted.
func (s *Service) ResumeSession(ctx context.Context, userID, conversationID string) (*domain.AssistantTurnResponse, error) {
	conv, err := s.resolveOwned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	name := s.preferredName(ctx, userID)

	systemPrompt, history, err := s.loadPromptAndHistory(ctx, promptKeyFor(conv), conv.ConversationID)
	if err != nil {
		return nil, err
	}

	messages := assembleContext(systemPrompt, history, greetingTurn(resumeGreetingTemplate, name))
	text, err := s.llmClient.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	assistant, err := s.commitAssistantTurn(ctx, conv.ConversationID, text)
	if err != nil {
		return nil, err
	}

	return &domain.AssistantTurnResponse{
		ConversationID: conv.ConversationID,
		MessageID:      assistant.MessageID,
		Role:           assistant.Role,
		Content:        assistant.Content,
	}, nil
}

// SendReply posts a user turn and returns the assistant's reply. The user
// turn is committed before the completion call so it survives any later
// failure; it is therefore already part of the loaded history and the
// assembler appends no extra turn.
func (s *Service) SendReply(ctx context.Context, userID, conversationID, content string) (*domain.TurnResponse, error) {
	conv, err := s.resolveOwned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		MessageID:      newMessageID(),
		ConversationID: conv.ConversationID,
		UserID:         userID,
		Role:           domain.RoleUser,
		Content:        strings.TrimSpace(content),
	}
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to persist user turn: %w", err)
	}

	systemPrompt, history, err := s.loadPromptAndHistory(ctx, promptKeyFor(conv), conv.ConversationID)
	if err != nil {
		return nil, err
	}

	messages := assembleContext(systemPrompt, history, nil)
	text, err := s.llmClient.Complete(ctx, messages)
	if err != nil {
		// The user turn stays persisted.
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	assistant, err := s.commitAssistantTurn(ctx, conv.ConversationID, text)
	if err != nil {
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

// commitAssistantTurn persists an assistant message. The ordinal and
// timestamp assigned by the store are authoritative.
func (s *Service) commitAssistantTurn(ctx context.Context, conversationID, content string) (*domain.Message, error) {
	assistant := &domain.Message{
		MessageID:      newMessageID(),
		ConversationID: conversationID,
		Role:           domain.RoleAssistant,
		Content:        content,
	}
	if err := s.store.CreateMessage(ctx, assistant); err != nil {
		return nil, fmt.Errorf("failed to persist assistant turn: %w", err)
	}
	return assistant, nil
}
