package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/devishh/chloe-api/internal/domain"
)

// loadHistory fetches the most recent messages of a conversation within
// the configured window, oldest first. An empty conversation yields an
// empty slice, not an error.
func (s *Service) loadHistory(ctx context.Context, conversationID string) ([]domain.Message, error) {
	messages, err := s.store.GetRecentMessages(ctx, conversationID, s.config.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return messages, nil
}

// loadPromptAndHistory issues the prompt lookup and the history load
// concurrently; neither depends on the other's result.
func (s *Service) loadPromptAndHistory(ctx context.Context, promptKey, conversationID string) (string, []domain.Message, error) {
	var systemPrompt string
	var history []domain.Message

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		systemPrompt, err = s.selectPrompt(gctx, promptKey)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.loadHistory(gctx, conversationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return systemPrompt, history, nil
}
