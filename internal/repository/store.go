// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/devishh/chloe-api/internal/domain"
)

// Store defines the interface for data persistence. Lookups return
// (nil, nil) when the row does not exist; deciding whether that is an
// error belongs to the caller.
type Store interface {
	// Conversation operations
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
	GetActiveJourney(ctx context.Context, userID, journeyKey string) (*domain.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error

	// Message operations. CreateMessage assigns the ordinal and creation
	// timestamp and writes them back into the passed message.
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetRecentMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)

	// Prompt operations (active prompts only)
	GetPrompt(ctx context.Context, key string) (*domain.Prompt, error)
	GetPrompts(ctx context.Context, keys []string) (map[string]string, error)
	UpsertPrompt(ctx context.Context, prompt *domain.Prompt) error

	// Profile operations
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, profile *domain.Profile) error

	// Journey catalog operations
	ListJourneys(ctx context.Context) ([]domain.Journey, error)
	GetJourney(ctx context.Context, key string) (*domain.Journey, error)
	UpsertJourney(ctx context.Context, journey *domain.Journey) error

	// Lifecycle
	Close() error
}
