package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devishh/chloe-api/internal/adapter/llm"
	"github.com/devishh/chloe-api/internal/domain"
	store "github.com/devishh/chloe-api/internal/repository"
)

func TestListJourneys(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &stubCompletion{})

	items, err := svc.ListJourneys(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "grounding", items[0].Key)
	assert.NotEmpty(t, items[0].Title)
}

func TestResolveJourney(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &stubCompletion{})

	first, err := svc.ResolveJourney(ctx, "u1", "grounding")
	require.NoError(t, err)
	assert.Equal(t, "grounding", first.Key)
	assert.NotEmpty(t, first.ConversationID)

	// Resolving again returns the same conversation.
	second, err := svc.ResolveJourney(ctx, "u1", "grounding")
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	// A different user gets their own conversation.
	other, err := svc.ResolveJourney(ctx, "u2", "grounding")
	require.NoError(t, err)
	assert.NotEqual(t, first.ConversationID, other.ConversationID)

	_, err = svc.ResolveJourney(ctx, "u1", "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKickoffJourney(t *testing.T) {
	ctx := context.Background()
	stub := &stubCompletion{reply: "Let's begin with a slow breath."}
	svc, db := newTestService(t, stub)

	resolved, err := svc.ResolveJourney(ctx, "u1", "grounding")
	require.NoError(t, err)

	resp, err := svc.KickoffJourney(ctx, "u1", resolved.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, resp.Role)
	assert.Equal(t, int64(1), resp.Ordinal)
	assert.Equal(t, "Let's begin with a slow breath.", resp.Content)

	// The assembled context is the journey system prompt plus the seed
	// prompt as the only user turn.
	require.Len(t, stub.calls, 1)
	messages := stub.calls[0]
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleSystem, messages[0].Role)
	assert.Equal(t, domain.RoleUser, messages[1].Role)
	assert.NotEmpty(t, messages[1].Content)

	// The seed turn is not persisted.
	history, err := db.GetRecentMessages(ctx, resolved.ConversationID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleAssistant, history[0].Role)
}

func TestKickoffJourneyAlreadyStarted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &stubCompletion{reply: "hello"})

	resolved, err := svc.ResolveJourney(ctx, "u1", "wind_down")
	require.NoError(t, err)

	_, err = svc.KickoffJourney(ctx, "u1", resolved.ConversationID)
	require.NoError(t, err)

	_, err = svc.KickoffJourney(ctx, "u1", resolved.ConversationID)
	assert.ErrorIs(t, err, domain.ErrJourneyStarted)
}

func TestKickoffJourneyRejectsSessions(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t, &stubCompletion{reply: "hello"})

	conv := seedConversation(t, db, "u1")

	_, err := svc.KickoffJourney(ctx, "u1", conv.ConversationID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKickoffJourneyCompletionFailureCleansUp(t *testing.T) {
	ctx := context.Background()
	db, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stub := &stubCompletion{err: errors.New("upstream down")}
	svc := newTestServiceWith(t, db, stub)

	resolved, err := svc.ResolveJourney(ctx, "u1", "grounding")
	require.NoError(t, err)

	_, err = svc.KickoffJourney(ctx, "u1", resolved.ConversationID)
	require.Error(t, err)

	// The conversation was removed, so the next resolve starts fresh.
	conv, err := db.GetConversation(ctx, resolved.ConversationID)
	require.NoError(t, err)
	assert.Nil(t, conv)

	stub.err = nil
	stub.reply = "Let's try again."
	again, err := svc.ResolveJourney(ctx, "u1", "grounding")
	require.NoError(t, err)
	assert.NotEqual(t, resolved.ConversationID, again.ConversationID)

	resp, err := svc.KickoffJourney(ctx, "u1", again.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Ordinal)
}

func TestKickoffJourneyMissingSeedPrompt(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t, &stubCompletion{reply: "hello"})

	// Retire the seed prompt; the kickoff has no other source for its
	// first user turn.
	err := db.UpsertPrompt(ctx, &domain.Prompt{Key: "grounding" + domain.SeedPromptSuffix, Content: "x", Active: false})
	require.NoError(t, err)

	resolved, err := svc.ResolveJourney(ctx, "u1", "grounding")
	require.NoError(t, err)

	_, err = svc.KickoffJourney(ctx, "u1", resolved.ConversationID)
	assert.ErrorIs(t, err, domain.ErrPromptNotFound)
}

var _ llm.CompletionClient = (*stubCompletion)(nil)
