package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devishh/chloe-api/internal/domain"
)

func TestListJourneysEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/v1/journeys", "test-token", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Journeys []domain.JourneyListItem `json:"journeys"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Journeys, 3)
	assert.Equal(t, "grounding", body.Journeys[0].Key)
	assert.NotEmpty(t, body.Journeys[0].Title)
	assert.NotEmpty(t, body.Journeys[0].Description)
}

func TestResolveJourneyEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/v1/journeys/resolve", "test-token", `{"key": "grounding"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var first domain.ResolveJourneyResponse
	decode(t, rec, &first)
	assert.Equal(t, "grounding", first.Key)
	assert.NotEmpty(t, first.ConversationID)
	assert.NotEmpty(t, first.Title)

	// Resolving again returns the same conversation.
	rec = env.do(http.MethodPost, "/v1/journeys/resolve", "test-token", `{"key": "grounding"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var second domain.ResolveJourneyResponse
	decode(t, rec, &second)
	assert.Equal(t, first.ConversationID, second.ConversationID)
}

func TestResolveJourneyValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/v1/journeys/resolve", "test-token", `{"key": "  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/v1/journeys/resolve", "test-token", `{"key": "unknown"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestKickoffJourneyEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.stub.reply = "Let's begin."

	rec := env.do(http.MethodPost, "/v1/journeys/resolve", "test-token", `{"key": "wind_down"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resolved domain.ResolveJourneyResponse
	decode(t, rec, &resolved)

	rec = env.do(http.MethodPost, "/v1/journeys/"+resolved.ConversationID+"/kickoff", "test-token", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.TurnResponse
	decode(t, rec, &resp)
	assert.Equal(t, domain.RoleAssistant, resp.Role)
	assert.Equal(t, "Let's begin.", resp.Content)
	assert.Equal(t, int64(1), resp.Ordinal)

	// A second kickoff on a started journey is rejected.
	rec = env.do(http.MethodPost, "/v1/journeys/"+resolved.ConversationID+"/kickoff", "test-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Another user cannot kick off this journey.
	rec = env.do(http.MethodPost, "/v1/journeys/"+resolved.ConversationID+"/kickoff", "other-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
