package domain

import (
	"encoding/json"
	"time"
)

// ReplyRequest is the body for posting a user turn to a conversation.
type ReplyRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResolveJourneyRequest is the body for resolving a journey conversation
// by classification key.
type ResolveJourneyRequest struct {
	Key string `json:"key"`
}

// StartSessionResponse is returned when a new session is created and
// greeted.
type StartSessionResponse struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
	NameUsed       string `json:"name_used"`
}

// AssistantTurnResponse is returned by the resume flow.
type AssistantTurnResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
}

// TurnResponse is returned by flows that expose the committed assistant
// turn's ordinal and timestamp (reply, kickoff).
type TurnResponse struct {
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Ordinal        int64     `json:"ordinal"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResolveJourneyResponse is returned when a journey conversation is
// resolved or created.
type ResolveJourneyResponse struct {
	ConversationID string `json:"conversation_id"`
	Key            string `json:"key"`
	Title          string `json:"title"`
}

// JourneyListItem is one entry of the journey catalog response.
type JourneyListItem struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Theme       string          `json:"theme"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}
