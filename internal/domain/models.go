// Package domain defines the core domain models for the chloe API.
package domain

import (
	"encoding/json"
	"time"
)

// ConversationKind distinguishes free-form sessions from guided journeys.
type ConversationKind string

const (
	KindSession ConversationKind = "session"
	KindJourney ConversationKind = "journey"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GeneralPromptKey selects the system prompt for free-form sessions.
const GeneralPromptKey = "general"

// SeedPromptSuffix is appended to a journey key to select its kickoff
// seed prompt.
const SeedPromptSuffix = "_user"

// Conversation is a session or journey container owned by exactly one user.
type Conversation struct {
	ConversationID string           `json:"conversation_id"`
	UserID         string           `json:"user_id"`
	Kind           ConversationKind `json:"kind"`
	JourneyKey     string           `json:"journey_key,omitempty"`
	Title          string           `json:"title,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Active         bool             `json:"active"`
	MessageCount   int              `json:"message_count"`
	LastMessageAt  *time.Time       `json:"last_message_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Message is a single turn in a conversation. UserID is empty for
// system-generated assistant turns. Ordinal is assigned by the store at
// insert time and is strictly increasing per conversation.
type Message struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id,omitempty"`
	Role           string    `json:"role"` // system, user, assistant
	Content        string    `json:"content"`
	Ordinal        int64     `json:"ordinal"`
	CreatedAt      time.Time `json:"created_at"`
}

// Prompt is an externally managed system prompt. Only active prompts are
// eligible for selection.
type Prompt struct {
	Key     string `json:"key"`
	Content string `json:"content"`
	Active  bool   `json:"active"`
}

// Profile holds per-user display preferences. Read-only here; absence of
// a profile never fails a request.
type Profile struct {
	UserID        string `json:"user_id"`
	PreferredName string `json:"preferred_name,omitempty"`
}

// Journey is a catalog entry describing a guided conversation flow. Its
// key doubles as the classification key on journey conversations and as
// the prompt key for the journey's system prompt.
type Journey struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Theme       string          `json:"theme"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	Position    int             `json:"-"`
	Active      bool            `json:"-"`
}
