package domain

import "errors"

// Sentinel errors surfaced by the service layer. Handlers map them onto
// HTTP status codes; everything else is an internal failure.
var (
	// ErrNotFound covers both a missing conversation and a conversation
	// owned by another user, so callers cannot probe for existence.
	ErrNotFound = errors.New("not found")

	// ErrPromptNotFound means no active prompt exists for a required key.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrJourneyStarted means kickoff was requested for a journey that
	// already has messages.
	ErrJourneyStarted = errors.New("journey already started")
)
