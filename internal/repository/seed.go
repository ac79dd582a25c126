package store

import (
	"context"
	"encoding/json"

	"github.com/devishh/chloe-api/internal/domain"
)

// seedCatalog inserts the default journey catalog and prompts on first
// startup. Existing rows are left alone so externally managed prompt
// edits survive restarts.
func (s *SQLiteStore) seedCatalog() error {
	ctx := context.Background()

	var journeyCount int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journeys`).Scan(&journeyCount); err != nil {
		return err
	}
	if journeyCount == 0 {
		journeys := []domain.Journey{
			{
				Key:         "grounding",
				Title:       "Grounding",
				Description: "A short practice to settle and reconnect with the present moment.",
				Theme:       "calm",
				Metadata:    json.RawMessage(`{"duration_minutes": 5}`),
				Position:    1,
				Active:      true,
			},
			{
				Key:         "wind_down",
				Title:       "Wind Down",
				Description: "An evening routine to let go of the day before sleep.",
				Theme:       "night",
				Metadata:    json.RawMessage(`{"duration_minutes": 10}`),
				Position:    2,
				Active:      true,
			},
			{
				Key:         "self_compassion",
				Title:       "Self-Compassion",
				Description: "A guided reflection for treating yourself with more kindness.",
				Theme:       "warm",
				Metadata:    json.RawMessage(`{"duration_minutes": 8}`),
				Position:    3,
				Active:      true,
			},
		}
		for i := range journeys {
			if err := s.UpsertJourney(ctx, &journeys[i]); err != nil {
				return err
			}
		}
	}

	var promptCount int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompts`).Scan(&promptCount); err != nil {
		return err
	}
	if promptCount == 0 {
		prompts := []domain.Prompt{
			{Key: domain.GeneralPromptKey, Content: "You are Chloe, a warm and attentive companion. Keep replies short and conversational.", Active: true},
			{Key: "grounding", Content: "You are Chloe, guiding a brief grounding practice. Move one small step at a time.", Active: true},
			{Key: "grounding" + domain.SeedPromptSuffix, Content: "I'd like to do a grounding practice. Can you lead me through it?", Active: true},
			{Key: "wind_down", Content: "You are Chloe, guiding an evening wind-down. Speak slowly and gently.", Active: true},
			{Key: "wind_down" + domain.SeedPromptSuffix, Content: "I'm getting ready for bed. Help me wind down from today.", Active: true},
			{Key: "self_compassion", Content: "You are Chloe, guiding a self-compassion reflection. Be kind and unhurried.", Active: true},
			{Key: "self_compassion" + domain.SeedPromptSuffix, Content: "I've been hard on myself lately. Can we work on self-compassion?", Active: true},
		}
		for i := range prompts {
			if err := s.UpsertPrompt(ctx, &prompts[i]); err != nil {
				return err
			}
		}
	}

	return nil
}
