package llm

import (
	"log"
	"os"

	"github.com/devishh/chloe-api/internal/config"
)

const (
	// EnvChloeMode is the environment variable name for mode selection.
	EnvChloeMode = "CHLOE_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewCompletionClient creates a completion client based on the CHLOE_MODE
// environment variable. If CHLOE_MODE=MOCK, returns a MockClient;
// otherwise returns a real Client.
func NewCompletionClient(cfg *config.Config) CompletionClient {
	mode := os.Getenv(EnvChloeMode)

	if mode == ModeMock {
		log.Println("CHLOE_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}

	return NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout, cfg.Completion)
}
