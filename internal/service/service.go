// Package service implements the conversation flows: context assembly,
// completion invocation, and turn commits.
package service

import (
	"github.com/devishh/chloe-api/internal/adapter/llm"
	"github.com/devishh/chloe-api/internal/config"
	"github.com/devishh/chloe-api/internal/policy"
	store "github.com/devishh/chloe-api/internal/repository"
)

type Service struct {
	store        store.Store
	llmClient    llm.CompletionClient
	policyEngine *policy.Engine
	config       *config.Config
}

func New(store store.Store, llmClient llm.CompletionClient, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        store,
		llmClient:    llmClient,
		policyEngine: policyEngine,
		config:       cfg,
	}
}
