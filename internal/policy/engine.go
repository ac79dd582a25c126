// Package policy evaluates conversation access policy.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
)

// Access decisions.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// AccessInput is the policy input for a conversation access check.
type AccessInput struct {
	UserID  string `json:"user_id"`
	OwnerID string `json:"owner_id"`
	Kind    string `json:"kind"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.chat_access.decision"),
		rego.Module("chat_access.rego", policyContent),
		rego.SetRegoVersion(ast.RegoV1),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the access policy for the given input and returns the
// decision string. Anything other than DecisionAllow denies access.
func (e *Engine) Evaluate(ctx context.Context, input AccessInput) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default; an empty result means the module
		// is broken, so fail closed.
		return DecisionDeny, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return DecisionDeny, nil
}

// DefaultPolicy is the default access policy: a caller may only act on
// conversations they own.
const DefaultPolicy = `
package chat_access

default decision := "deny"

decision := "allow" if {
	input.owner_id != ""
	input.user_id == input.owner_id
}
`
