package domain

import "context"

// ModelCaller defines how the core application invokes a language model.
// The caller is opaque: it owns transport, authentication and the parsing
// of the model's free-text answer into the three parts.
type ModelCaller interface {
	Call(ctx context.Context, model, systemPrompt, userPrompt string) (ModelParts, error)
}
