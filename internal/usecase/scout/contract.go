package scout

import "context"

// ModelClient generates raw text from a grounding prompt and a user query.
// Implementations own transport, auth, and timeout concerns.
type ModelClient interface {
	Generate(ctx context.Context, systemPrompt, userQuery string) (string, error)
}
