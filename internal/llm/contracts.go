package llm

import (
	"context"
)

// Params are the sampling knobs passed with every prompt.
type Params struct {
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// SectionParams and ChatParams are the defaults used for clause analysis and chat.
var (
	SectionParams = Params{MaxTokens: 500, Temperature: 0.3, TopP: 0.9}
	ChatParams    = Params{MaxTokens: 400, Temperature: 0.7, TopP: 0.9}
)

// Generator is the text-generation collaborator. An empty reply is not an error;
// callers apply their own fallback.
type Generator interface {
	Generate(ctx context.Context, prompt string, p Params) (string, error)
	Model() string
}
