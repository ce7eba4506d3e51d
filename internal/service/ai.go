package service

import (
	"context"
	"errors"

	"github.com/limva/limva-api/pkg/openrouter"
)

// ErrAIUnavailable indicates that no AI model is currently enabled.
var ErrAIUnavailable = errors.New("no ai model enabled")

// AIGateway issues chat completions. Implementations never return an error:
// failures degrade to a fixed sentinel answer.
type AIGateway interface {
	Complete(ctx context.Context, model string, messages []openrouter.Message, maxTokens int) string
}

// ModelProvider resolves the currently active AI model at request time, so
// configuration is read fresh rather than cached process-wide.
type ModelProvider interface {
	// ActiveModelID returns the OpenRouter model identifier to use, or
	// ErrAIUnavailable when every model toggle is off.
	ActiveModelID(ctx context.Context) (string, error)
}
