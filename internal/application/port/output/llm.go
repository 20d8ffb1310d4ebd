package output

import (
	"context"

	"article-crew/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages []entity.Message
}

type ChatResponse struct {
	Message entity.Message
}

// LLMConfig is fixed per deployment except for the credential, which comes
// from the user on every request.
type LLMConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type LLMFactory interface {
	NewLLM(cfg LLMConfig) (LLMPort, error)
}
