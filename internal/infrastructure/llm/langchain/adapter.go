package langchain

import (
	"context"
	"errors"
	"fmt"

	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"
	"article-crew/internal/infrastructure/llm"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

var (
	_ output.LLMPort    = (*LangChainAdapter)(nil)
	_ output.LLMFactory = (*Factory)(nil)
)

type Config struct {
	BaseURL string
	LogHTTP bool
	Logger  output.LoggerPort
}

type Factory struct {
	cfg Config
}

func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

func (f *Factory) NewLLM(cfg output.LLMConfig) (output.LLMPort, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("langchain: api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("langchain: model is required")
	}

	opts := []lcopenai.Option{
		lcopenai.WithToken(cfg.APIKey),
		lcopenai.WithModel(cfg.Model),
	}
	if f.cfg.BaseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(f.cfg.BaseURL))
	}
	if f.cfg.LogHTTP && f.cfg.Logger != nil {
		opts = append(opts, lcopenai.WithHTTPClient(llm.NewLoggingClient(f.cfg.Logger)))
	}

	model, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("langchain: create client: %w", err)
	}

	return &LangChainAdapter{
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

type LangChainAdapter struct {
	model       llms.Model
	temperature float32
}

func (a *LangChainAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	content, err := convertMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	resp, err := a.model.GenerateContent(ctx, content, llms.WithTemperature(float64(a.temperature)))
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &output.ChatResponse{
		Message: entity.Message{
			Role:    entity.RoleAssistant,
			Content: resp.Choices[0].Content,
		},
	}, nil
}

func convertMessages(messages []entity.Message) ([]llms.MessageContent, error) {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		var role llms.ChatMessageType
		switch msg.Role {
		case entity.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case entity.RoleUser:
			role = llms.ChatMessageTypeHuman
		case entity.RoleAssistant:
			role = llms.ChatMessageTypeAI
		default:
			return nil, fmt.Errorf("unsupported message role %q", msg.Role)
		}
		result = append(result, llms.TextParts(role, msg.Content))
	}
	return result, nil
}
