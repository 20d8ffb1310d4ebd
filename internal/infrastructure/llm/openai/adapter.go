package openai

import (
	"context"
	"errors"
	"fmt"

	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"
	"article-crew/internal/infrastructure/llm"

	"github.com/sashabaranov/go-openai"
)

var (
	_ output.LLMPort    = (*OpenAIAdapter)(nil)
	_ output.LLMFactory = (*Factory)(nil)
)

type Config struct {
	// BaseURL overrides the public OpenAI endpoint, e.g. for a proxy.
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
		return nil, errors.New("openai: api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai: model is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if f.cfg.BaseURL != "" {
		config.BaseURL = f.cfg.BaseURL
	}
	if f.cfg.LogHTTP && f.cfg.Logger != nil {
		config.HTTPClient = llm.NewLoggingClient(f.cfg.Logger)
	}

	return &OpenAIAdapter{
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      f.cfg.Logger,
	}, nil
}

type OpenAIAdapter struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      output.LoggerPort
}

func (a *OpenAIAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	messages := convertMessages(req.Messages)

	if a.logger != nil {
		a.logger.Debug("Creating chat completion",
			"model", a.model,
			"messagesCount", len(messages),
			"temperature", a.temperature)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &output.ChatResponse{
		Message: convertResponseMessage(resp.Choices[0].Message),
	}, nil
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	return entity.Message{
		Role:    entity.MessageRole(msg.Role),
		Content: msg.Content,
	}
}
