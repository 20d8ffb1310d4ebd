package pipeline

import (
	"fmt"

	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"
	"article-crew/internal/infrastructure/prompts"
)

const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = float32(0.8)
)

type Config struct {
	Model       string
	Temperature float32
	Verbose     bool
}

func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		Verbose:     true,
	}
}

// Assembler turns one request into a ready-to-run crew. The shape is static:
// whatever the definition lists, in the order it lists it.
type Assembler struct {
	definition *prompts.CrewDefinition
	llms       output.LLMFactory
	cfg        Config
}

func NewAssembler(definition *prompts.CrewDefinition, llms output.LLMFactory, cfg Config) *Assembler {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Assembler{
		definition: definition,
		llms:       llms,
		cfg:        cfg,
	}
}

func (a *Assembler) Assemble(req entity.ArticleRequest) (*output.CrewSpec, error) {
	llm, err := a.llms.NewLLM(output.LLMConfig{
		APIKey:      req.APIKey,
		Model:       a.cfg.Model,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create language model: %w", err)
	}

	agents, tasks, err := a.definition.Render(req.Topic)
	if err != nil {
		return nil, fmt.Errorf("render crew: %w", err)
	}

	return &output.CrewSpec{
		LLM:     llm,
		Agents:  agents,
		Tasks:   tasks,
		Verbose: a.cfg.Verbose,
	}, nil
}
