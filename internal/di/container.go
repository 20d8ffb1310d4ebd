package di

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"article-crew/internal/adapter/web"
	"article-crew/internal/application/port/input"
	"article-crew/internal/application/port/output"
	"article-crew/internal/application/service"
	"article-crew/internal/infrastructure/artifact"
	"article-crew/internal/infrastructure/llm/langchain"
	"article-crew/internal/infrastructure/llm/openai"
	"article-crew/internal/infrastructure/logger"
	"article-crew/internal/infrastructure/prompts"
	"article-crew/internal/usecase/generator"
	"article-crew/internal/usecase/pipeline"
)

const (
	BackendOpenAI    = "openai"
	BackendLangChain = "langchain"
)

type Container struct {
	Logger    output.LoggerPort
	LLMs      output.LLMFactory
	Crew      output.CrewRunner
	Artifacts output.ArtifactStore
	Generator input.ArticleGenerator
	Handler   *web.Handler

	requestLogging bool
}

type Config struct {
	LogLevel  string
	LogFormat string

	LLMBackend     string
	LLMBaseURL     string
	LLMLogHTTP     bool
	LLMModel       string
	LLMTemperature float32

	CrewVerbose       bool
	GenerationTimeout time.Duration
	ArtifactTTL       time.Duration
	RequestLogging    bool

	// Progress is optional; the CLI passes a console reporter.
	Progress output.ProgressPort
	// CrewDefinition overrides the embedded crew.yaml when set.
	CrewDefinition []byte
}

func DefaultConfig() Config {
	return Config{
		LogLevel:       "info",
		LogFormat:      "json",
		LLMBackend:     BackendOpenAI,
		LLMModel:       pipeline.DefaultModel,
		LLMTemperature: pipeline.DefaultTemperature,
		CrewVerbose:    true,
		ArtifactTTL:    artifact.DefaultTTL,
		RequestLogging: true,
	}
}

func ConfigFromEnv(env output.ConfigPort) Config {
	def := DefaultConfig()
	return Config{
		LogLevel:          env.GetWithDefault("LOG_LEVEL", def.LogLevel),
		LogFormat:         env.GetWithDefault("LOG_FORMAT", def.LogFormat),
		LLMBackend:        env.GetWithDefault("LLM_BACKEND", def.LLMBackend),
		LLMBaseURL:        env.Get("LLM_BASE_URL"),
		LLMLogHTTP:        env.GetBool("LLM_LOG_HTTP", false),
		LLMModel:          env.GetWithDefault("LLM_MODEL", def.LLMModel),
		LLMTemperature:    float32(env.GetFloat("LLM_TEMPERATURE", float64(def.LLMTemperature))),
		CrewVerbose:       env.GetBool("CREW_VERBOSE", def.CrewVerbose),
		GenerationTimeout: env.GetDuration("GENERATION_TIMEOUT", 0),
		ArtifactTTL:       env.GetDuration("ARTIFACT_TTL", def.ArtifactTTL),
		RequestLogging:    env.GetBool("HTTP_REQUEST_LOG", def.RequestLogging),
	}
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llms, err := newLLMFactory(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	raw := cfg.CrewDefinition
	if len(raw) == 0 {
		raw = prompts.DefaultCrewDefinition
	}
	definition, err := prompts.ParseCrewDefinition(raw)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load crew definition: %w", err)
	}

	assembler := pipeline.NewAssembler(definition, llms, pipeline.Config{
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		Verbose:     cfg.CrewVerbose,
	})
	crew := service.NewSequentialCrew(log, cfg.Progress)
	gen := generator.New(assembler, crew, log, cfg.GenerationTimeout)
	store := artifact.NewMemoryStore(cfg.ArtifactTTL)

	model := cfg.LLMModel
	if model == "" {
		model = pipeline.DefaultModel
	}
	handler, err := web.NewHandler(gen, store, log, model)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}

	log.Info("Container ready", "backend", cfg.LLMBackend, "model", model)

	return &Container{
		Logger:         log,
		LLMs:           llms,
		Crew:           crew,
		Artifacts:      store,
		Generator:      gen,
		Handler:        handler,
		requestLogging: cfg.RequestLogging,
	}, nil
}

// Router returns the HTTP surface of the container.
func (c *Container) Router() http.Handler {
	return web.NewRouter(c.Handler, web.RouterConfig{
		ServiceName:    "article-crew",
		RequestLogging: c.requestLogging,
	})
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newLLMFactory(cfg Config, log output.LoggerPort) (output.LLMFactory, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMBackend)) {
	case "", BackendOpenAI:
		return openai.NewFactory(openai.Config{
			BaseURL: cfg.LLMBaseURL,
			LogHTTP: cfg.LLMLogHTTP,
			Logger:  log,
		}), nil
	case BackendLangChain:
		return langchain.NewFactory(langchain.Config{
			BaseURL: cfg.LLMBaseURL,
			LogHTTP: cfg.LLMLogHTTP,
			Logger:  log,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", cfg.LLMBackend)
	}
}
