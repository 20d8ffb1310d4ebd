package generator

import (
	"context"
	"fmt"
	"time"

	"article-crew/internal/application/port/input"
	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"
	"article-crew/internal/usecase/pipeline"
)

var _ input.ArticleGenerator = (*UseCase)(nil)

type UseCase struct {
	assembler *pipeline.Assembler
	crew      output.CrewRunner
	logger    output.LoggerPort
	timeout   time.Duration
}

// New wires the generator. A zero timeout leaves the run bounded only by ctx.
func New(
	assembler *pipeline.Assembler,
	crew output.CrewRunner,
	logger output.LoggerPort,
	timeout time.Duration,
) *UseCase {
	return &UseCase{
		assembler: assembler,
		crew:      crew,
		logger:    logger,
		timeout:   timeout,
	}
}

func (uc *UseCase) Generate(ctx context.Context, req entity.ArticleRequest) (outcome entity.Outcome) {
	if field, ok := entity.ValidateRequest(req); !ok {
		uc.logger.Warn("Generation rejected", "missing", field)
		return entity.MissingInput(field)
	}

	log := uc.logger.WithField("topic", req.Topic)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Generation panicked", "panic", r)
			outcome = entity.Failed(fmt.Errorf("crew aborted: %v", r))
		}
	}()

	spec, err := uc.assembler.Assemble(req)
	if err != nil {
		log.Error("Crew assembly failed", "error", err)
		return entity.Failed(err)
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	log.Info("Generation started", "agents", len(spec.Agents), "tasks", len(spec.Tasks))

	text, err := uc.crew.Kickoff(ctx, *spec)
	if err != nil {
		log.Error("Generation failed", "error", err, "durationMs", time.Since(start).Milliseconds())
		return entity.Failed(err)
	}

	log.Info("Generation completed", "durationMs", time.Since(start).Milliseconds(), "textLen", len(text))
	return entity.Succeeded(entity.Article{Topic: req.Topic, Text: text})
}
