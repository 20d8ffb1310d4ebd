package output

import (
	"context"

	"article-crew/internal/domain/entity"
)

type ProgressPort interface {
	ShowStepStart(ctx context.Context, step, total int, task entity.TaskDescriptor, agent entity.AgentDescriptor)
	ShowStepResult(ctx context.Context, result entity.TaskResult)
}
