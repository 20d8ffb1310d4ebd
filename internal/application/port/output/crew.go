package output

import (
	"context"

	"article-crew/internal/domain/entity"
)

// CrewSpec is everything one Kickoff needs. Agents and Tasks keep the order
// they were assembled in.
type CrewSpec struct {
	LLM     LLMPort
	Agents  []entity.AgentDescriptor
	Tasks   []entity.TaskDescriptor
	Verbose bool
}

type CrewRunner interface {
	Kickoff(ctx context.Context, spec CrewSpec) (string, error)
}
