package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"
)

var (
	ErrNoTasks      = errors.New("crew has no tasks")
	ErrNoLLM        = errors.New("crew has no language model")
	ErrUnknownAgent = errors.New("task assigned to an agent outside the crew")
	ErrEmptyAnswer  = errors.New("language model returned an empty answer")
)

var _ output.CrewRunner = (*SequentialCrew)(nil)

// SequentialCrew runs tasks one after another. Each task sees the output of
// the task before it as context, and the last output is the crew's result.
// There is no delegation and no retry: the first failing step ends the run.
type SequentialCrew struct {
	logger   output.LoggerPort
	progress output.ProgressPort
}

func NewSequentialCrew(logger output.LoggerPort, progress output.ProgressPort) *SequentialCrew {
	return &SequentialCrew{
		logger:   logger,
		progress: progress,
	}
}

func (c *SequentialCrew) Kickoff(ctx context.Context, spec output.CrewSpec) (string, error) {
	if spec.LLM == nil {
		return "", ErrNoLLM
	}
	if len(spec.Tasks) == 0 {
		return "", ErrNoTasks
	}

	registry := NewAgentRegistry(spec.Agents...)
	for _, task := range spec.Tasks {
		if _, ok := registry.Get(task.Agent); !ok {
			return "", fmt.Errorf("task %q: %w: %s", task.Name, ErrUnknownAgent, task.Agent)
		}
	}

	c.logger.Info("Crew kickoff", "agents", len(spec.Agents), "tasks", len(spec.Tasks))

	var previous string
	for i, task := range spec.Tasks {
		agent, _ := registry.Get(task.Agent)

		if c.progress != nil {
			c.progress.ShowStepStart(ctx, i+1, len(spec.Tasks), task, agent)
		}

		start := time.Now()
		answer, err := c.runStep(ctx, spec, agent, task, previous)
		result := entity.TaskResult{
			Task:     task.Name,
			Agent:    agent.Type,
			Output:   answer,
			Status:   entity.TaskStatusCompleted,
			Duration: time.Since(start).Milliseconds(),
		}
		if err != nil {
			result.Status = entity.TaskStatusFailed
			result.Error = err.Error()
		}

		if c.progress != nil {
			c.progress.ShowStepResult(ctx, result)
		}

		if err != nil {
			c.logger.Error("Crew step failed", "task", task.Name, "agent", agent.Type, "error", err)
			return "", fmt.Errorf("task %q: %w", task.Name, err)
		}

		c.logger.Info("Crew step completed", "task", task.Name, "agent", agent.Type, "durationMs", result.Duration, "outputLen", len(answer))
		previous = answer
	}

	return previous, nil
}

func (c *SequentialCrew) runStep(ctx context.Context, spec output.CrewSpec, agent entity.AgentDescriptor, task entity.TaskDescriptor, prior string) (string, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: personaPrompt(agent)},
		{Role: entity.RoleUser, Content: taskPrompt(task, prior)},
	}

	if spec.Verbose {
		c.logger.Debug("Crew step prompt",
			"task", task.Name,
			"agent", agent.Role,
			"system", messages[0].Content,
			"user", messages[1].Content)
	}

	resp, err := spec.LLM.Chat(ctx, output.ChatRequest{Messages: messages})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return "", ErrEmptyAnswer
	}

	if spec.Verbose {
		c.logger.Debug("Crew step answer", "task", task.Name, "agent", agent.Role, "answer", text)
	}

	return text, nil
}

func personaPrompt(agent entity.AgentDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Eres %s. %s\n", agent.Role, agent.Backstory)
	fmt.Fprintf(&b, "Tu objetivo personal es: %s", agent.Goal)
	return b.String()
}

func taskPrompt(task entity.TaskDescriptor, prior string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tarea actual: %s\n\n", task.Description)
	fmt.Fprintf(&b, "Este es el criterio esperado para tu respuesta final: %s\n", task.ExpectedOutput)
	b.WriteString("DEBES devolver el contenido completo como respuesta final, no un resumen.")
	if prior != "" {
		fmt.Fprintf(&b, "\n\nEste es el contexto con el que estás trabajando:\n%s", prior)
	}
	return b.String()
}
