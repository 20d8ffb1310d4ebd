package userinteraction

import (
	"context"
	"fmt"
	"io"
	"os"

	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ProgressPort = (*ConsoleProgress)(nil)

type ConsoleProgress struct {
	out io.Writer
}

func NewConsoleProgress() *ConsoleProgress {
	return &ConsoleProgress{out: os.Stdout}
}

func NewConsoleProgressTo(out io.Writer) *ConsoleProgress {
	return &ConsoleProgress{out: out}
}

func (u *ConsoleProgress) ShowStepStart(ctx context.Context, step, total int, task entity.TaskDescriptor, agent entity.AgentDescriptor) {
	icon, name := getTaskDisplay(task.Name)

	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n━━━ Paso %d/%d ━━━\n", step, total)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "%s %s\n", icon, name)

	dim := color.New(color.Faint)
	dim.Fprintf(u.out, "   Agente: %s\n", agent.Role)
}

func (u *ConsoleProgress) ShowStepResult(ctx context.Context, result entity.TaskResult) {
	if result.Status == entity.TaskStatusFailed {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(u.out, truncate(result.Error, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %d caracteres en %.1fs\n", len([]rune(result.Output)), float64(result.Duration)/1000)
}

func getTaskDisplay(name entity.TaskName) (string, string) {
	displays := map[entity.TaskName][2]string{
		entity.TaskResearch: {"🔎", "Investigación"},
		entity.TaskWrite:    {"✏️", "Redacción"},
		entity.TaskEdit:     {"📝", "Edición"},
	}

	if display, ok := displays[name]; ok {
		return display[0], display[1]
	}
	return "🔧", string(name)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

// Summary formats the closing line printed after the article is saved.
func Summary(path string, size int) string {
	return fmt.Sprintf("Artículo guardado en %s (%d bytes)", path, size)
}
