package entity

type TaskName string

const (
	TaskResearch TaskName = "research"
	TaskWrite    TaskName = "write"
	TaskEdit     TaskName = "edit"
)

type TaskStatus string

const (
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

type TaskDescriptor struct {
	Name           TaskName
	Description    string
	ExpectedOutput string
	Agent          AgentType
}

type TaskResult struct {
	Task     TaskName
	Agent    AgentType
	Output   string
	Status   TaskStatus
	Error    string
	Duration int64
}
