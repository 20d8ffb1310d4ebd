package entity

type AgentType string

const (
	AgentTypeResearcher AgentType = "researcher"
	AgentTypeWriter     AgentType = "writer"
	AgentTypeEditor     AgentType = "editor"
)

func (t AgentType) String() string {
	return string(t)
}

// AgentDescriptor is the persona handed to the crew. It is built once per
// request from the topic and never mutated afterwards.
type AgentDescriptor struct {
	Type            AgentType
	Role            string
	Goal            string
	Backstory       string
	AllowDelegation bool
}
