package service

import (
	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"
)

var _ output.AgentRegistry = (*AgentRegistryImpl)(nil)

type AgentRegistryImpl struct {
	agents map[entity.AgentType]entity.AgentDescriptor
	order  []entity.AgentType
}

func NewAgentRegistry(agents ...entity.AgentDescriptor) *AgentRegistryImpl {
	r := &AgentRegistryImpl{
		agents: make(map[entity.AgentType]entity.AgentDescriptor, len(agents)),
	}
	for _, agent := range agents {
		r.Register(agent)
	}
	return r
}

// Register replaces an agent of the same type in place, keeping its original
// position.
func (r *AgentRegistryImpl) Register(agent entity.AgentDescriptor) {
	if _, ok := r.agents[agent.Type]; !ok {
		r.order = append(r.order, agent.Type)
	}
	r.agents[agent.Type] = agent
}

func (r *AgentRegistryImpl) Get(agentType entity.AgentType) (entity.AgentDescriptor, bool) {
	agent, ok := r.agents[agentType]
	return agent, ok
}

func (r *AgentRegistryImpl) List() []entity.AgentDescriptor {
	result := make([]entity.AgentDescriptor, 0, len(r.order))
	for _, agentType := range r.order {
		result = append(result, r.agents[agentType])
	}
	return result
}
