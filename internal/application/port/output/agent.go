package output

import "article-crew/internal/domain/entity"

type AgentRegistry interface {
	Register(agent entity.AgentDescriptor)
	Get(agentType entity.AgentType) (entity.AgentDescriptor, bool)
	List() []entity.AgentDescriptor
}
