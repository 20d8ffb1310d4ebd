package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"article-crew/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

type AgentTemplate struct {
	Type            entity.AgentType `yaml:"type"`
	Role            string           `yaml:"role"`
	Goal            string           `yaml:"goal"`
	Backstory       string           `yaml:"backstory"`
	AllowDelegation bool             `yaml:"allow_delegation"`
}

type TaskTemplate struct {
	Name           entity.TaskName  `yaml:"name"`
	Agent          entity.AgentType `yaml:"agent"`
	Description    string           `yaml:"description"`
	ExpectedOutput string           `yaml:"expected_output"`
}

type CrewDefinition struct {
	Agents []AgentTemplate `yaml:"agents"`
	Tasks  []TaskTemplate  `yaml:"tasks"`

	templates map[string]*template.Template
}

type CrewPromptData struct {
	Topic string
}

// ParseCrewDefinition decodes a crew definition and compiles every templated
// field up front, so Render can only fail on execution.
func ParseCrewDefinition(data []byte) (*CrewDefinition, error) {
	var def CrewDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode crew definition: %w", err)
	}
	if len(def.Agents) == 0 {
		return nil, errors.New("crew definition has no agents")
	}
	if len(def.Tasks) == 0 {
		return nil, errors.New("crew definition has no tasks")
	}

	known := make(map[entity.AgentType]bool, len(def.Agents))
	for _, a := range def.Agents {
		if a.Type == "" {
			return nil, errors.New("crew definition has an agent without type")
		}
		if known[a.Type] {
			return nil, fmt.Errorf("duplicate agent %q", a.Type)
		}
		known[a.Type] = true
	}
	names := make(map[entity.TaskName]bool, len(def.Tasks))
	for _, t := range def.Tasks {
		if names[t.Name] {
			return nil, fmt.Errorf("duplicate task %q", t.Name)
		}
		names[t.Name] = true
		if !known[t.Agent] {
			return nil, fmt.Errorf("task %q references unknown agent %q", t.Name, t.Agent)
		}
	}

	def.templates = make(map[string]*template.Template)
	compile := func(key, text string) error {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		def.templates[key] = tmpl
		return nil
	}

	for _, a := range def.Agents {
		if err := compile(agentKey(a.Type, "goal"), a.Goal); err != nil {
			return nil, err
		}
		if err := compile(agentKey(a.Type, "backstory"), a.Backstory); err != nil {
			return nil, err
		}
	}
	for _, t := range def.Tasks {
		if err := compile(taskKey(t.Name, "description"), t.Description); err != nil {
			return nil, err
		}
		if err := compile(taskKey(t.Name, "expected_output"), t.ExpectedOutput); err != nil {
			return nil, err
		}
	}

	return &def, nil
}

// Render builds fresh descriptors for one topic, in definition order.
func (d *CrewDefinition) Render(topic string) ([]entity.AgentDescriptor, []entity.TaskDescriptor, error) {
	data := CrewPromptData{Topic: topic}

	agents := make([]entity.AgentDescriptor, 0, len(d.Agents))
	for _, a := range d.Agents {
		goal, err := d.execute(agentKey(a.Type, "goal"), data)
		if err != nil {
			return nil, nil, err
		}
		backstory, err := d.execute(agentKey(a.Type, "backstory"), data)
		if err != nil {
			return nil, nil, err
		}
		agents = append(agents, entity.AgentDescriptor{
			Type:            a.Type,
			Role:            a.Role,
			Goal:            goal,
			Backstory:       backstory,
			AllowDelegation: a.AllowDelegation,
		})
	}

	tasks := make([]entity.TaskDescriptor, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		description, err := d.execute(taskKey(t.Name, "description"), data)
		if err != nil {
			return nil, nil, err
		}
		expected, err := d.execute(taskKey(t.Name, "expected_output"), data)
		if err != nil {
			return nil, nil, err
		}
		tasks = append(tasks, entity.TaskDescriptor{
			Name:           t.Name,
			Description:    description,
			ExpectedOutput: expected,
			Agent:          t.Agent,
		})
	}

	return agents, tasks, nil
}

func (d *CrewDefinition) execute(key string, data CrewPromptData) (string, error) {
	tmpl, ok := d.templates[key]
	if !ok {
		return "", fmt.Errorf("template %s not compiled", key)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", key, err)
	}
	return buf.String(), nil
}

func agentKey(t entity.AgentType, field string) string {
	return "agent/" + string(t) + "/" + field
}

func taskKey(n entity.TaskName, field string) string {
	return "task/" + string(n) + "/" + field
}
