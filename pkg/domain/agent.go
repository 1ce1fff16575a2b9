package domain

// AgentDefinition is a persona configuration used to flavor conversations with the upstream model.
type AgentDefinition struct {
	ID           string
	Name         string
	Description  string
	SystemPrompt string
	DefaultModel string
}

// AgentSummary is the public view of an agent. It never carries the system prompt.
type AgentSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a AgentDefinition) Summary() AgentSummary {
	return AgentSummary{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
	}
}
