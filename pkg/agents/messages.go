package agents

import (
	"fmt"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

// BuildMessages prepends the agent system prompt to the caller history.
// Every history entry is validated before anything is produced.
func BuildMessages(agent domain.AgentDefinition, history []domain.ChatMessage) ([]domain.ChatMessage, error) {
	for i, msg := range history {
		if err := msg.Validate(); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
	}

	compiled := make([]domain.ChatMessage, 0, len(history)+1)
	compiled = append(compiled, domain.ChatMessage{Role: domain.RoleSystem, Content: agent.SystemPrompt})
	compiled = append(compiled, history...)

	return compiled, nil
}
