package domain

import "fmt"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func (m ChatMessage) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("%w '%s'. Use 'user', 'assistant' or 'system'", ErrInvalidRole, m.Role)
	}
	if m.Content == "" {
		return ErrEmptyContent
	}
	return nil
}
