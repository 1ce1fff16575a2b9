package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

var testAgent = domain.AgentDefinition{
	ID:           "tutor_socratico",
	Name:         "Tutor Socrático",
	Description:  "Valida domínio ativo.",
	SystemPrompt: "Você é o Tutor Socrático.",
	DefaultModel: "qwen-plus",
}

func TestBuildMessages_PrependsSystemPrompt(t *testing.T) {
	histories := [][]domain.ChatMessage{
		nil,
		{{Role: domain.RoleUser, Content: "Como validar meu método?"}},
		{
			{Role: domain.RoleSystem, Content: "Responda curto."},
			{Role: domain.RoleUser, Content: "Oi"},
			{Role: domain.RoleAssistant, Content: "Olá!"},
			{Role: domain.RoleUser, Content: "Tudo bem?"},
		},
	}

	for _, history := range histories {
		got, err := BuildMessages(testAgent, history)
		require.NoError(t, err)
		require.Len(t, got, len(history)+1)
		assert.Equal(t, domain.ChatMessage{Role: domain.RoleSystem, Content: testAgent.SystemPrompt}, got[0])
		if len(history) > 0 {
			assert.Equal(t, history, got[1:])
		}
	}
}

func TestBuildMessages_Idempotent(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Oi"},
		{Role: domain.RoleAssistant, Content: "Olá!"},
	}

	first, err := BuildMessages(testAgent, history)
	require.NoError(t, err)
	second, err := BuildMessages(testAgent, history)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Oi"},
		{Role: domain.RoleAssistant, Content: "Olá!"},
	}, history, "input history must not be modified")
}

func TestBuildMessages_RejectsInvalidHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []domain.ChatMessage
		wantErr error
	}{
		{
			name:    "unknown role",
			history: []domain.ChatMessage{{Role: "tool", Content: "x"}},
			wantErr: domain.ErrInvalidRole,
		},
		{
			name:    "empty role",
			history: []domain.ChatMessage{{Role: "", Content: "x"}},
			wantErr: domain.ErrInvalidRole,
		},
		{
			name:    "empty content",
			history: []domain.ChatMessage{{Role: domain.RoleUser, Content: ""}},
			wantErr: domain.ErrEmptyContent,
		},
		{
			name: "invalid entry after valid ones",
			history: []domain.ChatMessage{
				{Role: domain.RoleUser, Content: "Oi"},
				{Role: domain.RoleAssistant, Content: "Olá!"},
				{Role: "moderator", Content: "x"},
			},
			wantErr: domain.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildMessages(testAgent, tt.history)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestBuildMessages_ErrorNamesIndex(t *testing.T) {
	_, err := BuildMessages(testAgent, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Oi"},
		{Role: domain.RoleUser, Content: ""},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message 1")
}
