package agents

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

// OfflineFallback builds the deterministic reply used when the upstream provider fails.
// It only reads already validated in-memory data and never fails.
func OfflineFallback(agent domain.AgentDefinition, history []domain.ChatMessage, reason error) domain.ChatResult {
	paragraphs := []string{
		fmt.Sprintf("Olá! Aqui é o %s.", agent.Name),
		"No momento não consegui me conectar ao serviço de IA, que está temporariamente indisponível.",
	}

	if last, _, ok := lo.FindLastIndexOf(history, func(m domain.ChatMessage) bool {
		return m.Role == domain.RoleUser
	}); ok {
		paragraphs = append(paragraphs, fmt.Sprintf("Por enquanto, anotei o que você compartilhou: \"%s\".", last.Content))
	}

	paragraphs = append(paragraphs,
		"Tente novamente em alguns instantes. Se o problema continuar, verifique se a chave DASHSCOPE_API_KEY "+
			"está configurada e se o servidor consegue acessar o provedor.")

	return domain.ChatResult{
		AgentID:   agent.ID,
		AgentName: agent.Name,
		Model:     domain.OfflineFallbackModel,
		Message:   strings.Join(paragraphs, "\n\n"),
		Usage: domain.Usage{
			"fallback": true,
			"reason":   reasonText(reason),
		},
	}
}

func reasonText(err error) string {
	if err == nil {
		return "unknown upstream error"
	}
	return err.Error()
}
