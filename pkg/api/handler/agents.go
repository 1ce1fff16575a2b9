package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/dskvich/impulsyia-backend/pkg/api/response"
	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

type AgentCatalog interface {
	Get(id string) (domain.AgentDefinition, error)
	Summaries() []domain.AgentSummary
}

type ChatRunner interface {
	Run(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error)
}

type agentMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content" binding:"required"`
}

type agentChatRequest struct {
	Messages    []agentMessage `json:"messages" binding:"required,dive"`
	Model       string         `json:"model"`
	Temperature *float32       `json:"temperature" binding:"omitempty,gte=0,lte=1.5"`
	MaxTokens   *int           `json:"max_tokens" binding:"omitempty,gt=0"`
}

func (r agentChatRequest) toDomain(agentID string) domain.ChatRequest {
	return domain.ChatRequest{
		AgentID: agentID,
		Messages: lo.Map(r.Messages, func(m agentMessage, _ int) domain.ChatMessage {
			return domain.ChatMessage{Role: domain.Role(m.Role), Content: m.Content}
		}),
		Model:       r.Model,
		Temperature: r.Temperature,
		MaxTokens:   lo.FromPtr(r.MaxTokens),
	}
}

type agents struct {
	catalog AgentCatalog
	runner  ChatRunner
}

func NewAgents(catalog AgentCatalog, runner ChatRunner) *agents {
	return &agents{
		catalog: catalog,
		runner:  runner,
	}
}

func (a *agents) List(c *gin.Context) {
	response.WriteSuccessResponse(c, http.StatusOK, a.catalog.Summaries())
}

func (a *agents) Chat(c *gin.Context) {
	agentID := c.Param("agent_id")
	if _, err := a.catalog.Get(agentID); err != nil {
		response.WriteError(c, http.StatusNotFound, fmt.Sprintf("Agent '%s' not found", agentID), err)
		return
	}

	var payload agentChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.WriteError(c, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}

	result, err := a.runner.Run(c.Request.Context(), payload.toDomain(agentID))
	switch {
	case errors.Is(err, domain.ErrAgentNotFound):
		response.WriteError(c, http.StatusNotFound, fmt.Sprintf("Agent '%s' not found", agentID), err)
		return
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrEmptyContent):
		response.WriteError(c, http.StatusBadRequest, err.Error(), err)
		return
	case err != nil:
		response.WriteErrorResponse(c, http.StatusInternalServerError,
			fmt.Sprintf("Não foi possível gerar a resposta do agente: %v", err))
		return
	}

	response.WriteSuccessResponse(c, http.StatusOK, result)
}
