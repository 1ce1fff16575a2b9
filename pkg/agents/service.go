package agents

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
	"github.com/dskvich/impulsyia-backend/pkg/logger"
)

type AgentRegistry interface {
	Get(id string) (domain.AgentDefinition, error)
}

type ChatCompleter interface {
	ChatCompletion(ctx context.Context, req domain.CompletionRequest) (domain.Completion, error)
}

// ClientFactory builds a chat client for a single call, defaulting to the given model.
type ClientFactory func(defaultModel string) (ChatCompleter, error)

type service struct {
	registry  AgentRegistry
	newClient ClientFactory
}

func NewService(registry AgentRegistry, newClient ClientFactory) *service {
	return &service{
		registry:  registry,
		newClient: newClient,
	}
}

// Run resolves the agent, compiles the history and asks the upstream model for a reply.
// Caller errors (unknown agent, malformed history) are returned as is; upstream failures
// are answered with the offline fallback.
func (s *service) Run(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	agent, err := s.registry.Get(req.AgentID)
	if err != nil {
		return domain.ChatResult{}, err
	}

	messages, err := BuildMessages(agent, req.Messages)
	if err != nil {
		return domain.ChatResult{}, err
	}

	completion, err := s.complete(ctx, agent, domain.CompletionRequest{
		Messages:    messages,
		Model:       lo.Ternary(req.Model != "", req.Model, agent.DefaultModel),
		Temperature: lo.FromPtrOr(req.Temperature, domain.DefaultTemperature),
		MaxTokens:   req.MaxTokens,
	})
	if errors.Is(err, domain.ErrUpstream) {
		slog.WarnContext(ctx, "upstream unavailable, answering with offline fallback",
			"agent_id", agent.ID, logger.Err(err))
		return OfflineFallback(agent, req.Messages, err), nil
	}
	if err != nil {
		return domain.ChatResult{}, err
	}

	slog.InfoContext(ctx, "agent chat completed",
		"agent_id", agent.ID, "model", completion.Model, "usage", completion.Usage)

	return domain.ChatResult{
		AgentID:   agent.ID,
		AgentName: agent.Name,
		Model:     completion.Model,
		Message:   completion.Content,
		Usage:     completion.Usage,
	}, nil
}

func (s *service) complete(ctx context.Context, agent domain.AgentDefinition, req domain.CompletionRequest) (domain.Completion, error) {
	client, err := s.newClient(agent.DefaultModel)
	if err != nil {
		// Without a client the provider is unreachable for this call.
		return domain.Completion{}, &domain.UpstreamError{Err: err}
	}
	return client.ChatCompletion(ctx, req)
}
