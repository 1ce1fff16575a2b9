package qwen

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"

	"github.com/dskvich/impulsyia-backend/pkg/domain"
)

const (
	DefaultBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	DefaultModel   = "qwen-plus"
)

type Config struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
}

type Option func(*openai.ClientConfig)

// WithHTTPClient sets the transport used for provider calls; timeouts belong here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *openai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// Client talks to the OpenAI-compatible Qwen endpoint.
type Client struct {
	api          *openai.Client
	defaultModel string
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrMissingCredential
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(lo.Ternary(cfg.BaseURL != "", cfg.BaseURL, DefaultBaseURL), "/")
	for _, opt := range opts {
		opt(&oc)
	}

	return &Client{
		api:          openai.NewClientWithConfig(oc),
		defaultModel: lo.Ternary(cfg.DefaultModel != "", cfg.DefaultModel, DefaultModel),
	}, nil
}

func (c *Client) DefaultModel() string { return c.defaultModel }

// ChatCompletion sends the compiled messages and returns the first choice.
// Every failure is reported as *domain.UpstreamError.
func (c *Client) ChatCompletion(ctx context.Context, req domain.CompletionRequest) (domain.Completion, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       lo.Ternary(req.Model != "", req.Model, c.defaultModel),
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: wireTemperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return domain.Completion{}, &domain.UpstreamError{Status: statusCode(err), Err: err}
	}

	if len(resp.Choices) == 0 {
		return domain.Completion{}, &domain.UpstreamError{Err: errors.New("no choices in response")}
	}

	return domain.Completion{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage:   toUsage(resp.Usage),
	}, nil
}

// wireTemperature keeps an explicit 0 on the wire; go-openai drops a zero temperature as empty.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func toOpenAIMessages(messages []domain.ChatMessage) []openai.ChatCompletionMessage {
	return lo.Map(messages, func(m domain.ChatMessage, _ int) openai.ChatCompletionMessage {
		return openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	})
}

// toUsage returns nil when the provider reported no accounting.
func toUsage(u openai.Usage) domain.Usage {
	if u == (openai.Usage{}) {
		return nil
	}
	return domain.Usage{
		"prompt_tokens":     u.PromptTokens,
		"completion_tokens": u.CompletionTokens,
		"total_tokens":      u.TotalTokens,
	}
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
