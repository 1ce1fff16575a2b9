package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAgentNotFound         = errors.New("agent not found")
	ErrDuplicateAgent        = errors.New("duplicate agent id")
	ErrPromptResourceMissing = errors.New("prompt resource missing")
	ErrEmptyPrompt           = errors.New("system prompt is empty")

	ErrInvalidRole  = errors.New("unsupported role")
	ErrEmptyContent = errors.New("message content must not be empty")

	ErrMissingCredential = errors.New("DASHSCOPE_API_KEY is not set. Configure the environment variable before using Qwen")
	ErrUpstream          = errors.New("upstream provider error")

	ErrAuthNotConfigured  = errors.New("SUPABASE_JWT_SECRET is not configured")
	ErrInvalidCredentials = errors.New("could not validate credentials")
)

// UpstreamError normalizes every failure talking to the chat-completion provider.
type UpstreamError struct {
	// Status is the provider HTTP status, zero when the request never got a response.
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return "qwen api error"
	}
	return fmt.Sprintf("qwen api error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func (e *UpstreamError) StatusCode() int {
	return e.Status
}
