package domain

// OfflineFallbackModel marks a reply generated locally because the upstream provider failed.
const OfflineFallbackModel = "offline-fallback"

const DefaultTemperature float32 = 0.5

// Usage is token accounting reported by the provider, or the fallback marker.
type Usage map[string]any

// ChatRequest is a single agent chat invocation.
type ChatRequest struct {
	AgentID  string
	Messages []ChatMessage
	// Model overrides the agent default when not empty.
	Model       string
	Temperature *float32
	// MaxTokens of zero defers to the provider limit.
	MaxTokens int
}

type ChatResult struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
	Model     string `json:"model"`
	Message   string `json:"message"`
	Usage     Usage  `json:"usage"`
}

// IsFallback reports whether the result was produced by the offline fallback.
func (r ChatResult) IsFallback() bool {
	fallback, _ := r.Usage["fallback"].(bool)
	return r.Model == OfflineFallbackModel && fallback
}

type CompletionRequest struct {
	Messages    []ChatMessage
	Model       string
	Temperature float32
	MaxTokens   int
}

type Completion struct {
	Content string
	Model   string
	Usage   Usage
}
