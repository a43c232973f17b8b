// Package provider implements the LLM client used for classifier audits.
package provider

import "context"

// LLMProvider is the interface for LLM API clients.
type LLMProvider interface {
	// Chat sends a completion request and returns the response.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	// DefaultModel returns the configured default model.
	DefaultModel() string
}

// ChatRequest contains the parameters for a chat completion request.
type ChatRequest struct {
	Messages    []Message
	Model       string
	MaxTokens   int
	Temperature float64
}

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// ChatResponse contains the model's reply.
type ChatResponse struct {
	Content      string
	FinishReason string
}
