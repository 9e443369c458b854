package llm

import (
	"context"
)

// LLM is the contract every completion provider must satisfy. The call blocks
// until the full text is available or fails; streaming is out of scope.
type LLM interface {
	// Chat generates a response for the given conversation history
	Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error)
}

// Response contains the model's reply and token accounting
type Response struct {
	Message Message
	Usage   Usage
}

// Client wraps a provider behind a stable call surface.
type Client struct {
	llm LLM
}

// NewClient creates a new LLM client
func NewClient(llm LLM) *Client {
	return &Client{llm: llm}
}

// Chat generates a response for the given conversation history.
func (c *Client) Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error) {
	return c.llm.Chat(ctx, messages, opts...)
}
