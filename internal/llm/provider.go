package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for reasoning-service interaction.
// Consumers call Generate with a Request and receive text, structured
// JSON, or a tool call.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the response.
	// The request's Schema field, when set, instructs the provider to
	// return JSON conforming to that schema. The request's Tool field,
	// when set, allows the model to answer with a tool call instead of
	// text; the call surfaces as Response.ToolCall.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is the raw text.
	Schema *Schema

	// Tool, when set, is offered to the model as an optional tool.
	// The model decides per turn whether to call it; a call is returned
	// as Response.ToolCall. Mutually exclusive with Schema.
	Tool *Tool

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "therapy-plan".
	Name string

	// Description is a human-readable description sent to the LLM.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Tool describes a callable tool offered to the model.
type Tool struct {
	// Name is the tool identifier, e.g. "finalize_checkin".
	Name string

	// Description tells the model when to call the tool.
	Description string

	// InputSchema is the JSON Schema for the tool's arguments.
	InputSchema map[string]any
}

// ToolCall is a tool invocation returned by the model.
type ToolCall struct {
	// Name is the tool the model called.
	Name string

	// Input is the raw JSON arguments of the call.
	Input json.RawMessage
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided, this
	// is the validated JSON object; otherwise the raw text.
	Content json.RawMessage

	// ToolCall is set when the model answered with a tool call.
	// Content may still hold text accompanying the call.
	ToolCall *ToolCall

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "tool_use", "error"
	StopReason string
}

// Text returns the response content as plain text, stripping a JSON
// string quoting layer if the provider wrapped it.
func (r *Response) Text() string {
	s := string(r.Content)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(r.Content, &unquoted); err == nil {
			return unquoted
		}
	}
	return strings.TrimSpace(s)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
