package core

import "context"

// LLMClient abstracts the decision-making model API (Groq, OpenAI-compatible).
// Implementations return the assistant's free-text content plus any tool
// calls it requested; a non-nil error means the API call itself failed.
type LLMClient interface {
	ChatCompletionWithTools(ctx context.Context, messages []Message, tools []ToolDefinition) (content string, toolCalls []ToolCall, err error)
}

// ToolExecutor runs one tool by name. It never returns an error: every
// failure mode (unknown tool, bad arguments, execution fault) is folded
// into the ToolResult so a single bad call cannot abort a conversation.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args map[string]any) ToolResult
}

// AuditSink receives one append-only record per tool execution and per
// agent decision. Implementations must tolerate concurrent appends; each
// record is a single atomic write. The returned audit id identifies the
// entry (empty when the sink could not persist it).
type AuditSink interface {
	Log(function string, params map[string]any, result any, success bool, errMsg string) (auditID string)
}
