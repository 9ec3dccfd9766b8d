package core

import "encoding/json"

// Conversation roles. The system turn is inserted once per conversation;
// every tool turn is correlated to an assistant turn by ToolCallID.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one role-tagged entry in the conversation transcript.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a single tool invocation requested by the model.
// Arguments arrive as raw JSON text and are parsed leniently downstream.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the requested function and carries its raw arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDefinition describes one catalog entry shown to the model.
type ToolDefinition struct {
	Type     string       `json:"type"`
	Function FunctionSpec `json:"function"`
}

// FunctionSpec describes the function signature as a JSON Schema.
type FunctionSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ToolResult is the uniform outcome envelope for every tool execution.
// Exactly one of Data/Error is authoritative: Data on success, Error on
// failure. It marshals flat so tool payload fields sit beside "success",
// matching what the model and the audit log see.
type ToolResult struct {
	Success bool
	Data    map[string]any
	Error   string
}

// Ok builds a successful result from a payload map.
func Ok(data map[string]any) ToolResult {
	return ToolResult{Success: true, Data: data}
}

// Fail builds a failed result carrying a human-readable message.
func Fail(msg string) ToolResult {
	return ToolResult{Success: false, Error: msg}
}

func (r ToolResult) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Data)+2)
	for k, v := range r.Data {
		m[k] = v
	}
	m["success"] = r.Success
	if r.Error != "" {
		m["error"] = r.Error
	}
	return json.Marshal(m)
}

func (r *ToolResult) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if ok, isBool := m["success"].(bool); isBool {
		r.Success = ok
	}
	if msg, isStr := m["error"].(string); isStr {
		r.Error = msg
	}
	delete(m, "success")
	delete(m, "error")
	if len(m) > 0 {
		r.Data = m
	}
	return nil
}

// ToolInvocationRecord captures one executed tool call: the function, the
// arguments actually used after parsing, and the outcome. Records are
// ordered by execution order and never mutated after creation.
type ToolInvocationRecord struct {
	Function  string         `json:"function"`
	Arguments map[string]any `json:"arguments"`
	Result    ToolResult     `json:"result"`
}
