// Package agent drives the tool-calling conversation loop: user request
// in, model round trips with batched tool execution, structured response
// envelope out.
package agent

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/audit"
	"github.com/vjk-2k5/Travel-agent/internal/core"
	"github.com/vjk-2k5/Travel-agent/internal/schemas"
)

// DefaultMaxIterations caps model round trips within one request.
const DefaultMaxIterations = 10

// Agent holds the conversation and its collaborators. Not safe for
// concurrent use; one Agent serves one conversation.
type Agent struct {
	client        core.LLMClient
	executor      core.ToolExecutor
	sink          core.AuditSink
	logger        *zap.Logger
	maxIterations int

	messages []core.Message
}

// New creates an agent with an empty conversation.
func New(client core.LLMClient, executor core.ToolExecutor, sink core.AuditSink, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		client:        client,
		executor:      executor,
		sink:          sink,
		logger:        logger,
		maxIterations: DefaultMaxIterations,
	}
}

// SetMaxIterations overrides the per-request round trip cap.
func (a *Agent) SetMaxIterations(n int) {
	if n > 0 {
		a.maxIterations = n
	}
}

// ProcessRequest runs one natural language request to completion. Errors
// never escape as Go errors: API failures and the iteration cap both come
// back as failed envelopes carrying the tool results gathered so far.
func (a *Agent) ProcessRequest(ctx context.Context, userInput string) core.Response {
	if len(a.messages) == 0 {
		a.messages = append(a.messages, core.Message{Role: core.RoleSystem, Content: SystemPrompt})
	}
	a.messages = append(a.messages, core.Message{Role: core.RoleUser, Content: userInput})

	if a.sink != nil {
		audit.LogAgentDecision(a.sink, userInput, "Processing request", nil)
	}

	tools := schemas.Catalog()
	var allResults []core.ToolInvocationRecord

	for iteration := 0; iteration < a.maxIterations; iteration++ {
		content, calls, err := a.client.ChatCompletionWithTools(ctx, a.messages, tools)
		if err != nil {
			a.logger.Error("model call failed", zap.Int("iteration", iteration+1), zap.Error(err))
			if a.sink != nil {
				a.sink.Log("_agent_error", map[string]any{"user_input": userInput}, nil, false, err.Error())
			}
			return core.ErrorResponse("LLM API error: "+err.Error(), allResults)
		}

		if len(calls) == 0 {
			// Final answer.
			a.messages = append(a.messages, core.Message{Role: core.RoleAssistant, Content: content})
			return normalizeFinal(content, allResults)
		}

		a.messages = append(a.messages, core.Message{
			Role:      core.RoleAssistant,
			Content:   content,
			ToolCalls: calls,
		})

		// Execute the batch in request order; one tool message per call.
		for _, call := range calls {
			name := call.Function.Name
			args := parseArguments(call.Function.Arguments)

			if a.sink != nil {
				audit.LogAgentDecision(a.sink, userInput, "Calling "+name, []string{name})
			}

			result := a.executor.Execute(ctx, name, args)
			allResults = append(allResults, core.ToolInvocationRecord{
				Function:  name,
				Arguments: args,
				Result:    result,
			})

			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(`{"success":false,"error":"result not serializable"}`)
			}
			a.messages = append(a.messages, core.Message{
				Role:       core.RoleTool,
				Content:    string(payload),
				ToolCallID: call.ID,
			})
		}
	}

	return core.ErrorResponse("Maximum iterations reached", allResults)
}

// parseArguments decodes tool call arguments leniently: malformed JSON
// becomes empty arguments rather than a failed turn, so the schema layer
// reports what is missing.
func parseArguments(raw string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}

// Reset clears the conversation history.
func (a *Agent) Reset() {
	a.messages = nil
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []core.Message {
	out := make([]core.Message, len(a.messages))
	copy(out, a.messages)
	return out
}
