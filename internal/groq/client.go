// Package groq calls Groq's OpenAI-compatible chat completions API for
// the agent's tool-calling decisions.
package groq

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/vjk-2k5/Travel-agent/internal/core"
)

const BaseURL = "https://api.groq.com/openai/v1"

// Client implements core.LLMClient over the openai SDK pointed at Groq.
type Client struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewClient creates a client for the given model. baseURL can be empty to
// use the Groq default; any OpenAI-compatible endpoint works.
func NewClient(apiKey, model, baseURL string, temperature float64) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:       model,
		temperature: temperature,
	}
}

// ChatCompletionWithTools sends the conversation and tool catalog, then
// returns the assistant's content and any requested tool calls.
func (c *Client) ChatCompletionWithTools(ctx context.Context, messages []core.Message, tools []core.ToolDefinition) (string, []core.ToolCall, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.newParams(messages, tools))
	if err != nil {
		return "", nil, fmt.Errorf("groq: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("groq: no choices in response")
	}

	msg := resp.Choices[0].Message
	var calls []core.ToolCall
	for _, tc := range msg.ToolCalls {
		calls = append(calls, core.ToolCall{
			ID:   tc.ID,
			Type: "function",
			Function: core.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return msg.Content, calls, nil
}

// newParams builds the request. Tool choice stays "auto": the model
// decides per turn whether to call tools or answer in text.
func (c *Client) newParams(messages []core.Message, tools []core.ToolDefinition) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toMessageParams(messages),
		Tools:       toToolParams(tools),
		ToolChoice:  openai.ChatCompletionToolChoiceOptionUnionParam{OfAuto: openai.String("auto")},
		Temperature: openai.Opt(c.temperature),
	}
}

// toMessageParams converts conversation messages to SDK params, carrying
// tool call requests and tool call ids through.
func toMessageParams(messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case core.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case core.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(m.Content),
				}
			}
			for _, tc := range m.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Function.Name,
							Arguments: tc.Function.Arguments,
						},
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		case core.RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		}
	}
	return out
}

func toToolParams(tools []core.ToolDefinition) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        t.Function.Name,
			Description: openai.String(t.Function.Description),
			Parameters:  openai.FunctionParameters(t.Function.Parameters),
		}))
	}
	return out
}
