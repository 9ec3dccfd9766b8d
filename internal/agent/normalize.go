package agent

import (
	"encoding/json"
	"strings"

	"github.com/vjk-2k5/Travel-agent/internal/core"
)

// normalizeFinal turns the model's final free text into the response
// envelope. A JSON object is adopted as the envelope itself, with success
// defaulted to true and accumulated tool results injected when the object
// doesn't carry its own. Anything else, including JSON arrays and
// scalars, is wrapped as a plain message.
func normalizeFinal(content string, results []core.ToolInvocationRecord) core.Response {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") {
		var resp core.Response
		if err := json.Unmarshal([]byte(trimmed), &resp); err == nil {
			if resp.ToolResults == nil && len(results) > 0 {
				resp.ToolResults = results
			}
			if resp.ToolResults == nil {
				resp.ToolResults = []core.ToolInvocationRecord{}
			}
			return resp
		}
	}
	return core.NewResponse(true, content, results)
}
