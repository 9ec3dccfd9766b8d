package core

import "encoding/json"

// Response is the structured envelope every conversation turn resolves to.
// When the model itself emits a JSON object the agent adopts that object,
// so arbitrary extra fields survive round trips via Extra.
type Response struct {
	Success     bool
	Message     string
	Error       string
	ToolResults []ToolInvocationRecord
	Extra       map[string]any
}

// NewResponse wraps a plain text answer in the standard envelope.
func NewResponse(success bool, message string, results []ToolInvocationRecord) Response {
	if results == nil {
		results = []ToolInvocationRecord{}
	}
	return Response{Success: success, Message: message, ToolResults: results}
}

// ErrorResponse builds a failed envelope carrying whatever tool results
// had accumulated before the failure.
func ErrorResponse(errMsg string, results []ToolInvocationRecord) Response {
	if results == nil {
		results = []ToolInvocationRecord{}
	}
	return Response{Success: false, Error: errMsg, ToolResults: results}
}

func (r Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+4)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["success"] = r.Success
	if r.Error != "" {
		out["error"] = r.Error
	} else if r.Message != "" || r.Extra == nil {
		out["message"] = r.Message
	}
	results := r.ToolResults
	if results == nil {
		results = []ToolInvocationRecord{}
	}
	out["tool_results"] = results
	return json.Marshal(out)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Success = true
	if v, ok := raw["success"].(bool); ok {
		r.Success = v
	}
	if v, ok := raw["message"].(string); ok {
		r.Message = v
	}
	if v, ok := raw["error"].(string); ok {
		r.Error = v
	}
	if v, ok := raw["tool_results"]; ok {
		b, err := json.Marshal(v)
		if err == nil {
			_ = json.Unmarshal(b, &r.ToolResults)
		}
	}
	delete(raw, "success")
	delete(raw, "message")
	delete(raw, "error")
	delete(raw, "tool_results")
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}
