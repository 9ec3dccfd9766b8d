// Package audit writes an append-only trail of every tool execution and
// agent decision, one JSON object per line.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/core"
)

// Entry is one audit record. Result is nil whenever Success is false.
type Entry struct {
	AuditID    string         `json:"audit_id"`
	Timestamp  string         `json:"timestamp"`
	Function   string         `json:"function"`
	Parameters map[string]any `json:"parameters"`
	Result     any            `json:"result"`
	Success    bool           `json:"success"`
	Error      *string        `json:"error"`
}

// NewAuditID returns a fresh id of the form AUD-XXXXXXXX.
func NewAuditID() string {
	return "AUD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// FileSink appends entries to a JSONL file. Safe for concurrent use; each
// entry is written under a mutex as a single line.
type FileSink struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileSink creates the log's parent directory if needed.
func NewFileSink(path string, logger *zap.Logger) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{path: path, logger: logger}, nil
}

// Log appends one entry and returns its audit id. A write failure is
// logged and reported as an empty id; it never propagates to the caller.
func (s *FileSink) Log(function string, params map[string]any, result any, success bool, errMsg string) string {
	return s.LogWithID(NewAuditID(), function, params, result, success, errMsg)
}

// LogWithID appends one entry under a caller-minted audit id, so the same
// id can be recorded by every sink an event fans out to.
func (s *FileSink) LogWithID(auditID, function string, params map[string]any, result any, success bool, errMsg string) string {
	entry := Entry{
		AuditID:    auditID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Function:   function,
		Parameters: params,
		Success:    success,
	}
	if success {
		entry.Result = result
	}
	if errMsg != "" {
		entry.Error = &errMsg
	}

	line, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("audit entry not serializable", zap.String("function", function), zap.Error(err))
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Error("audit log open failed", zap.String("path", s.path), zap.Error(err))
		return ""
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		s.logger.Error("audit log write failed", zap.String("path", s.path), zap.Error(err))
		return ""
	}
	return entry.AuditID
}

// sinkWithID is implemented by sinks that can record a caller-minted id.
type sinkWithID interface {
	LogWithID(auditID, function string, params map[string]any, result any, success bool, errMsg string) string
}

// MultiSink fans entries out to several sinks. One audit id is minted per
// event and handed to every sink that can take it, so a JSONL entry and
// its database mirror agree on the id. The first sink's outcome is the
// one returned to callers.
type MultiSink []core.AuditSink

func (m MultiSink) Log(function string, params map[string]any, result any, success bool, errMsg string) string {
	auditID := NewAuditID()
	var first string
	for i, s := range m {
		var id string
		if ws, ok := s.(sinkWithID); ok {
			id = ws.LogWithID(auditID, function, params, result, success, errMsg)
		} else {
			id = s.Log(function, params, result, success, errMsg)
		}
		if i == 0 {
			first = id
		}
	}
	return first
}

// LogAgentDecision records a model reasoning step alongside tool executions.
func LogAgentDecision(sink core.AuditSink, userInput, decision string, toolsSelected []string) string {
	if toolsSelected == nil {
		toolsSelected = []string{}
	}
	return sink.Log("_agent_decision",
		map[string]any{"user_input": userInput, "tools_selected": toolsSelected},
		map[string]any{"decision": decision},
		true, "")
}

// LogRefusal records the agent declining to act.
func LogRefusal(sink core.AuditSink, userInput, reason string) string {
	return sink.Log("_agent_refusal",
		map[string]any{"user_input": userInput},
		map[string]any{"reason": reason},
		true, "")
}
