package store

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/audit"
)

// AuditStore mirrors audit entries into sqlite so they can be queried,
// alongside the primary JSONL trail.
type AuditStore struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewAuditStore wraps db as an audit sink.
func NewAuditStore(db *DB, logger *zap.Logger) *AuditStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditStore{db: db.DB, logger: logger}
}

// Log inserts one audit row. Persistence failures are logged and surface
// as an empty audit id.
func (s *AuditStore) Log(function string, params map[string]any, result any, success bool, errMsg string) string {
	return s.LogWithID(audit.NewAuditID(), function, params, result, success, errMsg)
}

// LogWithID inserts one audit row under a caller-minted id, keeping the
// mirror row's id identical to the JSONL entry it mirrors.
func (s *AuditStore) LogWithID(auditID, function string, params map[string]any, result any, success bool, errMsg string) string {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		paramsJSON = []byte("{}")
	}
	var resultJSON sql.NullString
	if success && result != nil {
		if b, err := json.Marshal(result); err == nil {
			resultJSON = sql.NullString{String: string(b), Valid: true}
		}
	}
	var errCol sql.NullString
	if errMsg != "" {
		errCol = sql.NullString{String: errMsg, Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT INTO audit_entries (audit_id, timestamp, function, parameters, result, success, error) VALUES (?, ?, ?, ?, ?, ?, ?)",
		auditID, time.Now().UTC().Format(time.RFC3339Nano), function, string(paramsJSON), resultJSON, success, errCol,
	)
	if err != nil {
		s.logger.Error("audit mirror insert failed", zap.String("function", function), zap.Error(err))
		return ""
	}
	return auditID
}

// CountByFunction returns how many audit rows exist for one function name.
func (s *AuditStore) CountByFunction(function string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM audit_entries WHERE function = ?", function).Scan(&n)
	return n, err
}

// RecentEntries returns the newest audit rows, most recent first.
func (s *AuditStore) RecentEntries(limit int) ([]audit.Entry, error) {
	rows, err := s.db.Query(
		"SELECT audit_id, timestamp, function, parameters, result, success, error FROM audit_entries ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var paramsJSON string
		var resultJSON, errCol sql.NullString
		if err := rows.Scan(&e.AuditID, &e.Timestamp, &e.Function, &paramsJSON, &resultJSON, &e.Success, &errCol); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(paramsJSON), &e.Parameters)
		if resultJSON.Valid {
			var v any
			if json.Unmarshal([]byte(resultJSON.String), &v) == nil {
				e.Result = v
			}
		}
		if errCol.Valid {
			msg := errCol.String
			e.Error = &msg
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
