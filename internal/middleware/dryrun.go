// Package middleware wraps tool executors with cross-cutting policy.
package middleware

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/audit"
	"github.com/vjk-2k5/Travel-agent/internal/core"
)

// bookingTools are the tools that create reservations and therefore fall
// under dry-run enforcement.
var bookingTools = map[string]bool{
	"book_flight": true,
	"book_hotel":  true,
}

// DryRun forces dry_run=true on booking tools so a session can never
// place a real reservation, regardless of what the model asked for.
type DryRun struct {
	next    core.ToolExecutor
	sink    core.AuditSink
	enabled bool
	logger  *zap.Logger
}

// NewDryRun wraps next. When enabled is false the wrapper passes calls
// through untouched. sink may be nil; when set, each declined real
// booking is recorded as a refusal entry.
func NewDryRun(next core.ToolExecutor, sink core.AuditSink, enabled bool, logger *zap.Logger) *DryRun {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRun{next: next, sink: sink, enabled: enabled, logger: logger}
}

// Execute rewrites booking arguments before delegating. The caller's map
// is left alone; enforcement happens on a copy.
func (d *DryRun) Execute(ctx context.Context, name string, args map[string]any) core.ToolResult {
	if !d.enabled || !bookingTools[name] {
		return d.next.Execute(ctx, name, args)
	}
	forced := make(map[string]any, len(args)+1)
	for k, v := range args {
		forced[k] = v
	}
	if requested, ok := forced["dry_run"].(bool); !ok || !requested {
		d.logger.Info("forcing dry run on booking tool", zap.String("tool", name))
		if d.sink != nil {
			audit.LogRefusal(d.sink, fmt.Sprintf("%s with dry_run=false", name),
				"dry-run mode active; real booking declined, simulating instead")
		}
	}
	forced["dry_run"] = true
	return d.next.Execute(ctx, name, forced)
}
