package middleware

import (
	"context"
	"testing"

	"github.com/vjk-2k5/Travel-agent/internal/core"
)

type recordingExecutor struct {
	lastName string
	lastArgs map[string]any
}

type recordingSink struct {
	functions []string
	params    []map[string]any
}

func (r *recordingSink) Log(function string, params map[string]any, result any, success bool, errMsg string) string {
	r.functions = append(r.functions, function)
	r.params = append(r.params, params)
	return "AUD-TEST0001"
}

func (r *recordingExecutor) Execute(_ context.Context, name string, args map[string]any) core.ToolResult {
	r.lastName = name
	r.lastArgs = args
	return core.Ok(map[string]any{"status": "DRY_RUN"})
}

func TestDryRunForcesBookingTools(t *testing.T) {
	next := &recordingExecutor{}
	d := NewDryRun(next, nil, true, nil)

	args := map[string]any{"flight_offer_id": "FLT-1", "dry_run": false}
	d.Execute(context.Background(), "book_flight", args)

	if next.lastArgs["dry_run"] != true {
		t.Errorf("dry_run = %v, want true", next.lastArgs["dry_run"])
	}
	if args["dry_run"] != false {
		t.Error("caller's args were mutated")
	}
}

func TestDryRunForcesWhenArgumentMissing(t *testing.T) {
	next := &recordingExecutor{}
	d := NewDryRun(next, nil, true, nil)

	d.Execute(context.Background(), "book_hotel", map[string]any{"hotel_offer_id": "HOFFER-1"})
	if next.lastArgs["dry_run"] != true {
		t.Errorf("dry_run = %v, want true", next.lastArgs["dry_run"])
	}
}

func TestDryRunIgnoresNonBookingTools(t *testing.T) {
	next := &recordingExecutor{}
	d := NewDryRun(next, nil, true, nil)

	args := map[string]any{"origin": "MAA"}
	d.Execute(context.Background(), "search_flights", args)
	if _, ok := next.lastArgs["dry_run"]; ok {
		t.Error("dry_run injected into non-booking tool")
	}
}

func TestDryRunDisabledPassesThrough(t *testing.T) {
	next := &recordingExecutor{}
	d := NewDryRun(next, nil, false, nil)

	d.Execute(context.Background(), "book_flight", map[string]any{"dry_run": false})
	if next.lastArgs["dry_run"] != false {
		t.Errorf("dry_run = %v, want false", next.lastArgs["dry_run"])
	}
}

func TestDryRunRecordsRefusalForRealBooking(t *testing.T) {
	next := &recordingExecutor{}
	sink := &recordingSink{}
	d := NewDryRun(next, sink, true, nil)

	d.Execute(context.Background(), "book_flight", map[string]any{"flight_offer_id": "FLT-1", "dry_run": false})

	if len(sink.functions) != 1 || sink.functions[0] != "_agent_refusal" {
		t.Fatalf("refusal entries = %v", sink.functions)
	}
	input, _ := sink.params[0]["user_input"].(string)
	if input != "book_flight with dry_run=false" {
		t.Errorf("user_input = %q", input)
	}
}

func TestDryRunNoRefusalWhenAlreadyDryRun(t *testing.T) {
	next := &recordingExecutor{}
	sink := &recordingSink{}
	d := NewDryRun(next, sink, true, nil)

	d.Execute(context.Background(), "book_hotel", map[string]any{"hotel_offer_id": "HOFFER-1", "dry_run": true})
	if len(sink.functions) != 0 {
		t.Errorf("refusal logged for a requested dry run: %v", sink.functions)
	}

	d.Execute(context.Background(), "search_flights", map[string]any{"origin": "MAA"})
	if len(sink.functions) != 0 {
		t.Errorf("refusal logged for a non-booking tool: %v", sink.functions)
	}
}
