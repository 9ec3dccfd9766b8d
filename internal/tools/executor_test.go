package tools

import (
	"context"
	"strings"
	"testing"
	"time"
)

type capturedEntry struct {
	function string
	success  bool
	errMsg   string
}

type captureSink struct {
	entries []capturedEntry
}

func (c *captureSink) Log(function string, params map[string]any, result any, success bool, errMsg string) string {
	c.entries = append(c.entries, capturedEntry{function, success, errMsg})
	return "AUD-TEST0001"
}

func newTestExecutor(t *testing.T, sink *captureSink) *Executor {
	t.Helper()
	svc := newTestService(1, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	e, err := NewExecutor(svc, sink, nil)
	if err != nil {
		t.Fatalf("new executor: %v", err)
	}
	return e
}

func TestExecuteUnknownFunction(t *testing.T) {
	sink := &captureSink{}
	e := newTestExecutor(t, sink)

	res := e.Execute(context.Background(), "teleport", map[string]any{})
	if res.Success {
		t.Error("unknown function should fail")
	}
	if res.Error != "Unknown function: teleport" {
		t.Errorf("error = %q", res.Error)
	}
	if len(sink.entries) != 1 || sink.entries[0].success {
		t.Errorf("audit entries = %+v", sink.entries)
	}
}

func TestExecuteInvalidArguments(t *testing.T) {
	e := newTestExecutor(t, &captureSink{})

	// Missing required fields.
	res := e.Execute(context.Background(), "search_flights", map[string]any{"origin": "MAA"})
	if res.Success {
		t.Error("missing required args should fail")
	}
	if !strings.HasPrefix(res.Error, "Invalid arguments for search_flights: ") {
		t.Errorf("error = %q", res.Error)
	}

	// Pattern violation.
	res = e.Execute(context.Background(), "search_flights", map[string]any{
		"origin":         "Chennai",
		"destination":    "SIN",
		"departure_date": "2026-10-01",
		"adults":         2,
	})
	if res.Success || !strings.HasPrefix(res.Error, "Invalid arguments for search_flights: ") {
		t.Errorf("result = %+v", res)
	}

	// Range violation.
	res = e.Execute(context.Background(), "search_flights", map[string]any{
		"origin":         "MAA",
		"destination":    "SIN",
		"departure_date": "2026-10-01",
		"adults":         12,
	})
	if res.Success || !strings.HasPrefix(res.Error, "Invalid arguments for search_flights: ") {
		t.Errorf("result = %+v", res)
	}
}

func TestExecuteNilArguments(t *testing.T) {
	e := newTestExecutor(t, &captureSink{})
	res := e.Execute(context.Background(), "search_flights", nil)
	if res.Success {
		t.Error("nil args should fail validation, not panic")
	}
	if !strings.HasPrefix(res.Error, "Invalid arguments for search_flights: ") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestExecuteSearchFlights(t *testing.T) {
	sink := &captureSink{}
	e := newTestExecutor(t, sink)

	res := e.Execute(context.Background(), "search_flights", map[string]any{
		"origin":         "MAA",
		"destination":    "SIN",
		"departure_date": "2026-10-01",
		"adults":         2,
		"cabin_class":    "ECONOMY",
	})
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	if res.Data["source"] != "mock" {
		t.Errorf("source = %v", res.Data["source"])
	}
	flights, ok := res.Data["flights"].([]map[string]any)
	if !ok || len(flights) < 3 || len(flights) > 6 {
		t.Fatalf("flights = %v", res.Data["flights"])
	}
	searchID, _ := res.Data["search_id"].(string)
	if !strings.HasPrefix(searchID, "SRCH-") {
		t.Errorf("search_id = %q", searchID)
	}
	for i := 1; i < len(flights); i++ {
		if priceTotal(flights[i]) < priceTotal(flights[i-1]) {
			t.Error("flights not sorted by total price")
		}
	}

	if len(sink.entries) != 1 || !sink.entries[0].success || sink.entries[0].function != "search_flights" {
		t.Errorf("audit entries = %+v", sink.entries)
	}
}

func TestExecuteToolFailureUsesCanonicalString(t *testing.T) {
	e := newTestExecutor(t, &captureSink{})

	// Past date passes the schema but fails tool-level validation.
	res := e.Execute(context.Background(), "search_flights", map[string]any{
		"origin":         "MAA",
		"destination":    "SIN",
		"departure_date": "2001-01-01",
		"adults":         2,
	})
	if res.Success {
		t.Fatal("past date should fail")
	}
	if !strings.HasPrefix(res.Error, "Function execution failed: ") {
		t.Errorf("error = %q", res.Error)
	}
	if !strings.Contains(res.Error, "in the past") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestExecuteEstimateTotalCost(t *testing.T) {
	e := newTestExecutor(t, &captureSink{})

	res := e.Execute(context.Background(), "estimate_total_cost", map[string]any{
		"flight_price":  40000.0,
		"hotel_price":   60000.0,
		"currency":      "INR",
		"include_taxes": false,
		"additional_costs": map[string]any{
			"transfers": 2000.0,
		},
	})
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	// subtotal 100000, taxes 12000, service fee 2000, additional 2000.
	if res.Data["grand_total"] != 116000.0 {
		t.Errorf("grand_total = %v", res.Data["grand_total"])
	}
	if res.Data["service_fee"] != 2000.0 {
		t.Errorf("service_fee = %v", res.Data["service_fee"])
	}
	estimateID, _ := res.Data["estimate_id"].(string)
	if !strings.HasPrefix(estimateID, "EST-") {
		t.Errorf("estimate_id = %q", estimateID)
	}
}

func TestExecuteBookFlightDryRun(t *testing.T) {
	e := newTestExecutor(t, &captureSink{})

	res := e.Execute(context.Background(), "book_flight", map[string]any{
		"flight_offer_id": "FLT-ABC123",
		"passengers": []any{
			map[string]any{"first_name": "Asha", "last_name": "Iyer"},
		},
		"dry_run": true,
	})
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	if res.Data["status"] != "DRY_RUN" {
		t.Errorf("status = %v", res.Data["status"])
	}
	preview, _ := res.Data["preview"].(map[string]any)
	if preview == nil || preview["flight_offer_id"] != "FLT-ABC123" {
		t.Errorf("preview = %v", preview)
	}
	if _, ok := res.Data["confirmation_number"]; ok {
		t.Error("dry run must not carry a confirmation number")
	}
	if res.Data["audit_log_id"] != "AUD-TEST0001" {
		t.Errorf("audit_log_id = %v", res.Data["audit_log_id"])
	}
}

func TestExecuteBookHotelConfirmed(t *testing.T) {
	e := newTestExecutor(t, &captureSink{})

	res := e.Execute(context.Background(), "book_hotel", map[string]any{
		"hotel_offer_id": "HOFFER-XYZ",
		"guests": []any{
			map[string]any{"first_name": "Asha", "last_name": "Iyer"},
			map[string]any{"first_name": "Dev", "last_name": "Iyer"},
		},
		"dry_run": false,
	})
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	if res.Data["status"] != "CONFIRMED" {
		t.Errorf("status = %v", res.Data["status"])
	}
	conf, _ := res.Data["confirmation_number"].(string)
	if !strings.HasPrefix(conf, "CONF-") {
		t.Errorf("confirmation_number = %q", conf)
	}
	guests, _ := res.Data["guests"].([]map[string]any)
	if len(guests) != 2 || guests[0]["is_primary"] != true || guests[1]["is_primary"] != false {
		t.Errorf("guests = %v", guests)
	}
}

func TestExecutePlannerWithoutToken(t *testing.T) {
	e := newTestExecutor(t, &captureSink{})

	res := e.Execute(context.Background(), "plan_destination", map[string]any{
		"destination": "Singapore",
	})
	if res.Success {
		t.Error("planner without token should fail")
	}
	if !strings.HasPrefix(res.Error, "Function execution failed: ") {
		t.Errorf("error = %q", res.Error)
	}
}

func TestExecuteRecoverFromPanic(t *testing.T) {
	sink := &captureSink{}
	e := newTestExecutor(t, sink)
	e.bindings["explode"] = binding{
		schema: e.bindings["search_flights"].schema,
		run: func(context.Context, map[string]any) (map[string]any, error) {
			panic("boom")
		},
	}

	res := e.Execute(context.Background(), "explode", map[string]any{
		"origin":         "MAA",
		"destination":    "SIN",
		"departure_date": "2026-10-01",
		"adults":         1,
	})
	if res.Success {
		t.Error("panic should produce failed result")
	}
	if res.Error != "Function execution failed: boom" {
		t.Errorf("error = %q", res.Error)
	}
	if len(sink.entries) != 1 || sink.entries[0].success {
		t.Errorf("audit entries = %+v", sink.entries)
	}
}
