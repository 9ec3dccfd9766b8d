package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer f.Close()
	var out []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad audit line %q: %v", sc.Text(), err)
		}
		out = append(out, e)
	}
	return out
}

func TestFileSinkLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink, err := NewFileSink(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	id := sink.Log("search_flights",
		map[string]any{"origin": "MAA", "destination": "SIN"},
		map[string]any{"flights": []any{}}, true, "")
	if !regexp.MustCompile(`^AUD-[0-9A-F]{8}$`).MatchString(id) {
		t.Errorf("audit id = %q", id)
	}

	sink.Log("book_flight", map[string]any{"flight_offer_id": "FLT-1"},
		map[string]any{"ignored": true}, false, "Function execution failed: boom")

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	e := entries[0]
	if e.Function != "search_flights" || !e.Success || e.Error != nil {
		t.Errorf("first entry = %+v", e)
	}
	if e.Result == nil {
		t.Error("successful entry dropped result")
	}
	if _, err := time.Parse(time.RFC3339Nano, e.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", e.Timestamp, err)
	}

	e = entries[1]
	if e.Success {
		t.Error("failed entry marked success")
	}
	if e.Result != nil {
		t.Error("failed entry kept result, want null")
	}
	if e.Error == nil || *e.Error != "Function execution failed: boom" {
		t.Errorf("error = %v", e.Error)
	}
}

func TestFileSinkConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink, err := NewFileSink(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Log("estimate_total_cost", map[string]any{"flight_price": 1.0}, nil, true, "")
		}()
	}
	wg.Wait()

	entries := readEntries(t, path)
	if len(entries) != n {
		t.Fatalf("got %d entries, want %d", len(entries), n)
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.AuditID] {
			t.Fatalf("duplicate audit id %s", e.AuditID)
		}
		seen[e.AuditID] = true
	}
}

func TestLogAgentDecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	sink, err := NewFileSink(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	LogAgentDecision(sink, "find me a flight", "calling 1 tool(s)", []string{"search_flights"})
	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.Function != "_agent_decision" {
		t.Errorf("function = %q", e.Function)
	}
	if e.Parameters["user_input"] != "find me a flight" {
		t.Errorf("parameters = %v", e.Parameters)
	}
}
