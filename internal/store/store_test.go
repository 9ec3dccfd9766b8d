package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vjk-2k5/Travel-agent/internal/audit"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBookingRoundTrip(t *testing.T) {
	db := openTestDB(t)

	b := Booking{
		BookingID: "BK-ABC12345",
		Kind:      "flight",
		OfferID:   "FLT-0001",
		Status:    "DRY_RUN",
		Details:   map[string]any{"passenger_count": float64(2), "total_price": 45000.0},
	}
	if err := db.SaveBooking(b); err != nil {
		t.Fatalf("save booking: %v", err)
	}

	got, err := db.GetBooking("BK-ABC12345")
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.Kind != "flight" || got.OfferID != "FLT-0001" || got.Status != "DRY_RUN" {
		t.Errorf("booking = %+v", got)
	}
	if got.ConfirmationNumber != "" {
		t.Errorf("dry run has confirmation number %q", got.ConfirmationNumber)
	}
	if got.Details["passenger_count"] != float64(2) {
		t.Errorf("details = %v", got.Details)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.GetBooking("BK-MISSING")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestListBookingsByStatus(t *testing.T) {
	db := openTestDB(t)

	for _, b := range []Booking{
		{BookingID: "BK-1", Kind: "flight", OfferID: "FLT-1", Status: "DRY_RUN", Details: map[string]any{}},
		{BookingID: "HBK-2", Kind: "hotel", OfferID: "HOFFER-2", Status: "CONFIRMED", ConfirmationNumber: "CONF-XYZ", Details: map[string]any{}},
		{BookingID: "BK-3", Kind: "flight", OfferID: "FLT-3", Status: "DRY_RUN", Details: map[string]any{}},
	} {
		if err := db.SaveBooking(b); err != nil {
			t.Fatalf("save %s: %v", b.BookingID, err)
		}
	}

	dry, err := db.ListBookings("DRY_RUN")
	if err != nil {
		t.Fatal(err)
	}
	if len(dry) != 2 {
		t.Fatalf("got %d dry runs, want 2", len(dry))
	}
	if dry[0].BookingID != "BK-3" {
		t.Errorf("newest first: got %s", dry[0].BookingID)
	}

	all, err := db.ListBookings("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d bookings, want 3", len(all))
	}
}

func TestAuditStoreMirror(t *testing.T) {
	db := openTestDB(t)
	sink := NewAuditStore(db, nil)

	id := sink.Log("search_hotels", map[string]any{"city_code": "SIN"}, map[string]any{"count": 3}, true, "")
	if id == "" {
		t.Fatal("empty audit id")
	}
	sink.Log("book_hotel", map[string]any{"hotel_offer_id": "HOFFER-1"}, nil, false, "Invalid arguments for book_hotel: guests is required")

	n, err := sink.CountByFunction("search_hotels")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	entries, err := sink.RecentEntries(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Function != "book_hotel" || entries[0].Success {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if entries[0].Error == nil {
		t.Error("failed entry missing error")
	}
	if entries[1].Result == nil {
		t.Error("successful entry missing result")
	}
}

func TestMultiSinkMirrorSharesAuditID(t *testing.T) {
	db := openTestDB(t)
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	fileSink, err := audit.NewFileSink(logPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	sink := audit.MultiSink{fileSink, NewAuditStore(db, nil)}

	id := sink.Log("book_flight", map[string]any{"flight_offer_id": "FLT-1"}, map[string]any{"status": "DRY_RUN"}, true, "")
	if id == "" {
		t.Fatal("empty audit id")
	}

	f, err := os.Open(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("audit log is empty")
	}
	var entry audit.Entry
	if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.AuditID != id {
		t.Errorf("jsonl id = %s, sink returned %s", entry.AuditID, id)
	}

	rows, err := NewAuditStore(db, nil).RecentEntries(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d mirror rows, want 1", len(rows))
	}
	if rows[0].AuditID != id {
		t.Errorf("mirror id = %s, jsonl id = %s", rows[0].AuditID, id)
	}
}
