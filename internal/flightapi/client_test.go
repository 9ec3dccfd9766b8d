package flightapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleResponse = `{
	"itineraries": [
		{"id": "itin-2", "leg_ids": ["leg-2"], "pricing_options": [{"price": {"amount": 52000}, "items": [{"url": "https://example.com/b2"}]}]},
		{"id": "itin-1", "leg_ids": ["leg-1"], "pricing_options": [{"price": {"amount": 31000}, "items": [{"url": "https://example.com/b1"}]}]},
		{"id": "itin-3", "leg_ids": ["leg-3"], "pricing_options": []}
	],
	"legs": [
		{"id": "leg-1", "departure": "2026-10-01T06:30:00", "arrival": "2026-10-01T13:15:00", "duration": 255, "stop_count": 0, "marketing_carrier_ids": [101], "origin_place_id": 1, "destination_place_id": 2},
		{"id": "leg-2", "departure": "2026-10-01T09:00:00", "arrival": "2026-10-01T19:30:00", "duration": 480, "stop_count": 1, "marketing_carrier_ids": [102], "origin_place_id": 1, "destination_place_id": 2}
	],
	"carriers": [
		{"id": 101, "name": "Singapore Airlines", "iata": "SQ"},
		{"id": 102, "name": "IndiGo", "iata": "6E"}
	],
	"places": [
		{"id": 1, "iata": "MAA"},
		{"id": 2, "iata": "SIN"}
	]
}`

func TestSearchParsesAndSortsOffers(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.BaseURL = srv.URL

	offers, err := c.Search(context.Background(), Query{
		Origin: "MAA", Destination: "SIN", DepartureDate: "2026-10-01",
		Adults: 2, CabinClass: "Economy", Currency: "INR",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/onewaytrip/test-key/MAA/SIN/2026-10-01/2/0/0/Economy/INR") {
		t.Errorf("url path = %s", gotPath)
	}

	if len(offers) != 2 {
		t.Fatalf("got %d offers, want 2 (empty pricing skipped)", len(offers))
	}
	if offers[0].OfferID != "itin-1" {
		t.Errorf("cheapest first: got %s", offers[0].OfferID)
	}
	if offers[0].Price.Amount != 31000 || offers[0].Price.Currency != "INR" {
		t.Errorf("price = %+v", offers[0].Price)
	}
	if offers[0].Airline.Name != "Singapore Airlines" || offers[0].Airline.Code != "SQ" {
		t.Errorf("airline = %+v", offers[0].Airline)
	}
	leg := offers[0].Legs[0]
	if leg.Origin != "MAA" || leg.Destination != "SIN" || leg.DurationMinutes != 255 {
		t.Errorf("leg = %+v", leg)
	}
	if offers[1].Stops != 1 {
		t.Errorf("stops = %d", offers[1].Stops)
	}
}

func TestSearchRoundTripURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"itineraries": []}`))
	}))
	defer srv.Close()

	c := NewClient("k")
	c.BaseURL = srv.URL
	_, err := c.Search(context.Background(), Query{
		Origin: "MAA", Destination: "SIN",
		DepartureDate: "2026-10-01", ReturnDate: "2026-10-08",
		Adults: 1, CabinClass: "Business", Currency: "USD",
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/roundtrip/k/MAA/SIN/2026-10-01/2026-10-08/1/0/0/Business/USD" {
		t.Errorf("url path = %s", gotPath)
	}
}

func TestSearchErrors(t *testing.T) {
	c := NewClient("")
	if _, err := c.Search(context.Background(), Query{}); err == nil {
		t.Error("want error without API key")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c = NewClient("k")
	c.BaseURL = srv.URL
	if _, err := c.Search(context.Background(), Query{Origin: "MAA", Destination: "SIN", DepartureDate: "2026-10-01", Adults: 1}); err == nil {
		t.Error("want error on non-200 status")
	}
}
