package tools

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSearchHotelsMockInventory(t *testing.T) {
	svc := newTestService(7, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	res, err := svc.SearchHotels(context.Background(), HotelSearchParams{
		CityCode: "SIN",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-04",
		Adults:   2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res["source"] != "mock" {
		t.Errorf("source = %v", res["source"])
	}
	hotels, _ := res["hotels"].([]map[string]any)
	if len(hotels) != 5 {
		t.Fatalf("got %d hotels for SIN, want 5", len(hotels))
	}
	for i := 1; i < len(hotels); i++ {
		if priceTotal(hotels[i]) < priceTotal(hotels[i-1]) {
			t.Error("hotels not sorted by total price")
		}
	}
	h := hotels[0]
	if h["nights"] != 3 {
		t.Errorf("nights = %v", h["nights"])
	}
	offerID, _ := h["offer_id"].(string)
	if !strings.HasPrefix(offerID, "HOFFER-") {
		t.Errorf("offer_id = %q", offerID)
	}
	roomOptions, _ := h["room_options"].([]map[string]any)
	if len(roomOptions) != 3 {
		t.Fatalf("room options = %v", roomOptions)
	}
	if roomOptions[0]["type"] != "Standard" || roomOptions[2]["type"] != "Suite" {
		t.Errorf("room types = %v, %v", roomOptions[0]["type"], roomOptions[2]["type"])
	}
}

func TestSearchHotelsUnknownCityUsesDefault(t *testing.T) {
	svc := newTestService(7, time.Now())

	res, err := svc.SearchHotels(context.Background(), HotelSearchParams{
		CityCode: "ZZZ",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-02",
		Adults:   1,
	})
	if err != nil {
		t.Fatal(err)
	}
	hotels, _ := res["hotels"].([]map[string]any)
	if len(hotels) != 3 {
		t.Fatalf("got %d hotels, want 3 from default inventory", len(hotels))
	}
	names := map[string]bool{}
	for _, h := range hotels {
		names[h["name"].(string)] = true
	}
	if !names["Grand Hotel"] {
		t.Errorf("default inventory missing, got %v", names)
	}
}

func TestSearchHotelsRejectsBadDates(t *testing.T) {
	svc := newTestService(7, time.Now())

	if _, err := svc.SearchHotels(context.Background(), HotelSearchParams{
		CheckIn: "2026-10-04", CheckOut: "2026-10-01", Adults: 2,
	}); err == nil {
		t.Error("check_out before check_in accepted")
	}
	if _, err := svc.SearchHotels(context.Background(), HotelSearchParams{
		CheckIn: "2020-01-01", CheckOut: "2026-10-01", Adults: 2,
	}); err == nil {
		t.Error("past check_in accepted")
	}
}

func TestCheckHotelAvailabilityShape(t *testing.T) {
	svc := newTestService(3, time.Now())

	res, err := svc.CheckHotelAvailability("HTL-MBS001", "2026-10-01", "2026-10-03", 1)
	if err != nil {
		t.Fatal(err)
	}
	if res["hotel_id"] != "HTL-MBS001" {
		t.Errorf("hotel_id = %v", res["hotel_id"])
	}
	available, _ := res["available"].(bool)
	if available {
		rooms, _ := res["available_rooms"].([]map[string]any)
		for _, r := range rooms {
			nights := res["nights"].(int)
			if r["total_price"] != r["price_per_night"].(int)*nights {
				t.Errorf("room pricing inconsistent: %v", r)
			}
		}
	} else if res["message"] != "No rooms available for selected dates" {
		t.Errorf("unavailable message = %v", res["message"])
	}
}

func TestGenerateFlightsRoundTripDoublesPrice(t *testing.T) {
	svc := newTestService(11, time.Now())

	oneWay, err := svc.SearchFlights(context.Background(), FlightSearchParams{
		Origin: "MAA", Destination: "SIN", DepartureDate: "2026-10-01", Adults: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	flights, _ := oneWay["flights"].([]map[string]any)
	for _, f := range flights {
		itin := f["itinerary"].(map[string]any)
		if _, ok := itin["return"]; ok {
			t.Error("one-way offer has return leg")
		}
		price := f["price"].(map[string]any)
		base, taxes, total := price["base"].(int), price["taxes"].(int), price["total"].(int)
		if taxes != int(float64(base)*0.12) || total != int(float64(base)*1.12) {
			t.Errorf("price math off: %v", price)
		}
	}

	round, err := svc.SearchFlights(context.Background(), FlightSearchParams{
		Origin: "MAA", Destination: "SIN",
		DepartureDate: "2026-10-01", ReturnDate: "2026-10-08", Adults: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	flights, _ = round["flights"].([]map[string]any)
	for _, f := range flights {
		itin := f["itinerary"].(map[string]any)
		if _, ok := itin["return"]; !ok {
			t.Error("round trip offer missing return leg")
		}
	}
}
