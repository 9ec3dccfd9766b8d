package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/searchapi"
	"github.com/vjk-2k5/Travel-agent/internal/store"
)

type mockHotel struct {
	id        string
	name      string
	rating    int
	location  string
	basePrice int
}

var mockHotels = map[string][]mockHotel{
	"SIN": {
		{"HTL-MBS001", "Marina Bay Sands", 5, "Marina Bay", 25000},
		{"HTL-FUL002", "Fullerton Hotel", 5, "Marina Bay", 22000},
		{"HTL-RWS003", "Resorts World Sentosa", 5, "Sentosa", 18000},
		{"HTL-HII004", "Holiday Inn Express", 3, "Orchard", 8000},
		{"HTL-NOV005", "Novotel Singapore", 4, "Clarke Quay", 12000},
	},
	"DXB": {
		{"HTL-BJA001", "Burj Al Arab", 5, "Jumeirah", 85000},
		{"HTL-ATL002", "Atlantis The Palm", 5, "Palm Jumeirah", 35000},
		{"HTL-JWM003", "JW Marriott Marquis", 5, "Downtown", 18000},
	},
	"BKK": {
		{"HTL-MND001", "Mandarin Oriental", 5, "Riverside", 15000},
		{"HTL-SHT002", "Shangri-La Hotel", 5, "Silom", 12000},
		{"HTL-IBB003", "ibis Bangkok", 3, "Sukhumvit", 3500},
	},
	"DEFAULT": {
		{"HTL-GEN001", "Grand Hotel", 4, "City Center", 10000},
		{"HTL-GEN002", "Business Hotel", 3, "City Center", 6000},
		{"HTL-GEN003", "Budget Inn", 2, "Suburb", 3000},
	},
}

var amenitiesList = []string{
	"WIFI", "POOL", "GYM", "SPA", "RESTAURANT", "BAR", "PARKING",
	"AIRPORT_SHUTTLE", "ROOM_SERVICE",
}

var roomMultipliers = []struct {
	roomType   string
	multiplier float64
}{
	{"Standard", 1.0},
	{"Deluxe", 1.3},
	{"Suite", 1.8},
}

// HotelSearchParams are the arguments to search_hotels.
type HotelSearchParams struct {
	CityCode  string
	Location  string
	CheckIn   string
	CheckOut  string
	Adults    int
	Rooms     int
	Amenities []string
}

func nightsBetween(checkIn, checkOut string) (int, error) {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0, fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD (ISO-8601)", checkIn)
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return 0, fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD (ISO-8601)", checkOut)
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 0, fmt.Errorf("check_out must be after check_in")
	}
	return nights, nil
}

// SearchHotels searches hotels, preferring SearchAPI when configured and
// falling back to generated inventory sorted by total price.
func (s *Service) SearchHotels(ctx context.Context, p HotelSearchParams) (map[string]any, error) {
	if _, err := ValidateDate(p.CheckIn); err != nil {
		return nil, err
	}
	if _, err := ValidateDate(p.CheckOut); err != nil {
		return nil, err
	}
	nights, err := nightsBetween(p.CheckIn, p.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassengerCount(p.Adults); err != nil {
		return nil, err
	}
	rooms := p.Rooms
	if rooms == 0 {
		rooms = 1
	}

	query := map[string]any{
		"city_code": p.CityCode,
		"location":  p.Location,
		"check_in":  p.CheckIn,
		"check_out": p.CheckOut,
		"adults":    p.Adults,
		"rooms":     rooms,
		"amenities": p.Amenities,
	}

	if s.Hotels != nil {
		hotels, err := s.liveHotels(ctx, nights, p)
		if err == nil {
			return map[string]any{
				"success":       true,
				"source":        "searchapi.io",
				"search_id":     newHotelSearchID(),
				"query":         query,
				"results_count": len(hotels),
				"hotels":        hotels,
			}, nil
		}
		s.logger.Warn("hotel search falling back to generated inventory", zap.Error(err))
	}

	hotels := s.generateHotels(p.CityCode, p.Location, p.CheckIn, p.CheckOut, nights, rooms)
	return map[string]any{
		"success":       true,
		"source":        "mock",
		"search_id":     newHotelSearchID(),
		"query":         query,
		"results_count": len(hotels),
		"hotels":        hotels,
	}, nil
}

func (s *Service) liveHotels(ctx context.Context, nights int, p HotelSearchParams) ([]map[string]any, error) {
	location := p.Location
	if location == "" {
		location = p.CityCode
	}
	if location == "" {
		location = "Hotels"
	}
	res, err := s.Hotels.Search(ctx, searchapi.Query{
		Location: location,
		CheckIn:  p.CheckIn,
		CheckOut: p.CheckOut,
		Adults:   p.Adults,
		Rooms:    p.Rooms,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Hotels) == 0 {
		return nil, fmt.Errorf("no live hotels returned")
	}

	hotels := make([]map[string]any, 0, len(res.Hotels))
	for _, h := range res.Hotels {
		offerID := h.HotelID
		if offerID == "" {
			offerID = newHotelOfferID()
		}
		hotels = append(hotels, map[string]any{
			"offer_id":    offerID,
			"hotel_id":    h.HotelID,
			"name":        h.Name,
			"rating":      h.Rating,
			"hotel_class": h.HotelClass,
			"location": map[string]any{
				"city":        h.Location.City,
				"country":     h.Location.Country,
				"coordinates": h.Location.Coordinates,
			},
			"check_in":  p.CheckIn,
			"check_out": p.CheckOut,
			"nights":    nights,
			"amenities": h.Amenities,
			"price": map[string]any{
				"per_night_from": h.Price.PerNight,
				"total_from":     h.Price.Total,
				"currency":       h.Price.Currency,
			},
			"deal":          h.Deal,
			"nearby_places": h.NearbyPlaces,
			"images":        h.Images,
		})
	}
	return hotels, nil
}

func (s *Service) generateHotels(cityCode, location, checkIn, checkOut string, nights, rooms int) []map[string]any {
	cityKey := strings.ToUpper(cityCode)
	inventory, ok := mockHotels[cityKey]
	if !ok || cityKey == "" {
		inventory = mockHotels["DEFAULT"]
	}
	city := cityCode
	if city == "" {
		city = "Unknown"
	}

	cancellationPolicies := []string{
		"Free cancellation until 24h before",
		"Free cancellation until 48h before",
		"Non-refundable",
	}

	var hotels []map[string]any
	for _, h := range inventory {
		// Loose location filter: mismatches usually drop out.
		if location != "" && !strings.Contains(strings.ToLower(h.location), strings.ToLower(location)) {
			if s.rng.Float64() > 0.3 {
				continue
			}
		}

		perNight := int(float64(h.basePrice) * (0.9 + s.rng.Float64()*0.3))
		total := perNight * nights * rooms

		roomOptions := make([]map[string]any, 0, len(roomMultipliers))
		for _, rt := range roomMultipliers {
			roomOptions = append(roomOptions, map[string]any{
				"type":            rt.roomType,
				"price_per_night": int(float64(perNight) * rt.multiplier),
				"total_price":     int(float64(total) * rt.multiplier),
				"available_rooms": s.randInt(1, 5),
			})
		}

		amenities := s.sampleAmenities(s.randInt(4, 8))

		hotels = append(hotels, map[string]any{
			"offer_id": newHotelOfferID(),
			"hotel_id": h.id,
			"name":     h.name,
			"rating":   h.rating,
			"location": map[string]any{
				"area": h.location,
				"city": city,
			},
			"check_in":     checkIn,
			"check_out":    checkOut,
			"nights":       nights,
			"room_options": roomOptions,
			"amenities":    amenities,
			"price": map[string]any{
				"per_night_from": perNight,
				"total_from":     total,
				"currency":       "INR",
			},
			"cancellation_policy": s.randChoice(cancellationPolicies),
		})
	}

	sortByPriceTotal(hotels)
	return hotels
}

func (s *Service) sampleAmenities(n int) []string {
	perm := s.rng.Perm(len(amenitiesList))
	if n > len(perm) {
		n = len(perm)
	}
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, amenitiesList[i])
	}
	return out
}

// CheckHotelAvailability reports room availability for one hotel. Roughly
// one search in ten comes back with no rooms.
func (s *Service) CheckHotelAvailability(hotelID, checkIn, checkOut string, rooms int) (map[string]any, error) {
	if hotelID == "" {
		return nil, fmt.Errorf("hotel_id is required")
	}
	nights, err := nightsBetween(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if rooms == 0 {
		rooms = 1
	}

	if s.rng.Float64() <= 0.1 {
		return map[string]any{
			"success":   true,
			"hotel_id":  hotelID,
			"available": false,
			"check_in":  checkIn,
			"check_out": checkOut,
			"message":   "No rooms available for selected dates",
		}, nil
	}

	bedTypes := []string{"King", "Twin", "Queen"}
	var available []map[string]any
	for _, rt := range []struct {
		roomType  string
		basePrice int
	}{{"Standard", 8000}, {"Deluxe", 12000}, {"Suite", 20000}} {
		qty := s.randInt(0, 5)
		if qty == 0 {
			continue
		}
		maxOccupancy := 3
		if rt.roomType == "Standard" {
			maxOccupancy = 2
		}
		available = append(available, map[string]any{
			"room_type":       rt.roomType,
			"available_count": qty,
			"price_per_night": rt.basePrice,
			"total_price":     rt.basePrice * nights,
			"max_occupancy":   maxOccupancy,
			"bed_type":        s.randChoice(bedTypes),
		})
	}

	return map[string]any{
		"success":         true,
		"hotel_id":        hotelID,
		"available":       true,
		"check_in":        checkIn,
		"check_out":       checkOut,
		"nights":          nights,
		"rooms_requested": rooms,
		"available_rooms": available,
		"currency":        "INR",
	}, nil
}

// BookHotel books a hotel room or previews the booking with dryRun.
func (s *Service) BookHotel(hotelOfferID string, guests []map[string]any, paymentInfo map[string]any, dryRun bool) (map[string]any, error) {
	if hotelOfferID == "" {
		return nil, fmt.Errorf("hotel_offer_id is required")
	}
	if len(guests) == 0 {
		return nil, fmt.Errorf("at least one guest is required")
	}

	bookingRef := newHotelBookingRef()
	var result map[string]any
	if dryRun {
		names := make([]string, 0, len(guests))
		for _, g := range guests {
			names = append(names, fullName(g))
		}
		result = map[string]any{
			"success": true,
			"status":  "DRY_RUN",
			"message": "This is a preview. No actual booking was made.",
			"preview": map[string]any{
				"booking_reference": bookingRef,
				"hotel_offer_id":    hotelOfferID,
				"guests":            len(guests),
				"guest_names":       names,
			},
		}
	} else {
		booked := make([]map[string]any, 0, len(guests))
		for i, g := range guests {
			booked = append(booked, map[string]any{
				"name":       fullName(g),
				"is_primary": i == 0,
			})
		}
		result = map[string]any{
			"success":                 true,
			"status":                  "CONFIRMED",
			"booking_reference":       bookingRef,
			"hotel_offer_id":          hotelOfferID,
			"confirmation_number":     newConfirmationNo(),
			"guests":                  booked,
			"special_requests":        nil,
			"confirmation_email_sent": true,
			"created_at":              s.now().Format(time.RFC3339),
		}
	}

	booking := store.Booking{
		BookingID: bookingRef,
		Kind:      "hotel",
		OfferID:   hotelOfferID,
		Status:    statusOf(dryRun),
		Details:   result,
	}
	if conf, ok := result["confirmation_number"].(string); ok {
		booking.ConfirmationNumber = conf
	}
	s.persistBooking(booking)
	return result, nil
}
