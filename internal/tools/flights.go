package tools

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/flightapi"
	"github.com/vjk-2k5/Travel-agent/internal/store"
)

type airline struct {
	code string
	name string
}

var mockAirlines = []airline{
	{"SQ", "Singapore Airlines"},
	{"AI", "Air India"},
	{"6E", "IndiGo"},
	{"UK", "Vistara"},
	{"EK", "Emirates"},
	{"QR", "Qatar Airways"},
}

// Base price ranges per cabin class, in INR.
var priceRanges = map[string][2]int{
	"ECONOMY":         {15000, 35000},
	"PREMIUM_ECONOMY": {35000, 55000},
	"BUSINESS":        {80000, 150000},
	"FIRST":           {200000, 400000},
}

// FlightSearchParams are the arguments to search_flights.
type FlightSearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	CabinClass    string
}

// SearchFlights searches flights, preferring FlightAPI when configured and
// falling back to generated offers sorted by total price.
func (s *Service) SearchFlights(ctx context.Context, p FlightSearchParams) (map[string]any, error) {
	origin, err := ValidateIATACode(p.Origin)
	if err != nil {
		return nil, err
	}
	dest, err := ValidateIATACode(p.Destination)
	if err != nil {
		return nil, err
	}
	for _, code := range []string{origin, dest} {
		if !knownIATA(code) {
			s.logger.Debug("airport code outside known set", zap.String("code", code))
		}
	}
	if _, err := ValidateDate(p.DepartureDate); err != nil {
		return nil, err
	}
	if p.ReturnDate != "" {
		if _, err := ValidateDate(p.ReturnDate); err != nil {
			return nil, err
		}
	}
	if err := ValidatePassengerCount(p.Adults); err != nil {
		return nil, err
	}
	cabin := "ECONOMY"
	if p.CabinClass != "" {
		if cabin, err = ValidateCabinClass(p.CabinClass); err != nil {
			return nil, err
		}
	}

	query := map[string]any{
		"origin":         origin,
		"destination":    dest,
		"departure_date": p.DepartureDate,
		"return_date":    p.ReturnDate,
		"adults":         p.Adults,
		"cabin_class":    cabin,
	}

	if s.Flights != nil {
		flights, err := s.liveFlights(ctx, origin, dest, cabin, p)
		if err == nil {
			return map[string]any{
				"success":       true,
				"source":        "flightapi.io",
				"search_id":     newSearchID(),
				"query":         query,
				"results_count": len(flights),
				"flights":       flights,
			}, nil
		}
		s.logger.Warn("flight search falling back to generated offers", zap.Error(err))
	}

	flights := s.generateFlights(origin, dest, p.DepartureDate, p.ReturnDate, p.Adults, cabin)
	return map[string]any{
		"success":       true,
		"source":        "mock",
		"search_id":     newSearchID(),
		"query":         query,
		"results_count": len(flights),
		"flights":       flights,
	}, nil
}

// liveFlights queries FlightAPI and reshapes its offers into the catalog's
// flight format.
func (s *Service) liveFlights(ctx context.Context, origin, dest, cabin string, p FlightSearchParams) ([]map[string]any, error) {
	cabinMap := map[string]string{
		"ECONOMY":         "Economy",
		"PREMIUM_ECONOMY": "Premium_Economy",
		"BUSINESS":        "Business",
		"FIRST":           "First",
	}
	offers, err := s.Flights.Search(ctx, flightapi.Query{
		Origin:        origin,
		Destination:   dest,
		DepartureDate: p.DepartureDate,
		ReturnDate:    p.ReturnDate,
		Adults:        p.Adults,
		CabinClass:    cabinMap[cabin],
		Currency:      "INR",
	})
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("no live offers returned")
	}

	flights := make([]map[string]any, 0, len(offers))
	for _, f := range offers {
		departure, arrival := "", ""
		if len(f.Legs) > 0 {
			departure = f.Legs[0].Departure
			arrival = f.Legs[0].Arrival
		}
		offerID := f.OfferID
		if offerID == "" {
			offerID = newFlightOfferID()
		}
		flights = append(flights, map[string]any{
			"offer_id": offerID,
			"airline":  map[string]any{"code": f.Airline.Code, "name": f.Airline.Name},
			"itinerary": map[string]any{
				"outbound": map[string]any{
					"departure":        map[string]any{"airport": origin, "datetime": departure},
					"arrival":          map[string]any{"airport": dest, "datetime": arrival},
					"duration_minutes": f.TotalDurationMinutes,
					"stops":            f.Stops,
				},
			},
			"cabin_class": cabin,
			"passengers":  p.Adults,
			"price": map[string]any{
				"base":     int(f.Price.Amount * 0.88),
				"taxes":    int(f.Price.Amount * 0.12),
				"total":    int(f.Price.Amount),
				"currency": f.Price.Currency,
			},
			"booking_url":     f.BookingURL,
			"seats_available": 9,
		})
	}
	return flights, nil
}

// generateFlights builds 3-6 plausible offers, sorted by total price.
func (s *Service) generateFlights(origin, dest, departureDate, returnDate string, adults int, cabin string) []map[string]any {
	depDate, _ := time.Parse("2006-01-02", departureDate)
	priceRange, ok := priceRanges[cabin]
	if !ok {
		priceRange = priceRanges["ECONOMY"]
	}
	minutes := []int{0, 15, 30, 45}

	n := s.randInt(3, 6)
	flights := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		carrier := mockAirlines[s.rng.Intn(len(mockAirlines))]
		basePrice := s.randInt(priceRange[0], priceRange[1])
		durationHours := s.randInt(4, 8)

		depTime := depDate.Add(time.Duration(s.randInt(6, 22))*time.Hour + time.Duration(minutes[s.rng.Intn(4)])*time.Minute)
		arrTime := depTime.Add(time.Duration(durationHours)*time.Hour + time.Duration(s.randInt(0, 45))*time.Minute)

		base := basePrice * adults
		taxes := int(float64(base) * 0.12)
		total := int(float64(base) * 1.12)

		itinerary := map[string]any{
			"outbound": map[string]any{
				"departure": map[string]any{"airport": origin, "datetime": depTime.Format("2006-01-02T15:04:05")},
				"arrival":   map[string]any{"airport": dest, "datetime": arrTime.Format("2006-01-02T15:04:05")},
				"duration":  fmt.Sprintf("PT%dH%dM", durationHours, s.randInt(0, 45)),
				"stops":     []int{0, 0, 0, 1}[s.rng.Intn(4)],
			},
		}

		if returnDate != "" {
			retDate, _ := time.Parse("2006-01-02", returnDate)
			retTime := retDate.Add(time.Duration(s.randInt(6, 22))*time.Hour + time.Duration(minutes[s.rng.Intn(4)])*time.Minute)
			retArr := retTime.Add(time.Duration(durationHours)*time.Hour + time.Duration(s.randInt(0, 45))*time.Minute)
			itinerary["return"] = map[string]any{
				"departure": map[string]any{"airport": dest, "datetime": retTime.Format("2006-01-02T15:04:05")},
				"arrival":   map[string]any{"airport": origin, "datetime": retArr.Format("2006-01-02T15:04:05")},
				"duration":  fmt.Sprintf("PT%dH%dM", durationHours, s.randInt(0, 45)),
				"stops":     []int{0, 0, 0, 1}[s.rng.Intn(4)],
			}
			base *= 2
			taxes *= 2
			total *= 2
		}

		flights = append(flights, map[string]any{
			"offer_id":    newFlightOfferID(),
			"airline":     map[string]any{"code": carrier.code, "name": carrier.name},
			"itinerary":   itinerary,
			"cabin_class": cabin,
			"passengers":  adults,
			"price": map[string]any{
				"base":     base,
				"taxes":    taxes,
				"total":    total,
				"currency": "INR",
			},
			"seats_available": s.randInt(2, 15),
		})
	}

	sortByPriceTotal(flights)
	return flights
}

// GetFlightPricing confirms pricing for one offer with taxes and fees.
func (s *Service) GetFlightPricing(flightOfferID, currency string) (map[string]any, error) {
	if flightOfferID == "" {
		return nil, fmt.Errorf("flight_offer_id is required")
	}
	if currency == "" {
		currency = "INR"
	} else {
		var err error
		if currency, err = ValidateCurrency(currency); err != nil {
			return nil, err
		}
	}

	basePrice := s.randInt(25000, 80000)
	return map[string]any{
		"success":           true,
		"offer_id":          flightOfferID,
		"pricing_confirmed": true,
		"price": map[string]any{
			"base":  basePrice,
			"taxes": int(float64(basePrice) * 0.12),
			"fees": map[string]any{
				"fuel_surcharge": int(float64(basePrice) * 0.05),
				"booking_fee":    500,
			},
			"total":    int(float64(basePrice)*1.17) + 500,
			"currency": currency,
		},
		"valid_until": s.now().Add(24 * time.Hour).Format(time.RFC3339),
		"fare_rules": map[string]any{
			"cancellation": "Cancellation allowed with fee",
			"changes":      "Changes allowed with fee",
			"refundable":   false,
		},
	}, nil
}

// BookFlight books a flight or, with dryRun, previews the booking without
// reserving anything. Confirmed and dry-run bookings are both persisted
// when a store is attached.
func (s *Service) BookFlight(flightOfferID string, passengers []map[string]any, dryRun bool) (map[string]any, error) {
	if flightOfferID == "" {
		return nil, fmt.Errorf("flight_offer_id is required")
	}
	if len(passengers) == 0 {
		return nil, fmt.Errorf("at least one passenger is required")
	}
	if err := ValidatePassengerCount(len(passengers)); err != nil {
		return nil, err
	}

	bookingRef := newBookingRef()
	var result map[string]any
	if dryRun {
		names := make([]string, 0, len(passengers))
		for _, p := range passengers {
			names = append(names, fullName(p))
		}
		result = map[string]any{
			"success": true,
			"status":  "DRY_RUN",
			"message": "This is a preview. No actual booking was made.",
			"preview": map[string]any{
				"booking_reference": bookingRef,
				"flight_offer_id":   flightOfferID,
				"passengers":        len(passengers),
				"passenger_names":   names,
			},
		}
	} else {
		booked := make([]map[string]any, 0, len(passengers))
		for _, p := range passengers {
			booked = append(booked, map[string]any{
				"name":          fullName(p),
				"ticket_number": "098-" + newID("T", 10)[2:],
			})
		}
		result = map[string]any{
			"success":                 true,
			"status":                  "CONFIRMED",
			"booking_reference":       bookingRef,
			"flight_offer_id":         flightOfferID,
			"passengers":              booked,
			"confirmation_email_sent": true,
			"created_at":              s.now().Format(time.RFC3339),
		}
	}

	s.persistBooking(store.Booking{
		BookingID: bookingRef,
		Kind:      "flight",
		OfferID:   flightOfferID,
		Status:    statusOf(dryRun),
		Details:   result,
	})
	return result, nil
}

func statusOf(dryRun bool) string {
	if dryRun {
		return "DRY_RUN"
	}
	return "CONFIRMED"
}

func (s *Service) persistBooking(b store.Booking) {
	if s.DB == nil {
		return
	}
	if err := s.DB.SaveBooking(b); err != nil {
		s.logger.Error("booking persistence failed", zap.String("booking_id", b.BookingID), zap.Error(err))
	}
}

func fullName(person map[string]any) string {
	first, _ := person["first_name"].(string)
	last, _ := person["last_name"].(string)
	return first + " " + last
}

func sortByPriceTotal(items []map[string]any) {
	sort.SliceStable(items, func(i, j int) bool {
		return priceTotal(items[i]) < priceTotal(items[j])
	})
}

func priceTotal(item map[string]any) float64 {
	price, _ := item["price"].(map[string]any)
	switch v := price["total"].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	switch v := price["total_from"].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return 0
}
