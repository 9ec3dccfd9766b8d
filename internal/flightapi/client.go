// Package flightapi calls FlightAPI.io for live flight price data. The
// flight tools fall back to generated offers when no key is configured or
// the API fails.
package flightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

const BaseURL = "https://api.flightapi.io"

// maxResults caps how many itineraries a search returns.
const maxResults = 15

// Client calls the FlightAPI.io trip endpoints.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: BaseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Query describes one flight search.
type Query struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	CabinClass    string
	Currency      string
}

// Carrier identifies an operating airline.
type Carrier struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Leg is one flight segment of an offer.
type Leg struct {
	Departure       string  `json:"departure"`
	Arrival         string  `json:"arrival"`
	DurationMinutes int     `json:"duration_minutes"`
	Stops           int     `json:"stops"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Carrier         Carrier `json:"carrier"`
}

// Price is the offer's best available price.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Total    float64 `json:"total"`
}

// Offer is one priced itinerary, cheapest pricing option first.
type Offer struct {
	OfferID              string  `json:"offer_id"`
	Airline              Carrier `json:"airline"`
	Price                Price   `json:"price"`
	Legs                 []Leg   `json:"legs"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`
	Stops                int     `json:"stops"`
	CabinClass           string  `json:"cabin_class"`
	BookingURL           string  `json:"booking_url"`
}

// apiResponse mirrors the normalized FlightAPI payload.
type apiResponse struct {
	Itineraries []struct {
		ID             string   `json:"id"`
		LegIDs         []string `json:"leg_ids"`
		PricingOptions []struct {
			Price struct {
				Amount float64 `json:"amount"`
			} `json:"price"`
			Items []struct {
				URL string `json:"url"`
			} `json:"items"`
		} `json:"pricing_options"`
	} `json:"itineraries"`
	Legs []struct {
		ID                  string          `json:"id"`
		Departure           string          `json:"departure"`
		Arrival             string          `json:"arrival"`
		Duration            int             `json:"duration"`
		StopCount           int             `json:"stop_count"`
		MarketingCarrierIDs []json.Number   `json:"marketing_carrier_ids"`
		OriginPlaceID       json.Number     `json:"origin_place_id"`
		DestinationPlaceID  json.Number     `json:"destination_place_id"`
	} `json:"legs"`
	Carriers []struct {
		ID   json.Number `json:"id"`
		Name string      `json:"name"`
		IATA string      `json:"iata"`
	} `json:"carriers"`
	Places []struct {
		ID   json.Number `json:"id"`
		IATA string      `json:"iata"`
	} `json:"places"`
}

// Search runs a one-way or round trip search and returns offers sorted by
// price ascending.
func (c *Client) Search(ctx context.Context, q Query) ([]Offer, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("flightapi: API key not set")
	}
	if q.Currency == "" {
		q.Currency = "INR"
	}
	if q.CabinClass == "" {
		q.CabinClass = "Economy"
	}

	var url string
	if q.ReturnDate != "" {
		url = fmt.Sprintf("%s/roundtrip/%s/%s/%s/%s/%s/%d/%d/%d/%s/%s",
			c.BaseURL, c.APIKey, q.Origin, q.Destination, q.DepartureDate, q.ReturnDate,
			q.Adults, q.Children, q.Infants, q.CabinClass, q.Currency)
	} else {
		url = fmt.Sprintf("%s/onewaytrip/%s/%s/%s/%s/%d/%d/%d/%s/%s",
			c.BaseURL, c.APIKey, q.Origin, q.Destination, q.DepartureDate,
			q.Adults, q.Children, q.Infants, q.CabinClass, q.Currency)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flightapi: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flightapi: status %d", resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("flightapi: decoding response: %w", err)
	}
	return parseOffers(data, q), nil
}

func parseOffers(data apiResponse, q Query) []Offer {
	legs := map[string]int{}
	for i, l := range data.Legs {
		legs[l.ID] = i
	}
	carriers := map[string]Carrier{}
	for _, c := range data.Carriers {
		carriers[c.ID.String()] = Carrier{Name: c.Name, Code: c.IATA}
	}
	places := map[string]string{}
	for _, p := range data.Places {
		places[p.ID.String()] = p.IATA
	}

	var offers []Offer
	for _, itin := range data.Itineraries {
		if len(offers) == maxResults {
			break
		}
		if len(itin.PricingOptions) == 0 {
			continue
		}
		best := itin.PricingOptions[0]

		var flightLegs []Leg
		totalDuration, stops := 0, 0
		for _, legID := range itin.LegIDs {
			idx, ok := legs[legID]
			if !ok {
				continue
			}
			l := data.Legs[idx]
			totalDuration += l.Duration
			stops += l.StopCount

			carrier := Carrier{Name: "Unknown"}
			if len(l.MarketingCarrierIDs) > 0 {
				if c, ok := carriers[l.MarketingCarrierIDs[0].String()]; ok {
					carrier = c
				}
			}
			origin, ok := places[l.OriginPlaceID.String()]
			if !ok || origin == "" {
				origin = q.Origin
			}
			dest, ok := places[l.DestinationPlaceID.String()]
			if !ok || dest == "" {
				dest = q.Destination
			}
			flightLegs = append(flightLegs, Leg{
				Departure:       l.Departure,
				Arrival:         l.Arrival,
				DurationMinutes: l.Duration,
				Stops:           l.StopCount,
				Origin:          origin,
				Destination:     dest,
				Carrier:         carrier,
			})
		}

		airline := Carrier{Name: "Unknown"}
		if len(flightLegs) > 0 {
			airline = flightLegs[0].Carrier
		}
		bookingURL := ""
		if len(best.Items) > 0 {
			bookingURL = best.Items[0].URL
		}
		offers = append(offers, Offer{
			OfferID:              itin.ID,
			Airline:              airline,
			Price:                Price{Amount: best.Price.Amount, Currency: q.Currency, Total: best.Price.Amount},
			Legs:                 flightLegs,
			TotalDurationMinutes: totalDuration,
			Stops:                stops,
			CabinClass:           q.CabinClass,
			BookingURL:           bookingURL,
		})
	}

	sort.Slice(offers, func(i, j int) bool { return offers[i].Price.Amount < offers[j].Price.Amount })
	return offers
}
