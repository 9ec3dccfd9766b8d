// Package searchapi calls SearchAPI.io's Google Hotels engine for live
// hotel search. The hotel tools fall back to generated inventory when no
// key is configured or the API fails.
package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const BaseURL = "https://www.searchapi.io/api/v1/search"

// maxResults caps how many properties a search returns.
const maxResults = 10

// Client calls the SearchAPI.io hotels endpoint.
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
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Query describes one hotel search.
type Query struct {
	Location   string
	CheckIn    string
	CheckOut   string
	Adults     int
	Rooms      int
	HotelClass int
	Currency   string
	Language   string
}

// Hotel is one property from the search results.
type Hotel struct {
	HotelID      string         `json:"hotel_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Rating       float64        `json:"rating"`
	Reviews      int            `json:"reviews"`
	HotelClass   int            `json:"hotel_class"`
	Location     HotelLocation  `json:"location"`
	CheckInTime  string         `json:"check_in_time"`
	CheckOutTime string         `json:"check_out_time"`
	Price        HotelPrice     `json:"price"`
	Amenities    []string       `json:"amenities"`
	Images       []string       `json:"images"`
	Deal         string         `json:"deal,omitempty"`
	NearbyPlaces []NearbyPlace  `json:"nearby_places"`
}

type HotelLocation struct {
	City        string         `json:"city"`
	Country     string         `json:"country"`
	Coordinates map[string]any `json:"coordinates"`
}

type HotelPrice struct {
	PerNight float64 `json:"per_night"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

type NearbyPlace struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

type apiResponse struct {
	SearchInformation struct {
		TotalResults int `json:"total_results"`
	} `json:"search_information"`
	Properties []struct {
		PropertyToken       string   `json:"property_token"`
		Name                string   `json:"name"`
		Description         string   `json:"description"`
		Rating              float64  `json:"rating"`
		Reviews             int      `json:"reviews"`
		ExtractedHotelClass int      `json:"extracted_hotel_class"`
		City                string   `json:"city"`
		Country             string   `json:"country"`
		GPSCoordinates      map[string]any `json:"gps_coordinates"`
		CheckInTime         string   `json:"check_in_time"`
		CheckOutTime        string   `json:"check_out_time"`
		PricePerNight       struct {
			ExtractedPrice float64 `json:"extracted_price"`
		} `json:"price_per_night"`
		TotalPrice struct {
			ExtractedPrice float64 `json:"extracted_price"`
		} `json:"total_price"`
		Amenities []string `json:"amenities"`
		Images    []struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"images"`
		Deal         string `json:"deal"`
		NearbyPlaces []struct {
			Name            string `json:"name"`
			Transportations []struct {
				Duration string `json:"duration"`
			} `json:"transportations"`
		} `json:"nearby_places"`
	} `json:"properties"`
}

// Results holds the hotels plus the engine's reported match total.
type Results struct {
	Hotels       []Hotel
	TotalResults int
}

// Search runs a Google Hotels query.
func (c *Client) Search(ctx context.Context, q Query) (Results, error) {
	if c.APIKey == "" {
		return Results{}, fmt.Errorf("searchapi: API key not set")
	}
	if q.Currency == "" {
		q.Currency = "USD"
	}
	if q.Language == "" {
		q.Language = "en"
	}
	query := q.Location
	if !strings.HasPrefix(strings.ToLower(query), "hotels") {
		query = "Hotels in " + query
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", query)
	params.Set("check_in_date", q.CheckIn)
	params.Set("check_out_date", q.CheckOut)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currency", q.Currency)
	params.Set("hl", q.Language)
	params.Set("gl", "us")
	if q.HotelClass > 0 {
		params.Set("hotel_class", strconv.Itoa(q.HotelClass))
	}
	params.Set("api_key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Results{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Results{}, fmt.Errorf("searchapi: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Results{}, fmt.Errorf("searchapi: status %d", resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Results{}, fmt.Errorf("searchapi: decoding response: %w", err)
	}

	var hotels []Hotel
	for _, prop := range data.Properties {
		if len(hotels) == maxResults {
			break
		}
		name := prop.Name
		if name == "" {
			name = "Unknown Hotel"
		}
		var images []string
		for _, img := range prop.Images {
			if len(images) == 3 {
				break
			}
			images = append(images, img.Thumbnail)
		}
		var nearby []NearbyPlace
		for _, place := range prop.NearbyPlaces {
			if len(nearby) == 3 {
				break
			}
			dist := ""
			if len(place.Transportations) > 0 {
				dist = place.Transportations[0].Duration
			}
			nearby = append(nearby, NearbyPlace{Name: place.Name, Distance: dist})
		}
		hotels = append(hotels, Hotel{
			HotelID:     prop.PropertyToken,
			Name:        name,
			Description: prop.Description,
			Rating:      prop.Rating,
			Reviews:     prop.Reviews,
			HotelClass:  prop.ExtractedHotelClass,
			Location: HotelLocation{
				City:        prop.City,
				Country:     prop.Country,
				Coordinates: prop.GPSCoordinates,
			},
			CheckInTime:  prop.CheckInTime,
			CheckOutTime: prop.CheckOutTime,
			Price: HotelPrice{
				PerNight: prop.PricePerNight.ExtractedPrice,
				Total:    prop.TotalPrice.ExtractedPrice,
				Currency: q.Currency,
			},
			Amenities:    prop.Amenities,
			Images:       images,
			Deal:         prop.Deal,
			NearbyPlaces: nearby,
		})
	}

	total := data.SearchInformation.TotalResults
	if total == 0 {
		total = len(hotels)
	}
	return Results{Hotels: hotels, TotalResults: total}, nil
}
