// Package schemas defines the fixed travel tool catalog exposed to the model
// for function calling, with strict JSON Schema validation of arguments.
package schemas

import "github.com/vjk-2k5/Travel-agent/internal/core"

func obj(props map[string]any, required ...string) map[string]any {
	p := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if required == nil {
		required = []string{}
	}
	p["required"] = required
	return p
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func strPattern(desc, pattern string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "pattern": pattern}
}

func strEnum(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

func intRange(desc string, min, max int) map[string]any {
	return map[string]any{"type": "integer", "description": desc, "minimum": min, "maximum": max}
}

const (
	iataPattern = "^[A-Z]{3}$"
	datePattern = `^\d{4}-\d{2}-\d{2}$`
)

var catalog = []core.ToolDefinition{
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "search_flights",
			Description: "Search for available flights between two airports. Returns a list of flight options with pricing.",
			Parameters: obj(map[string]any{
				"origin":         strPattern("Origin airport IATA code (3 letters, e.g., 'MAA' for Chennai)", iataPattern),
				"destination":    strPattern("Destination airport IATA code (3 letters, e.g., 'SIN' for Singapore)", iataPattern),
				"departure_date": strPattern("Departure date in ISO-8601 format (YYYY-MM-DD)", datePattern),
				"return_date":    strPattern("Return date in ISO-8601 format (YYYY-MM-DD). Optional for one-way flights.", datePattern),
				"adults":         intRange("Number of adult passengers (1-9)", 1, 9),
				"cabin_class":    strEnum("Cabin class preference", "ECONOMY", "PREMIUM_ECONOMY", "BUSINESS", "FIRST"),
			}, "origin", "destination", "departure_date", "adults"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "get_flight_pricing",
			Description: "Get confirmed pricing for a specific flight offer including taxes and fees.",
			Parameters: obj(map[string]any{
				"flight_offer_id": str("The unique identifier of the flight offer from search results"),
				"currency":        strPattern("Currency code for pricing (e.g., 'INR', 'USD')", iataPattern),
			}, "flight_offer_id"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "search_hotels",
			Description: "Search for available hotels in a city or near a location.",
			Parameters: obj(map[string]any{
				"city_code": str("City IATA code (e.g., 'SIN' for Singapore)"),
				"location":  str("Location name or landmark (e.g., 'Marina Bay')"),
				"check_in":  strPattern("Check-in date in ISO-8601 format (YYYY-MM-DD)", datePattern),
				"check_out": strPattern("Check-out date in ISO-8601 format (YYYY-MM-DD)", datePattern),
				"adults":    intRange("Number of adult guests", 1, 9),
				"rooms":     intRange("Number of rooms needed", 1, 9),
				"amenities": map[string]any{
					"type":        "array",
					"description": "Desired amenities (e.g., ['WIFI', 'POOL', 'GYM'])",
					"items":       map[string]any{"type": "string"},
				},
			}, "check_in", "check_out", "adults"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "check_hotel_availability",
			Description: "Check room availability for a specific hotel.",
			Parameters: obj(map[string]any{
				"hotel_id":  str("The unique identifier of the hotel"),
				"check_in":  strPattern("Check-in date in ISO-8601 format", datePattern),
				"check_out": strPattern("Check-out date in ISO-8601 format", datePattern),
				"rooms":     intRange("Number of rooms to check", 1, 9),
			}, "hotel_id", "check_in", "check_out"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "estimate_total_cost",
			Description: "Calculate the total estimated cost for a trip including flights and hotels.",
			Parameters: obj(map[string]any{
				"flight_price": map[string]any{"type": "number", "description": "Total flight cost"},
				"hotel_price":  map[string]any{"type": "number", "description": "Total hotel cost"},
				"currency":     strPattern("Currency code (e.g., 'INR')", iataPattern),
				"include_taxes": map[string]any{
					"type":        "boolean",
					"description": "Whether prices include taxes",
					"default":     true,
				},
				"additional_costs": map[string]any{
					"type":                 "object",
					"description":          "Any additional costs (transfers, activities, etc.)",
					"additionalProperties": map[string]any{"type": "number"},
				},
			}, "flight_price", "hotel_price", "currency"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "book_flight",
			Description: "Book a flight. Use dry_run=true to preview without actual booking.",
			Parameters: obj(map[string]any{
				"flight_offer_id": str("The flight offer ID to book"),
				"passengers": map[string]any{
					"type":        "array",
					"description": "List of passenger details",
					"items": obj(map[string]any{
						"first_name":      map[string]any{"type": "string"},
						"last_name":       map[string]any{"type": "string"},
						"date_of_birth":   map[string]any{"type": "string", "pattern": datePattern},
						"passport_number": map[string]any{"type": "string"},
						"email":           map[string]any{"type": "string"},
						"phone":           map[string]any{"type": "string"},
					}, "first_name", "last_name"),
				},
				"dry_run": map[string]any{
					"type":        "boolean",
					"description": "If true, simulate booking without actual reservation",
					"default":     false,
				},
			}, "flight_offer_id", "passengers"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "book_hotel",
			Description: "Book a hotel room. Use dry_run=true to preview without actual booking.",
			Parameters: obj(map[string]any{
				"hotel_offer_id": str("The hotel offer ID to book"),
				"guests": map[string]any{
					"type":        "array",
					"description": "List of guest details",
					"items": obj(map[string]any{
						"first_name": map[string]any{"type": "string"},
						"last_name":  map[string]any{"type": "string"},
						"email":      map[string]any{"type": "string"},
						"phone":      map[string]any{"type": "string"},
					}, "first_name", "last_name"),
				},
				"payment_info": map[string]any{
					"type":        "object",
					"description": "Payment details (required for actual booking)",
					"properties": map[string]any{
						"card_type":      map[string]any{"type": "string"},
						"card_last_four": map[string]any{"type": "string"},
					},
				},
				"dry_run": map[string]any{
					"type":        "boolean",
					"description": "If true, simulate booking without actual reservation",
					"default":     false,
				},
			}, "hotel_offer_id", "guests"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "plan_destination",
			Description: "Create an AI-powered day-by-day itinerary for a destination with places to visit, local tips, and recommendations. Uses Mistral 7B AI.",
			Parameters: obj(map[string]any{
				"destination": str("The destination city or country to plan for (e.g., 'Singapore', 'Paris', 'Bali')"),
				"days": map[string]any{
					"type":        "integer",
					"description": "Number of days for the trip",
					"minimum":     1,
					"maximum":     14,
					"default":     3,
				},
				"interests": map[string]any{
					"type":        "array",
					"description": "List of interests (e.g., ['history', 'food', 'nature', 'shopping', 'nightlife'])",
					"items":       map[string]any{"type": "string"},
				},
				"travel_style": strEnum("Travel style preference", "budget", "moderate", "luxury", "adventure", "relaxed", "family"),
				"budget":       strEnum("Budget level", "budget", "moderate", "luxury"),
			}, "destination"),
		},
	},
	{
		Type: "function",
		Function: core.FunctionSpec{
			Name:        "get_attractions",
			Description: "Get a list of top attractions and must-visit places for a destination. Uses Mistral 7B AI.",
			Parameters: obj(map[string]any{
				"destination": str("The destination to get attractions for"),
				"category":    strEnum("Category filter for attractions", "museums", "nature", "food", "shopping", "nightlife", "historical", "family"),
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of attractions to return",
					"minimum":     1,
					"maximum":     20,
					"default":     10,
				},
			}, "destination"),
		},
	},
}

// Catalog returns the full tool catalog in model call order.
func Catalog() []core.ToolDefinition {
	out := make([]core.ToolDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// ByName returns the schema for a single tool, or false when the name is
// not in the catalog.
func ByName(name string) (core.ToolDefinition, bool) {
	for _, t := range catalog {
		if t.Function.Name == name {
			return t, true
		}
	}
	return core.ToolDefinition{}, false
}

// Names returns the tool names in catalog order.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, t.Function.Name)
	}
	return out
}
