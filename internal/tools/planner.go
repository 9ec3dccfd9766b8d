package tools

import (
	"context"
	"fmt"
	"strings"
)

// PlanParams are the arguments to plan_destination.
type PlanParams struct {
	Destination string
	Days        int
	Interests   []string
	TravelStyle string
	Budget      string
}

// PlanDestination generates a day-by-day itinerary via the Hugging Face
// inference model.
func (s *Service) PlanDestination(ctx context.Context, p PlanParams) (map[string]any, error) {
	if p.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}
	if s.Planner == nil {
		return nil, fmt.Errorf("HF_API_TOKEN not set; destination planning is unavailable")
	}
	days := p.Days
	if days == 0 {
		days = 3
	}
	if days < 1 || days > 14 {
		return nil, fmt.Errorf("days must be 1-14, got %d", days)
	}

	interests := "general sightseeing"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	style := p.TravelStyle
	if style == "" {
		style = "balanced"
	}

	prompt := fmt.Sprintf(`<s>[INST] You are a travel planning expert. Create a detailed day-by-day itinerary for visiting %s.

Trip Details:
- Duration: %d days
- Interests: %s
- Travel Style: %s

Provide a structured itinerary with:
1. Day-by-day plan with specific places to visit
2. Best time to visit each place
3. Estimated time at each location
4. Local tips and recommendations
5. Must-try local food/restaurants

Format your response as a clear, structured plan. Be specific with place names and timings. [/INST]</s>`,
		p.Destination, days, interests, style)

	itinerary, err := s.Planner.TextGeneration(ctx, prompt, 1500)
	if err != nil {
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}

	planInterests := p.Interests
	if len(planInterests) == 0 {
		planInterests = []string{"general sightseeing"}
	}
	return map[string]any{
		"success":      true,
		"destination":  p.Destination,
		"days":         days,
		"travel_style": style,
		"interests":    planInterests,
		"itinerary":    itinerary,
		"generated_by": "Mistral-7B-Instruct",
		"disclaimer":   "This is an AI-generated itinerary. Please verify opening hours and availability before visiting.",
	}, nil
}

// GetAttractions lists top attractions for a destination via the Hugging
// Face inference model.
func (s *Service) GetAttractions(ctx context.Context, destination, category string, limit int) (map[string]any, error) {
	if destination == "" {
		return nil, fmt.Errorf("destination is required")
	}
	if s.Planner == nil {
		return nil, fmt.Errorf("HF_API_TOKEN not set; attraction lookup is unavailable")
	}
	if limit == 0 {
		limit = 10
	}
	if limit < 1 || limit > 20 {
		return nil, fmt.Errorf("limit must be 1-20, got %d", limit)
	}

	categoryPart := ""
	if category != "" {
		categoryPart = fmt.Sprintf(" in the %s category", category)
	}
	prompt := fmt.Sprintf(`<s>[INST] List the top %d must-visit attractions in %s%s.

For each attraction, provide:
- Name
- Type (museum, park, landmark, etc.)
- Brief description (1-2 sentences)
- Typical visit duration
- Best time to visit

Format as a numbered list. Be specific and accurate. [/INST]</s>`,
		limit, destination, categoryPart)

	attractions, err := s.Planner.TextGeneration(ctx, prompt, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to get attractions: %w", err)
	}

	var categoryField any
	if category != "" {
		categoryField = category
	}
	return map[string]any{
		"success":      true,
		"destination":  destination,
		"category":     categoryField,
		"attractions":  attractions,
		"generated_by": "Mistral-7B-Instruct",
	}, nil
}
