package tools

import (
	"fmt"
	"math"
)

const (
	taxRate        = 0.12
	serviceFeeRate = 0.02
)

// EstimateTotalCost produces a trip cost breakdown: flights plus hotels,
// any additional line items, estimated taxes when not already included,
// and a flat service fee.
func (s *Service) EstimateTotalCost(flightPrice, hotelPrice float64, currency string, includeTaxes bool, additionalCosts map[string]float64) (map[string]any, error) {
	if flightPrice < 0 || hotelPrice < 0 {
		return nil, fmt.Errorf("prices must be non-negative")
	}
	currency, err := ValidateCurrency(currency)
	if err != nil {
		return nil, err
	}

	subtotal := flightPrice + hotelPrice

	additionalTotal := 0.0
	additionalBreakdown := map[string]any{}
	for name, amount := range additionalCosts {
		additionalBreakdown[name] = amount
		additionalTotal += amount
	}

	estimatedTaxes := 0.0
	if !includeTaxes {
		estimatedTaxes = subtotal * taxRate
	}
	serviceFee := subtotal * serviceFeeRate
	grandTotal := subtotal + additionalTotal + estimatedTaxes + serviceFee

	breakdown := map[string]any{
		"flights":          map[string]any{"amount": flightPrice, "currency": currency},
		"hotels":           map[string]any{"amount": hotelPrice, "currency": currency},
		"additional":       nil,
		"additional_total": nil,
	}
	if len(additionalBreakdown) > 0 {
		breakdown["additional"] = additionalBreakdown
		breakdown["additional_total"] = additionalTotal
	}

	return map[string]any{
		"success":         true,
		"estimate_id":     newEstimateID(),
		"breakdown":       breakdown,
		"subtotal":        round2(subtotal),
		"taxes_included":  includeTaxes,
		"estimated_taxes": round2(estimatedTaxes),
		"service_fee":     round2(serviceFee),
		"grand_total":     round2(grandTotal),
		"currency":        currency,
		"disclaimer":      "This is an estimate. Final prices may vary based on availability and exchange rates.",
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
