package tools

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Known IATA airport codes. A sample set; unknown codes that match the
// three letter format are still accepted.
var knownIATACodes = map[string]bool{
	"MAA": true, "SIN": true, "BOM": true, "DEL": true, "BLR": true,
	"HYD": true, "CCU": true, "PNQ": true, "COK": true, "GOI": true,
	"DXB": true, "DOH": true, "AUH": true, "BAH": true, "KWI": true,
	"MCT": true, "RUH": true, "JED": true,
	"LHR": true, "CDG": true, "FRA": true, "AMS": true, "FCO": true,
	"BCN": true, "MAD": true, "MUC": true, "ZRH": true, "VIE": true,
	"JFK": true, "LAX": true, "SFO": true, "ORD": true, "MIA": true,
	"BOS": true, "SEA": true, "ATL": true, "DFW": true, "DEN": true,
	"HKG": true, "NRT": true, "ICN": true, "BKK": true, "KUL": true,
	"CGK": true, "MNL": true, "SGN": true, "HAN": true, "PEK": true,
	"SYD": true, "MEL": true, "AKL": true, "PER": true, "BNE": true,
}

var supportedCurrencies = map[string]bool{
	"INR": true, "USD": true, "EUR": true, "GBP": true, "SGD": true,
	"AED": true, "JPY": true, "AUD": true, "THB": true, "MYR": true,
}

var validCabinClasses = map[string]bool{
	"ECONOMY": true, "PREMIUM_ECONOMY": true, "BUSINESS": true, "FIRST": true,
}

var iataRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateDate checks ISO-8601 format and rejects past dates.
func ValidateDate(s string) (string, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD (ISO-8601)", s)
	}
	if d.Format("2006-01-02") < time.Now().Format("2006-01-02") {
		return "", fmt.Errorf("date %s is in the past", s)
	}
	return s, nil
}

// ValidateIATACode normalizes and checks a three letter airport code.
// Codes outside the known set are accepted as long as the format holds.
func ValidateIATACode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !iataRe.MatchString(code) {
		return "", fmt.Errorf("invalid IATA code format: %s. Expected 3 letters.", code)
	}
	return code, nil
}

// knownIATA reports whether a normalized code is in the bundled airport
// set. Unknown codes still validate; callers use this to flag them.
func knownIATA(code string) bool {
	return knownIATACodes[code]
}

// ValidateCurrency checks the code against the supported set.
func ValidateCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !supportedCurrencies[currency] {
		supported := make([]string, 0, len(supportedCurrencies))
		for c := range supportedCurrencies {
			supported = append(supported, c)
		}
		sort.Strings(supported)
		return "", fmt.Errorf("unsupported currency: %s. Supported: %s", currency, strings.Join(supported, ", "))
	}
	return currency, nil
}

// ValidatePassengerCount enforces the per-booking limit of 1-9.
func ValidatePassengerCount(n int) error {
	if n < 1 || n > 9 {
		return fmt.Errorf("invalid passenger count: %d. Must be 1-9.", n)
	}
	return nil
}

// ValidateCabinClass normalizes and checks the cabin class.
func ValidateCabinClass(cabin string) (string, error) {
	cabin = strings.ToUpper(strings.TrimSpace(cabin))
	if !validCabinClasses[cabin] {
		return "", fmt.Errorf("invalid cabin class: %s. Valid: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST", cabin)
	}
	return cabin, nil
}
