package tools

import (
	"strings"

	"github.com/google/uuid"
)

// newID builds a reference like FLT-1A2B3C4D from a prefix and the first n
// hex chars of a fresh uuid.
func newID(prefix string, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + hex[:n]
}

func newFlightOfferID() string { return newID("FLT", 8) }
func newSearchID() string      { return newID("SRCH", 8) }
func newHotelSearchID() string { return newID("HSRCH", 8) }
func newHotelOfferID() string  { return newID("HOFFER", 8) }
func newEstimateID() string    { return newID("EST", 8) }
func newBookingRef() string    { return newID("BK", 6) }
func newHotelBookingRef() string { return newID("HBK", 6) }
func newConfirmationNo() string  { return newID("CONF", 8) }
