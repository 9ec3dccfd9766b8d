// Package tools implements the travel tool catalog: flight and hotel
// search, pricing, booking, and AI destination planning. Search tools use
// live providers when configured and fall back to generated inventory.
package tools

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/vjk-2k5/Travel-agent/internal/flightapi"
	"github.com/vjk-2k5/Travel-agent/internal/hf"
	"github.com/vjk-2k5/Travel-agent/internal/searchapi"
	"github.com/vjk-2k5/Travel-agent/internal/store"
)

// Service holds the tool implementations and their collaborators. Flights,
// Hotels and Planner are nil when the matching API key is not configured;
// DB is nil when booking persistence is disabled.
type Service struct {
	Flights *flightapi.Client
	Hotels  *searchapi.Client
	Planner *hf.Client
	DB      *store.DB

	logger *zap.Logger
	rng    *rand.Rand
	now    func() time.Time
}

// NewService creates a Service with generated inventory only. Assign the
// provider clients afterwards to enable live data.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// newTestService pins randomness and the clock for deterministic output.
func newTestService(seed int64, now time.Time) *Service {
	s := NewService(zap.NewNop())
	s.rng = rand.New(rand.NewSource(seed))
	s.now = func() time.Time { return now }
	return s
}

func (s *Service) randInt(min, max int) int {
	return min + s.rng.Intn(max-min+1)
}

func (s *Service) randChoice(options []string) string {
	return options[s.rng.Intn(len(options))]
}
