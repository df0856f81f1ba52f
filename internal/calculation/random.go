package calculation

import (
	"math/rand"
	"time"
)

// RandomSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a seeded source; the same seed replays the same path.
func NewRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of draws, wrapping around at the end.
// An empty sequence always yields 0.5.
type SequenceSource struct {
	Values []float64
	next   int
}

// NewSequenceSource creates a SequenceSource over values.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{Values: values}
}

func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *SequenceSource) Draws() int { return s.next }

// nowFunc returns the current time (override in tests).
var nowFunc = time.Now

// SetNowFunc overrides the clock used for the default base year.
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc picks a seed when the caller does not supply one.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (tests only).
func SetSeedFunc(f func() int64) { seedFunc = f }
