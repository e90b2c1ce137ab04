package analysis

import (
	"math"
	"strconv"
)

// Stream is a Mulberry32 generator. It is not safe for concurrent use; each
// report owns its own Stream.
type Stream struct {
	state uint32
	draws int
}

// NewStream returns a stream positioned at the start of seed's sequence.
func NewStream(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Next returns the next value in [0,1).
func (s *Stream) Next() float64 {
	s.draws++
	s.state += 0x6D2B79F5
	t := s.state
	r := (t ^ t>>15) * (t | 1)
	r ^= r + (r^r>>7)*(r|61)
	return float64(r^r>>14) / 4294967296.0
}

// Intn returns an integer in [low, high], both inclusive. low must not
// exceed high.
func (s *Stream) Intn(low, high int) int {
	return low + int(math.Floor(s.Next()*float64(high-low+1)))
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.Next() < p
}

// Between returns low + Next()*span.
func (s *Stream) Between(low, span float64) float64 {
	// The explicit conversion stops the compiler fusing this into an FMA,
	// which would change results on some architectures.
	return low + float64(s.Next()*span)
}

// Draws returns how many values have been consumed.
func (s *Stream) Draws() int { return s.draws }

// roundTo rounds the exact binary value of v to the given number of
// decimals, as fixed-point formatting does.
func roundTo(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}
