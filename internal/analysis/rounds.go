package analysis

import "github.com/pable/csinsights/internal/model"

// Bounds on the synthetic match length.
const (
	MinRounds = 24
	MaxRounds = 31
)

// GenerateRounds draws the round count and then each round's outcome.
// The first half (by real-valued midpoint) is played on T, the rest on CT.
func GenerateRounds(s *Stream) []model.RoundOutcome {
	total := s.Intn(MinRounds, MaxRounds)
	rounds := make([]model.RoundOutcome, 0, total)
	for i := 1; i <= total; i++ {
		// Draw order is part of the output contract: won, kills, survived, entry.
		rounds = append(rounds, model.RoundOutcome{
			Round:    i,
			Side:     sideFor(i, total),
			Won:      s.Chance(0.5),
			Kills:    s.Intn(0, 3),
			Survived: s.Chance(0.5),
			Entry:    s.Chance(0.1),
		})
	}
	return rounds
}

// sideFor reports T for rounds at or before total/2, CT after.
func sideFor(round, total int) model.Side {
	if 2*round <= total {
		return model.SideT
	}
	return model.SideCT
}
