package analysis

import (
	"fmt"

	"github.com/pable/csinsights/internal/model"
)

// Bounds on the synthetic throw log length.
const (
	MinThrows = 12
	MaxThrows = 22
)

// IneffectiveScore is the score below which a throw counts as wasted.
const IneffectiveScore = 0.25

// GenerateThrows draws the throw log for a match of totalRounds rounds.
//
// Per event the draws are: type, time, round, damage, then only the metrics
// that apply to the type (blind, team blind, LOS block, area, in that order),
// then x and y. Metrics that do not apply are zero and consume no draw.
func GenerateThrows(s *Stream, matchID string, totalRounds int) []model.ThrowEvent {
	count := s.Intn(MinThrows, MaxThrows)
	throws := make([]model.ThrowEvent, 0, count)
	for i := 0; i < count; i++ {
		typ := model.ThrowTypes[s.Intn(0, len(model.ThrowTypes)-1)]
		e := model.ThrowEvent{
			ID:   ThrowID(matchID, i),
			Type: typ,
		}
		e.TimeSec = s.Intn(10, 200)
		e.Round = s.Intn(1, totalRounds)
		if typ == model.ThrowHE {
			e.Damage = s.Intn(0, 60)
		} else {
			e.Damage = s.Intn(0, 10)
		}
		if typ == model.ThrowFlash {
			e.BlindMs = s.Intn(0, 2500)
			e.TeamBlindMs = s.Intn(0, 600)
		}
		if typ == model.ThrowSmoke {
			e.LOSBlockMs = s.Intn(500, 3500)
		}
		if typ == model.ThrowMolotov {
			e.AreaMs = s.Intn(800, 4300)
		}

		score := ScoreThrow(e.Damage, e.BlindMs, e.TeamBlindMs, e.LOSBlockMs, e.AreaMs)
		e.Ineffective = IsIneffective(typ, score, e.BlindMs, e.TeamBlindMs)
		if e.Ineffective && typ == model.ThrowFlash && e.TeamBlindMs > 0 {
			note := model.NoteTeamFlash
			e.Note = &note
		}
		e.Score = roundTo(score, 2)

		e.X = roundTo(s.Between(0.08, 0.84), 3)
		e.Y = roundTo(s.Between(0.08, 0.84), 3)
		throws = append(throws, e)
	}
	return throws
}

// ThrowID names the i-th throw of a match.
func ThrowID(matchID string, i int) string {
	return fmt.Sprintf("tr_%s_%d", matchID, i)
}

// ScoreThrow rates a throw in [0,1]. Damage, enemy blind time and denied
// area add to the score; teammate blind time subtracts from it.
func ScoreThrow(damage, blindMs, teamBlindMs, losBlockMs, areaMs int) float64 {
	score := 0.0
	score += float64(damage) / 100
	score += float64(blindMs) / 3000
	score += float64(losBlockMs+areaMs) / 7000
	score -= float64(teamBlindMs) / 1200
	return clamp(score, 0, 1)
}

// IsIneffective reports whether a throw was wasted: a low score, or a flash
// that blinded teammates for more than half as long as enemies. score must
// be the unrounded value from ScoreThrow.
func IsIneffective(typ model.ThrowType, score float64, blindMs, teamBlindMs int) bool {
	if score < IneffectiveScore {
		return true
	}
	return typ == model.ThrowFlash && float64(teamBlindMs) > float64(blindMs)/2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
