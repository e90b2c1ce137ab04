package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pable/csinsights/internal/model"
)

// ErrInvalidInput is returned for inputs the generator refuses, such as an
// empty match id.
var ErrInvalidInput = errors.New("invalid input")

// EntryID names the report for a match.
func EntryID(matchID string) string {
	return "srv_" + matchID
}

// Generate builds the report for matchID. mapID is copied into the report
// as-is; nil or "" means unknown. It fails only on an empty match id.
func Generate(matchID string, mapID *string) (*model.MatchAnalysis, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("generate analysis: %w: empty match id", ErrInvalidInput)
	}
	return Build(matchID, mapID, NewStream(DeriveSeed(matchID))), nil
}

// Build assembles a report from s. The draw order is fixed: player stats,
// utility summary, rounds, throws. Insights are derived from the throws and
// consume nothing from s.
func Build(matchID string, mapID *string, s *Stream) *model.MatchAnalysis {
	player := generatePlayer(s)
	utility := generateUtility(s)
	rounds := GenerateRounds(s)
	throws := GenerateThrows(s, matchID, len(rounds))

	return &model.MatchAnalysis{
		EntryID:  EntryID(matchID),
		Map:      normalizeMapID(mapID),
		Player:   player,
		Utility:  utility,
		Rounds:   rounds,
		Throws:   throws,
		Insights: DeriveInsights(throws),
	}
}

func generatePlayer(s *Stream) model.PlayerStats {
	var p model.PlayerStats
	p.Kills = s.Intn(10, 35)
	p.Deaths = s.Intn(8, 28)
	p.Assists = s.Intn(0, 10)
	p.ADR = roundTo(s.Between(60, 60), 1)
	p.Rating = roundTo(s.Between(0.8, 0.8), 2)
	return p
}

func generateUtility(s *Stream) model.UtilitySummary {
	var u model.UtilitySummary
	u.Flashes = s.Intn(5, 16)
	u.FlashAssists = s.Intn(0, 5)
	u.Smokes = s.Intn(4, 14)
	u.Molotovs = s.Intn(2, 10)
	u.HE = s.Intn(2, 10)
	return u
}

// normalizeMapID copies mapID so the report never aliases caller memory.
func normalizeMapID(mapID *string) *string {
	if mapID == nil || *mapID == "" {
		return nil
	}
	m := *mapID
	return &m
}
