// Package model holds the match-analysis document served to clients.
// Field names and order are the JSON contract; do not reorder.
package model

// Side is the team a player was on for a round.
type Side string

const (
	SideT  Side = "T"
	SideCT Side = "CT"
)

func (s Side) String() string { return string(s) }

// ThrowType is the kind of utility thrown.
type ThrowType string

const (
	ThrowFlash   ThrowType = "flash"
	ThrowSmoke   ThrowType = "smoke"
	ThrowMolotov ThrowType = "molotov"
	ThrowHE      ThrowType = "he"
)

// ThrowTypes is the fixed draw order used when picking a throw type.
var ThrowTypes = [...]ThrowType{ThrowFlash, ThrowSmoke, ThrowMolotov, ThrowHE}

// Severity grades an insight.
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
)

// InsightType tags the area an insight is about.
type InsightType string

const (
	InsightGeneral InsightType = "general"
	InsightFlash   InsightType = "flash"
	InsightSmoke   InsightType = "smoke"
)

// NoteTeamFlash marks an ineffective flash that blinded teammates.
const NoteTeamFlash = "team-flash"

// PlayerStats is the headline scoreboard line for the analysed player.
type PlayerStats struct {
	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
	Assists int     `json:"assists"`
	ADR     float64 `json:"adr"`    // one decimal
	Rating  float64 `json:"rating"` // two decimals
}

// KDRatio returns kills per death, or kills when there are no deaths.
func (s *PlayerStats) KDRatio() float64 {
	if s.Deaths == 0 {
		return float64(s.Kills)
	}
	return float64(s.Kills) / float64(s.Deaths)
}

// UtilitySummary counts grenades by type. It is sampled on its own and does
// not have to agree with the throw log.
type UtilitySummary struct {
	Flashes      int `json:"flashes"`
	FlashAssists int `json:"flashAssists"`
	Smokes       int `json:"smokes"`
	Molotovs     int `json:"molotovs"`
	HE           int `json:"he"`
}

// Total returns the number of grenades thrown across all types.
func (u *UtilitySummary) Total() int {
	return u.Flashes + u.Smokes + u.Molotovs + u.HE
}

// RoundOutcome is one round from the player's perspective.
type RoundOutcome struct {
	Round    int  `json:"round"` // 1-based
	Side     Side `json:"side"`
	Won      bool `json:"won"`
	Kills    int  `json:"kills"`
	Survived bool `json:"survived"`
	Entry    bool `json:"entry"`
}

// ThrowEvent is a single grenade with its effect metrics.
//
// Metric fields that do not apply to Type are always zero: BlindMs and
// TeamBlindMs are flash-only, LOSBlockMs is smoke-only, AreaMs is
// molotov-only. Damage is present for every type.
type ThrowEvent struct {
	ID          string    `json:"id"`
	Type        ThrowType `json:"type"`
	TimeSec     int       `json:"timeSec"`
	Round       int       `json:"round"`
	Damage      int       `json:"damage"`
	BlindMs     int       `json:"blindMs"`
	TeamBlindMs int       `json:"teamBlindMs"`
	LOSBlockMs  int       `json:"losBlockMs"`
	AreaMs      int       `json:"areaMs"`
	Score       float64   `json:"score"` // [0,1], two decimals
	Ineffective bool      `json:"ineffective"`
	Note        *string   `json:"note"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
}

// HasNote reports whether the event carries a note.
func (e *ThrowEvent) HasNote() bool { return e.Note != nil }

// Insight is an advisory derived from the throw log.
type Insight struct {
	Type     InsightType `json:"type"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// MatchAnalysis is the full per-match report.
type MatchAnalysis struct {
	EntryID  string         `json:"entryId"`
	Map      *string        `json:"map"`
	Player   PlayerStats    `json:"player"`
	Utility  UtilitySummary `json:"utility"`
	Rounds   []RoundOutcome `json:"rounds"`
	Throws   []ThrowEvent   `json:"throws"`
	Insights []Insight      `json:"insights"`
}

// MapName returns the map or "" when unknown.
func (a *MatchAnalysis) MapName() string {
	if a.Map == nil {
		return ""
	}
	return *a.Map
}

// Score returns rounds won on each side.
func (a *MatchAnalysis) Score() (tWins, ctWins int) {
	for _, r := range a.Rounds {
		if !r.Won {
			continue
		}
		switch r.Side {
		case SideT:
			tWins++
		case SideCT:
			ctWins++
		}
	}
	return tWins, ctWins
}

// RoundsWon returns the total number of rounds won.
func (a *MatchAnalysis) RoundsWon() int {
	t, ct := a.Score()
	return t + ct
}
