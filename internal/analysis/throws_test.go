package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/csinsights/internal/model"
)

func TestScoreThrow(t *testing.T) {
	tests := []struct {
		name                                string
		damage, blind, teamBlind, los, area int
		want                                float64
	}{
		{"nothing", 0, 0, 0, 0, 0, 0},
		{"he damage", 50, 0, 0, 0, 0, 0.5},
		{"full blind", 0, 3000, 0, 0, 0, 1},
		{"smoke", 0, 0, 0, 3500, 0, 0.5},
		{"molotov", 0, 0, 0, 0, 1400, 0.2},
		{"capped at 1", 60, 2500, 0, 0, 0, 1},
		{"team flash floors at 0", 0, 0, 600, 0, 0, 0},
		{"team flash subtracts", 0, 1500, 600, 0, 0, 0},
		{"mixed", 10, 1500, 120, 0, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreThrow(tt.damage, tt.blind, tt.teamBlind, tt.los, tt.area)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestIsIneffective(t *testing.T) {
	tests := []struct {
		name             string
		typ              model.ThrowType
		score            float64
		blind, teamBlind int
		want             bool
	}{
		{"low score", model.ThrowSmoke, 0.2499, 0, 0, true},
		{"at threshold", model.ThrowSmoke, 0.25, 0, 0, false},
		{"good flash", model.ThrowFlash, 0.6, 2000, 100, false},
		{"team flash exactly half", model.ThrowFlash, 0.6, 1000, 500, false},
		{"team flash over half", model.ThrowFlash, 0.6, 1000, 501, true},
		{"odd blind half", model.ThrowFlash, 0.6, 1001, 501, true},
		{"non-flash ignores team blind", model.ThrowHE, 0.6, 0, 400, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIneffective(tt.typ, tt.score, tt.blind, tt.teamBlind))
		})
	}
}

func generateMany(t *testing.T, n int) [][]model.ThrowEvent {
	t.Helper()
	out := make([][]model.ThrowEvent, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("1-%08x", i*7919)
		s := NewStream(DeriveSeed(id))
		rounds := GenerateRounds(s)
		out = append(out, GenerateThrows(s, id, len(rounds)))
	}
	return out
}

func TestGenerateThrows_Invariants(t *testing.T) {
	for _, throws := range generateMany(t, 400) {
		require.GreaterOrEqual(t, len(throws), MinThrows)
		require.LessOrEqual(t, len(throws), MaxThrows)

		ids := map[string]bool{}
		for _, e := range throws {
			require.False(t, ids[e.ID], "duplicate id %s", e.ID)
			ids[e.ID] = true

			require.GreaterOrEqual(t, e.Score, 0.0)
			require.LessOrEqual(t, e.Score, 1.0)
			require.GreaterOrEqual(t, e.TimeSec, 10)
			require.LessOrEqual(t, e.TimeSec, 200)
			require.GreaterOrEqual(t, e.X, 0.08)
			require.LessOrEqual(t, e.X, 0.92)
			require.GreaterOrEqual(t, e.Y, 0.08)
			require.LessOrEqual(t, e.Y, 0.92)

			// Fields outside the event's type are zero.
			if e.Type != model.ThrowFlash {
				require.Zero(t, e.BlindMs, e.ID)
				require.Zero(t, e.TeamBlindMs, e.ID)
			}
			if e.Type != model.ThrowSmoke {
				require.Zero(t, e.LOSBlockMs, e.ID)
			} else {
				require.GreaterOrEqual(t, e.LOSBlockMs, 500)
			}
			if e.Type != model.ThrowMolotov {
				require.Zero(t, e.AreaMs, e.ID)
			} else {
				require.GreaterOrEqual(t, e.AreaMs, 800)
			}
			if e.Type == model.ThrowHE {
				require.LessOrEqual(t, e.Damage, 60)
			} else {
				require.LessOrEqual(t, e.Damage, 10)
			}

			// Recompute the ineffective flag from the event's own fields.
			raw := ScoreThrow(e.Damage, e.BlindMs, e.TeamBlindMs, e.LOSBlockMs, e.AreaMs)
			want := raw < IneffectiveScore ||
				(e.Type == model.ThrowFlash && float64(e.TeamBlindMs) > float64(e.BlindMs)/2)
			require.Equal(t, want, e.Ineffective, e.ID)
			require.Equal(t, roundTo(raw, 2), e.Score, e.ID)

			wantNote := e.Ineffective && e.Type == model.ThrowFlash && e.TeamBlindMs > 0
			require.Equal(t, wantNote, e.HasNote(), e.ID)
			if e.HasNote() {
				require.Equal(t, model.NoteTeamFlash, *e.Note)
			}
		}
	}
}

func TestGenerateThrows_RoundWithinMatch(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := NewStream(uint32(i))
		throws := GenerateThrows(s, "m", MinRounds)
		for _, e := range throws {
			require.GreaterOrEqual(t, e.Round, 1)
			require.LessOrEqual(t, e.Round, MinRounds)
		}
	}
}

func TestThrowID(t *testing.T) {
	assert.Equal(t, "tr_match-123_0", ThrowID("match-123", 0))
	assert.Equal(t, "tr_abc_17", ThrowID("abc", 17))
}
