package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/csinsights/internal/analysis"
	"github.com/pable/csinsights/internal/model"
)

func scenario(t *testing.T) *model.MatchAnalysis {
	t.Helper()
	m := "dust2"
	a, err := analysis.Generate("match-123", &m)
	require.NoError(t, err)
	return a
}

func TestPrintMatchSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchSummary(&buf, scenario(t))
	out := buf.String()
	assert.Contains(t, out, "Report: srv_match-123")
	assert.Contains(t, out, "Map: dust2")
	assert.Contains(t, out, "Rounds: 25")
	assert.Contains(t, out, "Throws: 14")
}

func TestPrintMatchSummary_RoundsWon(t *testing.T) {
	a := &model.MatchAnalysis{
		EntryID: "srv_x",
		Rounds: []model.RoundOutcome{
			{Round: 1, Side: model.SideT, Won: true},
			{Round: 2, Side: model.SideT, Won: false},
			{Round: 3, Side: model.SideCT, Won: true},
			{Round: 4, Side: model.SideCT, Won: true},
		},
	}
	assert.Equal(t, 3, a.RoundsWon())

	var buf bytes.Buffer
	PrintMatchSummary(&buf, a)
	assert.Contains(t, buf.String(), "Rounds: 4 (won 3: T 1 – CT 2)")
}

func TestPrintMatchSummary_UnknownMap(t *testing.T) {
	a, err := analysis.Generate("m1", nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	PrintMatchSummary(&buf, a)
	assert.Contains(t, buf.String(), "Map: unknown")
}

func TestPrintAnalysis_Sections(t *testing.T) {
	a := scenario(t)
	var buf bytes.Buffer
	PrintAnalysis(&buf, a)
	out := buf.String()

	for _, h := range []string{"RATING", "MOLOTOV", "SURVIVED", "SCORE", "Insights:"} {
		assert.Contains(t, out, h)
	}
	for _, e := range a.Throws {
		assert.Contains(t, out, e.ID)
	}
	for _, in := range a.Insights {
		assert.Contains(t, out, in.Message)
	}
}

func TestPrintThrowsTable_MarksIneffective(t *testing.T) {
	note := model.NoteTeamFlash
	throws := []model.ThrowEvent{
		{ID: "tr_x_0", Type: model.ThrowFlash, TimeSec: 75, Round: 3, BlindMs: 0, TeamBlindMs: 900, Score: 0, Ineffective: true, Note: &note},
		{ID: "tr_x_1", Type: model.ThrowSmoke, TimeSec: 5, Round: 4, LOSBlockMs: 4000, Score: 0.57},
	}
	var buf bytes.Buffer
	PrintThrowsTable(&buf, throws)
	out := buf.String()

	var flashLine, smokeLine string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "tr_x_0"):
			flashLine = line
		case strings.Contains(line, "tr_x_1"):
			smokeLine = line
		}
	}
	require.NotEmpty(t, flashLine)
	require.NotEmpty(t, smokeLine)
	assert.Contains(t, flashLine, "*")
	assert.Contains(t, flashLine, "team-flash")
	assert.Contains(t, flashLine, "1:15")
	assert.NotContains(t, smokeLine, "*")
	assert.Contains(t, smokeLine, "4000")
	assert.Contains(t, smokeLine, "0.57")
}

func TestPrintInsights_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintInsights(&buf, []model.Insight{})
	assert.Contains(t, buf.String(), "No insights.")
}

func TestClock(t *testing.T) {
	assert.Equal(t, "0:05", clock(5))
	assert.Equal(t, "1:40", clock(100))
}
