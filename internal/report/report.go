// Package report renders match-analysis documents as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/csinsights/internal/analysis"
	"github.com/pable/csinsights/internal/model"
)

var (
	cWarn  = color.New(color.FgYellow, color.Bold)
	cInfo  = color.New(color.FgCyan)
	cMuted = color.New(color.Faint)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintAnalysis writes every section of a report in order.
func PrintAnalysis(w io.Writer, a *model.MatchAnalysis) {
	PrintMatchSummary(w, a)
	PrintPlayerTable(w, a.Player)
	fmt.Fprintln(w)
	PrintUtilityTable(w, a.Utility)
	fmt.Fprintln(w)
	PrintRoundsTable(w, a.Rounds)
	fmt.Fprintln(w)
	PrintThrowsTable(w, a.Throws)
	fmt.Fprintln(w)
	PrintInsights(w, a.Insights)
}

// PrintMatchSummary prints a one-line summary header for the report.
func PrintMatchSummary(w io.Writer, a *model.MatchAnalysis) {
	mapName := a.MapName()
	if mapName == "" {
		mapName = "unknown"
	}
	tWins, ctWins := a.Score()
	fmt.Fprintf(w, "\nReport: %s  |  Map: %s  |  Rounds: %d (won %d: T %d – CT %d)  |  Throws: %d  |  Ineffective: %d%%\n\n",
		a.EntryID, mapName, len(a.Rounds), a.RoundsWon(), tWins, ctWins,
		len(a.Throws), analysis.IneffectivePercent(a.Throws))
}

// PrintPlayerTable prints the headline scoreboard line.
func PrintPlayerTable(w io.Writer, p model.PlayerStats) {
	table := newTable(w)
	table.Header("K", "A", "D", "K/D", "ADR", "RATING")
	table.Append(
		strconv.Itoa(p.Kills),
		strconv.Itoa(p.Assists),
		strconv.Itoa(p.Deaths),
		fmt.Sprintf("%.2f", p.KDRatio()),
		fmt.Sprintf("%.1f", p.ADR),
		fmt.Sprintf("%.2f", p.Rating),
	)
	table.Render()
}

// PrintUtilityTable prints grenade counts by type.
func PrintUtilityTable(w io.Writer, u model.UtilitySummary) {
	table := newTable(w)
	table.Header("FLASH", "FA", "SMOKE", "MOLOTOV", "HE", "TOTAL")
	table.Append(
		strconv.Itoa(u.Flashes),
		strconv.Itoa(u.FlashAssists),
		strconv.Itoa(u.Smokes),
		strconv.Itoa(u.Molotovs),
		strconv.Itoa(u.HE),
		strconv.Itoa(u.Total()),
	)
	table.Render()
}

// PrintRoundsTable prints one row per round.
func PrintRoundsTable(w io.Writer, rounds []model.RoundOutcome) {
	table := newTable(w)
	table.Header("ROUND", "SIDE", "RESULT", "K", "SURVIVED", "ENTRY")
	for _, r := range rounds {
		result := "L"
		if r.Won {
			result = "W"
		}
		table.Append(
			strconv.Itoa(r.Round),
			r.Side.String(),
			result,
			strconv.Itoa(r.Kills),
			yesNo(r.Survived),
			yesNo(r.Entry),
		)
	}
	table.Render()
}

// PrintThrowsTable prints the throw log. Metrics that do not apply to a
// throw's type are shown as "—"; ineffective throws are marked with "*".
func PrintThrowsTable(w io.Writer, throws []model.ThrowEvent) {
	table := newTable(w)
	table.Header(" ", "ID", "ROUND", "TIME", "TYPE", "DMG", "BLIND_MS", "TEAM_BLIND_MS", "LOS_MS", "AREA_MS", "SCORE", "NOTE")
	for _, e := range throws {
		marker := " "
		if e.Ineffective {
			marker = "*"
		}
		note := "—"
		if e.HasNote() {
			note = *e.Note
		}
		table.Append(
			marker,
			e.ID,
			strconv.Itoa(e.Round),
			clock(e.TimeSec),
			string(e.Type),
			strconv.Itoa(e.Damage),
			metric(e.Type == model.ThrowFlash, e.BlindMs),
			metric(e.Type == model.ThrowFlash, e.TeamBlindMs),
			metric(e.Type == model.ThrowSmoke, e.LOSBlockMs),
			metric(e.Type == model.ThrowMolotov, e.AreaMs),
			fmt.Sprintf("%.2f", e.Score),
			note,
		)
	}
	table.Render()
}

// PrintInsights prints insights one per line, warnings highlighted.
func PrintInsights(w io.Writer, insights []model.Insight) {
	if len(insights) == 0 {
		cMuted.Fprintln(w, "No insights.")
		return
	}
	fmt.Fprintln(w, "Insights:")
	for _, in := range insights {
		c := cInfo
		if in.Severity == model.SeverityWarn {
			c = cWarn
		}
		c.Fprintf(w, "  [%s] %-7s %s\n", in.Severity, in.Type, in.Message)
	}
}

func metric(applies bool, v int) string {
	if !applies {
		return "—"
	}
	return strconv.Itoa(v)
}

// clock formats seconds into the round as m:ss.
func clock(sec int) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
