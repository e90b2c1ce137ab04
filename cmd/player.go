package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/csinsights/internal/analysis"
	"github.com/pable/csinsights/internal/faceit"
)

var (
	playerGame    string
	playerLimit   int
	playerOffset  int
	playerAnalyze bool
)

// playerCmd looks up a FACEIT player and lists their recent matches.
var playerCmd = &cobra.Command{
	Use:   "player <nickname>",
	Short: "List a FACEIT player's recent matches (requires FACEIT_API_KEY)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerGame, "game", faceit.DefaultHistoryQuery.Game, "FACEIT game id")
	playerCmd.Flags().IntVar(&playerLimit, "limit", faceit.DefaultHistoryQuery.Limit, "number of matches")
	playerCmd.Flags().IntVar(&playerOffset, "offset", 0, "history offset")
	playerCmd.Flags().BoolVar(&playerAnalyze, "analyze", false, "add report headline columns for each match")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	client := newFaceitClient()
	if !client.HasKey() {
		return fmt.Errorf("%w: set FACEIT_API_KEY or create ~/.csinsights/faceit_api_key", faceit.ErrNoAPIKey)
	}
	ctx := cmd.Context()

	raw, err := client.PlayerByNickname(ctx, args[0])
	if err != nil {
		return fmt.Errorf("look up %q: %w", args[0], err)
	}
	playerID := faceit.PlayerID(raw)
	if playerID == "" {
		return fmt.Errorf("player %q not found", args[0])
	}

	hist, err := client.MatchHistory(ctx, playerID, faceit.HistoryQuery{
		Game:   playerGame,
		Limit:  playerLimit,
		Offset: playerOffset,
	})
	if err != nil {
		return fmt.Errorf("history for %s: %w", playerID, err)
	}
	items := faceit.HistoryItems(hist)

	fmt.Fprintf(os.Stdout, "\nPlayer: %s  |  ID: %s  |  Matches: %d\n\n", args[0], playerID, len(items))
	if len(items) == 0 {
		fmt.Fprintln(os.Stdout, "No matches found.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	header := []any{"MATCH_ID", "MAP", "FINISHED"}
	if playerAnalyze {
		header = append(header, "K/D", "RATING", "THROWS", "INEFF%")
	}
	table.Header(header...)

	for _, it := range items {
		row := []any{orDash(it.MatchID), orDash(fmt.Sprint(valueOrEmpty(it.Map))), finishedAt(it.FinishedAt)}
		if playerAnalyze && it.MatchID != "" {
			a, err := analysis.Generate(it.MatchID, nil)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", it.MatchID, err)
			}
			row = append(row,
				fmt.Sprintf("%.2f", a.Player.KDRatio()),
				fmt.Sprintf("%.2f", a.Player.Rating),
				fmt.Sprint(len(a.Throws)),
				fmt.Sprintf("%d%%", analysis.IneffectivePercent(a.Throws)),
			)
		} else if playerAnalyze {
			row = append(row, "—", "—", "—", "—")
		}
		table.Append(row...)
	}
	table.Render()
	return nil
}

// finishedAt renders a unix-seconds timestamp as a relative time and any
// other value as-is.
func finishedAt(v any) string {
	switch x := v.(type) {
	case float64:
		return humanize.Time(time.Unix(int64(x), 0))
	case nil:
		return "—"
	default:
		return fmt.Sprint(x)
	}
}

func valueOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
