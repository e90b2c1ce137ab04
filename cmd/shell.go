package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/csinsights/internal/analysis"
	"github.com/pable/csinsights/internal/maps"
	"github.com/pable/csinsights/internal/model"
	"github.com/pable/csinsights/internal/report"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Generate and inspect reports interactively. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runShell(os.Stdin, os.Stdout, os.Stderr)
	},
}

func runShell(in io.Reader, out, errOut io.Writer) error {
	cGreeting.Fprintln(out, "csinsights shell")
	cMuted.Fprintln(out, "type 'help' or 'exit'")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		cPrompt.Fprint(out, "csinsights")
		cMuted.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp(out)
		case "analyze", "json", "insights", "throws":
			if len(args) == 0 {
				cError.Fprintf(errOut, "usage: %s <match-id> [map]\n", name)
				continue
			}
			a, err := shellGenerate(errOut, args)
			if err != nil {
				cError.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			shellPrint(out, name, a)
		default:
			cWarn.Fprintf(errOut, "unknown command %q, type 'help'\n", name)
		}
	}
	return scanner.Err()
}

func shellGenerate(errOut io.Writer, args []string) (*model.MatchAnalysis, error) {
	var mapID *string
	if len(args) > 1 {
		m := args[1]
		if !maps.IsKnown(m) {
			if s, ok := maps.Suggest(m); ok {
				cWarn.Fprintf(errOut, "unrecognised map %q (did you mean %q?)\n", m, s)
			}
		}
		mapID = &m
	}
	return analysis.Generate(args[0], mapID)
}

func shellPrint(out io.Writer, name string, a *model.MatchAnalysis) {
	switch name {
	case "analyze":
		report.PrintAnalysis(out, a)
	case "json":
		data, _ := json.MarshalIndent(a, "", "  ")
		fmt.Fprintln(out, string(data))
	case "insights":
		report.PrintMatchSummary(out, a)
		report.PrintInsights(out, a.Insights)
	case "throws":
		report.PrintThrowsTable(out, a.Throws)
	}
}

func shellHelp(out io.Writer) {
	fmt.Fprintln(out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"analyze <match-id> [map]", "print the full report"},
		{"json <match-id> [map]", "print the report as JSON"},
		{"insights <match-id> [map]", "print the summary line and insights"},
		{"throws <match-id> [map]", "print the throw log"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(out, "  ")
		cCmd.Fprintf(out, "%-30s", r.cmd)
		fmt.Fprintln(out, r.desc)
	}
	fmt.Fprintln(out)
}
