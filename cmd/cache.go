package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the FACEIT match lookup cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached match lookups, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Print the cached FACEIT document for a match",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheShow,
}

var cacheRmCmd = &cobra.Command{
	Use:   "rm <match-id>...",
	Short: "Remove cached lookups",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCacheRm,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached lookup",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheRmCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.ListMatchLookups()
	if err != nil {
		return fmt.Errorf("list cache: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "Cache is empty. Run 'csinsights analyze --resolve <match-id>' or the server to fill it.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("MATCH_ID", "MAP", "SIZE", "FETCHED", "STATUS")
	for _, e := range entries {
		status := "fresh"
		if e.Expired(time.Now(), cfg.Cache.TTL) {
			status = "expired"
		}
		table.Append(
			e.MatchID,
			orDash(e.MapName),
			humanize.Bytes(uint64(e.RawSize)),
			humanize.Time(e.FetchedAt),
			status,
		)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d entries)\n", len(entries))
	return nil
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	entry, err := db.GetMatchLookup(args[0])
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("no cached lookup for %q", args[0])
	}
	payload, err := entry.Payload()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "match %s  map %s  fetched %s  %s (%s stored)\n",
		entry.MatchID, orDash(entry.MapName), humanize.Time(entry.FetchedAt),
		humanize.Bytes(uint64(entry.RawSize)), humanize.Bytes(uint64(entry.CompressedSize())))

	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "  "); err != nil {
		out.Reset()
		out.Write(payload)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(os.Stdout)
	return err
}

func runCacheRm(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, id := range args {
		if err := db.DeleteMatchLookup(id); err != nil {
			return fmt.Errorf("remove %q: %w", id, err)
		}
	}
	fmt.Fprintf(os.Stdout, "Removed %d entr%s.\n", len(args), pluralY(len(args)))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.ClearMatchLookups()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Removed %d entr%s.\n", n, pluralY(int(n)))
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
