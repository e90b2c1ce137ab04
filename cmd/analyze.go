package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pable/csinsights/internal/analysis"
	"github.com/pable/csinsights/internal/maps"
	"github.com/pable/csinsights/internal/model"
	"github.com/pable/csinsights/internal/report"
	"github.com/pable/csinsights/internal/server"
	"github.com/pable/csinsights/internal/storage"
)

var (
	analyzeMap      string
	analyzeJSON     bool
	analyzeValidate bool
	analyzeResolve  bool
	analyzeParallel int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <match-id>...",
	Short: "Generate utility reports for one or more matches",
	Long: `Generate the utility-analysis report for each match id and print it as
tables, or as JSON with --json. The report is derived from the match id
alone; --map only labels it.

With --resolve and no --map, the map is looked up through the FACEIT API
(needs FACEIT_API_KEY) and cached locally.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMap, "map", "", "map label for every report (e.g. mirage)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print JSON instead of tables")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "check each report against the JSON schema")
	analyzeCmd.Flags().BoolVar(&analyzeResolve, "resolve", false, "look up the map on FACEIT when --map is not given")
	analyzeCmd.Flags().IntVar(&analyzeParallel, "parallel", 4, "max concurrent FACEIT lookups with --resolve")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeMap != "" && !maps.IsKnown(analyzeMap) {
		if s, ok := maps.Suggest(analyzeMap); ok {
			logger.Warn("unrecognised map, using it as given", "map", analyzeMap, "did_you_mean", s)
		} else {
			logger.Warn("unrecognised map, using it as given", "map", analyzeMap)
		}
	}

	mapIDs, err := mapsFor(cmd.Context(), args)
	if err != nil {
		return err
	}

	results := make([]*model.MatchAnalysis, len(args))
	for i, id := range args {
		a, err := analysis.Generate(id, mapIDs[i])
		if err != nil {
			return fmt.Errorf("analyze %q: %w", id, err)
		}
		if analyzeValidate {
			data, err := json.Marshal(a)
			if err != nil {
				return fmt.Errorf("marshal %q: %w", id, err)
			}
			if err := analysis.ValidateJSON(data); err != nil {
				return fmt.Errorf("report for %q failed validation: %w", id, err)
			}
		}
		results[i] = a
	}

	if analyzeJSON {
		var v any = results
		if len(results) == 1 {
			v = results[0]
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	for _, a := range results {
		report.PrintAnalysis(os.Stdout, a)
	}
	return nil
}

// mapsFor returns the map label for each match id, in input order. Lookup
// failures leave the label unset.
func mapsFor(ctx context.Context, ids []string) ([]*string, error) {
	out := make([]*string, len(ids))
	if analyzeMap != "" {
		for i := range out {
			m := analyzeMap
			out[i] = &m
		}
		return out, nil
	}
	if !analyzeResolve {
		return out, nil
	}

	client := newFaceitClient()
	if !client.HasKey() {
		return nil, fmt.Errorf("--resolve needs a FACEIT API key: set FACEIT_API_KEY or create ~/.csinsights/faceit_api_key")
	}

	var cache *storage.DB
	if cfg.Cache.Enabled {
		db, err := openStorage()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		cache = db
	}
	resolver := server.NewResolver(client, cache, cfg.Cache.TTL, logger)

	g, gctx := errgroup.WithContext(ctx)
	if analyzeParallel > 0 {
		g.SetLimit(analyzeParallel)
	}
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			name, err := resolver.ResolveMap(gctx, id)
			if err != nil {
				logger.Warn("map lookup failed", "match_id", id, "err", err)
				return nil
			}
			out[i] = &name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
