package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pable/csinsights/internal/config"
	"github.com/pable/csinsights/internal/faceit"
	"github.com/pable/csinsights/internal/logging"
	"github.com/pable/csinsights/internal/storage"
)

var (
	configPath string
	dbPath     string
	logLevel   string

	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csinsights",
	Short: "CS2 match utility insights",
	Long: `Serve a FACEIT proxy backend and generate deterministic utility-analysis
reports for CS2 matches. Reports are synthetic: the same match id always
yields the same document.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (.yaml, .yml or .toml; default ~/.csinsights/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite lookup cache (default ~/.csinsights/cache.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Cache.Path = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	logger = logging.New(os.Stderr, logging.Options{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Prefix: "csinsights",
	})
	return nil
}

func newFaceitClient() *faceit.Client {
	return faceit.NewClient(cfg.Faceit.APIKey,
		faceit.WithBaseURL(cfg.Faceit.BaseURL),
		faceit.WithTimeout(cfg.Faceit.Timeout),
	)
}

// openStorage opens the lookup cache, creating its directory if needed.
func openStorage() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := storage.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
