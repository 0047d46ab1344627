package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/firedash/internal/config"
	"github.com/KaramelBytes/firedash/internal/logging"
)

var (
	// Global flags
	cfgFile  string
	dataPath string
	debug    bool

	// Loaded configuration
	cfg *cfgpkg.Global
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "firedash",
	Short: "Firedash: Jakarta fire-incident dashboard",
	Long: `Firedash loads the Jakarta fire department incident export, filters it by
region, district and sub-district, and presents the aggregates as a web
dashboard, a Markdown summary, PNG charts or an XLSX workbook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.firedash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "incident data file, .csv/.tsv/.xlsx (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	if err := cfgpkg.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need data report it themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
	if dataPath != "" {
		cfg.DataPath = dataPath
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	l, err := logging.New(os.Stderr, level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		l, _ = logging.New(os.Stderr, "info", "console")
	}
	logger = l
}
