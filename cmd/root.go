package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/telhawk-systems/xes2arff/internal/config"
	"github.com/telhawk-systems/xes2arff/internal/logging"
	"github.com/telhawk-systems/xes2arff/pkg/output"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "xes2arff",
	Short: "Convert XES event logs into ARFF tables",
	Long: `xes2arff projects the events of an XES process log into ARFF tables
for classification tools.

Events are partitioned by a classifier attribute (for example org:resource);
one table is written per distinct value, with one row per event and one
column per attribute key observed in that partition.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./xes2arff.yaml or ~/.xes2arff/xes2arff.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json")
	rootCmd.PersistentFlags().String("output", output.FormatTable, "output format: table, json, yaml")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

func initConfig() {
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = config.Default()
	}

	if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format, _ := rootCmd.PersistentFlags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
	if noColor, _ := rootCmd.PersistentFlags().GetBool("no-color"); noColor {
		output.DisableColor()
	}

	logger = logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	logging.SetDefault(logger)
}
