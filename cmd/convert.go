package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/xes2arff/internal/convert"
	"github.com/telhawk-systems/xes2arff/internal/metrics"
	"github.com/telhawk-systems/xes2arff/pkg/output"
)

var errMissingPaths = errors.New("Please provide a path to your input data and a path to your results directory.")

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an XES log into ARFF tables",
	Long: `Read an XES log, partition its events by a classifier attribute and write
one ARFF file per classifier value into the results directory.

Without --classifier the attribute is asked for interactively; the answer must
occur somewhere in the input file. Events lacking the classifier attribute are
skipped with a warning.`,
	Example: `  # Ask for the classifier interactively
  xes2arff convert --data log.xes --results out

  # Non-interactive, one table per resource
  xes2arff convert -d log.xes -r out -c org:resource

  # Require a real event attribute and export run metrics
  xes2arff convert -d log.xes -r out -c org:resource --strict --metrics-file xes2arff.prom`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("data", "d", "", "path to the input XES log")
	convertCmd.Flags().StringP("results", "r", "", "path to the results directory (created if missing)")
	convertCmd.Flags().StringP("classifier", "c", "", "classifier attribute key (prompted for when empty)")
	convertCmd.Flags().Bool("strict", false, "require the classifier to be an event attribute key")
	convertCmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, _ := cmd.Flags().GetString("data")
	results, _ := cmd.Flags().GetString("results")
	classifier, _ := cmd.Flags().GetString("classifier")
	strict, _ := cmd.Flags().GetBool("strict")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	// Flags override config
	if !cmd.Flags().Changed("results") {
		results = cfg.Convert.Results
	}
	if !cmd.Flags().Changed("classifier") {
		classifier = cfg.Convert.Classifier
	}
	if !cmd.Flags().Changed("strict") {
		strict = cfg.Convert.Strict
	}
	if !cmd.Flags().Changed("metrics-file") {
		metricsFile = cfg.Convert.MetricsFile
	}

	if data == "" || results == "" {
		_ = cmd.Usage()
		return errMissingPaths
	}
	cmd.SilenceUsage = true

	converter := convert.New(logger, metrics.New(), cmd.InOrStdin(), cmd.OutOrStdout())
	report, err := converter.Run(cmd.Context(), convert.Options{
		DataPath:    data,
		ResultsDir:  results,
		Classifier:  classifier,
		Strict:      strict,
		MetricsFile: metricsFile,
	})
	if report != nil {
		for _, table := range report.Tables {
			output.Success("Your file was saved to %s", table.Path)
		}
	}
	if err != nil {
		return err
	}

	if report.Stats.Dropped > 0 {
		output.Warn("Warning: skipped %d of %d events without chosen classifier %q",
			report.Stats.Dropped, report.Stats.Events, report.Classifier)
	}
	return nil
}
