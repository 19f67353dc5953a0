package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/xes2arff/internal/xes"
	"github.com/telhawk-systems/xes2arff/pkg/output"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List event attribute keys of an XES log",
	Long:  "Show every event attribute key with its number of occurrences and last declared type, to help choosing a classifier",
	Example: `  xes2arff keys --data log.xes
  xes2arff keys --data log.xes --output yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, _ := cmd.Flags().GetString("data")
		if data == "" {
			return fmt.Errorf("--data is required")
		}

		f, err := os.Open(data)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", data, err)
		}
		defer f.Close()

		log, err := xes.Decode(f)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", data, err)
		}

		stats := xes.Keys(log)
		outputFormat, _ := cmd.Flags().GetString("output")
		return output.Print(outputFormat, stats, func() *output.Table {
			table := output.NewTable([]string{"KEY", "TYPE", "OCCURRENCES"})
			for _, s := range stats {
				table.AddRow([]string{s.Key, s.Type, strconv.Itoa(s.Occurrences)})
			}
			return table
		})
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)

	keysCmd.Flags().StringP("data", "d", "", "path to the input XES log")
}
