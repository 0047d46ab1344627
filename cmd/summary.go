package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/firedash/internal/utils"
)

var (
	sumOutputPath string
	sumJSON       bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a Markdown (or JSON) summary of the selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := renderView()
		if err != nil {
			return err
		}
		var out []byte
		if sumJSON {
			if out, err = utils.PrettyJSON(v); err != nil {
				return err
			}
		} else {
			out = []byte(v.Markdown())
		}

		if sumOutputPath != "" {
			if err := utils.SafeWriteFile(sumOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the summary")
	summaryCmd.Flags().BoolVar(&sumJSON, "json", false, "emit the full view as JSON instead of Markdown")
	addSelectionFlags(summaryCmd)
}
