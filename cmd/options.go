package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/firedash/internal/filter"
	"github.com/KaramelBytes/firedash/internal/utils"
)

var optJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the filter choices available for a selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTable()
		if err != nil {
			return err
		}
		res := filter.Apply(t, selection(), renderOptions().Filter)
		out := cmd.OutOrStdout()
		if optJSON {
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		section := func(title string, vals []string) {
			fmt.Fprintf(out, "%s (%d):\n", title, len(vals))
			if len(vals) > 0 {
				fmt.Fprintf(out, "  %s\n", strings.Join(vals, "\n  "))
			}
		}
		section("Regions", res.RegionOptions)
		section("Districts", res.DistrictOptions)
		section("Sub-districts", res.SubdistrictOptions)
		fmt.Fprintf(out, "Matching rows: %d\n", len(res.Rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optJSON, "json", false, "print options as JSON")
	addSelectionFlags(optionsCmd)
}
