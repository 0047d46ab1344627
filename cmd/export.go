package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/firedash/internal/export"
	"github.com/KaramelBytes/firedash/internal/utils"
)

var expOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the selection and its aggregates as an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := renderView()
		if err != nil {
			return err
		}
		err = utils.WriteFileWith(expOutputPath, func(w io.Writer) error {
			return export.Write(w, v, export.Options{})
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote workbook to %s (%d rows)\n", expOutputPath, v.RowCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expOutputPath, "output", "o", "jakarta-fires.xlsx", "path of the workbook to write")
	addSelectionFlags(exportCmd)
}
