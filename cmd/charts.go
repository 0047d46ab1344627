package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/firedash/internal/charts"
	"github.com/KaramelBytes/firedash/internal/utils"
)

var (
	chOutDir string
	chFormat string
	chOnly   []string
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render dashboard charts to image files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch chFormat {
		case "png", "svg":
		default:
			return fmt.Errorf("unsupported --format: %s (use png or svg)", chFormat)
		}
		names := chOnly
		if len(names) == 0 {
			names = charts.Names()
		}
		v, err := renderView()
		if err != nil {
			return err
		}
		size := chartSize()
		for _, name := range names {
			path := filepath.Join(chOutDir, name+"."+chFormat)
			err := utils.WriteFileWith(path, func(w io.Writer) error {
				return charts.Render(w, v, name, size, chFormat)
			})
			if err != nil {
				return err
			}
			logger.Debug().Str("chart", name).Str("path", path).Msg("chart written")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d charts to %s\n", len(names), chOutDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().StringVar(&chOutDir, "out-dir", "charts", "directory to write charts into")
	chartsCmd.Flags().StringVar(&chFormat, "format", "png", "image format: png | svg")
	chartsCmd.Flags().StringSliceVar(&chOnly, "only", nil, "comma-separated chart names to render (default all)")
	addSelectionFlags(chartsCmd)
}
