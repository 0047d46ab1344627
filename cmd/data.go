package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/charts"
	"github.com/KaramelBytes/firedash/internal/dataset"
	"github.com/KaramelBytes/firedash/internal/filter"
)

// Selection flags shared by the reporting commands.
var (
	selRegions      []string
	selDistricts    []string
	selSubdistricts []string
)

func addSelectionFlags(c *cobra.Command) {
	c.Flags().StringArrayVar(&selRegions, "region", nil, "region to include (repeatable)")
	c.Flags().StringArrayVar(&selDistricts, "district", nil, "district to include (repeatable)")
	c.Flags().StringArrayVar(&selSubdistricts, "subdistrict", nil, "sub-district to include (repeatable)")
}

func selection() filter.Selection {
	return filter.Selection{Regions: selRegions, Districts: selDistricts, Subdistricts: selSubdistricts}
}

func requireConfig() error {
	if cfg == nil {
		return errors.New("no configuration loaded (see warning above)")
	}
	return nil
}

func loadOptions() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	d, err := cfg.DelimiterRune()
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	hc, err := dataset.ParseHeaderCheck(cfg.HeaderCheck)
	if err != nil {
		return opt, err
	}
	opt.HeaderCheck = hc
	opt.SheetName = cfg.SheetName
	opt.SkipInvalidRows = cfg.SkipInvalidRows
	return opt, nil
}

// openTable loads the configured dataset once and reports skipped rows.
func openTable() (*dataset.Table, error) {
	if err := requireConfig(); err != nil {
		return nil, err
	}
	opt, err := loadOptions()
	if err != nil {
		return nil, err
	}
	t, err := dataset.NewLoader(cfg.DataPath, opt).Load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.DataPath, err)
	}
	for _, w := range t.Warnings() {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
	}
	logger.Debug().Str("path", cfg.DataPath).Int("rows", t.Len()).Msg("dataset loaded")
	return t, nil
}

func renderOptions() analysis.RenderOptions {
	opt := analysis.DefaultRenderOptions()
	opt.Filter.DistrictsWithinRegions = cfg.DistrictFilterRespectsRegion
	if cfg.TopDistricts > 0 {
		opt.TopDistricts = cfg.TopDistricts
	}
	if cfg.TopSubdistricts > 0 {
		opt.TopSubdistricts = cfg.TopSubdistricts
	}
	if cfg.TopCauseDistricts > 0 {
		opt.TopCauseDistricts = cfg.TopCauseDistricts
	}
	opt.MapURL = cfg.MapURL
	return opt
}

func chartSize() charts.Size {
	return charts.SizeInches(cfg.ChartWidthIn, cfg.ChartHeightIn)
}

// renderView loads the dataset and renders the current selection.
func renderView() (*analysis.View, error) {
	t, err := openTable()
	if err != nil {
		return nil, err
	}
	return analysis.Render(t, selection(), renderOptions()), nil
}
