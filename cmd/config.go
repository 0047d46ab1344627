package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/firedash/internal/config"
	"github.com/KaramelBytes/firedash/internal/dataset"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Firedash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "header_check: %s\n", cfg.HeaderCheck)
		fmt.Fprintf(out, "skip_invalid_rows: %t\n", cfg.SkipInvalidRows)
		fmt.Fprintf(out, "district_filter_respects_region: %t\n", cfg.DistrictFilterRespectsRegion)
		fmt.Fprintf(out, "top_districts: %d\n", cfg.TopDistricts)
		fmt.Fprintf(out, "top_subdistricts: %d\n", cfg.TopSubdistricts)
		fmt.Fprintf(out, "top_cause_districts: %d\n", cfg.TopCauseDistricts)
		fmt.Fprintf(out, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(out, "map_url: %s\n", cfg.MapURL)
		fmt.Fprintf(out, "chart_width_in: %.2f\n", cfg.ChartWidthIn)
		fmt.Fprintf(out, "chart_height_in: %.2f\n", cfg.ChartHeightIn)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_path":
			cfg.DataPath = val
		case "delimiter":
			old := cfg.Delimiter
			cfg.Delimiter = val
			if _, err := cfg.DelimiterRune(); err != nil {
				cfg.Delimiter = old
				return err
			}
		case "sheet_name":
			cfg.SheetName = val
		case "header_check":
			hc, err := dataset.ParseHeaderCheck(val)
			if err != nil {
				return err
			}
			cfg.HeaderCheck = string(hc)
		case "skip_invalid_rows":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for skip_invalid_rows: %v", val)
			}
			cfg.SkipInvalidRows = b
		case "district_filter_respects_region":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for district_filter_respects_region: %v", val)
			}
			cfg.DistrictFilterRespectsRegion = b
		case "top_districts", "top_subdistricts", "top_cause_districts":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "top_districts":
				cfg.TopDistricts = i
			case "top_subdistricts":
				cfg.TopSubdistricts = i
			default:
				cfg.TopCauseDistricts = i
			}
		case "listen_addr":
			cfg.ListenAddr = val
		case "map_url":
			cfg.MapURL = val
		case "chart_width_in", "chart_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid positive float for %s: %v", key, val)
			}
			if key == "chart_width_in" {
				cfg.ChartWidthIn = f
			} else {
				cfg.ChartHeightIn = f
			}
		case "log_level":
			cfg.LogLevel = val
		case "log_format":
			switch val {
			case "console", "json":
				cfg.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
