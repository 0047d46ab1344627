package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultDataPath is the file name of the fire department export.
const DefaultDataPath = "Data_Kebakaran_Gabungan (1).csv"

// Global configuration structure.
type Global struct {
	// Dataset
	DataPath        string `mapstructure:"data_path" yaml:"data_path"`
	Delimiter       string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName       string `mapstructure:"sheet_name" yaml:"sheet_name"`
	HeaderCheck     string `mapstructure:"header_check" yaml:"header_check"`
	SkipInvalidRows bool   `mapstructure:"skip_invalid_rows" yaml:"skip_invalid_rows"`

	// Filtering and rankings
	DistrictFilterRespectsRegion bool `mapstructure:"district_filter_respects_region" yaml:"district_filter_respects_region"`
	TopDistricts                 int  `mapstructure:"top_districts" yaml:"top_districts"`
	TopSubdistricts              int  `mapstructure:"top_subdistricts" yaml:"top_subdistricts"`
	TopCauseDistricts            int  `mapstructure:"top_cause_districts" yaml:"top_cause_districts"`

	// Dashboard
	ListenAddr    string  `mapstructure:"listen_addr" yaml:"listen_addr"`
	MapURL        string  `mapstructure:"map_url" yaml:"map_url"`
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".firedash", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.firedash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadDotEnv reads .env from the working directory into the process
// environment. A missing file is not an error; existing variables win.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FIREDASH")
	v.AutomaticEnv()

	v.SetDefault("data_path", DefaultDataPath)
	v.SetDefault("delimiter", ";")
	v.SetDefault("sheet_name", "")
	v.SetDefault("header_check", "strict")
	v.SetDefault("skip_invalid_rows", false)
	v.SetDefault("district_filter_respects_region", false)
	v.SetDefault("top_districts", 15)
	v.SetDefault("top_subdistricts", 15)
	v.SetDefault("top_cause_districts", 10)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("map_url", "https://datawrapper.dwcdn.net/oSBOq/1/")
	v.SetDefault("chart_width_in", 8.0)
	v.SetDefault("chart_height_in", 5.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// DelimiterRune converts the configured delimiter to a rune.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", ";":
		return ';', nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ';', ',', '|' or 'tab')", c.Delimiter)
	}
}
