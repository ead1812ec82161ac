package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultInputPath is where the fire-point exporter drops its ndvi CSV.
const DefaultInputPath = "src/temp/data/firms_data_2024-11-02T11:05:09.897Z_ndvi.csv"

// Global configuration structure.
type Global struct {
	InputPath   string `mapstructure:"input_path" yaml:"input_path"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	ChartFormat string `mapstructure:"chart_format" yaml:"chart_format"`
	Charts      bool   `mapstructure:"charts" yaml:"charts"`
	Workbook    bool   `mapstructure:"workbook" yaml:"workbook"`
	// Boundary is "right" for (a, b] bands or "left" for [a, b).
	Boundary string `mapstructure:"boundary" yaml:"boundary"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".ndvistat"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.ndvistat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
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

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("NDVISTAT")
	v.AutomaticEnv()

	v.SetDefault("input_path", DefaultInputPath)
	v.SetDefault("output_dir", "ndvi_report")
	v.SetDefault("chart_format", "png")
	v.SetDefault("charts", true)
	v.SetDefault("workbook", false)
	v.SetDefault("boundary", "right")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing file is fine; a malformed one is not
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
