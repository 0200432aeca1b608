package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quantrail/edascan/internal/quality"
)

// Global configuration structure.
type Global struct {
	// Report defaults.
	OutDir         string `mapstructure:"out_dir" yaml:"out_dir"`
	TopKCategories int    `mapstructure:"top_k_categories" yaml:"top_k_categories"`
	MaxCatColumns  int    `mapstructure:"max_cat_columns" yaml:"max_cat_columns"`
	MaxHistColumns int    `mapstructure:"max_hist_columns" yaml:"max_hist_columns"`

	// Quality thresholds.
	MinMissingShare       float64 `mapstructure:"min_missing_share" yaml:"min_missing_share"`
	HighCardinalityUnique int     `mapstructure:"high_cardinality_unique" yaml:"high_cardinality_unique"`
	HighCardinalityShare  float64 `mapstructure:"high_cardinality_share" yaml:"high_cardinality_share"`

	// Input parsing.
	MissingTokens []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`

	// Service.
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// Thresholds exposes the configured quality thresholds as the engine type.
func (c *Global) Thresholds() quality.Thresholds {
	return quality.Thresholds{
		MinMissingShare:       c.MinMissingShare,
		HighCardinalityUnique: c.HighCardinalityUnique,
		HighCardinalityShare:  c.HighCardinalityShare,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.edascan/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".edascan")
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
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDASCAN")
	v.AutomaticEnv()

	def := quality.DefaultThresholds()
	v.SetDefault("out_dir", "reports")
	v.SetDefault("top_k_categories", 5)
	v.SetDefault("max_cat_columns", 5)
	v.SetDefault("max_hist_columns", 6)
	v.SetDefault("min_missing_share", def.MinMissingShare)
	v.SetDefault("high_cardinality_unique", def.HighCardinalityUnique)
	v.SetDefault("high_cardinality_share", def.HighCardinalityShare)
	v.SetDefault("missing_tokens", []string{})
	v.SetDefault("listen_addr", ":8080")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".edascan")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
