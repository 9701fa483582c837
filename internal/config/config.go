package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// DataDir holds uploaded dataset files and generated exports.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	// StorePath is the sqlite database backing sessions and projects.
	StorePath string `mapstructure:"store_path" yaml:"store_path"`

	// Compute collaborator endpoint
	ComputeBaseURL    string `mapstructure:"compute_base_url" yaml:"compute_base_url"`
	ComputeTimeoutSec int    `mapstructure:"compute_timeout_sec" yaml:"compute_timeout_sec"`
	RetryMaxAttempts  int    `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs  int    `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs   int    `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	// Profiling limits
	MaxRows     int `mapstructure:"max_rows" yaml:"max_rows"`
	PreviewRows int `mapstructure:"preview_rows" yaml:"preview_rows"`

	// UserID identifies the calling user to the session and project stores.
	// Resolved by the identity collaborator in hosted deployments; local
	// runs default to "local".
	UserID string `mapstructure:"user_id" yaml:"user_id"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.statloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".statloom")
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
	v.SetEnvPrefix("STATLOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("compute_base_url", "http://127.0.0.1:8700")
	v.SetDefault("compute_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	v.SetDefault("max_rows", 100000)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("user_id", "local")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".statloom")
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
	// Resolve data_dir and store_path defaults under ~/.statloom
	if c.DataDir == "" || c.StorePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		if c.DataDir == "" {
			c.DataDir = filepath.Join(home, ".statloom", "data")
		}
		if c.StorePath == "" {
			c.StorePath = filepath.Join(home, ".statloom", "statloom.db")
		}
	}
	return &c, nil
}
