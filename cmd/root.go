package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/statloom/statloom-cli/internal/compute"
	cfgpkg "github.com/statloom/statloom-cli/internal/config"
	"github.com/statloom/statloom-cli/internal/logging"
	"github.com/statloom/statloom-cli/internal/store"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile     string
	debug       bool
	flagUser    string
	flagSurface string
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "statloom",
	Short: "StatLoom CLI: profile datasets and orchestrate statistical analyses",
	Long:  `StatLoom manages an analysis session over one uploaded dataset at a time: it profiles columns, validates variable selections per analysis type, dispatches the computation to the compute service, and renders or exports the result.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.statloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "user id for the session store (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSurface, "surface", "cli", "front end publishing this session (cli, bot, miniapp)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "compute HTTP timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	if debug {
		logging.SetVerbose(true)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("user") && flagUser != "" {
		cfg.UserID = flagUser
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.ComputeTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
}

func requireConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// openStore opens the shared sqlite file; the caller closes it.
func openStore() (*sql.DB, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(c.StorePath)
}

func newEngine() (*compute.Client, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return compute.NewClient(
		c.ComputeBaseURL,
		time.Duration(c.ComputeTimeoutSec)*time.Second,
		c.RetryMaxAttempts,
		time.Duration(c.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(c.RetryMaxDelayMs)*time.Millisecond,
	), nil
}

func currentUser() string {
	if cfg != nil && cfg.UserID != "" {
		return cfg.UserID
	}
	return "local"
}

// currentSurface names the front end a published session is attributed to.
func currentSurface() string {
	if flagSurface == "" {
		return "cli"
	}
	return flagSurface
}
