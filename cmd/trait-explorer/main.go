// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the trait-explorer CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE and synced in PersistentPostRun.
	logger  *zap.Logger
	verbose bool
)

// rootCmd is the base command for the trait-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "trait-explorer",
	Short: "Explore genes, QTLs, and markers associated with crop traits",
	Long: `trait-explorer searches genetic records (genes, quantitative trait loci,
and molecular markers) by crop, variety, trait, and geography.

Use search for one-shot queries, tui for the interactive explorer, serve to
expose the search API over HTTP, and catalog to load a local sqlite catalog
that the store backend searches.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./trait-explorer.yaml or ~/.config/trait-explorer/trait-explorer.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("backend", "", "query backend: mock, http, or store (default from query.backend)")

	_ = viper.BindPFlag("query.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

func setDefaults() {
	viper.SetDefault("query.backend", string(types.BackendMock))
	viper.SetDefault("query.mock_delay", "1500ms")
	viper.SetDefault("query.endpoint", "")
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "trait-explorer/"+version)
	viper.SetDefault("store.path", filepath.Join("data", "catalog.db"))
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
	viper.SetDefault("display.format", string(types.FormatText))
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("trait-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "trait-explorer"))
		}
	}

	viper.SetEnvPrefix("TRAIT_EXPLORER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals the merged defaults, config file, environment, and
// bound flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds a production logger at logging.level, or debug under
// --verbose. The tui command owns the terminal, so it logs only to
// logging.file and discards logs when none is set.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	file := viper.GetString("logging.file")
	if cmd.Name() == tuiCmd.Name() && file == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(level)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if file != "" {
		config.OutputPaths = []string{file}
		config.ErrorOutputPaths = []string{file}
	}
	return config.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
