// Package main provides the calres binary entry point.
// Calres resolves motor-inverter calibration constants for a configured
// hardware/project context and emits the firmware constant sources.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pulsedrive/calres/caltab"
	"github.com/pulsedrive/calres/config"
	"github.com/pulsedrive/calres/dataset"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "calres"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logLevel   string
	selections []string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "calres",
		Short: "Motor-inverter calibration constant resolver",
		Long: `Calres resolves the calibration constant table of a motor-inverter
build from its configuration context: gate driver IC, power module,
current sensors and the project/performance/phase/market tuple.

The resolved table is emitted as the C constant sources the firmware
build compiles, or as a YAML report for review.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringArrayVarP(&opts.selections, "set", "s", nil,
		"Context selection as axis=member (repeatable, overrides config)")

	cmd.AddCommand(
		resolveCmd(opts),
		emitCmd(opts),
		checkCmd(opts),
		listCmd(),
		convertCmd(opts),
		watchCmd(opts),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

// setup loads layered configuration and installs the default logger.
func setup(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
	} else {
		cfg, err = config.NewLoader(bootstrap).Load()
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
	}

	levelName := cfg.Log.Level
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}
	level := slog.LevelInfo
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// loadDataset loads the configured dataset documents, falling back to the
// embedded dataset, and describes the source for generation stamps.
func loadDataset(cfg *config.Config) (*caltab.Dataset, string, error) {
	if len(cfg.Dataset.Patterns) == 0 {
		ds, err := dataset.Embedded()
		return ds, "embedded", err
	}
	ds, err := dataset.Load(cfg.Dataset.Patterns...)
	return ds, strings.Join(cfg.Dataset.Patterns, " "), err
}

// buildContext merges config selections with --set overrides.
func buildContext(cfg *config.Config, opts *rootOptions) (caltab.Context, error) {
	selections := make(map[string]string, len(cfg.Context))
	for name, member := range cfg.Context {
		selections[name] = member
	}
	for _, kv := range opts.selections {
		name, member, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set %q, want axis=member", kv)
		}
		selections[strings.TrimSpace(name)] = strings.TrimSpace(member)
	}
	return caltab.NewContext(selections)
}
