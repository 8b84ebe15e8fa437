package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blfkit/internal/config"
	"github.com/joshuapare/blfkit/titles"
	"github.com/joshuapare/blfkit/titles/registry"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	titleFlag  string
	buildFlag  string
	configPath string

	settings = config.Default()
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "blfctl",
	Short: "Build, inspect and convert Halo BLF files",
	Long: `blfctl converts Halo map and game variants between editable JSON
config directories and the BLF files each game build loads. It also inspects
and validates arbitrary BLF files.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&titleFlag, "title", "", "Title name, e.g. \"Halo 3\"")
	rootCmd.PersistentFlags().StringVar(&buildFlag, "build", "", "Build string, e.g. 12070.08.09.05.2031.halo3_ship")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Settings file (default $"+config.EnvVar+")")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads settings and builds the stderr logger.
func setup(*cobra.Command, []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings = cfg
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// converter resolves --title/--build, falling back to the settings file.
func converter() (titles.Converter, error) {
	title, build := titleFlag, buildFlag
	if title == "" {
		title = settings.Title
	}
	if build == "" {
		build = settings.Build
	}
	if title == "" || build == "" {
		return nil, errors.New("--title and --build are required (see `blfctl titles`)")
	}
	opts := titles.Options{Logger: logger, CompressStrings: settings.CompressStrings}
	return registry.Get(title, build, opts)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
