package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sartorproj/goextreme/internal/config"
	"github.com/sartorproj/goextreme/internal/logging"
	"github.com/sartorproj/goextreme/internal/outwriter"
	"github.com/sartorproj/goextreme/timeseries"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &config.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = config.DefaultRawInput()

// logger is built from the validated configuration.
var logger = logging.Discard()

// clock times analysis runs.
var clock = clockwork.NewRealClock()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "goextreme",
	Short: "Extreme-value analysis of coastal station records.",
	Long: `goextreme extracts annual or monthly extremes from station records, fits a
Pearson Type III distribution and reports return-period design values.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".goextreme") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("GOEXTREME")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	defaults := config.DefaultRawInput()
	viper.SetDefault("granularity", defaults.Granularity)
	viper.SetDefault("selector", defaults.Selector)
	viper.SetDefault("return-periods", defaults.ReturnPeriods)
	viper.SetDefault("poly", defaults.Poly)
	viper.SetDefault("degree", defaults.Degree)
	viper.SetDefault("fit-method", defaults.FitMethod)
	viper.SetDefault("window", defaults.Window)
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("precision", defaults.Precision)
	viper.SetDefault("workers", defaults.Workers)
	viper.SetDefault("log-level", defaults.LogLevel)
	viper.SetDefault("log-format", defaults.LogFormat)
	viper.SetDefault("color", defaults.Color)
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	input = config.DefaultRawInput()
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.InputPath = args[0]
	}

	// 4. Run all validation and complex parsing.
	processed, err := config.Process(input, config.StdoutIsTerminal())
	if err != nil {
		return err
	}
	cfg = processed
	color.NoColor = !cfg.UseColors

	logger = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	logger.Debug("configuration loaded", "config_file", viper.ConfigFileUsed(), "output", string(cfg.Output))
	return nil
}

// loadFrame reads the input file as CSV or XLSX based on its extension.
func loadFrame(path string) (*timeseries.Frame, error) {
	var (
		frame *timeseries.Frame
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		frame, err = timeseries.LoadXLSX(path, cfg.Load)
	default:
		frame, err = timeseries.LoadCSV(path, cfg.Load)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}
	logger.Info("records loaded", slog.String("file", path), slog.Int("records", frame.Len()), slog.Any("fields", frame.Fields()))
	return frame, nil
}

func newWriter() *outwriter.Writer {
	return outwriter.New(cfg).WithClock(clock)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// LogFatal prints an error in red and exits the program.
func LogFatal(msg string, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	_, _ = fmt.Fprintf(os.Stderr, "%s %s: %v\n", red("Fatal"), msg, err)
	os.Exit(1)
}
