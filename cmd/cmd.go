// Package cmd defines the command-line interface for goextreme.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sartorproj/goextreme/internal/config"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(smoothCmd)
	rootCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringSliceP("field", "f", nil, "Field(s) to analyze; repeat or comma-separate (default: all fields)")
	rootCmd.PersistentFlags().String("date-column", "", "Name of the date column (default: auto-detect)")
	rootCmd.PersistentFlags().String("date-format", "", "Go layout of the date column (default: common formats)")
	rootCmd.PersistentFlags().String("station", "", "Only keep rows of this station")
	rootCmd.PersistentFlags().String("station-column", "", "Name of the station column")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read from an XLSX file (default: first sheet)")
	rootCmd.PersistentFlags().String("return-periods", "5,10,20,25,50,100", "Comma-separated return periods in years (each > 1)")
	rootCmd.PersistentFlags().String("fit-method", "qr", "Polynomial solver: qr or normal")
	rootCmd.PersistentFlags().Int("degree", config.DefaultDegree, "Polynomial degree, capped at points-1")
	rootCmd.PersistentFlags().StringP("output", "o", string(config.TextOut), "Output format: text or csv or json or xlsx or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", config.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("color", "auto", "Colored labels in output (auto/yes/no/true/false)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		LogFatal("Error binding root flags", err)
	}

	analyzeCmd.Flags().StringP("granularity", "g", "year", "Period bucket: year or month")
	analyzeCmd.Flags().StringP("selector", "s", "max", "Per-period extreme: max or min")
	analyzeCmd.Flags().Bool("trend", false, "Fit a polynomial trend over the extreme samples")
	analyzeCmd.Flags().Int("workers", config.DefaultWorkers, "Number of fields analyzed concurrently")
	analyzeCmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		LogFatal("Error binding analyze flags", err)
	}

	smoothCmd.Flags().Bool("poly", true, "Fit the polynomial smoother")
	smoothCmd.Flags().IntP("window", "w", config.DefaultWindow, "Trailing moving-average window (0 = off)")
	if err := viper.BindPFlags(smoothCmd.Flags()); err != nil {
		LogFatal("Error binding smooth flags", err)
	}

	periodsCmd.Flags().Float64("skew", 0, "Skewness coefficient Cs")
	if err := viper.BindPFlags(periodsCmd.Flags()); err != nil {
		LogFatal("Error binding periods flags", err)
	}
}
