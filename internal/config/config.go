// Package config turns raw settings from flags, environment and the config
// file into a validated run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/sartorproj/goextreme/analysis"
	"github.com/sartorproj/goextreme/extreme"
	"github.com/sartorproj/goextreme/pearson"
	"github.com/sartorproj/goextreme/stats"
	"github.com/sartorproj/goextreme/timeseries"
)

// Default values for configuration.
const (
	DefaultPrecision = 3
	DefaultWorkers   = 4
	DefaultWindow    = 0
	DefaultDegree    = stats.DefaultSmoothDegree
)

// ErrInvalidConfig is returned when the raw input fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// OutputFormat selects how results are written.
type OutputFormat string

const (
	TextOut    OutputFormat = "text"
	CSVOut     OutputFormat = "csv"
	JSONOut    OutputFormat = "json"
	XLSXOut    OutputFormat = "xlsx"
	ParquetOut OutputFormat = "parquet"
)

// Binary reports whether the format cannot be written to a terminal.
func (f OutputFormat) Binary() bool {
	return f == XLSXOut || f == ParquetOut
}

// RawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type RawInput struct {
	// Set from positional args
	InputPath string

	Fields        []string  `mapstructure:"field"`
	DateColumn    string    `mapstructure:"date-column"`
	DateFormat    string    `mapstructure:"date-format"`
	Station       string    `mapstructure:"station"`
	StationColumn string    `mapstructure:"station-column"`
	Sheet         string    `mapstructure:"sheet"`
	Granularity   string    `mapstructure:"granularity" validate:"oneof=year month"`
	Selector      string    `mapstructure:"selector" validate:"oneof=max min"`
	ReturnPeriods []float64 `mapstructure:"return-periods" validate:"dive,gt=1"`
	Trend         bool      `mapstructure:"trend"`
	Poly          bool      `mapstructure:"poly"`
	Degree        int       `mapstructure:"degree" validate:"gte=0,lte=30"`
	FitMethod     string    `mapstructure:"fit-method" validate:"oneof=qr normal"`
	Window        int       `mapstructure:"window" validate:"gte=0"`
	Skew          float64   `mapstructure:"skew"`

	Output      string `mapstructure:"output" validate:"oneof=text csv json xlsx parquet"`
	OutputFile  string `mapstructure:"output-file"`
	Precision   int    `mapstructure:"precision" validate:"gte=0,lte=6"`
	Workers     int    `mapstructure:"workers" validate:"gt=0"`
	LogLevel    string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log-format" validate:"oneof=text json"`
	MetricsFile string `mapstructure:"metrics-file"`
	Color       string `mapstructure:"color" validate:"oneof=auto yes no true false"`
}

// DefaultRawInput returns the raw input a run starts from before any file,
// environment or flag is applied.
func DefaultRawInput() *RawInput {
	periods := make([]float64, len(pearson.StandardReturnPeriods))
	copy(periods, pearson.StandardReturnPeriods)
	return &RawInput{
		Granularity:   "year",
		Selector:      "max",
		ReturnPeriods: periods,
		Poly:          true,
		Degree:        DefaultDegree,
		FitMethod:     "qr",
		Window:        DefaultWindow,
		Output:        string(TextOut),
		Precision:     DefaultPrecision,
		Workers:       DefaultWorkers,
		LogLevel:      "warn",
		LogFormat:     "text",
		Color:         "auto",
	}
}

// Config holds the validated run configuration.
type Config struct {
	InputPath string
	Fields    []string

	Load     *timeseries.CSVOptions
	Analysis *analysis.Config
	Smooth   analysis.SmoothOptions
	Skew     float64

	Output      OutputFormat
	OutputFile  string
	Precision   int
	UseColors   bool
	LogLevel    string
	LogFormat   string
	MetricsFile string
}

// Process validates input and builds the run configuration. isTTY reports
// whether stdout is a terminal and is only consulted for color "auto".
func Process(input *RawInput, isTTY bool) (*Config, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	cfg := &Config{
		InputPath:   input.InputPath,
		Fields:      cleanFields(input.Fields),
		Skew:        input.Skew,
		Output:      OutputFormat(strings.ToLower(input.Output)),
		OutputFile:  input.OutputFile,
		Precision:   input.Precision,
		LogLevel:    input.LogLevel,
		LogFormat:   input.LogFormat,
		MetricsFile: input.MetricsFile,
	}

	if cfg.Output.Binary() && cfg.OutputFile == "" {
		return nil, fmt.Errorf("%w: output %s requires --output-file", ErrInvalidConfig, cfg.Output)
	}

	colors, err := ResolveColor(input.Color, isTTY)
	if err != nil {
		return nil, err
	}
	cfg.UseColors = colors

	load := timeseries.DefaultCSVOptions()
	load.DateColumn = input.DateColumn
	if input.DateFormat != "" {
		load.DateFormat = input.DateFormat
	}
	load.Station = input.Station
	load.StationColumn = input.StationColumn
	load.Sheet = input.Sheet
	cfg.Load = load

	granularity, err := extreme.ParseGranularity(input.Granularity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	selector, err := extreme.ParseSelector(input.Selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	method, err := stats.ParseFitMethod(input.FitMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	a := analysis.DefaultConfig()
	a.Granularity = granularity
	a.Selector = selector
	if len(input.ReturnPeriods) > 0 {
		a.ReturnPeriods = input.ReturnPeriods
	}
	a.Trend = input.Trend
	a.TrendDegree = input.Degree
	a.TrendMethod = method
	a.Workers = input.Workers
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Analysis = a

	cfg.Smooth = analysis.SmoothOptions{
		Degree: input.Degree,
		Method: method,
		Window: input.Window,
	}
	if !input.Poly {
		cfg.Smooth.Degree = -1
	}

	return cfg, nil
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ResolveColor parses the color setting. "auto" follows isTTY.
func ResolveColor(mode string, isTTY bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTTY, nil
	case "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("%w: invalid color value %q", ErrInvalidConfig, mode)
}

func cleanFields(fields []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range fields {
		for _, part := range strings.Split(f, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report config keys rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(input *RawInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (received %v)", field, strings.ReplaceAll(param, " ", ", "), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s (received %v)", field, param, fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s (received %v)", field, param, fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s (received %v)", field, param, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
