package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sartorproj/goextreme/analysis"
)

// smoothCmd smooths one field with the polynomial and/or moving-average smoother.
var smoothCmd = &cobra.Command{
	Use:   "smooth <file>",
	Short: "Smooth one field with a least-squares polynomial or a moving average",
	Long: `Fit a least-squares polynomial against the record index of one field and/or
compute a trailing moving average. Missing readings are dropped first.

Examples:
  # Degree-20 trend line (QR solver) of water temperature
  goextreme smooth station.csv --field water_temp

  # 7-point moving average only
  goextreme smooth station.csv -f tide --poly=false --window 7

  # Normal-equation solver at degree 5, exported as CSV
  goextreme smooth station.csv -f tide --degree 5 --fit-method normal -o csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runSmooth()
	},
}

func runSmooth() error {
	frame, err := loadFrame(cfg.InputPath)
	if err != nil {
		return err
	}

	var field string
	switch {
	case len(cfg.Fields) > 1:
		return errors.New("smooth takes a single --field")
	case len(cfg.Fields) == 1:
		field = cfg.Fields[0]
	default:
		fields := frame.Fields()
		if len(fields) == 0 {
			return errors.New("no numeric fields found")
		}
		field = fields[0]
	}

	series, err := frame.Series(field)
	if err != nil {
		return err
	}

	result, err := analysis.Smooth(series, cfg.Smooth)
	if err != nil {
		return fmt.Errorf("smoothing failed: %w", err)
	}
	if result.Poly == nil && result.PolyStatus != "" {
		logger.Warn("polynomial fit failed", "field", field, "status", result.PolyStatus)
	}

	return newWriter().WriteSmooth(cfg.InputPath, result, cfg.Smooth.Window)
}
