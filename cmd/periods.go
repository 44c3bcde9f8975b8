package cmd

import (
	"github.com/spf13/cobra"
)

// periodsCmd prints the frequency-factor table for a skewness coefficient.
var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Print Pearson III frequency factors for a skewness coefficient",
	Long: `Print the Gumbel reduced variate z and the skew-corrected frequency factor K
for each return period. The design value of a fitted record is mean + K*stdDev.

Examples:
  goextreme periods --skew 0.8
  goextreme periods --skew -0.3 --return-periods 2,5,10,100,1000 -o csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return newWriter().WritePeriods(cfg.Skew, cfg.Analysis.ReturnPeriods)
	},
}
