package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/analysis"
)

var (
	profOutputPath string
	profSampleRows int
	profOutliers   bool
	profOutlierThr float64
)

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Profile a dataset and produce a Markdown summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		rep := analysis.Profile(d, profileOptions(cmd))
		return writeText(cmd, rep.Markdown(), profOutputPath, "profile")
	},
}

// profileOptions merges config defaults with flags that were set explicitly.
func profileOptions(cmd *cobra.Command) analysis.Options {
	opt := analysis.DefaultOptions()
	opt.SampleRows = cfg.SampleRows
	opt.OutlierThreshold = cfg.OutlierThreshold
	f := cmd.Flags()
	if f.Changed("sample-rows") && profSampleRows >= 0 {
		opt.SampleRows = profSampleRows
	}
	if f.Changed("outliers") {
		opt.Outliers = profOutliers
	}
	if f.Changed("outlier-threshold") && profOutlierThr > 0 {
		opt.OutlierThreshold = profOutlierThr
	}
	return opt
}

func addProfileFlags(c *cobra.Command) {
	c.Flags().IntVar(&profSampleRows, "sample-rows", 10, "number of sample rows to include (overrides config)")
	c.Flags().BoolVar(&profOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	c.Flags().Float64Var(&profOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (overrides config)")
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile (Markdown)")
	addProfileFlags(profileCmd)
}
