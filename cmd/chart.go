package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/analysis"
	"github.com/KaramelBytes/dataforge-cli/internal/utils"
)

var (
	chartX      string
	chartY      string
	chartPoints int
	chartList   bool
)

var chartCmd = &cobra.Command{
	Use:   "chart <file> --x col --y col",
	Short: "Emit chart-ready points as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if chartList {
			b, err := utils.PrettyJSON(map[string][]string{
				"numeric":     analysis.NumericColumns(d),
				"categorical": analysis.CategoricalColumns(d),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		if chartX == "" || chartY == "" {
			return fmt.Errorf("--x and --y are required (or use --list)")
		}
		limit := cfg.ChartPoints
		if cmd.Flags().Changed("points") {
			limit = chartPoints
		}
		pts, err := analysis.ChartSeries(d, chartX, chartY, limit)
		if err != nil {
			return err
		}
		b, err := utils.PrettyJSON(pts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVar(&chartX, "x", "", "column for names / x values")
	chartCmd.Flags().StringVar(&chartY, "y", "", "column for y values")
	chartCmd.Flags().IntVar(&chartPoints, "points", 20, "maximum points (overrides config chart_points)")
	chartCmd.Flags().BoolVar(&chartList, "list", false, "list numeric and categorical columns instead")
}
