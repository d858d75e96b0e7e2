package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/analysis"
	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
	"github.com/KaramelBytes/dataforge-cli/internal/utils"
)

var (
	statsColumn string
	statsJSON   bool
)

type statsJSONRow struct {
	Column    string   `json:"column"`
	Type      string   `json:"type"`
	Count     int      `json:"count"`
	NullCount int      `json:"nullCount"`
	Mean      *float64 `json:"mean,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Unique    *int     `json:"unique,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Show per-column statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		var all []analysis.Stats
		if statsColumn != "" {
			s, err := analysis.ColumnStats(d, statsColumn)
			if err != nil {
				return err
			}
			all = []analysis.Stats{s}
		} else {
			all = analysis.AllStats(d)
		}
		out := cmd.OutOrStdout()
		if statsJSON {
			rows := make([]statsJSONRow, 0, len(all))
			for _, s := range all {
				rows = append(rows, toJSONRow(s))
			}
			b, err := utils.PrettyJSON(rows)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		for _, s := range all {
			fmt.Fprintln(out, formatStats(s))
		}
		return nil
	},
}

func toJSONRow(s analysis.Stats) statsJSONRow {
	r := statsJSONRow{Column: s.Column, Type: string(s.Type), Count: s.Count, NullCount: s.NullCount}
	if s.Type == analysis.TypeNumeric {
		r.Mean, r.Min, r.Max = finite(s.Mean), finite(s.Min), finite(s.Max)
	} else {
		u := s.Unique
		r.Unique = &u
	}
	return r
}

// finite drops NaN and infinities, which JSON cannot carry.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatStats(s analysis.Stats) string {
	if s.Type == analysis.TypeNumeric {
		return fmt.Sprintf("%s: numeric count=%d nulls=%d mean=%s min=%s max=%s",
			s.Column, s.Count, s.NullCount, dataset.FormatNumber(s.Mean), dataset.FormatNumber(s.Min), dataset.FormatNumber(s.Max))
	}
	return fmt.Sprintf("%s: categorical count=%d nulls=%d unique=%d", s.Column, s.Count, s.NullCount, s.Unique)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsColumn, "column", "", "only report this column")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON instead of text")
}
