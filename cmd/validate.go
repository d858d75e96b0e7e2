package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/analysis"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a dataset for missing values and report a quality score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		v := analysis.Validate(d)
		out := cmd.OutOrStdout()
		for _, m := range v.Messages {
			fmt.Fprintf(out, "%s %s\n", levelMark(m.Level), m.Text)
		}
		if validateStrict && v.MissingCells > 0 {
			return fmt.Errorf("%d missing values found", v.MissingCells)
		}
		return nil
	},
}

func levelMark(l analysis.Level) string {
	switch l {
	case analysis.LevelSuccess:
		return "✓"
	case analysis.LevelWarning:
		return "⚠"
	}
	return "✗"
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit with an error when any value is missing")
}
