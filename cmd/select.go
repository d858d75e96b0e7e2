package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	selectColumns []string
	selectDrop    []string
	selectOutput  string
)

var selectCmd = &cobra.Command{
	Use:   "select <file> --columns a,b",
	Short: "Keep (and reorder) columns, or drop some with --drop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(selectColumns) == 0 && len(selectDrop) == 0 {
			return fmt.Errorf("one of --columns or --drop is required")
		}
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		if len(selectColumns) > 0 {
			if err := s.SelectColumns(selectColumns); err != nil {
				return err
			}
		}
		for _, c := range selectDrop {
			if err := s.ToggleColumn(c); err != nil {
				return err
			}
		}
		return emit(cmd, s, selectOutput)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().StringSliceVar(&selectColumns, "columns", nil, "comma-separated columns to keep, in output order")
	selectCmd.Flags().StringSliceVar(&selectDrop, "drop", nil, "comma-separated columns to remove")
	selectCmd.Flags().StringVarP(&selectOutput, "output", "o", "", "write result to file instead of stdout")
}
