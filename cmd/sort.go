package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sortBy     string
	sortDesc   bool
	sortOutput string
)

var sortCmd = &cobra.Command{
	Use:   "sort <file> --by col [--desc]",
	Short: "Stable sort by one column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sortBy == "" {
			return fmt.Errorf("--by is required")
		}
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		if _, err := s.ToggleSort(sortBy); err != nil {
			return err
		}
		if sortDesc {
			// second toggle on the same column flips to descending
			if _, err := s.ToggleSort(sortBy); err != nil {
				return err
			}
		}
		return emit(cmd, s, sortOutput)
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringVar(&sortBy, "by", "", "column to sort by")
	sortCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")
	sortCmd.Flags().StringVarP(&sortOutput, "output", "o", "", "write result to file instead of stdout")
}
