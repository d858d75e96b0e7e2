package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/query"
)

var (
	filterWhere  []string
	filterOutput string
)

var filterCmd = &cobra.Command{
	Use:   "filter <file> --where col:op:value ...",
	Short: "Keep rows matching every --where predicate",
	Long: `Keep rows matching every --where predicate (logical AND).

Operators: equals, contains (case-insensitive), greater, less, notNull.
Example: dataforge filter sales.csv --where region:equals:EU --where amount:greater:100`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := make([]query.Filter, 0, len(filterWhere))
		for _, w := range filterWhere {
			f, err := query.ParseFilter(w)
			if err != nil {
				return err
			}
			filters = append(filters, f)
		}
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		if err := s.SetFilters(filters); err != nil {
			return err
		}
		return emit(cmd, s, filterOutput)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringArrayVar(&filterWhere, "where", nil, "predicate column:operator[:value] (repeatable)")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "write result to file instead of stdout")
}
