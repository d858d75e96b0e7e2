package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/transform"
)

var (
	trColumns []string
	trKind    string
	trOutput  string
)

var transformCmd = &cobra.Command{
	Use:   "transform <file> --column c --kind k",
	Short: "Apply a per-column transform",
	Long: fmt.Sprintf(`Apply a per-column transform to one or more columns.

Kinds: %s.`, strings.Join(kindNames(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := transform.ParseKind(trKind)
		if err != nil {
			return err
		}
		if len(trColumns) == 0 {
			return fmt.Errorf("--column is required")
		}
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		for _, c := range trColumns {
			if err := s.Transform(c, kind); err != nil {
				return err
			}
		}
		return emit(cmd, s, trOutput)
	},
}

func kindNames() []string {
	var out []string
	for _, k := range transform.Kinds() {
		out = append(out, string(k))
	}
	return out
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().StringSliceVar(&trColumns, "column", nil, "column(s) to transform (repeatable or comma-separated)")
	transformCmd.Flags().StringVar(&trKind, "kind", "", "transform kind")
	transformCmd.Flags().StringVarP(&trOutput, "output", "o", "", "write result to file instead of stdout")
}
