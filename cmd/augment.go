package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/augment"
)

var (
	augSynthetic   int
	augFillMissing bool
	augEnable      []string
	augSeed        int64
	augOutput      string
)

var augmentCmd = &cobra.Command{
	Use:   "augment <file> [--synthetic N] [--fill-missing] [--seed S]",
	Short: "Add synthetic rows and fill missing values",
	Long: `Run augmentation heuristics over a dataset.

--synthetic N appends up to 50 rows bootstrapped per column from existing values.
Without N, --enable synthetic uses the synthetic_rows config value.
--fill-missing (on by default) replaces empty cells with the column mean, or with the
column's first non-empty value for text columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		opts := s.Options()
		if err := augment.Configure(opts, augment.Synthetic, "rows", cfg.SyntheticRows); err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("synthetic") {
			if err := augment.Set(opts, augment.Synthetic, true); err != nil {
				return err
			}
			if err := augment.Configure(opts, augment.Synthetic, "rows", augSynthetic); err != nil {
				return err
			}
		}
		if err := augment.Set(opts, augment.Missing, augFillMissing); err != nil {
			return err
		}
		for _, id := range augEnable {
			if err := augment.Set(opts, id, true); err != nil {
				return err
			}
		}
		seed := cfg.Seed
		if f.Changed("seed") {
			seed = augSeed
		}
		s.SetRand(augment.NewRand(seed))

		res, err := s.Augment()
		if err != nil {
			return err
		}
		errOut := cmd.ErrOrStderr()
		if len(res.Applied) > 0 {
			fmt.Fprintf(errOut, "✓ Applied: %s\n", strings.Join(res.Applied, ", "))
		}
		if len(res.Skipped) > 0 {
			fmt.Fprintf(errOut, "⚠ Skipped (no heuristic): %s\n", strings.Join(res.Skipped, ", "))
		}
		return emit(cmd, s, augOutput)
	},
}

func init() {
	rootCmd.AddCommand(augmentCmd)
	augmentCmd.Flags().IntVar(&augSynthetic, "synthetic", 0, "generate N synthetic rows (capped at 50)")
	augmentCmd.Flags().BoolVar(&augFillMissing, "fill-missing", true, "fill missing values")
	augmentCmd.Flags().StringSliceVar(&augEnable, "enable", nil, "enable additional options by id (feature, outlier, categorize)")
	augmentCmd.Flags().Int64Var(&augSeed, "seed", 0, "random seed (overrides config; 0 = time based)")
	augmentCmd.Flags().StringVarP(&augOutput, "output", "o", "", "write result to file instead of stdout")
}
