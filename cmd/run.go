package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/parser"
	"github.com/KaramelBytes/dataforge-cli/internal/pipeline"
)

var (
	runInput  string
	runOutput string
)

var runRecipeCmd = &cobra.Command{
	Use:   "run <recipe.yaml>",
	Short: "Run a YAML recipe: filters, sort, transforms, columns, augment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := pipeline.LoadRecipe(args[0])
		if err != nil {
			return err
		}
		if runInput != "" {
			r.Input = runInput
		}
		if runOutput != "" {
			r.Output = runOutput
		}
		if r.Input == "" {
			return fmt.Errorf("recipe has no input (set input: or pass --input)")
		}
		opt, err := cfg.ParserOptions()
		if err != nil {
			return err
		}
		if r.Dialect != "" && !cmd.Flags().Changed("dialect") {
			if opt.Dialect, err = parser.ParseDialect(r.Dialect); err != nil {
				return err
			}
		}
		if r.Seed == 0 {
			r.Seed = cfg.Seed
		}
		d, err := parser.ParseFile(r.Input, opt)
		if err != nil {
			return err
		}
		res, err := pipeline.Run(r, d, logger, nil)
		if err != nil {
			return err
		}
		if res.Augment != nil && len(res.Augment.Skipped) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Skipped (no heuristic): %s\n", strings.Join(res.Augment.Skipped, ", "))
		}
		if r.Output == "" {
			text, err := parser.Format(res.Dataset, opt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(text, "\n"))
			return nil
		}
		return writeDataset(cmd, res.Dataset, r.Output, opt)
	},
}

func init() {
	rootCmd.AddCommand(runRecipeCmd)
	runRecipeCmd.Flags().StringVar(&runInput, "input", "", "override the recipe's input file")
	runRecipeCmd.Flags().StringVarP(&runOutput, "output", "o", "", "override the recipe's output file")
}
