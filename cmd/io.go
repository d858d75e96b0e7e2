package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
	"github.com/KaramelBytes/dataforge-cli/internal/parser"
	"github.com/KaramelBytes/dataforge-cli/internal/pipeline"
	"github.com/KaramelBytes/dataforge-cli/internal/utils"
)

func loadDataset(path string) (*dataset.Dataset, error) {
	opt, err := cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	return parser.ParseFile(path, opt)
}

// openSession loads path into a new pipeline session.
func openSession(path string) (*pipeline.Session, error) {
	d, err := loadDataset(path)
	if err != nil {
		return nil, err
	}
	return pipeline.NewSession(d, logger), nil
}

// emit writes the session's current view to out, or to stdout when out is empty.
func emit(cmd *cobra.Command, s *pipeline.Session, out string) error {
	opt, err := cfg.ParserOptions()
	if err != nil {
		return err
	}
	if out == "" {
		var b strings.Builder
		if err := s.Export(&b, opt); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(b.String(), "\n"))
		return nil
	}
	view, err := s.View()
	if err != nil {
		return err
	}
	return writeDataset(cmd, view, out, opt)
}

func writeDataset(cmd *cobra.Command, d *dataset.Dataset, out string, opt parser.Options) error {
	text, err := parser.Format(d, opt)
	if err != nil {
		return err
	}
	text = strings.TrimSuffix(text, "\n") + "\n"
	if err := utils.SafeWriteFile(out, []byte(text)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d rows to %s\n", d.Len(), out)
	return nil
}

// writeText writes body to out, or prints it when out is empty.
func writeText(cmd *cobra.Command, body, out, what string) error {
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), body)
		return nil
	}
	if err := utils.SafeWriteFile(out, []byte(body)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", what, out)
	return nil
}
