package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/dataforge-cli/internal/analysis"
	"github.com/KaramelBytes/dataforge-cli/internal/utils"
)

var (
	pbOutDir  string
	pbWorkers int
	pbQuiet   bool
)

var profileBatchCmd = &cobra.Command{
	Use:   "profile-batch <files...>",
	Short: "Profile multiple datasets in parallel, writing one Markdown report per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		opt := profileOptions(cmd)
		outDir := pbOutDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		workers := cfg.BatchWorkers
		if cmd.Flags().Changed("workers") && pbWorkers > 0 {
			workers = pbWorkers
		}

		outputs := make([]string, len(files))
		owner := make(map[string]string, len(files))
		for i, path := range files {
			dst := utils.DerivedPath(path, outDir, ".profile.md")
			if prev, ok := owner[dst]; ok {
				return fmt.Errorf("%s and %s would both write %s", prev, path, dst)
			}
			owner[dst] = path
			outputs[i] = dst
		}

		var g errgroup.Group
		g.SetLimit(workers)
		for i, path := range files {
			g.Go(func() error {
				d, err := loadDataset(path)
				if err != nil {
					return err
				}
				rep := analysis.Profile(d, opt)
				dst := outputs[i]
				if err := utils.SafeWriteFile(dst, []byte(rep.Markdown())); err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(path), err)
				}
				logger.Debug("profiled", zap.String("input", path), zap.String("output", dst), zap.Int("rows", d.Len()))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if !pbQuiet {
			total := len(files)
			for i, path := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s -> %s\n", i+1, total, filepath.Base(path), outputs[i])
			}
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, drops
// duplicates and sorts the result.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	rootCmd.AddCommand(profileBatchCmd)
	profileBatchCmd.Flags().StringVar(&pbOutDir, "out-dir", "", "directory for reports (default: next to each input, or config output_dir)")
	profileBatchCmd.Flags().IntVar(&pbWorkers, "workers", 4, "parallel workers (overrides config batch_workers)")
	profileBatchCmd.Flags().BoolVar(&pbQuiet, "quiet", false, "suppress per-file output")
	addProfileFlags(profileBatchCmd)
}
