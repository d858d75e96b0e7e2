package pipeline

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dataforge-cli/internal/augment"
	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
	"github.com/KaramelBytes/dataforge-cli/internal/query"
	"github.com/KaramelBytes/dataforge-cli/internal/transform"
)

// Recipe describes a repeatable pipeline. Steps run in the order
// filters, sort, transforms, columns, augment.
type Recipe struct {
	Input      string           `yaml:"input,omitempty"`
	Output     string           `yaml:"output,omitempty"`
	Dialect    string           `yaml:"dialect,omitempty"`
	Seed       int64            `yaml:"seed,omitempty"`
	Filters    []query.Filter   `yaml:"filters,omitempty"`
	Sort       *query.SortKey   `yaml:"sort,omitempty"`
	Transforms []transform.Step `yaml:"transforms,omitempty"`
	Columns    []string         `yaml:"columns,omitempty"`
	Augment    []augment.Option `yaml:"augment,omitempty"`
}

// LoadRecipe reads a YAML recipe. Relative input and output paths resolve
// against the recipe's directory.
func LoadRecipe(path string) (*Recipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	r, err := ParseRecipe(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if r.Input != "" && !filepath.IsAbs(r.Input) {
		r.Input = filepath.Join(dir, r.Input)
	}
	if r.Output != "" && !filepath.IsAbs(r.Output) {
		r.Output = filepath.Join(dir, r.Output)
	}
	return r, nil
}

// ParseRecipe decodes YAML, rejecting unknown keys.
func ParseRecipe(b []byte) (*Recipe, error) {
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	return &r, nil
}

// RunResult is the output of Run.
type RunResult struct {
	Dataset *dataset.Dataset
	// Augment is nil when the recipe lists no augmentation.
	Augment *augment.Result
}

// Run applies r to d. A nil rng is seeded from r.Seed.
func Run(r *Recipe, d *dataset.Dataset, logger *zap.Logger, rng *rand.Rand) (*RunResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = augment.NewRand(r.Seed)
	}
	step := func(name string, in, out *dataset.Dataset) {
		logger.Debug("recipe step", zap.String("step", name), zap.Int("rows_in", in.Len()), zap.Int("rows_out", out.Len()))
	}

	out, err := query.ApplyFilters(d, r.Filters)
	if err != nil {
		return nil, err
	}
	step("filters", d, out)

	if r.Sort != nil {
		sorted, err := query.ApplySort(out, r.Sort.Column, r.Sort.Direction)
		if err != nil {
			return nil, err
		}
		step("sort", out, sorted)
		out = sorted
	}

	if len(r.Transforms) > 0 {
		next, err := transform.ApplySteps(out, r.Transforms)
		if err != nil {
			return nil, err
		}
		step("transforms", out, next)
		out = next
	}

	if len(r.Columns) > 0 {
		next, err := dataset.Project(out, r.Columns)
		if err != nil {
			return nil, err
		}
		step("columns", out, next)
		out = next
	}

	res := &RunResult{Dataset: out}
	if len(r.Augment) > 0 {
		ar, err := augment.Augment(out, r.Augment, rng)
		if err != nil {
			return nil, err
		}
		for _, id := range ar.Skipped {
			logger.Warn("augmentation has no heuristic, skipped", zap.String("option", id))
		}
		step("augment", out, ar.Dataset)
		res.Dataset = ar.Dataset
		res.Augment = ar
	}
	return res, nil
}
