package pipeline

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/dataforge-cli/internal/analysis"
	"github.com/KaramelBytes/dataforge-cli/internal/augment"
	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
	"github.com/KaramelBytes/dataforge-cli/internal/parser"
	"github.com/KaramelBytes/dataforge-cli/internal/query"
	"github.com/KaramelBytes/dataforge-cli/internal/transform"
)

// Session carries the state a user builds up while working on one dataset:
// the loaded base, the working copy derived from it, the active filters,
// sort key, column selection and augmentation options.
//
// A Session is not safe for concurrent use.
type Session struct {
	ID string

	base     *dataset.Dataset
	working  *dataset.Dataset
	filters  []query.Filter
	sort     query.SortState
	selected []string
	options  []augment.Option
	registry *augment.Registry
	rng      *rand.Rand
	log      *zap.Logger
}

// NewSession starts a session on d. A nil logger discards output.
func NewSession(d *dataset.Dataset, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:       uuid.NewString(),
		options:  augment.DefaultOptions(),
		registry: augment.DefaultRegistry,
		rng:      augment.NewRand(0),
	}
	s.log = logger.With(zap.String("session", s.ID))
	s.Load(d)
	return s
}

// Load replaces the base dataset and resets derived state.
func (s *Session) Load(d *dataset.Dataset) {
	s.base = d
	s.working = d
	s.filters = nil
	s.sort = query.SortState{}
	s.selected = slices.Clone(d.Columns)
	s.log.Debug("dataset loaded", zap.String("source", d.SourceName), zap.Int("rows", d.Len()), zap.Int("columns", len(d.Columns)))
}

// SetRand replaces the random source used by augmentation.
func (s *Session) SetRand(rng *rand.Rand) { s.rng = rng }

// SetRegistry replaces the heuristics used by Augment.
func (s *Session) SetRegistry(r *augment.Registry) { s.registry = r }

// Base returns the committed dataset.
func (s *Session) Base() *dataset.Dataset { return s.base }

// Working returns the current derived dataset with all declared columns.
func (s *Session) Working() *dataset.Dataset { return s.working }

// View returns the working dataset restricted to the selected columns.
func (s *Session) View() (*dataset.Dataset, error) {
	return dataset.Project(s.working, s.selected)
}

// Stats computes column statistics on the working dataset.
func (s *Session) Stats(col string) (analysis.Stats, error) {
	return analysis.ColumnStats(s.working, col)
}

// Validate runs the quality check on the base dataset.
func (s *Session) Validate() *analysis.Validation {
	return analysis.Validate(s.base)
}

// Filters returns a copy of the active filters.
func (s *Session) Filters() []query.Filter { return slices.Clone(s.filters) }

// AddFilter appends f to the active filters without applying them.
func (s *Session) AddFilter(f query.Filter) { s.filters = append(s.filters, f) }

// RemoveFilter drops the filter at index i.
func (s *Session) RemoveFilter(i int) error {
	if i < 0 || i >= len(s.filters) {
		return fmt.Errorf("filter index %d out of range", i)
	}
	s.filters = slices.Delete(s.filters, i, i+1)
	return nil
}

// SetFilters replaces the active filters and applies them.
func (s *Session) SetFilters(filters []query.Filter) error {
	s.filters = slices.Clone(filters)
	return s.ApplyFilters()
}

// ApplyFilters recomputes the working dataset from the base rows. Earlier
// working changes are discarded; an active sort key is applied again.
func (s *Session) ApplyFilters() error {
	out, err := query.ApplyFilters(s.base, s.filters)
	if err != nil {
		return err
	}
	if k := s.sort.Key; k != nil {
		if out, err = query.ApplySort(out, k.Column, k.Direction); err != nil {
			return err
		}
	}
	s.log.Debug("filters applied", zap.Int("filters", len(s.filters)), zap.Int("rows_in", s.base.Len()), zap.Int("rows_out", out.Len()))
	s.working = out
	return nil
}

// ToggleSort sorts the working dataset by col, flipping direction when col
// is already the ascending key.
func (s *Session) ToggleSort(col string) (query.SortKey, error) {
	if err := s.working.RequireColumn("sort", col); err != nil {
		return query.SortKey{}, err
	}
	key := s.sort.Toggle(col)
	out, err := query.ApplySort(s.working, key.Column, key.Direction)
	if err != nil {
		return query.SortKey{}, err
	}
	s.log.Debug("sorted", zap.String("column", key.Column), zap.String("direction", string(key.Direction)))
	s.working = out
	return key, nil
}

// SortKey returns the active sort key, if any.
func (s *Session) SortKey() (query.SortKey, bool) {
	if s.sort.Key == nil {
		return query.SortKey{}, false
	}
	return *s.sort.Key, true
}

// SelectedColumns returns the current column selection in order.
func (s *Session) SelectedColumns() []string { return slices.Clone(s.selected) }

// ToggleColumn adds or removes col from the selection. Re-added columns
// return to their declared position.
func (s *Session) ToggleColumn(col string) error {
	if err := s.working.RequireColumn("select", col); err != nil {
		return err
	}
	if i := slices.Index(s.selected, col); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return nil
	}
	var next []string
	for _, c := range s.working.Columns {
		if c == col || slices.Contains(s.selected, c) {
			next = append(next, c)
		}
	}
	s.selected = next
	return nil
}

// SelectColumns replaces the selection with cols in the given order.
func (s *Session) SelectColumns(cols []string) error {
	if _, err := dataset.Project(s.working, cols); err != nil {
		return err
	}
	s.selected = slices.Clone(cols)
	return nil
}

// Transform applies kind to col on the working dataset.
func (s *Session) Transform(col string, kind transform.Kind) error {
	out, err := transform.Apply(s.working, col, kind)
	if err != nil {
		return err
	}
	s.log.Debug("transform applied", zap.String("column", col), zap.String("kind", string(kind)))
	s.working = out
	return nil
}

// Commit promotes the selected view of the working dataset to the new base
// and clears the filters.
func (s *Session) Commit() error {
	view, err := s.View()
	if err != nil {
		return err
	}
	s.base = view
	s.working = view
	s.filters = nil
	s.selected = slices.Clone(view.Columns)
	s.log.Debug("committed", zap.Int("rows", view.Len()), zap.Strings("columns", view.Columns))
	return nil
}

// Options returns the augmentation options. The slice is shared, so callers
// may toggle entries in place.
func (s *Session) Options() []augment.Option { return s.options }

// Augment runs the enabled options over the working dataset.
func (s *Session) Augment() (*augment.Result, error) {
	res, err := s.registry.Augment(s.working, s.options, s.rng)
	if err != nil {
		return nil, err
	}
	for _, id := range res.Skipped {
		s.log.Warn("augmentation has no heuristic, skipped", zap.String("option", id))
	}
	s.log.Debug("augmented", zap.Strings("applied", res.Applied), zap.Int("rows_in", s.working.Len()), zap.Int("rows_out", res.Dataset.Len()))
	s.working = res.Dataset
	return res, nil
}

// Export writes the selected view of the working dataset.
func (s *Session) Export(w io.Writer, opt parser.Options) error {
	view, err := s.View()
	if err != nil {
		return err
	}
	return parser.Write(w, view, opt)
}
