package augment

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

// Input is what a heuristic receives.
type Input struct {
	// Dataset is the output of the previous option, or the source for the
	// first one.
	Dataset *dataset.Dataset
	// Source is the dataset handed to Augment, before any option ran.
	Source *dataset.Dataset
	Config map[string]any
	Rand   *rand.Rand
}

// Heuristic applies one augmentation. It must not modify either dataset.
type Heuristic func(in Input) (*dataset.Dataset, error)

// Registry maps option IDs to heuristics.
type Registry struct {
	mu         sync.RWMutex
	heuristics map[string]Heuristic
}

// NewRegistry returns a registry holding the built-in heuristics.
func NewRegistry() *Registry {
	r := &Registry{heuristics: make(map[string]Heuristic)}
	r.Register(Synthetic, synthesize)
	r.Register(Missing, fillMissing)
	return r
}

// Register adds or replaces the heuristic for id.
func (r *Registry) Register(id string, h Heuristic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heuristics[id] = h
}

// Lookup returns the heuristic for id.
func (r *Registry) Lookup(id string) (Heuristic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.heuristics[id]
	return h, ok
}

// IDs lists registered option IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.heuristics))
	for id := range r.heuristics {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry holds the built-in heuristics.
var DefaultRegistry = NewRegistry()

// Result is the outcome of Augment.
type Result struct {
	Dataset *dataset.Dataset
	// Applied lists the option IDs that ran, in order.
	Applied []string
	// Skipped lists enabled option IDs with no registered heuristic.
	Skipped []string
}

// Augment runs every enabled option in canonical order using DefaultRegistry.
func Augment(d *dataset.Dataset, opts []Option, rng *rand.Rand) (*Result, error) {
	return DefaultRegistry.Augment(d, opts, rng)
}

// Augment runs every enabled option in canonical order, each consuming the
// previous option's output. Disabled options are no-ops. A nil rng is
// replaced by a time-seeded one.
func (r *Registry) Augment(d *dataset.Dataset, opts []Option, rng *rand.Rand) (*Result, error) {
	if rng == nil {
		rng = NewRand(0)
	}
	enabled := make([]Option, 0, len(opts))
	for _, o := range opts {
		if o.Enabled {
			enabled = append(enabled, o)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return canonicalRank(enabled[i].ID) < canonicalRank(enabled[j].ID)
	})

	res := &Result{Dataset: d}
	for _, o := range enabled {
		h, ok := r.Lookup(o.ID)
		if !ok {
			res.Skipped = append(res.Skipped, o.ID)
			continue
		}
		next, err := h(Input{Dataset: res.Dataset, Source: d, Config: o.Config, Rand: rng})
		if err != nil {
			return nil, fmt.Errorf("augment %s: %w", o.ID, err)
		}
		res.Dataset = next
		res.Applied = append(res.Applied, o.ID)
	}
	return res, nil
}
