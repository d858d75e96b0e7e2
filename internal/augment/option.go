package augment

import "fmt"

// Option IDs of the built-in catalog.
const (
	Synthetic  = "synthetic"
	Missing    = "missing"
	Feature    = "feature"
	Outlier    = "outlier"
	Categorize = "categorize"
)

// DefaultSyntheticRows is the row count the synthetic option starts with.
// Generation still clamps to MaxSyntheticRows.
const DefaultSyntheticRows = 100

// Option is one user-toggleable augmentation with option-specific config.
type Option struct {
	ID      string         `yaml:"id" json:"id"`
	Name    string         `yaml:"name,omitempty" json:"name,omitempty"`
	Enabled bool           `yaml:"enabled" json:"enabled"`
	Config  map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// DefaultOptions returns the session-start catalog in canonical order.
func DefaultOptions() []Option {
	return []Option{
		{ID: Synthetic, Name: "Generate Synthetic Data", Config: map[string]any{"rows": DefaultSyntheticRows}},
		{ID: Missing, Name: "Fill Missing Values", Enabled: true},
		{ID: Feature, Name: "Feature Engineering"},
		{ID: Outlier, Name: "Outlier Detection"},
		{ID: Categorize, Name: "Auto Categorization"},
	}
}

// canonicalRank orders known IDs by catalog position; unknown IDs sort last.
func canonicalRank(id string) int {
	for i, o := range DefaultOptions() {
		if o.ID == id {
			return i
		}
	}
	return len(DefaultOptions())
}

// Set finds id in opts and sets Enabled. It returns an error for an unknown id.
func Set(opts []Option, id string, enabled bool) error {
	for i := range opts {
		if opts[i].ID == id {
			opts[i].Enabled = enabled
			return nil
		}
	}
	return fmt.Errorf("unknown augmentation option %q", id)
}

// Toggle flips the Enabled flag of id.
func Toggle(opts []Option, id string) error {
	for i := range opts {
		if opts[i].ID == id {
			opts[i].Enabled = !opts[i].Enabled
			return nil
		}
	}
	return fmt.Errorf("unknown augmentation option %q", id)
}

// Configure sets one config parameter on id.
func Configure(opts []Option, id, key string, value any) error {
	for i := range opts {
		if opts[i].ID == id {
			if opts[i].Config == nil {
				opts[i].Config = map[string]any{}
			}
			opts[i].Config[key] = value
			return nil
		}
	}
	return fmt.Errorf("unknown augmentation option %q", id)
}
