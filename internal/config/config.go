package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dataforge-cli/internal/parser"
)

// Global configuration structure.
type Global struct {
	// Seed drives synthetic row generation; 0 seeds from the clock.
	Seed          int64  `mapstructure:"seed" yaml:"seed"`
	SyntheticRows int    `mapstructure:"synthetic_rows" yaml:"synthetic_rows"`
	SampleRows    int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	Dialect       string `mapstructure:"dialect" yaml:"dialect"`
	// Profiling
	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
	ChartPoints      int     `mapstructure:"chart_points" yaml:"chart_points"`
	BatchWorkers     int     `mapstructure:"batch_workers" yaml:"batch_workers"`
	OutputDir        string  `mapstructure:"output_dir" yaml:"output_dir"`
}

// Keys lists the settable keys in display order.
var Keys = []string{"seed", "synthetic_rows", "sample_rows", "dialect", "outlier_threshold", "chart_points", "batch_workers", "output_dir"}

const dirName = ".dataforge"

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		SyntheticRows:    100,
		SampleRows:       10,
		Dialect:          parser.DialectSimple.String(),
		OutlierThreshold: 3.5,
		ChartPoints:      20,
		BatchWorkers:     4,
	}
}

// DefaultPath returns ~/.dataforge/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dataforge/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAFORGE")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("synthetic_rows", d.SyntheticRows)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("dialect", d.Dialect)
	v.SetDefault("outlier_threshold", d.OutlierThreshold)
	v.SetDefault("chart_points", d.ChartPoints)
	v.SetDefault("batch_workers", d.BatchWorkers)
	v.SetDefault("output_dir", d.OutputDir)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// A named file that does not exist yet is created by Save.
		if _, err := os.Stat(cfgFile); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Global) Validate() error {
	if _, err := parser.ParseDialect(c.Dialect); err != nil {
		return fmt.Errorf("config dialect: %w", err)
	}
	if c.SyntheticRows < 0 || c.SampleRows < 0 || c.ChartPoints < 0 {
		return fmt.Errorf("config: row counts must be non-negative")
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("config: batch_workers must be at least 1, got %d", c.BatchWorkers)
	}
	if c.OutlierThreshold <= 0 {
		return fmt.Errorf("config: outlier_threshold must be positive, got %v", c.OutlierThreshold)
	}
	return nil
}

// ParserOptions returns the parser options selected by Dialect.
func (c *Global) ParserOptions() (parser.Options, error) {
	opt := parser.DefaultOptions()
	d, err := parser.ParseDialect(c.Dialect)
	if err != nil {
		return opt, err
	}
	opt.Dialect = d
	return opt, nil
}

// Get returns the string form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "seed":
		return cast.ToString(c.Seed), nil
	case "synthetic_rows":
		return cast.ToString(c.SyntheticRows), nil
	case "sample_rows":
		return cast.ToString(c.SampleRows), nil
	case "dialect":
		return c.Dialect, nil
	case "outlier_threshold":
		return cast.ToString(c.OutlierThreshold), nil
	case "chart_points":
		return cast.ToString(c.ChartPoints), nil
	case "batch_workers":
		return cast.ToString(c.BatchWorkers), nil
	case "output_dir":
		return c.OutputDir, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val into key and validates the result. On error c is unchanged.
func (c *Global) Set(key, val string) error {
	next := *c
	var err error
	switch key {
	case "seed":
		next.Seed, err = cast.ToInt64E(val)
	case "synthetic_rows":
		next.SyntheticRows, err = cast.ToIntE(val)
	case "sample_rows":
		next.SampleRows, err = cast.ToIntE(val)
	case "dialect":
		next.Dialect = val
	case "outlier_threshold":
		next.OutlierThreshold, err = cast.ToFloat64E(val)
	case "chart_points":
		next.ChartPoints, err = cast.ToIntE(val)
	case "batch_workers":
		next.BatchWorkers, err = cast.ToIntE(val)
	case "output_dir":
		next.OutputDir = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
