// Package config loads vizc.toml, the compiler's configuration manifest.
// The manifest carries statistical defaults for composite marks and per-part
// layer defaults; a missing manifest means built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name probed when loading from a directory.
const ManifestName = "vizc.toml"

// Config is the root of the manifest.
type Config struct {
	Errorbar ErrorbarConfig `toml:"errorbar"`
}

// ErrorbarConfig carries the defaults for errorbar expansion. Part tables mix
// an "enabled" switch with arbitrary mark properties, e.g.
//
//	[errorbar.ticks]
//	enabled = true
//	size = 10
type ErrorbarConfig struct {
	Center string `toml:"center"`
	Extent string `toml:"extent"`

	Bar     map[string]any `toml:"bar"`
	Line    map[string]any `toml:"line"`
	Ticks   map[string]any `toml:"ticks"`
	Whisker map[string]any `toml:"whisker"`
	Point   map[string]any `toml:"point"`
}

// PartDefaults is the resolved configuration of one visual part.
type PartDefaults struct {
	Enabled bool
	Props   map[string]any
}

// Default returns the built-in configuration: mean/stderr summaries, whisker
// and point layers on, bar/line/ticks off.
func Default() *Config {
	return &Config{
		Errorbar: ErrorbarConfig{
			Center: "mean",
			Extent: "stderr",
		},
	}
}

// defaultTickSize keeps whisker-end ticks visible when the part is enabled
// without an explicit size.
const defaultTickSize = int64(15)

// partEnabledByDefault returns the built-in enabled switch of a part, applied
// when neither the manifest nor the mark definition mentions it.
func partEnabledByDefault(name string) bool {
	return name == "whisker" || name == "point"
}

// Load reads and validates a manifest file.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir probes dir for the manifest and falls back to Default when absent.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, ManifestName)
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) validate() error {
	switch c.Errorbar.Center {
	case "mean", "median":
	default:
		return fmt.Errorf("invalid center %q (want mean or median)", c.Errorbar.Center)
	}
	switch c.Errorbar.Extent {
	case "ci", "iqr", "stderr", "stdev":
	default:
		return fmt.Errorf("invalid extent %q (want ci, iqr, stderr or stdev)", c.Errorbar.Extent)
	}
	return nil
}

// Part resolves the defaults for the named part. Unknown names resolve to a
// disabled part; the expander reports those through its own diagnostics.
func (c *ErrorbarConfig) Part(name string) PartDefaults {
	var table map[string]any
	switch name {
	case "bar":
		table = c.Bar
	case "line":
		table = c.Line
	case "ticks":
		table = c.Ticks
	case "whisker":
		table = c.Whisker
	case "point":
		table = c.Point
	default:
		return PartDefaults{}
	}
	out := PartDefaults{
		Enabled: partEnabledByDefault(name),
		Props:   make(map[string]any, len(table)+1),
	}
	for k, v := range table {
		if k == "enabled" {
			if b, ok := v.(bool); ok {
				out.Enabled = b
			}
			continue
		}
		out.Props[k] = v
	}
	if name == "ticks" {
		if _, ok := out.Props["size"]; !ok {
			out.Props["size"] = defaultTickSize
		}
	}
	return out
}

// Fingerprint returns a stable textual digest input for cache keys: every
// setting that can change compiled output, in deterministic order.
func (c *Config) Fingerprint() string {
	out := fmt.Sprintf("center=%s;extent=%s", c.Errorbar.Center, c.Errorbar.Extent)
	parts := []string{"bar", "line", "ticks", "whisker", "point"}
	for _, name := range parts {
		pd := c.Errorbar.Part(name)
		keys := make([]string, 0, len(pd.Props))
		for k := range pd.Props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out += fmt.Sprintf(";%s.enabled=%t", name, pd.Enabled)
		for _, k := range keys {
			out += fmt.Sprintf(";%s.%s=%v", name, k, pd.Props[k])
		}
	}
	return out
}
