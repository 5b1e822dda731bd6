// Package config loads the arraybridge tool configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/device"
	"github.com/wippyai/arraybridge/errors"
	"github.com/wippyai/arraybridge/host"
	"github.com/wippyai/arraybridge/scalar"
)

// Array layouts a scenario can build.
const (
	LayoutAOS    = "aos"
	LayoutSOA    = "soa"
	LayoutAffine = "affine"
)

// Bounds on the storage one array may describe.
const (
	MaxStride = 1 << 10
	// MaxCells bounds tuples * components * stride.
	MaxCells = 1 << 30
)

// Config holds the tool settings and the arrays to convert.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	// UnifiedMemory overrides the device's own answer when set.
	UnifiedMemory *bool       `json:"unified_memory" yaml:"unified_memory" toml:"unified_memory"`
	LogLevel      string      `json:"log_level" yaml:"log_level" toml:"log_level"`
	Device        string      `json:"device" yaml:"device" toml:"device"`
	Allocator     string      `json:"allocator" yaml:"allocator" toml:"allocator"`
	Listen        string      `json:"listen" yaml:"listen" toml:"listen"`
	CORSOrigins   []string    `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	Arrays        []ArraySpec `json:"arrays" yaml:"arrays" toml:"arrays"`
	WasmPages     uint32      `json:"wasm_pages" yaml:"wasm_pages" toml:"wasm_pages"`
}

// ArraySpec describes one source array to build and convert.
type ArraySpec struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Type       string `json:"type" yaml:"type" toml:"type"`
	Layout     string `json:"layout" yaml:"layout" toml:"layout"`
	Tuples     int    `json:"tuples" yaml:"tuples" toml:"tuples"`
	Components int    `json:"components" yaml:"components" toml:"components"`
	// Stride > 1 pads every planar column, which prevents adoption.
	Stride    int     `json:"stride" yaml:"stride" toml:"stride"`
	Slope     float64 `json:"slope" yaml:"slope" toml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept" toml:"intercept"`
	// Foreign places each buffer inside a larger host container.
	Foreign bool `json:"foreign" yaml:"foreign" toml:"foreign"`
	// OnDevice uploads buffers to the configured device instead of the host heap.
	OnDevice bool `json:"on_device" yaml:"on_device" toml:"on_device"`
	// Coordinates converts the array as a coordinate system.
	Coordinates bool `json:"coordinates" yaml:"coordinates" toml:"coordinates"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		Device:    "host",
		Allocator: "heap",
		WasmPages: device.DefaultWasmPages,
		Listen:    ":8080",
	}
}

// Load reads a configuration file based on its extension, fills defaults
// and validates the result.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, errors.InvalidInput(errors.PhaseConfig, "empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	if err := Decode(filepath.Ext(path), b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode parses b in the format named by ext into cfg.
func Decode(ext string, b []byte, cfg *Config) error {
	var err error
	switch ext = strings.ToLower(ext); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	case ".json":
		err = json.Unmarshal(b, cfg)
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	default:
		return errors.Unsupported(errors.PhaseConfig, "config extension "+ext)
	}
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse "+ext+" config")
	}
	return nil
}

// ApplyDefaults fills unspecified fields.
func (c *Config) ApplyDefaults() {
	d := Defaults()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Device == "" {
		c.Device = d.Device
	}
	if c.Allocator == "" {
		c.Allocator = d.Allocator
	}
	if c.WasmPages == 0 {
		c.WasmPages = d.WasmPages
	}
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	for i := range c.Arrays {
		c.Arrays[i].ApplyDefaults(i)
	}
}

// ApplyDefaults fills unspecified fields of the i-th array.
func (a *ArraySpec) ApplyDefaults(i int) {
	if a.Name == "" {
		a.Name = fmt.Sprintf("array%d", i)
	}
	if a.Type == "" {
		a.Type = "f32"
	}
	if a.Layout == "" {
		a.Layout = LayoutAOS
	}
	if a.Components == 0 {
		a.Components = 1
	}
	if a.Stride == 0 {
		a.Stride = 1
	}
	if a.Layout == LayoutAffine && a.Slope == 0 && a.Intercept == 0 {
		a.Slope = 1
	}
}

// Unified returns the unified memory override, or dev's own answer.
func (c Config) Unified(dev arraybridge.Device) bool {
	if c.UnifiedMemory != nil {
		return *c.UnifiedMemory
	}
	return dev.Unified()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log_level")
	}
	if !slices.Contains(device.Names(), c.Device) {
		return errors.NotFound(errors.PhaseConfig, "device", c.Device)
	}
	if _, err := host.NewAllocator(c.Allocator); err != nil {
		return err
	}
	if c.WasmPages == 0 || c.WasmPages > 65535 {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("wasm_pages %d outside 1..65535", c.WasmPages))
	}
	seen := make(map[string]bool, len(c.Arrays))
	for _, a := range c.Arrays {
		if seen[a.Name] {
			return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("duplicate array name %q", a.Name))
		}
		seen[a.Name] = true
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports the first invalid array setting.
func (a ArraySpec) Validate() error {
	fail := func(format string, args ...any) error {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Array(a.Name).
			Detail(format, args...).
			Build()
	}
	if _, ok := scalar.Parse(a.Type); !ok {
		return errors.New(errors.PhaseConfig, errors.KindUnrecognizedType).
			Array(a.Name).
			Element(a.Type).
			Detail("unknown element type").
			Build()
	}
	switch a.Layout {
	case LayoutAOS, LayoutSOA, LayoutAffine:
	default:
		return fail("unknown layout %q", a.Layout)
	}
	if a.Tuples < 0 {
		return fail("negative tuple count %d", a.Tuples)
	}
	if a.Components < 1 {
		return fail("component count %d", a.Components)
	}
	if a.Stride < 1 {
		return fail("stride %d", a.Stride)
	}
	if a.Stride > MaxStride {
		return fail("stride %d above %d", a.Stride, MaxStride)
	}
	if a.Stride > 1 && a.Layout != LayoutSOA {
		return fail("stride applies to soa columns only")
	}
	if _, ok := a.Cells(MaxCells); !ok {
		return errors.New(errors.PhaseConfig, errors.KindAllocationTooLarge).
			Array(a.Name).
			Detail("%d tuples x %d components x stride %d above %d cells", a.Tuples, a.Components, a.Stride, MaxCells).
			Build()
	}
	if a.Foreign && a.OnDevice {
		return fail("foreign and on_device are exclusive")
	}
	if a.Layout == LayoutAffine && (a.Foreign || a.OnDevice) {
		return fail("affine arrays have no buffers")
	}
	return nil
}

// Cells returns tuples * components * stride, the scalar slots the array
// occupies, and false when that exceeds limit. Negative factors count as zero.
func (a ArraySpec) Cells(limit int) (int, bool) {
	n := max(a.Tuples, 0)
	for _, f := range []int{a.Components, a.Stride} {
		f = max(f, 1)
		if n > limit/f {
			return 0, false
		}
		n *= f
	}
	return n, n <= limit
}
