package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/arraybridge"
	"github.com/wippyai/arraybridge/device"
	"github.com/wippyai/arraybridge/errors"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "cfg.yaml", `
log_level: debug
device: discrete
unified_memory: false
arrays:
  - name: xyz
    type: f32
    layout: soa
    tuples: 1000
    components: 3
  - name: ramp
    layout: affine
    tuples: 4
    slope: 2
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Device != "discrete" {
		t.Errorf("unexpected cfg: %+v", cfg)
	}
	if cfg.UnifiedMemory == nil || *cfg.UnifiedMemory {
		t.Errorf("UnifiedMemory = %v, want false", cfg.UnifiedMemory)
	}
	if len(cfg.Arrays) != 2 {
		t.Fatalf("arrays = %d, want 2", len(cfg.Arrays))
	}
	if a := cfg.Arrays[0]; a.Tuples != 1000 || a.Components != 3 || a.Stride != 1 {
		t.Errorf("arrays[0] = %+v", a)
	}
	if a := cfg.Arrays[1]; a.Type != "f32" || a.Components != 1 || a.Slope != 2 {
		t.Errorf("arrays[1] = %+v", a)
	}
	if cfg.WasmPages != 16 || cfg.Listen != ":8080" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "cfg.json",
		`{"device":"wasm","wasm_pages":4,"arrays":[{"name":"ids","type":"u64","foreign":true}]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device != "wasm" || cfg.WasmPages != 4 || cfg.UnifiedMemory != nil || cfg.Allocator != "heap" {
		t.Errorf("unexpected cfg: %+v", cfg)
	}
	if a := cfg.Arrays[0]; a.Name != "ids" || !a.Foreign || a.Layout != LayoutAOS {
		t.Errorf("arrays[0] = %+v", a)
	}
}

func TestLoadTOML(t *testing.T) {
	p := writeTempFile(t, t.TempDir(), "cfg.toml", `
listen = ":9000"
allocator = "arrow"

[[arrays]]
type = "s16"
layout = "soa"
components = 2
stride = 2
on_device = true
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":9000" || cfg.Allocator != "arrow" {
		t.Errorf("Listen = %q, Allocator = %q", cfg.Listen, cfg.Allocator)
	}
	if a := cfg.Arrays[0]; a.Name != "array0" || a.Stride != 2 || !a.OnDevice {
		t.Errorf("arrays[0] = %+v", a)
	}
}

func TestLoadErrors(t *testing.T) {
	d := t.TempDir()
	tests := []struct {
		name string
		path string
		kind errors.Kind
	}{
		{"empty path", "", errors.KindInvalidInput},
		{"missing file", filepath.Join(d, "nope.yaml"), errors.KindNotFound},
		{"bad extension", writeTempFile(t, d, "cfg.txt", "x"), errors.KindUnsupported},
		{"bad yaml", writeTempFile(t, d, "bad.yaml", "arrays: ["), errors.KindInvalidData},
		{"bad device", writeTempFile(t, d, "dev.json", `{"device":"gpu"}`), errors.KindNotFound},
		{"bad type", writeTempFile(t, d, "type.json", `{"arrays":[{"type":"f16"}]}`), errors.KindUnrecognizedType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			if !errors.IsKind(err, tc.kind) {
				t.Errorf("Load() error = %v, want kind %s", err, tc.kind)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero pages", func(c *Config) { c.WasmPages = 0 }},
		{"allocator", func(c *Config) { c.Allocator = "mmap" }},
		{"duplicate names", func(c *Config) {
			c.Arrays = []ArraySpec{{Name: "a"}, {Name: "a"}}
		}},
		{"layout", func(c *Config) { c.Arrays = []ArraySpec{{Layout: "tree"}} }},
		{"negative tuples", func(c *Config) { c.Arrays = []ArraySpec{{Tuples: -1}} }},
		{"aos stride", func(c *Config) { c.Arrays = []ArraySpec{{Stride: 3}} }},
		{"huge stride", func(c *Config) {
			c.Arrays = []ArraySpec{{Layout: LayoutSOA, Tuples: 2, Stride: 1<<61 + 1}}
		}},
		{"too many cells", func(c *Config) {
			c.Arrays = []ArraySpec{{Layout: LayoutSOA, Tuples: 1 << 25, Components: 4, Stride: 16}}
		}},
		{"foreign on device", func(c *Config) {
			c.Arrays = []ArraySpec{{Foreign: true, OnDevice: true}}
		}},
		{"affine foreign", func(c *Config) {
			c.Arrays = []ArraySpec{{Layout: LayoutAffine, Foreign: true}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.modify(&cfg)
			for i := range cfg.Arrays {
				cfg.Arrays[i].ApplyDefaults(i)
			}
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Errorf("Defaults().Validate() = %v", err)
	}
}

func TestUnifiedOverride(t *testing.T) {
	off := false
	tests := []struct {
		name     string
		override *bool
		dev      arraybridge.Device
		want     bool
	}{
		{"host default", nil, device.NewHost(), true},
		{"discrete default", nil, device.NewDiscrete(), false},
		{"override", &off, device.NewHost(), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.UnifiedMemory = tc.override
			if got := cfg.Unified(tc.dev); got != tc.want {
				t.Errorf("Unified() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCells(t *testing.T) {
	tests := []struct {
		name  string
		spec  ArraySpec
		limit int
		want  int
		ok    bool
	}{
		{"plain", ArraySpec{Tuples: 10, Components: 3, Stride: 1}, 100, 30, true},
		{"strided", ArraySpec{Tuples: 10, Components: 2, Stride: 4}, 100, 80, true},
		{"over limit", ArraySpec{Tuples: 10, Components: 2, Stride: 8}, 100, 0, false},
		{"tuples alone", ArraySpec{Tuples: 101, Components: 1, Stride: 1}, 100, 0, false},
		{"overflow", ArraySpec{Tuples: 1 << 40, Components: 1 << 20, Stride: 1 << 10}, MaxCells, 0, false},
		{"unset factors", ArraySpec{Tuples: 7}, 100, 7, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.spec.Cells(tc.limit)
			if got != tc.want || ok != tc.ok {
				t.Errorf("Cells(%d) = %d, %v, want %d, %v", tc.limit, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestValidateHugeStrideKind(t *testing.T) {
	a := ArraySpec{Name: "wide", Type: "f32", Layout: LayoutSOA, Tuples: 1 << 25, Components: 4, Stride: 16}
	if err := a.Validate(); !errors.IsKind(err, errors.KindAllocationTooLarge) {
		t.Errorf("Validate() = %v, want allocation_too_large", err)
	}
	a.Stride = 1<<61 + 1
	if err := a.Validate(); !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("Validate() = %v, want invalid_input", err)
	}
}
