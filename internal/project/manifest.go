package project

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"structlens/internal/analyzer"
)

// Manifest holds the settings parsed from structlens.toml.
type Manifest struct {
	Layout LayoutSection  `toml:"layout"`
	Types  map[string]int `toml:"types"`
}

// LayoutSection describes the [layout] table of the manifest.
type LayoutSection struct {
	TargetAlignment int `toml:"target_alignment"`
}

var (
	// ErrBadTargetAlignment indicates an unsupported [layout].target_alignment value.
	ErrBadTargetAlignment = errors.New("target_alignment must be 4 or 8")
	// ErrBadTypeSize indicates a non-positive size in the [types] table.
	ErrBadTypeSize = errors.New("type size must be positive")
)

// LoadManifest parses a structlens.toml file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("layout", "target_alignment") {
		if m.Layout.TargetAlignment != 4 && m.Layout.TargetAlignment != 8 {
			return Manifest{}, fmt.Errorf("%s: %w (got %d)", path, ErrBadTargetAlignment, m.Layout.TargetAlignment)
		}
	}
	for name, size := range m.Types {
		if size <= 0 {
			return Manifest{}, fmt.Errorf("%s: [types].%s: %w (got %d)", path, name, ErrBadTypeSize, size)
		}
	}
	return m, nil
}

// Config merges the manifest over the default analyzer configuration.
// Unset manifest values keep their defaults.
func (m Manifest) Config() analyzer.Config {
	cfg := analyzer.DefaultConfig()
	if m.Layout.TargetAlignment != 0 {
		cfg.TargetAlignment = m.Layout.TargetAlignment
	}
	if len(m.Types) > 0 {
		cfg.CustomTypeSizes = make(map[string]int, len(m.Types))
		for name, size := range m.Types {
			cfg.CustomTypeSizes[name] = size
		}
	}
	return cfg
}

// LoadConfig discovers the nearest manifest above startDir and returns the
// merged analyzer configuration. Without a manifest the defaults are used.
func LoadConfig(startDir string) (analyzer.Config, string, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return analyzer.Config{}, "", err
	}
	if !ok {
		return analyzer.DefaultConfig(), "", nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return analyzer.Config{}, "", err
	}
	return m.Config(), path, nil
}
