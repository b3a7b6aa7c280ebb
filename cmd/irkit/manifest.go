package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"irkit/internal/passes"
	"irkit/internal/pipeline"
)

// Manifest is the irkit.toml pipeline description.
type Manifest struct {
	Pipeline ManifestPipeline `toml:"pipeline"`
}

// ManifestPipeline names the passes to run and the modules to run them on.
type ManifestPipeline struct {
	// Passes run in this order on every module.
	Passes []string `toml:"passes"`
	// Modules are snapshot file globs, relative to the manifest.
	Modules []string `toml:"modules"`
	// Jobs bounds parallel module runs; 0 means all CPUs.
	Jobs int `toml:"jobs"`
	// Verify re-checks module invariants after every pass.
	Verify bool `toml:"verify"`
}

// LoadManifest reads and validates an irkit.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(m.Pipeline.Passes) == 0 {
		return nil, fmt.Errorf("%s: pipeline.passes must name at least one pass", path)
	}
	for _, name := range m.Pipeline.Passes {
		if _, ok := passes.ByName(name); !ok {
			return nil, fmt.Errorf("%s: unknown pass %q (known: %s)",
				path, name, strings.Join(passes.Names(), ", "))
		}
	}
	return &m, nil
}

// BuildPipeline resolves the manifest's pass names.
func (m *Manifest) BuildPipeline() []pipeline.Pass {
	out := make([]pipeline.Pass, 0, len(m.Pipeline.Passes))
	for _, name := range m.Pipeline.Passes {
		p, _ := passes.ByName(name)
		out = append(out, p)
	}
	return out
}

// ResolveModules expands the manifest's module globs relative to dir into a
// sorted, deduplicated file list.
func (m *Manifest) ResolveModules(dir string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range m.Pipeline.Modules {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad module pattern %q: %w", pattern, err)
		}
		for _, f := range matches {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
