package persona

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jander99/claude-config/internal/coordination"
)

// ErrDuplicateAgent indicates two persona files declare the same agent name.
var ErrDuplicateAgent = errors.New("duplicate agent name")

// Load parses a single persona YAML file. The model tier defaults to sonnet
// when omitted and is validated against the closed tier set.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse persona YAML %s: %w", path, err)
	}

	if def.Model == "" {
		def.Model = string(coordination.ModelSonnet)
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &def, nil
}

// LoadDir loads every *.yaml and *.yml persona file in a directory,
// non-recursively, in lexical order.
func LoadDir(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var defs []*Definition
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		def, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadAll loads personas from multiple directories, skipping directories
// that do not exist and rejecting duplicate agent names across the set.
func LoadAll(dirs []string) ([]*Definition, error) {
	var defs []*Definition
	seen := make(map[string]string)

	for _, dir := range dirs {
		loaded, err := LoadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, def := range loaded {
			if prev, ok := seen[def.Name]; ok {
				return nil, fmt.Errorf("%w: %q defined in both %s and %s", ErrDuplicateAgent, def.Name, prev, dir)
			}
			seen[def.Name] = dir
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// isYAML reports whether a file name carries a YAML extension.
func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
