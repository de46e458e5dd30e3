package persona

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownTrait indicates a persona imports a trait the library does not
// define.
var ErrUnknownTrait = errors.New("unknown trait")

// Library is the set of traits available for import, keyed by trait name.
type Library struct {
	traits map[string]*Trait
}

// LoadLibrary parses every *.yaml/*.yml trait file in a directory. A
// missing directory yields an empty library, so repositories without shared
// traits still load.
func LoadLibrary(dir string) (*Library, error) {
	lib := &Library{traits: make(map[string]*Trait)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read trait file: %w", err)
		}
		var trait Trait
		if err := yaml.Unmarshal(data, &trait); err != nil {
			return nil, fmt.Errorf("failed to parse trait YAML %s: %w", path, err)
		}
		if trait.Name == "" {
			return nil, fmt.Errorf("trait file %s has no name", path)
		}
		if prev, ok := lib.traits[trait.Name]; ok && prev != nil {
			return nil, fmt.Errorf("trait %q defined more than once", trait.Name)
		}
		lib.traits[trait.Name] = &trait
	}
	return lib, nil
}

// Get returns a trait by name.
func (l *Library) Get(name string) (*Trait, bool) {
	t, ok := l.traits[name]
	return t, ok
}

// Len returns the number of traits in the library.
func (l *Library) Len() int {
	return len(l.traits)
}

// ResolvedImport is one trait import resolved against the library, tagged
// with its parsed category.
type ResolvedImport struct {
	Category Category
	Trait    *Trait
}

// Resolve merges a definition's imports against the library, returning the
// resolved traits in category order (known categories first, unknown
// bucket last), each category's traits in declaration order. A reference
// to an undefined trait is an error.
func (l *Library) Resolve(def *Definition) ([]ResolvedImport, error) {
	rawCategories := make([]string, 0, len(def.Imports))
	for raw := range def.Imports {
		rawCategories = append(rawCategories, raw)
	}
	sort.Strings(rawCategories)

	buckets := make(map[Category][]ResolvedImport)
	for _, rawCategory := range rawCategories {
		category := ParseCategory(rawCategory)
		for _, name := range def.Imports[rawCategory] {
			trait, ok := l.traits[name]
			if !ok {
				return nil, fmt.Errorf("%w: persona %q imports %q", ErrUnknownTrait, def.Name, name)
			}
			buckets[category] = append(buckets[category], ResolvedImport{Category: category, Trait: trait})
		}
	}

	var resolved []ResolvedImport
	for _, category := range KnownCategories() {
		resolved = append(resolved, buckets[category]...)
	}
	resolved = append(resolved, buckets[CategoryUnknown]...)
	return resolved, nil
}
