// Package persona loads agent persona and trait definitions from YAML and
// projects them into the records the coordination and compose layers
// consume.
package persona

import (
	"fmt"

	"github.com/jander99/claude-config/internal/coordination"
)

// Category is the closed set of trait import categories. Free-form category
// strings from YAML are parsed into this enum; anything unrecognized lands
// in CategoryUnknown instead of silently becoming a new category.
type Category string

const (
	CategoryCoordination Category = "coordination"
	CategoryTools        Category = "tools"
	CategorySafety       Category = "safety"
	CategoryEnhancement  Category = "enhancement"
	CategoryUnknown      Category = "unknown"
)

// ParseCategory maps a raw category string onto the closed enum.
func ParseCategory(raw string) Category {
	switch Category(raw) {
	case CategoryCoordination, CategoryTools, CategorySafety, CategoryEnhancement:
		return Category(raw)
	}
	return CategoryUnknown
}

// KnownCategories returns the recognized category names, excluding the
// unknown bucket.
func KnownCategories() []Category {
	return []Category{CategoryCoordination, CategoryTools, CategorySafety, CategoryEnhancement}
}

// Section is a titled block of prompt body text.
type Section struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// ProactiveActivation declares when an agent should activate on its own.
type ProactiveActivation struct {
	// FilePatterns are glob patterns; a non-empty list marks the agent as
	// a coordination entry point.
	FilePatterns []string `yaml:"file_patterns"`
}

// Definition is one agent persona as authored in YAML.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Model is the tier the agent runs on: haiku, sonnet, or opus.
	// Defaults to sonnet when omitted.
	Model string `yaml:"model"`

	// Imports maps category names to trait identifiers pulled in from the
	// trait library.
	Imports map[string][]string `yaml:"imports"`

	// CustomCoordination maps arbitrary keys to free-text descriptions of
	// hand-off relationships. The coordination layer scans these for
	// references to other agents.
	CustomCoordination map[string]string `yaml:"custom_coordination"`

	ProactiveActivation ProactiveActivation `yaml:"proactive_activation"`

	// Sections are the persona's own prompt body blocks, rendered after
	// any imported trait sections.
	Sections []Section `yaml:"sections"`
}

// Trait is a reusable prompt fragment agents import by name.
type Trait struct {
	Name        string    `yaml:"name"`
	Category    string    `yaml:"category"`
	Description string    `yaml:"description"`
	Sections    []Section `yaml:"sections"`
}

// Record projects the definition into the shape the coordination layer
// consumes.
func (d *Definition) Record() coordination.AgentRecord {
	return coordination.AgentRecord{
		Name:               d.Name,
		Model:              d.Model,
		Imports:            d.Imports,
		CustomCoordination: d.CustomCoordination,
		FilePatterns:       d.ProactiveActivation.FilePatterns,
	}
}

// Records projects a slice of definitions into coordination records,
// preserving order.
func Records(defs []*Definition) []coordination.AgentRecord {
	records := make([]coordination.AgentRecord, 0, len(defs))
	for _, d := range defs {
		records = append(records, d.Record())
	}
	return records
}

// validate checks a freshly parsed definition for structural problems.
func (d *Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("persona has no name")
	}
	valid := false
	for _, tier := range coordination.ValidModelTiers() {
		if d.Model == tier {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("persona %q has invalid model tier %q (valid: haiku, sonnet, opus)", d.Name, d.Model)
	}
	return nil
}
