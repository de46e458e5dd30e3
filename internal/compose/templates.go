// Package compose renders agent prompt Markdown files and the master
// CLAUDE.md coordination document from validated persona definitions.
package compose

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/jander99/claude-config/internal/coordination"
	"github.com/jander99/claude-config/internal/persona"
)

// AgentData holds data for rendering one agent prompt file.
type AgentData struct {
	Name         string
	Description  string
	Model        string
	FilePatterns []string
	TraitBlocks  []TraitBlock
	Sections     []persona.Section
	HandsOffTo   []string
}

// TraitBlock is one imported trait ready for rendering.
type TraitBlock struct {
	Category    string
	Name        string
	Description string
	Sections    []persona.Section
}

// MasterData holds data for rendering CLAUDE.md.
type MasterData struct {
	Agents      []RosterEntry
	EntryPoints []string
	Summary     string
	Suggestions []string
	Diagram     string
}

// RosterEntry is one row of the master document's agent table.
type RosterEntry struct {
	Name        string
	Model       string
	Description string
	Reach       int
}

const agentTemplate = `# {{.Name}}

{{.Description}}

**Model tier:** {{.Model}}
{{if .FilePatterns}}
**Activates on:**
{{range .FilePatterns}}- ` + "`{{.}}`" + `
{{end}}{{end}}
{{if .HandsOffTo}}## Coordination

Hands off to:
{{range .HandsOffTo}}- {{.}}
{{end}}{{end}}
{{range .TraitBlocks}}## {{.Name}} ({{.Category}})

{{.Description}}
{{range .Sections}}
### {{.Title}}

{{.Body}}
{{end}}
{{end}}
{{range .Sections}}## {{.Title}}

{{.Body}}

{{end}}`

const masterTemplate = `# CLAUDE.md

Master coordination document. Generated; do not edit by hand.

## Agents

| Agent | Model | Reach | Description |
|-------|-------|-------|-------------|
{{range .Agents}}| {{.Name}} | {{.Model}} | {{.Reach}} | {{.Description}} |
{{end}}
{{if .EntryPoints}}## Entry points

{{range .EntryPoints}}- {{.}}
{{end}}
{{end}}## Validation

{{.Summary}}
{{if .Suggestions}}
## Suggestions

{{range .Suggestions}}- {{.}}
{{end}}{{end}}
## Coordination graph

{{.Diagram}}
`

// RenderAgent renders a single agent prompt Markdown document, merging the
// persona's imported traits (resolved against the library) ahead of its own
// sections.
func RenderAgent(def *persona.Definition, library *persona.Library, graph *coordination.Graph) (string, error) {
	imports, err := library.Resolve(def)
	if err != nil {
		return "", err
	}

	data := AgentData{
		Name:         def.Name,
		Description:  def.Description,
		Model:        def.Model,
		FilePatterns: def.ProactiveActivation.FilePatterns,
		Sections:     def.Sections,
	}
	for _, imp := range imports {
		data.TraitBlocks = append(data.TraitBlocks, TraitBlock{
			Category:    string(imp.Category),
			Name:        imp.Trait.Name,
			Description: imp.Trait.Description,
			Sections:    imp.Trait.Sections,
		})
	}
	if graph != nil {
		data.HandsOffTo = graph.Targets(def.Name)
	}

	tmpl, err := template.New("agent").Parse(agentTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse agent template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render agent %q: %w", def.Name, err)
	}
	return buf.String(), nil
}

// RenderMaster renders CLAUDE.md from the definitions, the validation
// report, and the optimization result.
func RenderMaster(defs []*persona.Definition, graph *coordination.Graph, report *coordination.Report, result *coordination.OptimizationResult, entryPoints []string) (string, error) {
	data := MasterData{
		EntryPoints: entryPoints,
		Summary:     report.Summary(),
		Diagram:     MermaidDiagram(graph),
	}
	if result != nil {
		data.Suggestions = result.Suggestions
	}
	for _, def := range defs {
		entry := RosterEntry{
			Name:        def.Name,
			Model:       def.Model,
			Description: def.Description,
		}
		if result != nil {
			entry.Reach = len(result.TransitiveClosure[def.Name])
		}
		data.Agents = append(data.Agents, entry)
	}

	tmpl, err := template.New("master").Parse(masterTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse master template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render master document: %w", err)
	}
	return buf.String(), nil
}
