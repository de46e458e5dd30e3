package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jander99/claude-config/internal/coordination"
	"github.com/jander99/claude-config/internal/persona"
)

// Output is a rendered document set ready to be written to disk.
type Output struct {
	// AgentFiles maps agent name to rendered Markdown.
	AgentFiles map[string]string
	// Master is the rendered CLAUDE.md.
	Master string
}

// Render produces the full document set for a validated persona set.
func Render(defs []*persona.Definition, library *persona.Library, graph *coordination.Graph, report *coordination.Report, result *coordination.OptimizationResult, entryPoints []string) (*Output, error) {
	out := &Output{AgentFiles: make(map[string]string, len(defs))}

	for _, def := range defs {
		doc, err := RenderAgent(def, library, graph)
		if err != nil {
			return nil, err
		}
		out.AgentFiles[def.Name] = doc
	}

	master, err := RenderMaster(defs, graph, report, result, entryPoints)
	if err != nil {
		return nil, err
	}
	out.Master = master
	return out, nil
}

// WriteFiles writes agents/<name>.md for every agent plus CLAUDE.md at the
// root of outDir, creating directories as needed.
func WriteFiles(outDir string, out *Output) error {
	agentsDir := filepath.Join(outDir, "agents")
	if err := os.MkdirAll(agentsDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for name, doc := range out.AgentFiles {
		path := filepath.Join(agentsDir, name+".md")
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			return fmt.Errorf("failed to write agent file %s: %w", path, err)
		}
	}

	masterPath := filepath.Join(outDir, "CLAUDE.md")
	if err := os.WriteFile(masterPath, []byte(out.Master), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", masterPath, err)
	}
	return nil
}
