package compose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jander99/claude-config/internal/coordination"
	"github.com/jander99/claude-config/internal/persona"
)

func testLibrary(t *testing.T) *persona.Library {
	t.Helper()
	dir := t.TempDir()
	trait := `name: qa-testing-handoff
category: coordination
description: Hand work to QA before merging.
sections:
  - title: Protocol
    body: Open a QA ticket.
`
	if err := os.WriteFile(filepath.Join(dir, "qa.yaml"), []byte(trait), 0644); err != nil {
		t.Fatalf("failed to write trait: %v", err)
	}
	lib, err := persona.LoadLibrary(dir)
	if err != nil {
		t.Fatalf("LoadLibrary returned error: %v", err)
	}
	return lib
}

func testDefinition() *persona.Definition {
	return &persona.Definition{
		Name:        "backend-developer",
		Description: "Implements server-side features.",
		Model:       "sonnet",
		Imports: map[string][]string{
			"coordination": {"qa-testing-handoff"},
		},
		ProactiveActivation: persona.ProactiveActivation{
			FilePatterns: []string{"**/*.go"},
		},
		Sections: []persona.Section{
			{Title: "Responsibilities", Body: "Build backend services."},
		},
	}
}

func TestRenderAgent(t *testing.T) {
	def := testDefinition()
	lib := testLibrary(t)

	graph := coordination.NewGraph()
	graph.Add("backend-developer", "qa-engineer")
	graph.Add("qa-engineer")

	doc, err := RenderAgent(def, lib, graph)
	if err != nil {
		t.Fatalf("RenderAgent returned error: %v", err)
	}

	for _, want := range []string{
		"# backend-developer",
		"Implements server-side features.",
		"**Model tier:** sonnet",
		"`**/*.go`",
		"- qa-engineer",
		"## qa-testing-handoff (coordination)",
		"### Protocol",
		"## Responsibilities",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Rendered agent missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderAgent_UnknownTraitFails(t *testing.T) {
	def := testDefinition()
	def.Imports = map[string][]string{"tools": {"ghost"}}

	if _, err := RenderAgent(def, testLibrary(t), nil); err == nil {
		t.Error("Expected error for unresolvable trait import")
	}
}

func TestRenderMaster(t *testing.T) {
	def := testDefinition()

	graph := coordination.NewGraph()
	graph.Add("backend-developer", "qa-engineer")
	graph.Add("qa-engineer")

	report := &coordination.Report{IsValid: true}
	result := coordination.NewOptimizer().Optimize(graph, nil, nil)

	doc, err := RenderMaster([]*persona.Definition{def}, graph, report, result, []string{"backend-developer"})
	if err != nil {
		t.Fatalf("RenderMaster returned error: %v", err)
	}

	for _, want := range []string{
		"# CLAUDE.md",
		"| backend-developer | sonnet | 1 |",
		"- backend-developer",
		"coordination graph is valid",
		"```mermaid",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Master document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderAndWriteFiles(t *testing.T) {
	def := testDefinition()
	lib := testLibrary(t)

	graph := coordination.NewGraph()
	graph.Add("backend-developer")

	report := &coordination.Report{IsValid: true}
	out, err := Render([]*persona.Definition{def}, lib, graph, report, nil, nil)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	dir := t.TempDir()
	if err := WriteFiles(dir, out); err != nil {
		t.Fatalf("WriteFiles returned error: %v", err)
	}

	agentPath := filepath.Join(dir, "agents", "backend-developer.md")
	if _, err := os.Stat(agentPath); err != nil {
		t.Errorf("Expected agent file at %s: %v", agentPath, err)
	}
	masterPath := filepath.Join(dir, "CLAUDE.md")
	data, err := os.ReadFile(masterPath)
	if err != nil {
		t.Fatalf("Expected CLAUDE.md at %s: %v", masterPath, err)
	}
	if !strings.Contains(string(data), "# CLAUDE.md") {
		t.Error("CLAUDE.md content missing heading")
	}
}
