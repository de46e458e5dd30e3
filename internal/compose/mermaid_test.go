package compose

import (
	"strings"
	"testing"

	"github.com/jander99/claude-config/internal/coordination"
)

func TestMermaidDiagram(t *testing.T) {
	g := coordination.NewGraph()
	g.Add("backend-developer", "qa-engineer")
	g.Add("qa-engineer")
	g.Add("loner")

	diagram := MermaidDiagram(g)

	if !strings.HasPrefix(diagram, "```mermaid\ngraph TD\n") {
		t.Errorf("Diagram missing fenced header:\n%s", diagram)
	}
	if !strings.Contains(diagram, "backend_developer") || !strings.Contains(diagram, "-->") {
		t.Errorf("Diagram missing edge:\n%s", diagram)
	}
	if !strings.Contains(diagram, "loner") {
		t.Errorf("Edge-less agents must still appear as nodes:\n%s", diagram)
	}
}

func TestNodeID_HyphenatedNamesKeepLabel(t *testing.T) {
	id := nodeID("qa-engineer")
	if !strings.Contains(id, "qa_engineer") || !strings.Contains(id, `"qa-engineer"`) {
		t.Errorf("nodeID(%q) = %q", "qa-engineer", id)
	}

	if got := nodeID("plain"); got != "plain" {
		t.Errorf("nodeID(%q) = %q", "plain", got)
	}
}
