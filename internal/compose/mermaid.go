package compose

import (
	"fmt"
	"strings"

	"github.com/jander99/claude-config/internal/coordination"
)

// MermaidDiagram renders the coordination graph as a fenced Mermaid
// `graph TD` block. Agents without edges still appear as lone nodes.
func MermaidDiagram(graph *coordination.Graph) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\ngraph TD\n")
	for _, agent := range graph.Agents() {
		targets := graph.Targets(agent)
		if len(targets) == 0 {
			fmt.Fprintf(&sb, "    %s\n", nodeID(agent))
			continue
		}
		for _, target := range targets {
			fmt.Fprintf(&sb, "    %s --> %s\n", nodeID(agent), nodeID(target))
		}
	}
	sb.WriteString("```")
	return sb.String()
}

// nodeID makes an agent name safe as a Mermaid node identifier while
// keeping it readable as the label.
func nodeID(agent string) string {
	id := strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(agent)
	if id == agent {
		return id
	}
	return fmt.Sprintf("%s[%q]", id, agent)
}
