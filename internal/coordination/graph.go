package coordination

// Graph is a directed graph of agent hand-offs. Keys are agent names and
// edges point at the agents they may hand work off to. Iteration over agents
// follows insertion order so repeated runs over the same input produce the
// same output.
//
// The zero value is not usable; create graphs with NewGraph.
type Graph struct {
	order []string
	edges map[string][]string
}

// NewGraph returns an empty coordination graph.
func NewGraph() *Graph {
	return &Graph{
		edges: make(map[string][]string),
	}
}

// Add registers an agent with its outgoing hand-off targets. Duplicate
// targets are dropped, keeping the first occurrence. Adding an agent that
// already exists appends any new targets to its edge list.
func (g *Graph) Add(agent string, targets ...string) {
	if _, ok := g.edges[agent]; !ok {
		g.order = append(g.order, agent)
		g.edges[agent] = nil
	}

	seen := make(map[string]bool, len(g.edges[agent]))
	for _, t := range g.edges[agent] {
		seen[t] = true
	}
	for _, t := range targets {
		if seen[t] {
			continue
		}
		seen[t] = true
		g.edges[agent] = append(g.edges[agent], t)
	}
}

// Agents returns the agent names in insertion order.
func (g *Graph) Agents() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Targets returns the outgoing edge list for an agent, or nil if the agent
// has no entry. The returned slice must not be modified.
func (g *Graph) Targets(agent string) []string {
	return g.edges[agent]
}

// Has reports whether the agent exists as a graph key.
func (g *Graph) Has(agent string) bool {
	_, ok := g.edges[agent]
	return ok
}

// HasEdge reports whether a direct edge from source to target exists.
func (g *Graph) HasEdge(source, target string) bool {
	for _, t := range g.edges[source] {
		if t == target {
			return true
		}
	}
	return false
}

// Len returns the number of agents in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// InDegrees returns the number of incoming edges per agent. Agents that
// appear only as targets are included with their counts; agents with no
// incoming edges are included with zero.
func (g *Graph) InDegrees() map[string]int {
	degrees := make(map[string]int, len(g.order))
	for _, agent := range g.order {
		if _, ok := degrees[agent]; !ok {
			degrees[agent] = 0
		}
		for _, target := range g.edges[agent] {
			degrees[target]++
		}
	}
	return degrees
}
