package coordination

// CycleDetector finds circular hand-off chains in a coordination graph
// using Tarjan's strongly-connected-components algorithm. All traversal
// state lives in a per-call context, so a single detector instance is safe
// to reuse across independent graphs and across concurrent callers.
type CycleDetector struct{}

// NewCycleDetector returns a cycle detector.
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{}
}

// tarjanContext holds the traversal state for one DetectCycles call.
type tarjanContext struct {
	graph   *Graph
	index   int
	indices map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	sccs    [][]string
}

// DetectCycles returns every cycle in the graph: each strongly-connected
// component of size greater than one, plus any single agent with a
// self-referencing edge. Runs in O(V+E).
func (d *CycleDetector) DetectCycles(graph *Graph) []Cycle {
	ctx := &tarjanContext{
		graph:   graph,
		indices: make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}

	for _, agent := range graph.Agents() {
		if _, seen := ctx.indices[agent]; !seen {
			ctx.strongConnect(agent)
		}
	}

	var cycles []Cycle
	for _, scc := range ctx.sccs {
		switch {
		case len(scc) == 1:
			if graph.HasEdge(scc[0], scc[0]) {
				cycles = append(cycles, NewCycle(scc, CycleSelf))
			}
		case len(scc) == 2:
			cycles = append(cycles, NewCycle(scc, CycleDirect))
		default:
			cycles = append(cycles, NewCycle(scc, CycleTransitive))
		}
	}
	return cycles
}

// HasCycles reports whether the graph contains any cycle.
func (d *CycleDetector) HasCycles(graph *Graph) bool {
	return len(d.DetectCycles(graph)) > 0
}

// strongConnect runs Tarjan's DFS iteratively with an explicit frame stack
// so deep hand-off chains cannot overflow the goroutine stack.
func (c *tarjanContext) strongConnect(root string) {
	type frame struct {
		agent string
		edge  int
	}

	c.visit(root)
	frames := []frame{{agent: root}}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		targets := c.graph.Targets(f.agent)

		if f.edge < len(targets) {
			next := targets[f.edge]
			f.edge++
			if _, seen := c.indices[next]; !seen {
				c.visit(next)
				frames = append(frames, frame{agent: next})
			} else if c.onStack[next] {
				if c.indices[next] < c.lowlink[f.agent] {
					c.lowlink[f.agent] = c.indices[next]
				}
			}
			continue
		}

		// All edges of f.agent explored: pop the frame, propagate its
		// lowlink to the parent, and emit an SCC if f.agent is a root.
		agent := f.agent
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := frames[len(frames)-1].agent
			if c.lowlink[agent] < c.lowlink[parent] {
				c.lowlink[parent] = c.lowlink[agent]
			}
		}

		if c.lowlink[agent] == c.indices[agent] {
			var scc []string
			for {
				top := c.stack[len(c.stack)-1]
				c.stack = c.stack[:len(c.stack)-1]
				c.onStack[top] = false
				scc = append(scc, top)
				if top == agent {
					break
				}
			}
			c.sccs = append(c.sccs, scc)
		}
	}
}

// visit assigns the next discovery index to an agent and pushes it onto the
// active-path stack.
func (c *tarjanContext) visit(agent string) {
	c.indices[agent] = c.index
	c.lowlink[agent] = c.index
	c.index++
	c.stack = append(c.stack, agent)
	c.onStack[agent] = true
}

// CyclePaths reconstructs concrete hand-off paths that realize a cycle.
// A self cycle yields the trivial loop [agent, agent]. For larger cycles the
// search walks edges restricted to the cycle's members, looking for paths
// from the cycle's first agent back to itself. If no explicit path exists
// (degenerate graphs), the member list closed with its own head is returned
// as a fallback.
func (d *CycleDetector) CyclePaths(cycle Cycle, graph *Graph) [][]string {
	if len(cycle.Agents) == 0 {
		return nil
	}

	if cycle.Type == CycleSelf {
		agent := cycle.Agents[0]
		return [][]string{{agent, agent}}
	}

	members := make(map[string]bool, len(cycle.Agents))
	for _, a := range cycle.Agents {
		members[a] = true
	}

	head := cycle.Agents[0]
	var paths [][]string
	var walk func(current string, path []string, visited map[string]bool)
	walk = func(current string, path []string, visited map[string]bool) {
		for _, next := range graph.Targets(current) {
			if next == head && len(path) > 1 {
				closed := make([]string, len(path)+1)
				copy(closed, path)
				closed[len(path)] = head
				paths = append(paths, closed)
				continue
			}
			if !members[next] || visited[next] {
				continue
			}
			visited[next] = true
			walk(next, append(path, next), visited)
			delete(visited, next)
		}
	}
	walk(head, []string{head}, map[string]bool{head: true})

	if len(paths) == 0 {
		fallback := make([]string, len(cycle.Agents)+1)
		copy(fallback, cycle.Agents)
		fallback[len(cycle.Agents)] = head
		paths = append(paths, fallback)
	}
	return paths
}
