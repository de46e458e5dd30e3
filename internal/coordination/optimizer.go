package coordination

import (
	"fmt"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultMaxPathLength bounds BFS shortest-path caching, in edges.
	DefaultMaxPathLength = 5

	// DefaultMaxDepth bounds entry-point path enumeration, in edges.
	DefaultMaxDepth = 5

	// defaultCacheSize is the number of optimization results retained in
	// the advisory last-result cache.
	defaultCacheSize = 8
)

// PathKey identifies an ordered (source, target) agent pair.
type PathKey struct {
	Source string
	Target string
}

// AgentIndexEntry is the precomputed per-agent summary.
type AgentIndexEntry struct {
	InDegree     int      `json:"in_degree"`
	OutDegree    int      `json:"out_degree"`
	IsEntryPoint bool     `json:"is_entry_point"`
	IsTerminal   bool     `json:"is_terminal"`
	Model        string   `json:"model"`
	Traits       []string `json:"traits,omitempty"`
	FilePatterns []string `json:"file_patterns,omitempty"`
}

// OptimizationStats summarizes an optimization run.
type OptimizationStats struct {
	AgentCount      int     `json:"agent_count"`
	EntryPointCount int     `json:"entry_point_count"`
	CachedPathCount int     `json:"cached_path_count"`
	ElapsedMS       int64   `json:"elapsed_ms"`
	AvgOutDegree    float64 `json:"avg_out_degree"`
	MaxReach        int     `json:"max_reach"`
}

// OptimizationResult carries everything Optimize precomputes for a graph.
type OptimizationResult struct {
	// TransitiveClosure maps each agent to every agent reachable from it
	// by a path of length >= 1, excluding the agent itself.
	TransitiveClosure map[string]map[string]bool

	// AgentIndex is the per-agent degree and metadata summary.
	AgentIndex map[string]AgentIndexEntry

	// CommonPaths maps ordered agent pairs to the shortest path between
	// them, present only when a path within the length bound exists.
	CommonPaths map[PathKey][]string

	// EntryPointPaths maps each entry point to every simple path from it,
	// up to the depth bound.
	EntryPointPaths map[string][][]string

	// Suggestions are advisory strings flagging potential design problems.
	Suggestions []string

	// Stats summarizes the run.
	Stats OptimizationStats
}

// Optimizer precomputes reachability, degree, and path data for a
// coordination graph. It holds no cross-call mutable state beyond an
// optional last-result cache, which is advisory only: a cache hit returns
// the identical result a fresh computation would produce for the same
// input fingerprint.
type Optimizer struct {
	maxPathLength int
	maxDepth      int
	cache         *lru.Cache[string, *OptimizationResult]
}

// OptimizerOption configures an Optimizer.
type OptimizerOption func(*Optimizer)

// WithMaxPathLength overrides the BFS shortest-path bound, in edges.
func WithMaxPathLength(n int) OptimizerOption {
	return func(o *Optimizer) {
		if n > 0 {
			o.maxPathLength = n
		}
	}
}

// WithMaxDepth overrides the entry-point enumeration depth bound, in edges.
func WithMaxDepth(n int) OptimizerOption {
	return func(o *Optimizer) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithCacheSize overrides the size of the result cache. Zero disables
// caching entirely.
func WithCacheSize(n int) OptimizerOption {
	return func(o *Optimizer) {
		if n <= 0 {
			o.cache = nil
			return
		}
		cache, err := lru.New[string, *OptimizationResult](n)
		if err == nil {
			o.cache = cache
		}
	}
}

// NewOptimizer returns an optimizer with default bounds and a small
// last-result cache.
func NewOptimizer(opts ...OptimizerOption) *Optimizer {
	o := &Optimizer{
		maxPathLength: DefaultMaxPathLength,
		maxDepth:      DefaultMaxDepth,
	}
	cache, err := lru.New[string, *OptimizationResult](defaultCacheSize)
	if err == nil {
		o.cache = cache
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize runs every precomputation step over the graph and assembles the
// result. When entryPoints is nil, entry points are derived from the
// just-built agent index (zero in-degree); callers needing consistency with
// validator-derived entry points must pass the same list to both.
func (o *Optimizer) Optimize(graph *Graph, metadata map[string]AgentMetadata, entryPoints []string) *OptimizationResult {
	fingerprint := o.fingerprint(graph, metadata, entryPoints)
	if o.cache != nil {
		if cached, ok := o.cache.Get(fingerprint); ok {
			return cached
		}
	}

	start := time.Now()

	index := o.BuildAgentIndex(graph, metadata)
	if entryPoints == nil {
		for _, agent := range graph.Agents() {
			if index[agent].IsEntryPoint {
				entryPoints = append(entryPoints, agent)
			}
		}
	}

	result := &OptimizationResult{
		TransitiveClosure: o.ComputeTransitiveClosure(graph),
		AgentIndex:        index,
		CommonPaths:       o.CacheCommonPaths(graph, o.maxPathLength),
		EntryPointPaths:   o.EntryPointPaths(graph, entryPoints, o.maxDepth),
	}

	totalOut := 0
	for _, entry := range index {
		totalOut += entry.OutDegree
	}
	maxReach := 0
	for _, reach := range result.TransitiveClosure {
		if len(reach) > maxReach {
			maxReach = len(reach)
		}
	}
	avgOut := 0.0
	if graph.Len() > 0 {
		avgOut = float64(totalOut) / float64(graph.Len())
	}

	result.Stats = OptimizationStats{
		AgentCount:      graph.Len(),
		EntryPointCount: len(entryPoints),
		CachedPathCount: len(result.CommonPaths),
		ElapsedMS:       time.Since(start).Milliseconds(),
		AvgOutDegree:    avgOut,
		MaxReach:        maxReach,
	}
	result.Suggestions = o.SuggestOptimizations(graph, result)

	if o.cache != nil {
		o.cache.Add(fingerprint, result)
	}
	return result
}

// ComputeTransitiveClosure returns, for every agent, the set of agents
// reachable from it via Floyd-Warshall. The diagonal is seeded true
// internally but each agent is excluded from its own reach set in the
// output. O(V^3); acceptable for graphs up to a few hundred agents.
func (o *Optimizer) ComputeTransitiveClosure(graph *Graph) map[string]map[string]bool {
	agents := graph.Agents()
	pos := make(map[string]int, len(agents))
	for i, agent := range agents {
		pos[agent] = i
	}

	n := len(agents)
	reach := make([][]bool, n)
	for i := range reach {
		reach[i] = make([]bool, n)
		reach[i][i] = true
	}
	for i, agent := range agents {
		for _, target := range graph.Targets(agent) {
			if j, ok := pos[target]; ok {
				reach[i][j] = true
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !reach[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				if reach[k][j] {
					reach[i][j] = true
				}
			}
		}
	}

	closure := make(map[string]map[string]bool, n)
	for i, agent := range agents {
		set := make(map[string]bool)
		for j, other := range agents {
			if i != j && reach[i][j] {
				set[other] = true
			}
		}
		closure[agent] = set
	}
	return closure
}

// BuildAgentIndex computes per-agent degree counts and flags, passing
// through model tier and file patterns from metadata. Agents without a
// declared model default to sonnet.
func (o *Optimizer) BuildAgentIndex(graph *Graph, metadata map[string]AgentMetadata) map[string]AgentIndexEntry {
	inDegrees := graph.InDegrees()

	index := make(map[string]AgentIndexEntry, graph.Len())
	for _, agent := range graph.Agents() {
		entry := AgentIndexEntry{
			InDegree:  inDegrees[agent],
			OutDegree: len(graph.Targets(agent)),
			Model:     string(ModelSonnet),
		}
		entry.IsEntryPoint = entry.InDegree == 0
		entry.IsTerminal = entry.OutDegree == 0

		if meta, ok := metadata[agent]; ok {
			if meta.Model != "" {
				entry.Model = meta.Model
			}
			entry.FilePatterns = meta.FilePatterns
			entry.Traits = flattenTraits(meta.Imports)
		}
		index[agent] = entry
	}
	return index
}

// flattenTraits collects every imported trait across categories, in stable
// category order.
func flattenTraits(imports map[string][]string) []string {
	if len(imports) == 0 {
		return nil
	}
	categories := make([]string, 0, len(imports))
	for c := range imports {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var traits []string
	seen := make(map[string]bool)
	for _, c := range categories {
		for _, t := range imports[c] {
			if !seen[t] {
				seen[t] = true
				traits = append(traits, t)
			}
		}
	}
	return traits
}

// CacheCommonPaths records the shortest path between every ordered agent
// pair, abandoning any path longer than maxPathLength edges. Pairs with no
// path within the bound are absent from the result.
func (o *Optimizer) CacheCommonPaths(graph *Graph, maxPathLength int) map[PathKey][]string {
	paths := make(map[PathKey][]string)
	for _, source := range graph.Agents() {
		for target, path := range o.shortestPathsFrom(graph, source, maxPathLength) {
			if target != source {
				paths[PathKey{Source: source, Target: target}] = path
			}
		}
	}
	return paths
}

// shortestPathsFrom runs a bounded BFS from source, returning the first
// (shortest) path found to each reachable agent.
func (o *Optimizer) shortestPathsFrom(graph *Graph, source string, maxLen int) map[string][]string {
	found := make(map[string][]string)
	visited := map[string]bool{source: true}
	queue := [][]string{{source}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if len(path)-1 >= maxLen {
			continue
		}
		current := path[len(path)-1]
		for _, next := range graph.Targets(current) {
			if visited[next] {
				continue
			}
			visited[next] = true
			extended := make([]string, len(path)+1)
			copy(extended, path)
			extended[len(path)] = next
			found[next] = extended
			queue = append(queue, extended)
		}
	}
	return found
}

// EntryPointPaths enumerates every simple path (no agent revisited) from
// each entry point, up to maxDepth edges. This is intentionally exhaustive
// enumeration, bounded by depth to avoid combinatorial blowup on dense
// graphs.
func (o *Optimizer) EntryPointPaths(graph *Graph, entryPoints []string, maxDepth int) map[string][][]string {
	result := make(map[string][][]string, len(entryPoints))
	for _, entry := range entryPoints {
		var paths [][]string
		var walk func(current string, path []string, visited map[string]bool)
		walk = func(current string, path []string, visited map[string]bool) {
			if len(path)-1 >= maxDepth {
				return
			}
			for _, next := range graph.Targets(current) {
				if visited[next] {
					continue
				}
				extended := make([]string, len(path)+1)
				copy(extended, path)
				extended[len(path)] = next
				paths = append(paths, extended)

				visited[next] = true
				walk(next, extended, visited)
				delete(visited, next)
			}
		}
		walk(entry, []string{entry}, map[string]bool{entry: true})
		result[entry] = paths
	}
	return result
}

// SuggestOptimizations emits advisory strings flagging potential graph
// design problems: bottleneck agents, overly long hand-off chains, dead-end
// entry points, and tier imbalance. Advisory only; never affects validity.
func (o *Optimizer) SuggestOptimizations(graph *Graph, result *OptimizationResult) []string {
	var suggestions []string

	bottleneck, maxIn := "", 0
	for _, agent := range graph.Agents() {
		if entry, ok := result.AgentIndex[agent]; ok && entry.InDegree > maxIn {
			bottleneck, maxIn = agent, entry.InDegree
		}
	}
	if maxIn > 5 {
		suggestions = append(suggestions, fmt.Sprintf(
			"agent %q receives hand-offs from %d agents and may be a bottleneck; consider splitting its responsibilities", bottleneck, maxIn))
	}

	var longest []string
	for _, path := range result.CommonPaths {
		if len(path) > len(longest) {
			longest = path
		}
	}
	if hops := len(longest) - 1; hops > 4 {
		suggestions = append(suggestions, fmt.Sprintf(
			"hand-off chain %s spans %d hops; consider a direct coordination edge", strings.Join(longest, " -> "), hops))
	}

	for agent, entry := range result.AgentIndex {
		if entry.IsEntryPoint && entry.OutDegree == 0 {
			suggestions = append(suggestions, fmt.Sprintf(
				"entry point %q has no outgoing hand-offs; work entering there cannot be delegated", agent))
		}
	}

	if graph.Len() > 0 {
		opusCount := 0
		for _, entry := range result.AgentIndex {
			if entry.Model == string(ModelOpus) {
				opusCount++
			}
		}
		if float64(opusCount)/float64(graph.Len()) > 0.3 {
			suggestions = append(suggestions, fmt.Sprintf(
				"%d of %d agents run on the opus tier; consider demoting low-traffic agents to a cheaper tier", opusCount, graph.Len()))
		}
	}

	sort.Strings(suggestions)
	return suggestions
}

// fingerprint builds a stable identity string for a (graph, metadata,
// entry-point) triple, used as the result-cache key.
func (o *Optimizer) fingerprint(graph *Graph, metadata map[string]AgentMetadata, entryPoints []string) string {
	var sb strings.Builder
	for _, agent := range graph.Agents() {
		sb.WriteString(agent)
		sb.WriteByte('>')
		sb.WriteString(strings.Join(graph.Targets(agent), ","))
		if meta, ok := metadata[agent]; ok {
			sb.WriteByte('@')
			sb.WriteString(meta.Model)
			fmt.Fprintf(&sb, "/%d", len(meta.FilePatterns))
		}
		sb.WriteByte(';')
	}
	sb.WriteByte('|')
	sb.WriteString(strings.Join(entryPoints, ","))
	fmt.Fprintf(&sb, "|%d/%d", o.maxPathLength, o.maxDepth)
	return sb.String()
}
