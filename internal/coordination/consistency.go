package coordination

import "fmt"

// ConsistencyValidator runs the structural and heuristic checks over a
// coordination graph. It holds no cross-call state and is safe for
// concurrent use.
type ConsistencyValidator struct{}

// NewConsistencyValidator returns a consistency validator.
func NewConsistencyValidator() *ConsistencyValidator {
	return &ConsistencyValidator{}
}

// ValidateAgentExistence emits an error-severity missing_agent issue for
// every graph key and every edge target that is not a defined agent. This
// check is foundational: the remaining checks are meaningless over
// undefined agents.
func (v *ConsistencyValidator) ValidateAgentExistence(graph *Graph, defined map[string]bool) []Issue {
	var issues []Issue
	for _, source := range graph.Agents() {
		if !defined[source] {
			issues = append(issues, Issue{
				Type:        IssueMissingAgent,
				Severity:    SeverityError,
				Agents:      []string{source},
				Description: fmt.Sprintf("agent %q appears in the coordination graph but is not defined", source),
				Suggestion:  fmt.Sprintf("define agent %q or remove its coordination entries", source),
			})
		}
		for _, target := range graph.Targets(source) {
			if !defined[target] {
				issues = append(issues, Issue{
					Type:        IssueMissingAgent,
					Severity:    SeverityError,
					Agents:      []string{source, target},
					Description: fmt.Sprintf("agent %q hands off to undefined agent %q", source, target),
					Suggestion:  fmt.Sprintf("define agent %q or remove the hand-off from %q", target, source),
				})
			}
		}
	}
	return issues
}

// ValidateBidirectional emits a warning for every edge A->B where B shows
// no awareness of A. B is considered aware when it has a reciprocal edge
// back to A, or (when metadata is supplied) when it declares any
// coordination-category trait imports or any custom coordination entries.
// The mere presence of either is taken as evidence of awareness; the
// content is not matched against the specific source agent.
func (v *ConsistencyValidator) ValidateBidirectional(graph *Graph, metadata map[string]AgentMetadata) []Issue {
	var issues []Issue
	for _, source := range graph.Agents() {
		for _, target := range graph.Targets(source) {
			if graph.HasEdge(target, source) {
				continue
			}
			if meta, ok := metadata[target]; ok {
				if len(meta.CoordinationImports()) > 0 || len(meta.CustomCoordination) > 0 {
					continue
				}
			}
			issues = append(issues, Issue{
				Type:        IssueBidirectional,
				Severity:    SeverityWarning,
				Agents:      []string{source, target},
				Description: fmt.Sprintf("agent %q hands off to %q, but %q shows no awareness of %q", source, target, target, source),
				Suggestion:  fmt.Sprintf("add a coordination trait import or a reciprocal hand-off to %q", target),
			})
		}
	}
	return issues
}

// ValidateTraitCompatibility emits an info issue for every edge A->B where
// A imports at least one canonical coordination trait and the two agents
// share none of them.
func (v *ConsistencyValidator) ValidateTraitCompatibility(graph *Graph, agentTraits map[string][]string) []Issue {
	canonical := CanonicalCoordinationTraits()

	canonicalOf := func(agent string) map[string]bool {
		traits := make(map[string]bool)
		for _, t := range agentTraits[agent] {
			if canonical[t] {
				traits[t] = true
			}
		}
		return traits
	}

	var issues []Issue
	for _, source := range graph.Agents() {
		sourceTraits := canonicalOf(source)
		if len(sourceTraits) == 0 {
			continue
		}
		for _, target := range graph.Targets(source) {
			shared := false
			for t := range canonicalOf(target) {
				if sourceTraits[t] {
					shared = true
					break
				}
			}
			if !shared {
				issues = append(issues, Issue{
					Type:        IssueTraitCompatibility,
					Severity:    SeverityInfo,
					Agents:      []string{source, target},
					Description: fmt.Sprintf("agents %q and %q share no coordination traits", source, target),
					Suggestion:  "import a shared coordination trait to formalize the hand-off protocol",
				})
			}
		}
	}
	return issues
}

// FindUnreachableAgents checks that every agent is reachable from the entry
// points. A nil entryPoints derives the set as every agent with zero
// incoming edges. An empty entry-point set over a non-empty graph yields a
// single error-severity issue citing every agent; otherwise a breadth-first
// traversal from all entry points emits one warning per unvisited agent.
func (v *ConsistencyValidator) FindUnreachableAgents(graph *Graph, entryPoints []string) []Issue {
	if graph.Len() == 0 {
		return nil
	}

	if entryPoints == nil {
		for agent, degree := range graph.InDegrees() {
			if degree == 0 {
				entryPoints = append(entryPoints, agent)
			}
		}
	}

	if len(entryPoints) == 0 {
		return []Issue{{
			Type:        IssueUnreachable,
			Severity:    SeverityError,
			Agents:      graph.Agents(),
			Description: "coordination graph is isolated: no entry points exist",
			Suggestion:  "declare file patterns on at least one agent or break a cycle to create an entry point",
		}}
	}

	visited := make(map[string]bool)
	queue := make([]string, 0, len(entryPoints))
	for _, e := range entryPoints {
		if !visited[e] {
			visited[e] = true
			queue = append(queue, e)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range graph.Targets(current) {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var issues []Issue
	for _, agent := range graph.Agents() {
		if !visited[agent] {
			issues = append(issues, Issue{
				Type:        IssueUnreachable,
				Severity:    SeverityWarning,
				Agents:      []string{agent},
				Description: fmt.Sprintf("agent %q is unreachable from any entry point", agent),
				Suggestion:  fmt.Sprintf("add a hand-off path from an entry point to %q or declare file patterns on it", agent),
			})
		}
	}
	return issues
}

// ValidateAllInput bundles the optional inputs for ValidateAll. Nil fields
// disable the checks that depend on them.
type ValidateAllInput struct {
	Metadata    map[string]AgentMetadata
	AgentTraits map[string][]string
	Defined     map[string]bool
	EntryPoints []string
}

// ValidateAll runs the checks in a fixed order: existence, bidirectional,
// trait compatibility, unreachable. The existence check runs only when
// defined agents are supplied, and any missing-agent error short-circuits
// the remaining checks, since graph and trait lookups are meaningless over
// undefined agents. The trait check runs only when traits are supplied.
func (v *ConsistencyValidator) ValidateAll(graph *Graph, input ValidateAllInput) []Issue {
	var issues []Issue

	if input.Defined != nil {
		existence := v.ValidateAgentExistence(graph, input.Defined)
		issues = append(issues, existence...)
		for _, issue := range existence {
			if issue.Type == IssueMissingAgent && issue.IsError() {
				return issues
			}
		}
	}

	issues = append(issues, v.ValidateBidirectional(graph, input.Metadata)...)
	if input.AgentTraits != nil {
		issues = append(issues, v.ValidateTraitCompatibility(graph, input.AgentTraits)...)
	}
	issues = append(issues, v.FindUnreachableAgents(graph, input.EntryPoints)...)
	return issues
}
