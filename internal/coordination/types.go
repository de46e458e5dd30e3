package coordination

import (
	"fmt"
	"sort"
	"strings"
)

// Severity represents how critical a consistency issue is.
type Severity string

const (
	// SeverityError indicates a blocking issue that invalidates the graph.
	SeverityError Severity = "error"

	// SeverityWarning indicates a potential problem that should be reviewed
	// but does not block generation.
	SeverityWarning Severity = "warning"

	// SeverityInfo indicates informational feedback.
	SeverityInfo Severity = "info"
)

// String returns the severity as its wire representation.
func (s Severity) String() string {
	return string(s)
}

// IssueType classifies a consistency issue.
type IssueType string

const (
	// IssueMissingAgent is an edge or key referencing an undefined agent.
	IssueMissingAgent IssueType = "missing_agent"

	// IssueBidirectional is a hand-off whose target shows no awareness of
	// the source agent.
	IssueBidirectional IssueType = "bidirectional"

	// IssueTraitCompatibility is a hand-off between agents sharing none of
	// the canonical coordination traits.
	IssueTraitCompatibility IssueType = "trait_compatibility"

	// IssueUnreachable is an agent that no entry point can reach.
	IssueUnreachable IssueType = "unreachable"
)

// Issue is a single consistency finding. Issues are immutable once produced
// and are collected into a Report.
type Issue struct {
	Type        IssueType `json:"issue_type"`
	Severity    Severity  `json:"severity"`
	Agents      []string  `json:"agents"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion,omitempty"`
}

// IsError reports whether the issue blocks validity.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// CycleType classifies a coordination cycle by its shape.
type CycleType string

const (
	// CycleSelf is a single agent handing off to itself.
	CycleSelf CycleType = "self"

	// CycleDirect is a two-agent mutual hand-off.
	CycleDirect CycleType = "direct"

	// CycleTransitive is a circular chain of three or more agents.
	CycleTransitive CycleType = "transitive"
)

// Cycle is a set of agents forming a circular hand-off chain. Identity is
// defined over the member set: two cycles with the same agents in different
// rotation are the same cycle.
type Cycle struct {
	Agents []string  `json:"agents"`
	Type   CycleType `json:"cycle_type"`
}

// NewCycle builds a cycle with its members in canonical (sorted) order.
func NewCycle(agents []string, cycleType CycleType) Cycle {
	members := make([]string, len(agents))
	copy(members, agents)
	sort.Strings(members)
	return Cycle{Agents: members, Type: cycleType}
}

// Key returns a canonical identity string for the cycle, usable as a map
// key. Cycles with the same members and type share a key regardless of the
// order the members were discovered in.
func (c Cycle) Key() string {
	members := make([]string, len(c.Agents))
	copy(members, c.Agents)
	sort.Strings(members)
	return string(c.Type) + ":" + strings.Join(members, ",")
}

// Equal reports whether two cycles have the same members and type.
func (c Cycle) Equal(other Cycle) bool {
	return c.Key() == other.Key()
}

// String renders the cycle for log and report output.
func (c Cycle) String() string {
	return fmt.Sprintf("%s cycle [%s]", c.Type, strings.Join(c.Agents, " -> "))
}

// ModelTier is the closed set of model tiers an agent may run on.
type ModelTier string

const (
	ModelHaiku  ModelTier = "haiku"
	ModelSonnet ModelTier = "sonnet"
	ModelOpus   ModelTier = "opus"
)

// ValidModelTiers returns the accepted tier names.
func ValidModelTiers() []string {
	return []string{string(ModelHaiku), string(ModelSonnet), string(ModelOpus)}
}

// AgentRecord is the raw per-agent input supplied by the persona loader.
// The coordination package derives everything else from these records.
type AgentRecord struct {
	// Name uniquely identifies the agent.
	Name string

	// Model is the tier the agent runs on ("haiku", "sonnet", "opus").
	Model string

	// Imports maps category names ("coordination", "tools", ...) to the
	// trait identifiers the agent imports from each.
	Imports map[string][]string

	// CustomCoordination maps arbitrary keys to free-text descriptions that
	// may informally reference other agents.
	CustomCoordination map[string]string

	// FilePatterns are the glob patterns that proactively activate the
	// agent. A non-empty list marks the agent as an entry point.
	FilePatterns []string
}

// AgentMetadata is the per-agent projection consumed by the consistency
// validator and the optimizer.
type AgentMetadata struct {
	Model              string
	Imports            map[string][]string
	CustomCoordination map[string]string
	FilePatterns       []string
}

// CoordinationImports returns the trait identifiers the agent imports under
// the coordination category.
func (m AgentMetadata) CoordinationImports() []string {
	return m.Imports["coordination"]
}

// Canonical coordination traits. Hand-offs between agents that share none of
// these are flagged by the trait-compatibility check, and three of them
// imply a graph edge to a well-known counterpart agent.
const (
	TraitQATestingHandoff       = "qa-testing-handoff"
	TraitDocumentationHandoff   = "documentation-handoff"
	TraitVersionControlCoord    = "version-control-coordination"
	TraitStandardSafetyProtocol = "standard-safety-protocols"
)

// CanonicalCoordinationTraits returns the fixed trait set used by the
// trait-compatibility check.
func CanonicalCoordinationTraits() map[string]bool {
	return map[string]bool{
		TraitQATestingHandoff:       true,
		TraitDocumentationHandoff:   true,
		TraitVersionControlCoord:    true,
		TraitStandardSafetyProtocol: true,
	}
}

// Report is the aggregate outcome of a validation run.
type Report struct {
	// IsValid is true when the graph has no cycles and no error-severity
	// issues. Warnings and info findings do not affect validity.
	IsValid bool `json:"is_valid"`

	// Cycles are the circular hand-off chains found by the detector.
	Cycles []Cycle `json:"cycles,omitempty"`

	// Issues are the structured consistency findings.
	Issues []Issue `json:"issues,omitempty"`

	// Errors, Warnings, and Info are human-readable accumulators folded
	// from cycles and issues by severity.
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Info     []string `json:"info,omitempty"`
}

// HasErrors reports whether any error-level findings were recorded.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary renders a short human-readable digest of the report.
func (r *Report) Summary() string {
	var sb strings.Builder
	if r.IsValid {
		sb.WriteString("coordination graph is valid")
	} else {
		sb.WriteString("coordination graph is INVALID")
	}
	fmt.Fprintf(&sb, ": %d cycle(s), %d error(s), %d warning(s), %d info",
		len(r.Cycles), len(r.Errors), len(r.Warnings), len(r.Info))
	return sb.String()
}
