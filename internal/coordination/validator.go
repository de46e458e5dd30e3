package coordination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jander99/claude-config/internal/logging"
)

// coordinationVerbs and coordinationPreps drive the free-text edge
// heuristic: a verb followed by a preposition followed by a known agent
// name yields an edge. This is a best-effort token match, not a grammar;
// anything it cannot parse is silently ignored. If stricter semantics are
// ever needed the source format should grow an explicit structured field
// rather than this heuristic growing into a parser.
var (
	coordinationVerbs = map[string]bool{
		"coordinates": true,
		"handoff":     true,
		"delegates":   true,
	}
	coordinationPreps = map[string]bool{
		"with": true,
		"to":   true,
	}
)

// traitImpliedEdges maps coordination trait names to the well-known agent
// each implies a hand-off to. The edge is added only when that agent is
// actually defined.
var traitImpliedEdges = map[string]string{
	TraitQATestingHandoff:     "qa-engineer",
	TraitDocumentationHandoff: "technical-writer",
	TraitVersionControlCoord:  "git-helper",
}

// alwaysEntryPoints are agents treated as entry points regardless of
// incoming edges or file patterns.
var alwaysEntryPoints = map[string]bool{
	"git-helper":       true,
	"technical-writer": true,
}

// Validator orchestrates a full coordination validation run: it builds the
// graph from raw agent records, derives metadata and entry points, runs
// cycle detection and the consistency checks, and folds everything into a
// single Report.
type Validator struct {
	detector    *CycleDetector
	consistency *ConsistencyValidator
	log         *logging.Logger
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithLogger attaches a structured logger to the validator.
func WithLogger(log *logging.Logger) ValidatorOption {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// NewValidator returns a coordination validator.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		detector:    NewCycleDetector(),
		consistency: NewConsistencyValidator(),
		log:         logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// BuildCoordinationGraph derives each agent's outgoing edges from two
// sources: free-text scanning of its custom coordination descriptions, and
// the fixed trait-implied edge mapping. Duplicate targets are dropped,
// keeping first-seen order.
func (v *Validator) BuildCoordinationGraph(records []AgentRecord) *Graph {
	known := make(map[string]bool, len(records))
	for _, r := range records {
		known[r.Name] = true
	}

	graph := NewGraph()
	for _, r := range records {
		graph.Add(r.Name)

		for _, description := range orderedValues(r.CustomCoordination) {
			for _, target := range extractCoordinationTargets(description, known) {
				graph.Add(r.Name, target)
			}
		}

		for _, traits := range orderedValuesSlice(r.Imports) {
			for _, trait := range traits {
				if target, ok := traitImpliedEdges[trait]; ok && known[target] {
					graph.Add(r.Name, target)
				}
			}
		}
	}
	return graph
}

// extractCoordinationTargets scans a free-text description for the pattern
// <verb> <prep> <agent-name> and returns the matched agent names in order.
func extractCoordinationTargets(description string, known map[string]bool) []string {
	tokens := tokenize(description)

	var targets []string
	for i := 0; i+2 < len(tokens); i++ {
		if coordinationVerbs[tokens[i]] && coordinationPreps[tokens[i+1]] && known[tokens[i+2]] {
			targets = append(targets, tokens[i+2])
		}
	}
	return targets
}

// tokenize lowercases the text and splits it on anything that is not a
// letter, digit, or hyphen, so hyphenated agent names survive intact.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return false
		}
		return true
	})
}

// orderedValues returns a string map's values sorted by key, for
// deterministic graph construction.
func orderedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}

// orderedValuesSlice is orderedValues for map[string][]string.
func orderedValuesSlice(m map[string][]string) [][]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([][]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}

// ExtractAgentMetadata projects records into the per-agent metadata shape
// the consistency validator and optimizer consume.
func (v *Validator) ExtractAgentMetadata(records []AgentRecord) map[string]AgentMetadata {
	metadata := make(map[string]AgentMetadata, len(records))
	for _, r := range records {
		metadata[r.Name] = AgentMetadata{
			Model:              r.Model,
			Imports:            r.Imports,
			CustomCoordination: r.CustomCoordination,
			FilePatterns:       r.FilePatterns,
		}
	}
	return metadata
}

// ExtractAgentTraits flattens every imported trait per agent, across all
// categories.
func (v *Validator) ExtractAgentTraits(records []AgentRecord) map[string][]string {
	traits := make(map[string][]string, len(records))
	for _, r := range records {
		traits[r.Name] = flattenTraits(r.Imports)
	}
	return traits
}

// FindEntryPoints determines the entry points for a set of records: agents
// that declare file patterns, agents with no incoming coordination edges
// (when a graph is supplied), and agents on the fixed always-available
// list. Recomputed on every call; entry points must never be cached across
// graph versions.
func (v *Validator) FindEntryPoints(records []AgentRecord, graph *Graph) []string {
	var inDegrees map[string]int
	if graph != nil {
		inDegrees = graph.InDegrees()
	}

	var entryPoints []string
	seen := make(map[string]bool)
	for _, r := range records {
		isEntry := len(r.FilePatterns) > 0 || alwaysEntryPoints[r.Name]
		if !isEntry && inDegrees != nil {
			degree, ok := inDegrees[r.Name]
			isEntry = ok && degree == 0
		}
		if isEntry && !seen[r.Name] {
			seen[r.Name] = true
			entryPoints = append(entryPoints, r.Name)
		}
	}
	return entryPoints
}

// ValidateCoordination runs the full pipeline over a set of agent records
// and assembles a Report. It never panics out: any unexpected failure is
// recovered into a single report-level error with IsValid=false.
func (v *Validator) ValidateCoordination(records []AgentRecord) (report *Report) {
	report = &Report{IsValid: true}
	defer func() {
		if r := recover(); r != nil {
			v.log.Error("coordination validation panicked", "panic", fmt.Sprint(r))
			report.IsValid = false
			report.Errors = append(report.Errors, fmt.Sprintf("coordination validation failed unexpectedly: %v", r))
		}
	}()

	graph := v.BuildCoordinationGraph(records)
	metadata := v.ExtractAgentMetadata(records)
	traits := v.ExtractAgentTraits(records)
	entryPoints := v.FindEntryPoints(records, graph)

	defined := make(map[string]bool, len(records))
	for _, r := range records {
		defined[r.Name] = true
	}

	v.log.Debug("coordination graph built",
		"agents", graph.Len(), "entry_points", len(entryPoints))

	report.Cycles = v.detector.DetectCycles(graph)
	for _, cycle := range report.Cycles {
		report.IsValid = false
		report.Errors = append(report.Errors, cycle.String())
	}

	report.Issues = v.consistency.ValidateAll(graph, ValidateAllInput{
		Metadata:    metadata,
		AgentTraits: traits,
		Defined:     defined,
		EntryPoints: entryPoints,
	})
	for _, issue := range report.Issues {
		switch issue.Severity {
		case SeverityError:
			report.IsValid = false
			report.Errors = append(report.Errors, issue.Description)
		case SeverityWarning:
			report.Warnings = append(report.Warnings, issue.Description)
		default:
			report.Info = append(report.Info, issue.Description)
		}
	}

	v.log.Info("coordination validation complete",
		"valid", report.IsValid,
		"cycles", len(report.Cycles),
		"errors", len(report.Errors),
		"warnings", len(report.Warnings))
	return report
}
