package coordination

import (
	"strings"
	"testing"
)

func TestValidateAgentExistence_MissingTarget(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"ghost"}},
		[2]any{"q", []string{}},
	)
	defined := map[string]bool{"p": true, "q": true}

	issues := NewConsistencyValidator().ValidateAgentExistence(g, defined)
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	issue := issues[0]
	if issue.Type != IssueMissingAgent {
		t.Errorf("Expected missing_agent, got %s", issue.Type)
	}
	if issue.Severity != SeverityError {
		t.Errorf("Expected error severity, got %s", issue.Severity)
	}
	if issue.Agents[0] != "p" || issue.Agents[1] != "ghost" {
		t.Errorf("Expected agents [p ghost], got %v", issue.Agents)
	}
}

func TestValidateAgentExistence_AllDefined(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q"}},
		[2]any{"q", []string{}},
	)
	defined := map[string]bool{"p": true, "q": true}

	if issues := NewConsistencyValidator().ValidateAgentExistence(g, defined); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
}

func TestValidateBidirectional_UnawareTarget(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q"}},
		[2]any{"q", []string{}},
	)

	issues := NewConsistencyValidator().ValidateBidirectional(g, nil)
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	issue := issues[0]
	if issue.Type != IssueBidirectional || issue.Severity != SeverityWarning {
		t.Errorf("Expected bidirectional warning, got %s/%s", issue.Type, issue.Severity)
	}
	if issue.Agents[0] != "p" || issue.Agents[1] != "q" {
		t.Errorf("Expected agents [p q], got %v", issue.Agents)
	}
}

func TestValidateBidirectional_ReciprocalEdge(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q"}},
		[2]any{"q", []string{"p"}},
	)

	if issues := NewConsistencyValidator().ValidateBidirectional(g, nil); len(issues) != 0 {
		t.Errorf("Reciprocal edges should not produce issues, got %v", issues)
	}
}

func TestValidateBidirectional_AwarenessViaMetadata(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q", "r"}},
		[2]any{"q", []string{}},
		[2]any{"r", []string{}},
	)
	// q imports a coordination trait; r has a custom coordination note.
	// Either suffices as awareness, regardless of what it references.
	metadata := map[string]AgentMetadata{
		"q": {Imports: map[string][]string{"coordination": {TraitStandardSafetyProtocol}}},
		"r": {CustomCoordination: map[string]string{"note": "talks to somebody"}},
	}

	if issues := NewConsistencyValidator().ValidateBidirectional(g, metadata); len(issues) != 0 {
		t.Errorf("Metadata awareness should suppress issues, got %v", issues)
	}
}

func TestValidateTraitCompatibility(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q", "r"}},
		[2]any{"q", []string{}},
		[2]any{"r", []string{}},
	)
	traits := map[string][]string{
		"p": {TraitQATestingHandoff, "unrelated-trait"},
		"q": {TraitQATestingHandoff},
		"r": {"another-trait"},
	}

	issues := NewConsistencyValidator().ValidateTraitCompatibility(g, traits)
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue (p->r), got %d", len(issues))
	}
	issue := issues[0]
	if issue.Type != IssueTraitCompatibility || issue.Severity != SeverityInfo {
		t.Errorf("Expected trait_compatibility info, got %s/%s", issue.Type, issue.Severity)
	}
	if issue.Agents[1] != "r" {
		t.Errorf("Expected issue targeting r, got %v", issue.Agents)
	}
}

func TestValidateTraitCompatibility_NoCanonicalImports(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q"}},
		[2]any{"q", []string{}},
	)
	traits := map[string][]string{"p": {"custom-trait"}, "q": nil}

	if issues := NewConsistencyValidator().ValidateTraitCompatibility(g, traits); len(issues) != 0 {
		t.Errorf("Source without canonical traits should not be flagged, got %v", issues)
	}
}

func TestFindUnreachableAgents_IsolatedGraph(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q"}},
		[2]any{"q", []string{"p"}},
	)

	issues := NewConsistencyValidator().FindUnreachableAgents(g, nil)
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	issue := issues[0]
	if issue.Severity != SeverityError {
		t.Errorf("Expected error severity, got %s", issue.Severity)
	}
	if !strings.Contains(issue.Description, "isolated") {
		t.Errorf("Expected description mentioning 'isolated', got %q", issue.Description)
	}
	if len(issue.Agents) != 2 {
		t.Errorf("Expected issue citing all agents, got %v", issue.Agents)
	}
}

func TestFindUnreachableAgents_BFSCoupling(t *testing.T) {
	// entry -> a -> b; island1 <-> island2 are unreachable.
	g := buildGraph(
		[2]any{"entry", []string{"a"}},
		[2]any{"a", []string{"b"}},
		[2]any{"b", []string{}},
		[2]any{"island1", []string{"island2"}},
		[2]any{"island2", []string{"island1"}},
	)

	issues := NewConsistencyValidator().FindUnreachableAgents(g, nil)

	unreachable := make(map[string]int)
	for _, issue := range issues {
		if issue.Severity != SeverityWarning {
			t.Errorf("Expected warning severity, got %s", issue.Severity)
		}
		for _, a := range issue.Agents {
			unreachable[a]++
		}
	}
	for _, reachable := range []string{"entry", "a", "b"} {
		if unreachable[reachable] != 0 {
			t.Errorf("Reachable agent %q reported unreachable", reachable)
		}
	}
	for _, island := range []string{"island1", "island2"} {
		if unreachable[island] != 1 {
			t.Errorf("Expected %q reported unreachable exactly once, got %d", island, unreachable[island])
		}
	}
}

func TestFindUnreachableAgents_ExplicitEntryPoints(t *testing.T) {
	g := buildGraph(
		[2]any{"a", []string{"b"}},
		[2]any{"b", []string{"a"}},
		[2]any{"c", []string{}},
	)

	issues := NewConsistencyValidator().FindUnreachableAgents(g, []string{"a"})
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	if issues[0].Agents[0] != "c" {
		t.Errorf("Expected c unreachable, got %v", issues[0].Agents)
	}
}

func TestFindUnreachableAgents_EmptyGraph(t *testing.T) {
	if issues := NewConsistencyValidator().FindUnreachableAgents(NewGraph(), nil); len(issues) != 0 {
		t.Errorf("Empty graph should produce no issues, got %v", issues)
	}
}

func TestValidateAll_MissingAgentGating(t *testing.T) {
	// p hands off to an undefined agent and q is part of an isolated
	// cycle; only the missing_agent error may surface.
	g := buildGraph(
		[2]any{"p", []string{"ghost"}},
		[2]any{"q", []string{"p"}},
	)

	issues := NewConsistencyValidator().ValidateAll(g, ValidateAllInput{
		Defined:     map[string]bool{"p": true, "q": true},
		AgentTraits: map[string][]string{"p": {TraitQATestingHandoff}},
	})

	if len(issues) == 0 {
		t.Fatal("Expected at least one issue")
	}
	for _, issue := range issues {
		if issue.Type != IssueMissingAgent {
			t.Errorf("Missing-agent errors must gate check %s", issue.Type)
		}
	}
}

func TestValidateAll_OrderAndCompleteness(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q"}},
		[2]any{"q", []string{}},
		[2]any{"stranded", []string{}},
	)

	issues := NewConsistencyValidator().ValidateAll(g, ValidateAllInput{
		Defined:     map[string]bool{"p": true, "q": true, "stranded": true},
		AgentTraits: map[string][]string{"p": {TraitDocumentationHandoff}},
		EntryPoints: []string{"p"},
	})

	// Expected: bidirectional warning (p->q), trait info (p->q),
	// unreachable warning (stranded). Existence passes.
	var order []IssueType
	for _, issue := range issues {
		order = append(order, issue.Type)
	}
	want := []IssueType{IssueBidirectional, IssueTraitCompatibility, IssueUnreachable}
	if len(order) != len(want) {
		t.Fatalf("Expected issues %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Issue %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestValidateAll_NoTraitsSkipsTraitCheck(t *testing.T) {
	g := buildGraph(
		[2]any{"p", []string{"q"}},
		[2]any{"q", []string{"p"}},
	)

	issues := NewConsistencyValidator().ValidateAll(g, ValidateAllInput{
		Defined:     map[string]bool{"p": true, "q": true},
		EntryPoints: []string{"p"},
	})
	for _, issue := range issues {
		if issue.Type == IssueTraitCompatibility {
			t.Error("Trait check must not run without supplied traits")
		}
	}
}
