// Package coordination models the agent hand-off graph and validates it.
//
// The graph maps each agent name to the ordered list of agents it may hand
// work off to. It is rebuilt from agent records on every run and never
// persisted. Three components operate on it:
//
//   - CycleDetector finds circular hand-off chains (self-loops, direct
//     two-agent cycles, and longer transitive cycles) using Tarjan's
//     strongly-connected-components algorithm.
//   - ConsistencyValidator checks referential integrity, bidirectional
//     awareness, shared coordination traits, and reachability from entry
//     points.
//   - Optimizer precomputes the transitive closure, per-agent degree
//     statistics, bounded shortest paths, and entry-point path enumerations,
//     and emits advisory suggestions for graph design problems.
//
// Validator ties the pieces together: it builds the graph from raw agent
// records, runs detection and consistency checks, and folds everything into
// a single Report. A report is valid only when the graph has no cycles and
// no error-severity issues.
package coordination
