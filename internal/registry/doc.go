// Package registry declares the canonical set of resource nodes a pipeline
// can materialize and, for each optional node, the presence predicate that
// decides whether it exists.
//
// Predicates are pure functions of the configuration's feature toggles
// only. A node's presence never depends on another node's output, and at
// most on another node's presence indirectly through the same toggles (the
// DLQ-depth alarm requires both enable_alarms and enable_dlq). That keeps
// presence decisions side-effect-free and testable as a truth table over
// the five toggles.
package registry
