// Package assemble composes the validated configuration, the node
// registry's presence decisions, and the reference resolver's wiring into
// the final resource graph handed to the orchestration engine.
//
// The graph is deterministic: given the same configuration and identity
// context, Build always produces the same nodes, the same attributes, and
// the same apply order, so the engine downstream can safely cache, diff,
// and parallelize from it. Apply order is a topological sort of the
// dependency edges with canonical declaration order as the tie-breaker.
//
// Cycles are impossible by construction, because references only point from
// wiring nodes to more primitive resources. The sort still guards for them:
// a cycle or an edge into a non-materialized node means the predicate table
// itself is wrong, and Build fails loudly rather than handing the engine an
// inconsistent graph.
package assemble
