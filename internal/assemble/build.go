package assemble

import (
	"fmt"

	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/registry"
	"github.com/voglerr/eventplan/internal/resolve"
)

// Build materializes the resource graph for a validated configuration. The
// configuration must have passed validation; Build does not re-check field
// rules. codeSHA256 is the content hash of the consumer's code archive, or
// empty when the archive is not available yet.
func Build(cfg *config.Pipeline, id resolve.Identity, codeSHA256 string) (*Graph, error) {
	set := registry.Materialize(cfg)
	r := resolve.New(cfg, set, id)

	patternJSON, err := r.EventPatternJSON()
	if err != nil {
		return nil, err
	}

	b := &nodeBuilder{
		cfg:         cfg,
		set:         set,
		r:           r,
		patternJSON: patternJSON,
		codeSHA256:  codeSHA256,
	}

	g := &Graph{nodes: make(map[registry.NodeID]*Node, len(set))}
	for _, nodeID := range registry.All() {
		if !set.Has(nodeID) {
			continue
		}
		g.nodes[nodeID] = b.build(nodeID)
	}

	// Guard the predicate invariant before ordering: every edge must point
	// at a materialized node. A violation is a defect in the predicate
	// table, not a user error.
	for _, n := range g.nodes {
		for _, dep := range n.DependsOn {
			if !set.Has(dep) {
				return nil, fmt.Errorf("graph invariant violated: node %q depends on %q, which is not materialized", n.ID, dep)
			}
		}
	}

	order, err := applyOrder(g.nodes)
	if err != nil {
		return nil, err
	}
	g.order = order

	return g, nil
}

// applyOrder topologically sorts the nodes, breaking ties by canonical
// declaration order so the result is stable across runs.
func applyOrder(nodes map[registry.NodeID]*Node) ([]registry.NodeID, error) {
	placed := make(map[registry.NodeID]bool, len(nodes))
	order := make([]registry.NodeID, 0, len(nodes))

	for len(order) < len(nodes) {
		progressed := false
		for _, id := range registry.All() {
			n, ok := nodes[id]
			if !ok || placed[id] {
				continue
			}
			ready := true
			for _, dep := range n.DependsOn {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				placed[id] = true
				order = append(order, id)
				progressed = true
			}
		}
		if !progressed {
			// Unreachable while references only point from wiring nodes to
			// more primitive resources.
			return nil, fmt.Errorf("cycle detected in resource graph; the node dependency table is defective")
		}
	}

	return order, nil
}
