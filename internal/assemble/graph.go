package assemble

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/voglerr/eventplan/internal/registry"
)

// Kind classifies a node by the provider resource it materializes as.
type Kind string

const (
	KindEventBus           Kind = "events.bus"
	KindRule               Kind = "events.rule"
	KindTarget             Kind = "events.target"
	KindQueue              Kind = "sqs.queue"
	KindQueuePolicy        Kind = "sqs.queue_policy"
	KindRole               Kind = "iam.role"
	KindFunction           Kind = "lambda.function"
	KindEventSourceMapping Kind = "lambda.event_source_mapping"
	KindLogGroup           Kind = "logs.group"
	KindTopic              Kind = "sns.topic"
	KindSubscription       Kind = "sns.subscription"
	KindAlarm              Kind = "cloudwatch.alarm"
)

// Node is one materialized resource in the graph: its identity, provider
// kind, fully resolved attributes, and the nodes it depends on.
type Node struct {
	ID         registry.NodeID
	Kind       Kind
	Attributes cty.Value
	DependsOn  []registry.NodeID
}

// Graph is the assembled resource set in apply order.
type Graph struct {
	nodes map[registry.NodeID]*Node
	order []registry.NodeID
}

// Node returns the node with the given ID, if present.
func (g *Graph) Node(id registry.NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether the node was materialized.
func (g *Graph) Has(id registry.NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of materialized nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ApplyOrder returns the node IDs in dependency order: every node appears
// after everything it depends on.
func (g *Graph) ApplyOrder() []registry.NodeID {
	order := make([]registry.NodeID, len(g.order))
	copy(order, g.order)
	return order
}

// Nodes returns the nodes in apply order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Set reconstructs the presence set the graph was materialized from.
func (g *Graph) Set() registry.Set {
	set := make(registry.Set, len(g.nodes))
	for id := range g.nodes {
		set[id] = struct{}{}
	}
	return set
}
