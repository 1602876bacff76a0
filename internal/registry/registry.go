package registry

import (
	"github.com/voglerr/eventplan/internal/config"
)

// NodeID is the stable identity key of one resource node.
type NodeID string

// The canonical node set. Each optional resource group materializes zero or
// one instances; this domain never needs more.
const (
	EventBus                 NodeID = "event_bus"
	Rule                     NodeID = "rule"
	Queue                    NodeID = "queue"
	QueuePolicy              NodeID = "queue_policy"
	DLQ                      NodeID = "dlq"
	LambdaRole               NodeID = "lambda_role"
	Lambda                   NodeID = "lambda"
	LambdaEventSourceMapping NodeID = "lambda_event_source_mapping"
	LogGroup                 NodeID = "log_group"
	LoggingTarget            NodeID = "logging_target"
	AlarmTopic               NodeID = "alarm_topic"
	AlarmSubscription        NodeID = "alarm_subscription"
	DLQDepthAlarm            NodeID = "dlq_depth_alarm"
	LambdaErrorAlarm         NodeID = "lambda_error_alarm"
	LambdaThrottleAlarm      NodeID = "lambda_throttle_alarm"
)

// Predicate decides, from the configuration alone, whether a node exists.
type Predicate func(p *config.Pipeline) bool

func always(*config.Pipeline) bool        { return true }
func customBus(p *config.Pipeline) bool   { return p.CreateEventBus }
func hasDLQ(p *config.Pipeline) bool      { return p.EnableDLQ }
func hasLambda(p *config.Pipeline) bool   { return p.CreateLambda }
func hasLogging(p *config.Pipeline) bool  { return p.EnableLogging }
func hasAlarms(p *config.Pipeline) bool   { return p.EnableAlarms }
func dlqAlarm(p *config.Pipeline) bool    { return p.EnableAlarms && p.EnableDLQ }
func lambdaAlarm(p *config.Pipeline) bool { return p.EnableAlarms && p.CreateLambda }

type entry struct {
	id   NodeID
	when Predicate
}

// table is the canonical predicate table. Its order is the declaration
// order nodes are offered to the assembler in; the assembler derives the
// final apply order from dependency edges.
var table = []entry{
	{EventBus, customBus},
	{Rule, always},
	{Queue, always},
	{QueuePolicy, always},
	{DLQ, hasDLQ},
	{LambdaRole, hasLambda},
	{Lambda, hasLambda},
	{LambdaEventSourceMapping, hasLambda},
	{LogGroup, hasLogging},
	{LoggingTarget, hasLogging},
	{AlarmTopic, hasAlarms},
	{AlarmSubscription, hasAlarms},
	{DLQDepthAlarm, dlqAlarm},
	{LambdaErrorAlarm, lambdaAlarm},
	{LambdaThrottleAlarm, lambdaAlarm},
}

// Set is the materialized node set for one configuration.
type Set map[NodeID]struct{}

// Has reports whether the node is present in the set.
func (s Set) Has(id NodeID) bool {
	_, ok := s[id]
	return ok
}

// Materialize evaluates every presence predicate against the configuration
// and returns the set of nodes that exist for it.
func Materialize(p *config.Pipeline) Set {
	set := make(Set, len(table))
	for _, e := range table {
		if e.when(p) {
			set[e.id] = struct{}{}
		}
	}
	return set
}

// All returns every node ID in canonical declaration order.
func All() []NodeID {
	ids := make([]NodeID, len(table))
	for i, e := range table {
		ids[i] = e.id
	}
	return ids
}
