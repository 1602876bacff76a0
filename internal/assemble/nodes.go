package assemble

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/registry"
	"github.com/voglerr/eventplan/internal/resolve"
)

// nodeBuilder produces one fully wired Node per materialized node ID.
type nodeBuilder struct {
	cfg         *config.Pipeline
	set         registry.Set
	r           *resolve.Resolver
	patternJSON string
	codeSHA256  string
}

func (b *nodeBuilder) build(id registry.NodeID) *Node {
	switch id {
	case registry.EventBus:
		return b.eventBus()
	case registry.Rule:
		return b.rule()
	case registry.Queue:
		return b.queue()
	case registry.QueuePolicy:
		return b.queuePolicy()
	case registry.DLQ:
		return b.dlq()
	case registry.LambdaRole:
		return b.lambdaRole()
	case registry.Lambda:
		return b.lambda()
	case registry.LambdaEventSourceMapping:
		return b.eventSourceMapping()
	case registry.LogGroup:
		return b.logGroup()
	case registry.LoggingTarget:
		return b.loggingTarget()
	case registry.AlarmTopic:
		return b.alarmTopic()
	case registry.AlarmSubscription:
		return b.alarmSubscription()
	case registry.DLQDepthAlarm:
		return b.dlqDepthAlarm()
	case registry.LambdaErrorAlarm:
		return b.lambdaErrorAlarm()
	case registry.LambdaThrottleAlarm:
		return b.lambdaThrottleAlarm()
	default:
		panic(fmt.Sprintf("assemble: no builder for node %q", id))
	}
}

func (b *nodeBuilder) eventBus() *Node {
	return &Node{
		ID:   registry.EventBus,
		Kind: KindEventBus,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name": cty.StringVal(b.r.BusName()),
			"tags": b.r.Tags(),
		}),
	}
}

func (b *nodeBuilder) rule() *Node {
	var deps []registry.NodeID
	if b.set.Has(registry.EventBus) {
		deps = append(deps, registry.EventBus)
	}
	return &Node{
		ID:   registry.Rule,
		Kind: KindRule,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":           cty.StringVal(b.r.RuleName()),
			"event_bus_name": cty.StringVal(b.r.BusIdentifier()),
			"event_pattern":  cty.StringVal(b.patternJSON),
			"description":    stringOrNull(b.cfg.Description),
			"target_arn":     cty.StringVal(b.r.QueueARN()),
			"tags":           b.r.Tags(),
		}),
		DependsOn: deps,
	}
}

func (b *nodeBuilder) queue() *Node {
	var deps []registry.NodeID
	if b.set.Has(registry.DLQ) {
		// the redrive policy embeds the DLQ's identifier
		deps = append(deps, registry.DLQ)
	}
	return &Node{
		ID:   registry.Queue,
		Kind: KindQueue,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":                       cty.StringVal(b.r.QueueName()),
			"visibility_timeout_seconds": cty.NumberIntVal(int64(b.cfg.Queue.VisibilityTimeoutSeconds)),
			"message_retention_seconds":  cty.NumberIntVal(int64(b.cfg.Queue.MessageRetentionSeconds)),
			"redrive_policy":             b.r.Redrive(),
			"tags":                       b.r.Tags(),
		}),
		DependsOn: deps,
	}
}

// queuePolicy grants the event service permission to deliver matched events
// into the main queue, scoped to this pipeline's rule.
func (b *nodeBuilder) queuePolicy() *Node {
	return &Node{
		ID:   registry.QueuePolicy,
		Kind: KindQueuePolicy,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"queue_name": cty.StringVal(b.r.QueueName()),
			"queue_arn":  cty.StringVal(b.r.QueueARN()),
			"principal":  cty.StringVal("events.amazonaws.com"),
			"action":     cty.StringVal("sqs:SendMessage"),
			"source_arn": cty.StringVal(b.r.RuleARN()),
		}),
		DependsOn: []registry.NodeID{registry.Queue, registry.Rule},
	}
}

func (b *nodeBuilder) dlq() *Node {
	return &Node{
		ID:   registry.DLQ,
		Kind: KindQueue,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":                       cty.StringVal(b.r.DLQName()),
			"visibility_timeout_seconds": cty.NumberIntVal(int64(b.cfg.Queue.DLQVisibilityTimeoutSeconds)),
			"message_retention_seconds":  cty.NumberIntVal(int64(b.cfg.Queue.MessageRetentionSeconds)),
			"redrive_policy":             cty.NullVal(resolve.RedriveType),
			"tags":                       b.r.Tags(),
		}),
	}
}

func (b *nodeBuilder) lambdaRole() *Node {
	return &Node{
		ID:   registry.LambdaRole,
		Kind: KindRole,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":                cty.StringVal(b.r.RoleName()),
			"assume_role_service": cty.StringVal("lambda.amazonaws.com"),
			// grants the consumer permission to drain the main queue
			"consume_queue_arn": cty.StringVal(b.r.QueueARN()),
			"tags":              b.r.Tags(),
		}),
	}
}

func (b *nodeBuilder) lambda() *Node {
	code := cty.NullVal(cty.String)
	if b.cfg.Lambda.Code != nil {
		code = cty.StringVal(*b.cfg.Lambda.Code)
	}
	return &Node{
		ID:   registry.Lambda,
		Kind: KindFunction,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":             cty.StringVal(b.r.FunctionName()),
			"code":             code,
			"source_code_hash": stringOrNull(b.codeSHA256),
			"handler":          cty.StringVal(b.cfg.Lambda.Handler),
			"runtime":          cty.StringVal(b.cfg.Lambda.Runtime),
			"timeout":          cty.NumberIntVal(int64(b.cfg.Lambda.Timeout)),
			"memory_size":      cty.NumberIntVal(int64(b.cfg.Lambda.MemorySize)),
			"environment":      b.r.Environment(),
			"role_arn":         cty.StringVal(b.r.RoleARN()),
			"tags":             b.r.Tags(),
		}),
		DependsOn: []registry.NodeID{registry.LambdaRole},
	}
}

func (b *nodeBuilder) eventSourceMapping() *Node {
	return &Node{
		ID:   registry.LambdaEventSourceMapping,
		Kind: KindEventSourceMapping,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"function_name": cty.StringVal(b.r.FunctionName()),
			"queue_arn":     cty.StringVal(b.r.QueueARN()),
			"batch_size":    cty.NumberIntVal(int64(b.cfg.Lambda.BatchSize)),
		}),
		DependsOn: []registry.NodeID{registry.Queue, registry.Lambda},
	}
}

func (b *nodeBuilder) logGroup() *Node {
	return &Node{
		ID:   registry.LogGroup,
		Kind: KindLogGroup,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":           cty.StringVal(b.r.LogGroupName()),
			"retention_days": cty.NumberIntVal(int64(b.cfg.Logging.RetentionDays)),
			"tags":           b.r.Tags(),
		}),
	}
}

// loggingTarget wires event delivery into the log group. It resolves the
// bus through the same reference as the routing rule, so a custom bus can
// never end up with a logging target on the default bus.
func (b *nodeBuilder) loggingTarget() *Node {
	return &Node{
		ID:   registry.LoggingTarget,
		Kind: KindTarget,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"rule_name":      cty.StringVal(b.r.RuleName()),
			"event_bus_name": cty.StringVal(b.r.BusIdentifier()),
			"target_arn":     cty.StringVal(b.r.LogGroupARN()),
		}),
		DependsOn: []registry.NodeID{registry.Rule, registry.LogGroup},
	}
}

func (b *nodeBuilder) alarmTopic() *Node {
	return &Node{
		ID:   registry.AlarmTopic,
		Kind: KindTopic,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name": cty.StringVal(b.r.TopicName()),
			"tags": b.r.Tags(),
		}),
	}
}

func (b *nodeBuilder) alarmSubscription() *Node {
	email := cty.NullVal(cty.String)
	if b.cfg.Alarms.Email != nil {
		email = cty.StringVal(*b.cfg.Alarms.Email)
	}
	return &Node{
		ID:   registry.AlarmSubscription,
		Kind: KindSubscription,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"topic_arn": cty.StringVal(b.r.TopicARN()),
			"protocol":  cty.StringVal("email"),
			"endpoint":  email,
		}),
		DependsOn: []registry.NodeID{registry.AlarmTopic},
	}
}

func (b *nodeBuilder) dlqDepthAlarm() *Node {
	return &Node{
		ID:   registry.DLQDepthAlarm,
		Kind: KindAlarm,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":          cty.StringVal(b.r.DLQDepthAlarmName()),
			"namespace":     cty.StringVal("AWS/SQS"),
			"metric":        cty.StringVal("ApproximateNumberOfMessagesVisible"),
			"dimension":     cty.StringVal(b.r.DLQName()),
			"threshold":     cty.NumberFloatVal(b.cfg.Alarms.DLQDepthThreshold),
			"comparison":    cty.StringVal("GreaterThanOrEqualToThreshold"),
			"alarm_actions": b.r.AlarmActions(),
			"tags":          b.r.Tags(),
		}),
		DependsOn: []registry.NodeID{registry.DLQ, registry.AlarmTopic},
	}
}

func (b *nodeBuilder) lambdaErrorAlarm() *Node {
	return b.lambdaMetricAlarm(registry.LambdaErrorAlarm, b.r.LambdaErrorAlarmName(), "Errors", b.cfg.Alarms.LambdaErrorThreshold)
}

func (b *nodeBuilder) lambdaThrottleAlarm() *Node {
	return b.lambdaMetricAlarm(registry.LambdaThrottleAlarm, b.r.LambdaThrottleAlarmName(), "Throttles", b.cfg.Alarms.LambdaErrorThreshold)
}

func (b *nodeBuilder) lambdaMetricAlarm(id registry.NodeID, name, metric string, threshold float64) *Node {
	return &Node{
		ID:   id,
		Kind: KindAlarm,
		Attributes: cty.ObjectVal(map[string]cty.Value{
			"name":          cty.StringVal(name),
			"namespace":     cty.StringVal("AWS/Lambda"),
			"metric":        cty.StringVal(metric),
			"dimension":     cty.StringVal(b.r.FunctionName()),
			"threshold":     cty.NumberFloatVal(threshold),
			"comparison":    cty.StringVal("GreaterThanThreshold"),
			"alarm_actions": b.r.AlarmActions(),
			"tags":          b.r.Tags(),
		}),
		DependsOn: []registry.NodeID{registry.Lambda, registry.AlarmTopic},
	}
}

func stringOrNull(s string) cty.Value {
	if s == "" {
		return cty.NullVal(cty.String)
	}
	return cty.StringVal(s)
}
