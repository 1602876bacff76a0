package resolve

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/registry"
)

// DefaultBusName is the vendor-provided implicit routing target that exists
// without explicit creation. The resolver falls back to it whenever the
// custom bus node is absent.
const DefaultBusName = "default"

// RedriveType is the shape of a queue's dead-letter wiring. An absent DLQ
// resolves to a null of this type, not an empty object.
var RedriveType = cty.Object(map[string]cty.Type{
	"dead_letter_target_arn": cty.String,
	"max_receive_count":      cty.Number,
})

// Resolver computes names, identifiers, and cross-node references for one
// pipeline. It is a pure view over the configuration, the materialized node
// set, and the identity context; it holds no state of its own.
type Resolver struct {
	cfg *config.Pipeline
	set registry.Set
	id  Identity
}

// New creates a Resolver for the given configuration and node set.
func New(cfg *config.Pipeline, set registry.Set, id Identity) *Resolver {
	return &Resolver{cfg: cfg, set: set, id: id}
}

// --- Derived resource names ---

func (r *Resolver) QueueName() string    { return r.cfg.Name + "-queue" }
func (r *Resolver) RuleName() string     { return r.cfg.Name + "-rule" }
func (r *Resolver) DLQName() string      { return r.cfg.Name + "-dlq" }
func (r *Resolver) BusName() string      { return r.cfg.Name + "-bus" }
func (r *Resolver) FunctionName() string { return r.cfg.Name + "-processor" }
func (r *Resolver) RoleName() string     { return r.cfg.Name + "-processor-role" }
func (r *Resolver) TopicName() string    { return r.cfg.Name + "-alarms" }

func (r *Resolver) DLQDepthAlarmName() string       { return r.cfg.Name + "-dlq-depth" }
func (r *Resolver) LambdaErrorAlarmName() string    { return r.cfg.Name + "-processor-errors" }
func (r *Resolver) LambdaThrottleAlarmName() string { return r.cfg.Name + "-processor-throttles" }

func (r *Resolver) LogGroupName() string { return "/aws/events/" + r.cfg.Name }

// --- Synthesized identifiers ---

func (r *Resolver) QueueARN() string { return r.id.arn("sqs", r.QueueName()) }
func (r *Resolver) DLQARN() string   { return r.id.arn("sqs", r.DLQName()) }

func (r *Resolver) QueueURL() string { return r.queueURL(r.QueueName()) }
func (r *Resolver) DLQURL() string   { return r.queueURL(r.DLQName()) }

func (r *Resolver) queueURL(name string) string {
	return fmt.Sprintf("https://sqs.%s.amazonaws.com/%s/%s", r.id.Region, r.id.AccountID, name)
}

func (r *Resolver) FunctionARN() string { return r.id.arn("lambda", "function:"+r.FunctionName()) }
func (r *Resolver) RoleARN() string     { return r.id.globalARN("iam", "role/"+r.RoleName()) }
func (r *Resolver) LogGroupARN() string { return r.id.arn("logs", "log-group:"+r.LogGroupName()) }
func (r *Resolver) TopicARN() string    { return r.id.arn("sns", r.TopicName()) }

// --- Cross-node references ---

// BusIdentifier resolves the event bus every routing construct must point
// at: the custom bus's name when that node exists, the default bus
// otherwise. The rule, the queue policy, and the logging target all resolve
// through this single method so they can never disagree.
func (r *Resolver) BusIdentifier() string {
	if r.set.Has(registry.EventBus) {
		return r.BusName()
	}
	return DefaultBusName
}

// BusARN resolves the identifier of whichever bus BusIdentifier named.
func (r *Resolver) BusARN() string {
	return r.id.arn("events", "event-bus/"+r.BusIdentifier())
}

// RuleARN embeds the bus identifier for rules on a custom bus; rules on the
// default bus carry a bare rule path.
func (r *Resolver) RuleARN() string {
	if r.set.Has(registry.EventBus) {
		return r.id.arn("events", fmt.Sprintf("rule/%s/%s", r.BusName(), r.RuleName()))
	}
	return r.id.arn("events", "rule/"+r.RuleName())
}

// Redrive resolves the main queue's dead-letter wiring: the DLQ's
// identifier plus the receive budget when the DLQ node exists, null when it
// does not. The queue carries no redrive configuration at all in the absent
// case, not a degenerate one.
func (r *Resolver) Redrive() cty.Value {
	if !r.set.Has(registry.DLQ) {
		return cty.NullVal(RedriveType)
	}
	return cty.ObjectVal(map[string]cty.Value{
		"dead_letter_target_arn": cty.StringVal(r.DLQARN()),
		"max_receive_count":      cty.NumberIntVal(int64(r.cfg.Queue.MaxReceiveCount)),
	})
}

// AlarmActions resolves the notification targets for an alarm node. Every
// alarm node's own predicate already guarantees the topic exists whenever an
// alarm does, so the null branch is a defensive guard rather than a
// reachable outcome.
func (r *Resolver) AlarmActions() cty.Value {
	if !r.set.Has(registry.AlarmTopic) {
		return cty.NullVal(cty.List(cty.String))
	}
	return cty.ListVal([]cty.Value{cty.StringVal(r.TopicARN())})
}

// EventPatternJSON encodes the routing filter as a JSON document. A string
// pattern is taken verbatim (the user already encoded it); any other shape
// is serialized.
func (r *Resolver) EventPatternJSON() (string, error) {
	v := r.cfg.EventPattern
	if v.Type() == cty.String && !v.IsNull() {
		return v.AsString(), nil
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", fmt.Errorf("failed to encode event_pattern: %w", err)
	}
	return string(b), nil
}

// Tags returns the merged resource metadata: the implicit Name tag overlaid
// with the user's tags (user keys win on collision).
func (r *Resolver) Tags() cty.Value {
	merged := map[string]cty.Value{
		"Name": cty.StringVal(r.cfg.Name),
	}
	for k, v := range r.cfg.Tags {
		merged[k] = cty.StringVal(v)
	}
	return cty.MapVal(merged)
}

// Environment returns the consumer's environment variables, null when none
// are configured.
func (r *Resolver) Environment() cty.Value {
	if len(r.cfg.Lambda.Environment) == 0 {
		return cty.NullVal(cty.Map(cty.String))
	}
	env := make(map[string]cty.Value, len(r.cfg.Lambda.Environment))
	for k, v := range r.cfg.Lambda.Environment {
		env[k] = cty.StringVal(v)
	}
	return cty.MapVal(env)
}
