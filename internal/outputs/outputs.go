package outputs

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/voglerr/eventplan/internal/assemble"
	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/registry"
	"github.com/voglerr/eventplan/internal/resolve"
)

// Names is the stable output contract, in reporting order. Every projection
// contains exactly these keys.
var Names = []string{
	"event_bus_name",
	"event_bus_arn",
	"event_rule_name",
	"event_rule_arn",
	"queue_name",
	"queue_arn",
	"queue_url",
	"dlq_name",
	"dlq_arn",
	"dlq_url",
	"lambda_function_name",
	"lambda_function_arn",
	"lambda_role_arn",
	"log_group_name",
	"log_group_arn",
	"alarm_topic_arn",
	"dlq_alarm_name",
	"lambda_error_alarm_name",
	"lambda_throttle_alarm_name",
}

// Project maps the assembled graph to the output contract. The bus outputs
// always resolve (to the default bus identifiers when no custom bus was
// materialized); everything else sourced from an absent node is null.
func Project(cfg *config.Pipeline, g *assemble.Graph, id resolve.Identity) map[string]cty.Value {
	set := g.Set()
	r := resolve.New(cfg, set, id)

	out := map[string]cty.Value{
		"event_bus_name":  cty.StringVal(r.BusIdentifier()),
		"event_bus_arn":   cty.StringVal(r.BusARN()),
		"event_rule_name": cty.StringVal(r.RuleName()),
		"event_rule_arn":  cty.StringVal(r.RuleARN()),
		"queue_name":      cty.StringVal(r.QueueName()),
		"queue_arn":       cty.StringVal(r.QueueARN()),
		"queue_url":       cty.StringVal(r.QueueURL()),

		"dlq_name": cty.NullVal(cty.String),
		"dlq_arn":  cty.NullVal(cty.String),
		"dlq_url":  cty.NullVal(cty.String),

		"lambda_function_name": cty.NullVal(cty.String),
		"lambda_function_arn":  cty.NullVal(cty.String),
		"lambda_role_arn":      cty.NullVal(cty.String),

		"log_group_name": cty.NullVal(cty.String),
		"log_group_arn":  cty.NullVal(cty.String),

		"alarm_topic_arn":            cty.NullVal(cty.String),
		"dlq_alarm_name":             cty.NullVal(cty.String),
		"lambda_error_alarm_name":    cty.NullVal(cty.String),
		"lambda_throttle_alarm_name": cty.NullVal(cty.String),
	}

	if set.Has(registry.DLQ) {
		out["dlq_name"] = cty.StringVal(r.DLQName())
		out["dlq_arn"] = cty.StringVal(r.DLQARN())
		out["dlq_url"] = cty.StringVal(r.DLQURL())
	}
	if set.Has(registry.Lambda) {
		out["lambda_function_name"] = cty.StringVal(r.FunctionName())
		out["lambda_function_arn"] = cty.StringVal(r.FunctionARN())
		out["lambda_role_arn"] = cty.StringVal(r.RoleARN())
	}
	if set.Has(registry.LogGroup) {
		out["log_group_name"] = cty.StringVal(r.LogGroupName())
		out["log_group_arn"] = cty.StringVal(r.LogGroupARN())
	}
	if set.Has(registry.AlarmTopic) {
		out["alarm_topic_arn"] = cty.StringVal(r.TopicARN())
	}
	if set.Has(registry.DLQDepthAlarm) {
		out["dlq_alarm_name"] = cty.StringVal(r.DLQDepthAlarmName())
	}
	if set.Has(registry.LambdaErrorAlarm) {
		out["lambda_error_alarm_name"] = cty.StringVal(r.LambdaErrorAlarmName())
	}
	if set.Has(registry.LambdaThrottleAlarm) {
		out["lambda_throttle_alarm_name"] = cty.StringVal(r.LambdaThrottleAlarmName())
	}

	return out
}
