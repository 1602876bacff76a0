package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// root is the top-level structure of a pipeline definition. A definition
// must contain exactly one pipeline block; the loader enforces that after
// decoding.
type root struct {
	Pipelines []*pipelineBlock `hcl:"pipeline,block"`
}

// pipelineBlock is the HCL shape of a `pipeline "<name>" { ... }` block.
// All toggles and group fields are optional; the translation layer fills in
// defaults for anything left unset.
type pipelineBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`

	// EventPattern is kept as an expression so the translation layer can
	// evaluate it into a cty value of whatever shape the user wrote
	// (an object filter or a pre-encoded string).
	EventPattern hcl.Expression `hcl:"event_pattern"`

	CreateEventBus *bool `hcl:"create_event_bus,optional"`
	CreateLambda   *bool `hcl:"create_lambda,optional"`
	EnableDLQ      *bool `hcl:"enable_dlq,optional"`
	EnableLogging  *bool `hcl:"enable_logging,optional"`
	EnableAlarms   *bool `hcl:"enable_alarms,optional"`

	Lambda  *lambdaBlock  `hcl:"lambda,block"`
	Queue   *queueBlock   `hcl:"queue,block"`
	Logging *loggingBlock `hcl:"logging,block"`
	Alarms  *alarmsBlock  `hcl:"alarms,block"`

	Tags map[string]string `hcl:"tags,optional"`
}

type lambdaBlock struct {
	Code        *string           `hcl:"code,optional"`
	Handler     *string           `hcl:"handler,optional"`
	Runtime     *string           `hcl:"runtime,optional"`
	Timeout     *int              `hcl:"timeout,optional"`
	MemorySize  *int              `hcl:"memory_size,optional"`
	BatchSize   *int              `hcl:"batch_size,optional"`
	Environment map[string]string `hcl:"environment,optional"`
}

type queueBlock struct {
	VisibilityTimeoutSeconds    *int `hcl:"visibility_timeout_seconds,optional"`
	MessageRetentionSeconds     *int `hcl:"message_retention_seconds,optional"`
	MaxReceiveCount             *int `hcl:"max_receive_count,optional"`
	DLQVisibilityTimeoutSeconds *int `hcl:"dlq_visibility_timeout_seconds,optional"`
}

type loggingBlock struct {
	RetentionDays *int `hcl:"retention_days,optional"`
}

type alarmsBlock struct {
	Email                *string  `hcl:"email,optional"`
	DLQDepthThreshold    *float64 `hcl:"dlq_depth_threshold,optional"`
	LambdaErrorThreshold *float64 `hcl:"lambda_error_threshold,optional"`
}
