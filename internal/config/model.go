package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Pipeline is the unified, format-agnostic representation of one event
// pipeline: a routing rule feeding a durable queue, with an optional custom
// bus, dead-letter queue, compute consumer, delivery logging, and alarms.
type Pipeline struct {
	// Name is the prefix for every derived resource name.
	Name string
	// Description is attached to the routing rule.
	Description string

	// EventPattern is the structured filter expression for the routing rule.
	// It may be an object value or a string already containing the encoded
	// pattern document.
	EventPattern cty.Value

	// Feature toggles. Every optional resource group's presence is a pure
	// function of these five booleans.
	CreateEventBus bool
	CreateLambda   bool
	EnableDLQ      bool
	EnableLogging  bool
	EnableAlarms   bool

	Lambda  Lambda
	Queue   Queue
	Logging Logging
	Alarms  Alarms

	// Tags are merged into every created resource's metadata, alongside the
	// implicit Name tag.
	Tags map[string]string
}

// Lambda holds the compute consumer group's fields. They are only meaningful
// when CreateLambda is set, but carry valid defaults regardless so numeric
// relationships against them stay checkable.
type Lambda struct {
	// Code is the location of the deployable archive. Nil means not provided,
	// which is a validation error when CreateLambda is set.
	Code        *string
	Handler     string
	Runtime     string
	Timeout     int
	MemorySize  int
	BatchSize   int
	Environment map[string]string
}

// Queue holds the durable queue group's fields, including the dead-letter
// wiring parameters.
type Queue struct {
	VisibilityTimeoutSeconds    int
	MessageRetentionSeconds     int
	MaxReceiveCount             int
	DLQVisibilityTimeoutSeconds int
}

// Logging holds the delivery-logging group's fields.
type Logging struct {
	RetentionDays int
}

// Alarms holds the operational alarm group's fields. Email is nil when not
// provided, which is a validation error when EnableAlarms is set.
type Alarms struct {
	Email                *string
	DLQDepthThreshold    float64
	LambdaErrorThreshold float64
}
