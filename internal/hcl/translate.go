// This file contains the logic for translating the HCL schema structs (from
// schema.go) into the format-agnostic configuration model defined in the
// config package, applying defaults for everything the definition omits.

package hcl

import (
	"context"
	"fmt"

	"github.com/voglerr/eventplan/internal/config"
)

// translate converts a decoded pipeline block into the agnostic model. Group
// fields start from config defaults and are overridden per field, so a block
// only has to mention what it changes.
func (l *Loader) translate(ctx context.Context, b *pipelineBlock) (*config.Pipeline, error) {
	p := config.NewPipeline(b.Name)
	p.Description = b.Description
	p.Tags = b.Tags

	pattern, diags := b.EventPattern.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid event_pattern for pipeline '%s': %w", b.Name, diags)
	}
	p.EventPattern = pattern

	setBool(&p.CreateEventBus, b.CreateEventBus)
	setBool(&p.CreateLambda, b.CreateLambda)
	setBool(&p.EnableDLQ, b.EnableDLQ)
	setBool(&p.EnableLogging, b.EnableLogging)
	setBool(&p.EnableAlarms, b.EnableAlarms)

	if b.Lambda != nil {
		p.Lambda.Code = b.Lambda.Code
		setString(&p.Lambda.Handler, b.Lambda.Handler)
		setString(&p.Lambda.Runtime, b.Lambda.Runtime)
		setInt(&p.Lambda.Timeout, b.Lambda.Timeout)
		setInt(&p.Lambda.MemorySize, b.Lambda.MemorySize)
		setInt(&p.Lambda.BatchSize, b.Lambda.BatchSize)
		p.Lambda.Environment = b.Lambda.Environment
	}

	if b.Queue != nil {
		setInt(&p.Queue.VisibilityTimeoutSeconds, b.Queue.VisibilityTimeoutSeconds)
		setInt(&p.Queue.MessageRetentionSeconds, b.Queue.MessageRetentionSeconds)
		setInt(&p.Queue.MaxReceiveCount, b.Queue.MaxReceiveCount)
		setInt(&p.Queue.DLQVisibilityTimeoutSeconds, b.Queue.DLQVisibilityTimeoutSeconds)
	}

	if b.Logging != nil {
		setInt(&p.Logging.RetentionDays, b.Logging.RetentionDays)
	}

	if b.Alarms != nil {
		p.Alarms.Email = b.Alarms.Email
		setFloat(&p.Alarms.DLQDepthThreshold, b.Alarms.DLQDepthThreshold)
		setFloat(&p.Alarms.LambdaErrorThreshold, b.Alarms.LambdaErrorThreshold)
	}

	return p, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
