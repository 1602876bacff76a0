package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/voglerr/eventplan/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// FieldError is a single validation violation, attributed to the
// configuration field that caused it.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface for FieldError.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the full set of violations found in one validation pass.
type Errors []FieldError

// Error implements the error interface for Errors.
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("configuration invalid:\n- %s", strings.Join(msgs, "\n- "))
}

// namePattern is the safe character set for derived resource names: the
// pipeline name is concatenated with suffixes into queue, function, and
// alarm names, all of which reject most punctuation.
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// maxNameLength keeps every derived name (longest suffix is
// "-processor-throttles") inside the 64-character function and alarm limits.
const maxNameLength = 48

// logRetentionDays are the retention values the log service accepts.
var logRetentionDays = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 14: true, 30: true, 60: true,
	90: true, 120: true, 150: true, 180: true, 365: true, 400: true,
	545: true, 731: true, 1096: true, 1827: true, 2192: true, 2557: true,
	2922: true, 3288: true, 3653: true,
}

// rule checks one aspect of the configuration and returns every violation it
// finds. Rules are independent: each runs regardless of what the others
// reported.
type rule func(p *config.Pipeline) Errors

// rules is the fixed rule set, in reporting order.
var rules = []rule{
	checkName,
	checkEventPattern,
	checkLambda,
	checkTimeoutRelation,
	checkQueue,
	checkLogging,
	checkAlarms,
}

// Validate runs every rule over the configuration and returns all violations
// found. A nil/empty result means the configuration is valid.
func Validate(p *config.Pipeline) Errors {
	var errs Errors
	for _, r := range rules {
		errs = append(errs, r(p)...)
	}
	return errs
}

func checkName(p *config.Pipeline) Errors {
	if p.Name == "" {
		return Errors{{Field: "name", Message: "must not be empty"}}
	}

	var errs Errors
	if len(p.Name) > maxNameLength {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: fmt.Sprintf("must be at most %d characters, got %d", maxNameLength, len(p.Name)),
		})
	}
	if !namePattern.MatchString(p.Name) {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: "must start with a letter and contain only letters, digits, and hyphens",
		})
	}
	return errs
}

func checkEventPattern(p *config.Pipeline) Errors {
	if p.EventPattern == cty.NilVal || p.EventPattern.IsNull() {
		return Errors{{Field: "event_pattern", Message: "is required"}}
	}
	return nil
}

func checkLambda(p *config.Pipeline) Errors {
	var errs Errors

	if p.CreateLambda && p.Lambda.Code == nil {
		errs = append(errs, FieldError{
			Field:   "lambda.code",
			Message: "is required when create_lambda is true",
		})
	}
	if p.Lambda.Timeout < 1 {
		errs = append(errs, FieldError{
			Field:   "lambda.timeout",
			Message: fmt.Sprintf("must be a positive number of seconds, got %d", p.Lambda.Timeout),
		})
	}
	if p.Lambda.MemorySize < 128 || p.Lambda.MemorySize > 10240 {
		errs = append(errs, FieldError{
			Field:   "lambda.memory_size",
			Message: fmt.Sprintf("must be between 128 and 10240, got %d", p.Lambda.MemorySize),
		})
	}
	if p.Lambda.BatchSize < 1 || p.Lambda.BatchSize > 10000 {
		errs = append(errs, FieldError{
			Field:   "lambda.batch_size",
			Message: fmt.Sprintf("must be between 1 and 10000, got %d", p.Lambda.BatchSize),
		})
	}
	return errs
}

// checkTimeoutRelation enforces the numeric relationship between the
// consumer timeout and the queue visibility timeout. It runs even when
// create_lambda is false: both fields are independently settable and a bad
// pair should be caught before the dependent resource ever exists.
func checkTimeoutRelation(p *config.Pipeline) Errors {
	if p.Lambda.Timeout >= p.Queue.VisibilityTimeoutSeconds {
		return Errors{{
			Field: "lambda.timeout",
			Message: fmt.Sprintf("must be less than queue.visibility_timeout_seconds (%d), got %d",
				p.Queue.VisibilityTimeoutSeconds, p.Lambda.Timeout),
		}}
	}
	return nil
}

func checkQueue(p *config.Pipeline) Errors {
	var errs Errors

	if p.Queue.VisibilityTimeoutSeconds < 1 {
		errs = append(errs, FieldError{
			Field:   "queue.visibility_timeout_seconds",
			Message: fmt.Sprintf("must be a positive number of seconds, got %d", p.Queue.VisibilityTimeoutSeconds),
		})
	}
	if p.Queue.MessageRetentionSeconds < 60 || p.Queue.MessageRetentionSeconds > 1209600 {
		errs = append(errs, FieldError{
			Field:   "queue.message_retention_seconds",
			Message: fmt.Sprintf("must be between 60 and 1209600, got %d", p.Queue.MessageRetentionSeconds),
		})
	}
	if p.Queue.MaxReceiveCount < 1 || p.Queue.MaxReceiveCount > 1000 {
		errs = append(errs, FieldError{
			Field:   "queue.max_receive_count",
			Message: fmt.Sprintf("must be between 1 and 1000, got %d", p.Queue.MaxReceiveCount),
		})
	}
	if p.Queue.DLQVisibilityTimeoutSeconds < 1 {
		errs = append(errs, FieldError{
			Field:   "queue.dlq_visibility_timeout_seconds",
			Message: fmt.Sprintf("must be a positive number of seconds, got %d", p.Queue.DLQVisibilityTimeoutSeconds),
		})
	}
	return errs
}

func checkLogging(p *config.Pipeline) Errors {
	if !p.EnableLogging {
		return nil
	}
	if !logRetentionDays[p.Logging.RetentionDays] {
		return Errors{{
			Field:   "logging.retention_days",
			Message: fmt.Sprintf("%d is not an accepted retention period (%s)", p.Logging.RetentionDays, acceptedRetentionDays()),
		}}
	}
	return nil
}

func checkAlarms(p *config.Pipeline) Errors {
	var errs Errors

	if p.EnableAlarms && p.Alarms.Email == nil {
		errs = append(errs, FieldError{
			Field:   "alarms.email",
			Message: "is required when enable_alarms is true",
		})
	}
	if p.Alarms.DLQDepthThreshold < 0 {
		errs = append(errs, FieldError{
			Field:   "alarms.dlq_depth_threshold",
			Message: fmt.Sprintf("must not be negative, got %v", p.Alarms.DLQDepthThreshold),
		})
	}
	if p.Alarms.LambdaErrorThreshold < 0 {
		errs = append(errs, FieldError{
			Field:   "alarms.lambda_error_threshold",
			Message: fmt.Sprintf("must not be negative, got %v", p.Alarms.LambdaErrorThreshold),
		})
	}
	return errs
}

func acceptedRetentionDays() string {
	days := make([]int, 0, len(logRetentionDays))
	for d := range logRetentionDays {
		days = append(days, d)
	}
	sort.Ints(days)
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, ", ")
}
