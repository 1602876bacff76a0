package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/voglerr/eventplan/internal/config"
)

func validPipeline() *config.Pipeline {
	p := config.NewPipeline("test-pipeline")
	p.EventPattern = cty.ObjectVal(map[string]cty.Value{
		"source": cty.ListVal([]cty.Value{cty.StringVal("app.orders")}),
	})
	return p
}

// fields extracts the attributed field names for assertion convenience.
func fields(errs Errors) []string {
	out := make([]string, len(errs))
	for i, fe := range errs {
		out[i] = fe.Field
	}
	return out
}

func TestValidate_DefaultsPass(t *testing.T) {
	errs := Validate(validPipeline())
	assert.Empty(t, errs)
}

func TestValidate_Name(t *testing.T) {
	t.Run("empty name fails", func(t *testing.T) {
		p := validPipeline()
		p.Name = ""
		errs := Validate(p)
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
		assert.Contains(t, errs[0].Message, "empty")
	})

	t.Run("unsafe characters fail", func(t *testing.T) {
		p := validPipeline()
		p.Name = "test_pipeline!"
		assert.Contains(t, fields(Validate(p)), "name")
	})

	t.Run("leading digit fails", func(t *testing.T) {
		p := validPipeline()
		p.Name = "1pipeline"
		assert.Contains(t, fields(Validate(p)), "name")
	})

	t.Run("over-long name fails", func(t *testing.T) {
		p := validPipeline()
		p.Name = strings.Repeat("a", 49)
		assert.Contains(t, fields(Validate(p)), "name")
	})

	t.Run("48 characters pass", func(t *testing.T) {
		p := validPipeline()
		p.Name = strings.Repeat("a", 48)
		assert.Empty(t, Validate(p))
	})
}

func TestValidate_EventPattern(t *testing.T) {
	t.Run("missing pattern fails", func(t *testing.T) {
		p := validPipeline()
		p.EventPattern = cty.NilVal
		assert.Contains(t, fields(Validate(p)), "event_pattern")
	})

	t.Run("null pattern fails", func(t *testing.T) {
		p := validPipeline()
		p.EventPattern = cty.NullVal(cty.DynamicPseudoType)
		assert.Contains(t, fields(Validate(p)), "event_pattern")
	})

	t.Run("string pattern passes", func(t *testing.T) {
		p := validPipeline()
		p.EventPattern = cty.StringVal(`{"source":["app.orders"]}`)
		assert.Empty(t, Validate(p))
	})
}

func TestValidate_RequiredWhenEnabled(t *testing.T) {
	t.Run("create_lambda without code fails on lambda.code", func(t *testing.T) {
		p := validPipeline()
		p.CreateLambda = true
		errs := Validate(p)
		require.Len(t, errs, 1)
		assert.Equal(t, "lambda.code", errs[0].Field)
	})

	t.Run("create_lambda with code passes", func(t *testing.T) {
		p := validPipeline()
		p.CreateLambda = true
		code := "dist/processor.zip"
		p.Lambda.Code = &code
		assert.Empty(t, Validate(p))
	})

	t.Run("enable_alarms without email fails on alarms.email", func(t *testing.T) {
		p := validPipeline()
		p.EnableAlarms = true
		errs := Validate(p)
		require.Len(t, errs, 1)
		assert.Equal(t, "alarms.email", errs[0].Field)
	})

	t.Run("enable_alarms with email passes", func(t *testing.T) {
		p := validPipeline()
		p.EnableAlarms = true
		email := "ops@example.com"
		p.Alarms.Email = &email
		assert.Empty(t, Validate(p))
	})
}

func TestValidate_TimeoutRelation(t *testing.T) {
	t.Run("timeout above visibility timeout fails on lambda.timeout", func(t *testing.T) {
		p := validPipeline()
		p.Lambda.Timeout = 200
		p.Queue.VisibilityTimeoutSeconds = 180
		errs := Validate(p)
		require.Len(t, errs, 1)
		assert.Equal(t, "lambda.timeout", errs[0].Field)
		assert.Contains(t, errs[0].Message, "visibility_timeout_seconds")
	})

	t.Run("equal values fail", func(t *testing.T) {
		p := validPipeline()
		p.Lambda.Timeout = 180
		p.Queue.VisibilityTimeoutSeconds = 180
		assert.Contains(t, fields(Validate(p)), "lambda.timeout")
	})

	t.Run("timeout below visibility timeout passes", func(t *testing.T) {
		p := validPipeline()
		p.Lambda.Timeout = 30
		p.Queue.VisibilityTimeoutSeconds = 180
		assert.Empty(t, Validate(p))
	})

	t.Run("checked even when create_lambda is false", func(t *testing.T) {
		p := validPipeline()
		p.CreateLambda = false
		p.Lambda.Timeout = 200
		p.Queue.VisibilityTimeoutSeconds = 180
		assert.Contains(t, fields(Validate(p)), "lambda.timeout")
	})
}

func TestValidate_Ranges(t *testing.T) {
	t.Run("batch_size bounds", func(t *testing.T) {
		for _, bad := range []int{0, 10001} {
			p := validPipeline()
			p.Lambda.BatchSize = bad
			assert.Contains(t, fields(Validate(p)), "lambda.batch_size", "batch_size=%d", bad)
		}
		for _, good := range []int{1, 10000} {
			p := validPipeline()
			p.Lambda.BatchSize = good
			assert.Empty(t, Validate(p), "batch_size=%d", good)
		}
	})

	t.Run("max_receive_count bounds", func(t *testing.T) {
		for _, bad := range []int{0, 1001} {
			p := validPipeline()
			p.Queue.MaxReceiveCount = bad
			assert.Contains(t, fields(Validate(p)), "queue.max_receive_count", "max_receive_count=%d", bad)
		}
		for _, good := range []int{1, 1000} {
			p := validPipeline()
			p.Queue.MaxReceiveCount = good
			assert.Empty(t, Validate(p), "max_receive_count=%d", good)
		}
	})

	t.Run("timeout lower bound", func(t *testing.T) {
		p := validPipeline()
		p.Lambda.Timeout = 0
		assert.Contains(t, fields(Validate(p)), "lambda.timeout")

		p = validPipeline()
		p.Lambda.Timeout = 1
		assert.Empty(t, Validate(p))
	})

	t.Run("dlq_visibility_timeout lower bound", func(t *testing.T) {
		p := validPipeline()
		p.Queue.DLQVisibilityTimeoutSeconds = 0
		assert.Contains(t, fields(Validate(p)), "queue.dlq_visibility_timeout_seconds")

		p = validPipeline()
		p.Queue.DLQVisibilityTimeoutSeconds = 1
		assert.Empty(t, Validate(p))
	})

	t.Run("memory_size bounds", func(t *testing.T) {
		for _, bad := range []int{127, 10241} {
			p := validPipeline()
			p.Lambda.MemorySize = bad
			assert.Contains(t, fields(Validate(p)), "lambda.memory_size", "memory_size=%d", bad)
		}
	})

	t.Run("message retention bounds", func(t *testing.T) {
		for _, bad := range []int{59, 1209601} {
			p := validPipeline()
			p.Queue.MessageRetentionSeconds = bad
			assert.Contains(t, fields(Validate(p)), "queue.message_retention_seconds", "retention=%d", bad)
		}
	})

	t.Run("negative thresholds fail", func(t *testing.T) {
		p := validPipeline()
		p.Alarms.DLQDepthThreshold = -1
		p.Alarms.LambdaErrorThreshold = -0.5
		got := fields(Validate(p))
		assert.Contains(t, got, "alarms.dlq_depth_threshold")
		assert.Contains(t, got, "alarms.lambda_error_threshold")
	})
}

func TestValidate_LogRetention(t *testing.T) {
	t.Run("unsupported retention fails when logging enabled", func(t *testing.T) {
		p := validPipeline()
		p.EnableLogging = true
		p.Logging.RetentionDays = 15
		assert.Contains(t, fields(Validate(p)), "logging.retention_days")
	})

	t.Run("ignored when logging disabled", func(t *testing.T) {
		p := validPipeline()
		p.Logging.RetentionDays = 15
		assert.Empty(t, Validate(p))
	})
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	p := validPipeline()
	p.Name = ""
	p.CreateLambda = true // without code
	p.EnableAlarms = true // without email
	p.Lambda.BatchSize = 0
	p.Queue.MaxReceiveCount = 0
	p.Lambda.Timeout = 500

	errs := Validate(p)
	got := fields(errs)
	for _, want := range []string{
		"name",
		"lambda.code",
		"lambda.batch_size",
		"lambda.timeout",
		"queue.max_receive_count",
		"alarms.email",
	} {
		assert.Contains(t, got, want)
	}

	// the combined error names every field too
	msg := errs.Error()
	assert.Contains(t, msg, "configuration invalid")
	assert.Contains(t, msg, "alarms.email")
}

func TestValidate_IsDeterministic(t *testing.T) {
	p := validPipeline()
	p.CreateLambda = true
	p.EnableAlarms = true
	p.Lambda.BatchSize = 0

	first := Validate(p)
	second := Validate(p)
	require.Equal(t, first, second)
}
