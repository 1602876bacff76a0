package assemble

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/registry"
	"github.com/voglerr/eventplan/internal/resolve"
)

var testIdentity = resolve.Identity{
	Partition: "aws",
	Region:    "us-east-1",
	AccountID: "123456789012",
}

func testPipeline() *config.Pipeline {
	p := config.NewPipeline("test-pipeline")
	p.EventPattern = cty.ObjectVal(map[string]cty.Value{
		"source": cty.ListVal([]cty.Value{cty.StringVal("app.orders")}),
	})
	return p
}

func fullPipeline() *config.Pipeline {
	p := testPipeline()
	p.CreateEventBus = true
	p.CreateLambda = true
	p.EnableDLQ = true
	p.EnableLogging = true
	p.EnableAlarms = true
	code := "dist/processor.zip"
	p.Lambda.Code = &code
	email := "ops@example.com"
	p.Alarms.Email = &email
	return p
}

// ctyComparer lets go-cmp compare attribute values structurally.
var ctyComparer = cmp.Comparer(func(a, b cty.Value) bool {
	return a.RawEquals(b)
})

func TestBuild_MinimalPipeline(t *testing.T) {
	g, err := Build(testPipeline(), testIdentity, "")
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []registry.NodeID{registry.Rule, registry.Queue, registry.QueuePolicy}, g.ApplyOrder())

	rule, ok := g.Node(registry.Rule)
	require.True(t, ok)
	assert.Equal(t, "default", rule.Attributes.GetAttr("event_bus_name").AsString())
	assert.Empty(t, rule.DependsOn)

	queue, ok := g.Node(registry.Queue)
	require.True(t, ok)
	assert.True(t, queue.Attributes.GetAttr("redrive_policy").IsNull(),
		"queue without a DLQ carries no redrive configuration at all")
}

func TestBuild_FullPipeline(t *testing.T) {
	g, err := Build(fullPipeline(), testIdentity, "c2hhLWhhc2g=")
	require.NoError(t, err)
	assert.Equal(t, 15, g.Len())

	t.Run("every dependency precedes its dependent", func(t *testing.T) {
		position := make(map[registry.NodeID]int, g.Len())
		for i, id := range g.ApplyOrder() {
			position[id] = i
		}
		for _, n := range g.Nodes() {
			for _, dep := range n.DependsOn {
				assert.Less(t, position[dep], position[n.ID],
					"%s must be applied before %s", dep, n.ID)
			}
		}
	})

	t.Run("queue embeds the DLQ redrive wiring", func(t *testing.T) {
		queue, _ := g.Node(registry.Queue)
		redrive := queue.Attributes.GetAttr("redrive_policy")
		require.False(t, redrive.IsNull())
		assert.Contains(t, redrive.GetAttr("dead_letter_target_arn").AsString(), "test-pipeline-dlq")
		assert.Contains(t, queue.DependsOn, registry.DLQ)
	})

	t.Run("lambda carries the code hash and role reference", func(t *testing.T) {
		lambda, _ := g.Node(registry.Lambda)
		assert.Equal(t, "c2hhLWhhc2g=", lambda.Attributes.GetAttr("source_code_hash").AsString())
		assert.Equal(t, "arn:aws:iam::123456789012:role/test-pipeline-processor-role",
			lambda.Attributes.GetAttr("role_arn").AsString())
	})

	t.Run("alarms notify through the topic", func(t *testing.T) {
		for _, id := range []registry.NodeID{registry.DLQDepthAlarm, registry.LambdaErrorAlarm, registry.LambdaThrottleAlarm} {
			alarm, ok := g.Node(id)
			require.True(t, ok)
			actions := alarm.Attributes.GetAttr("alarm_actions")
			require.False(t, actions.IsNull(), "alarm %s has no actions", id)
			assert.Contains(t, actions.Index(cty.NumberIntVal(0)).AsString(), "test-pipeline-alarms")
		}
	})
}

// TestBuild_CustomBusPropagation checks the correctness-critical invariant:
// with a custom bus, the rule, the queue policy, and the logging target must
// all resolve to the same bus identifier, never a mix of custom and default.
func TestBuild_CustomBusPropagation(t *testing.T) {
	g, err := Build(fullPipeline(), testIdentity, "")
	require.NoError(t, err)

	rule, _ := g.Node(registry.Rule)
	assert.Equal(t, "test-pipeline-bus", rule.Attributes.GetAttr("event_bus_name").AsString())
	assert.Contains(t, rule.DependsOn, registry.EventBus)

	policy, _ := g.Node(registry.QueuePolicy)
	assert.Contains(t, policy.Attributes.GetAttr("source_arn").AsString(),
		"rule/test-pipeline-bus/test-pipeline-rule")

	target, _ := g.Node(registry.LoggingTarget)
	assert.Equal(t, "test-pipeline-bus", target.Attributes.GetAttr("event_bus_name").AsString())
}

// TestBuild_IsIdempotent verifies that two builds of the same configuration
// produce identical graphs, node for node and attribute for attribute.
func TestBuild_IsIdempotent(t *testing.T) {
	first, err := Build(fullPipeline(), testIdentity, "c2hhLWhhc2g=")
	require.NoError(t, err)
	second, err := Build(fullPipeline(), testIdentity, "c2hhLWhhc2g=")
	require.NoError(t, err)

	assert.Equal(t, first.ApplyOrder(), second.ApplyOrder())
	if diff := cmp.Diff(first.Nodes(), second.Nodes(), ctyComparer); diff != "" {
		t.Errorf("graphs differ between identical builds (-first +second):\n%s", diff)
	}
}

func TestBuild_StringEventPattern(t *testing.T) {
	p := testPipeline()
	p.EventPattern = cty.StringVal(`{"source":["app.orders"]}`)

	g, err := Build(p, testIdentity, "")
	require.NoError(t, err)
	rule, _ := g.Node(registry.Rule)
	assert.Equal(t, `{"source":["app.orders"]}`, rule.Attributes.GetAttr("event_pattern").AsString())
}

func TestApplyOrder_DetectsCycles(t *testing.T) {
	// Hand-built defective table: two wiring nodes pointing at each other.
	nodes := map[registry.NodeID]*Node{
		registry.Queue: {ID: registry.Queue, DependsOn: []registry.NodeID{registry.Rule}},
		registry.Rule:  {ID: registry.Rule, DependsOn: []registry.NodeID{registry.Queue}},
	}
	_, err := applyOrder(nodes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle detected")
}
