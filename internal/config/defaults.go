package config

// Defaults applied by loaders for every field the definition leaves unset.
const (
	DefaultLambdaHandler    = "index.handler"
	DefaultLambdaRuntime    = "nodejs20.x"
	DefaultLambdaTimeout    = 30
	DefaultLambdaMemorySize = 128
	DefaultLambdaBatchSize  = 10

	DefaultVisibilityTimeoutSeconds    = 180
	DefaultMessageRetentionSeconds     = 345600 // 4 days
	DefaultMaxReceiveCount             = 5
	DefaultDLQVisibilityTimeoutSeconds = 300

	DefaultLogRetentionDays = 14

	DefaultDLQDepthThreshold    = 1
	DefaultLambdaErrorThreshold = 1
)

// NewPipeline returns a Pipeline with the given name and every group field
// set to its default. Loaders start from this and overlay what the
// definition provides.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{
		Name: name,
		Lambda: Lambda{
			Handler:    DefaultLambdaHandler,
			Runtime:    DefaultLambdaRuntime,
			Timeout:    DefaultLambdaTimeout,
			MemorySize: DefaultLambdaMemorySize,
			BatchSize:  DefaultLambdaBatchSize,
		},
		Queue: Queue{
			VisibilityTimeoutSeconds:    DefaultVisibilityTimeoutSeconds,
			MessageRetentionSeconds:     DefaultMessageRetentionSeconds,
			MaxReceiveCount:             DefaultMaxReceiveCount,
			DLQVisibilityTimeoutSeconds: DefaultDLQVisibilityTimeoutSeconds,
		},
		Logging: Logging{
			RetentionDays: DefaultLogRetentionDays,
		},
		Alarms: Alarms{
			DLQDepthThreshold:    DefaultDLQDepthThreshold,
			LambdaErrorThreshold: DefaultLambdaErrorThreshold,
		},
	}
}
