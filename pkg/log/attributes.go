// Package log defines standard attribute keys for forest operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.rows") so logs from the engine, the serving layer and the CLI can be
// filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "RANDOM_FOREST".
	ModelNameKey = "model.name"

	// TaskKey is the model task, e.g. "CLASSIFICATION".
	TaskKey = "model.task"

	// OperationKey specifies the operation being performed.
	// Standard values: see the Operation* constants below.
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging.
	// Examples: "serving.engine", "modelio", "cli"
	ComponentKey = "ml.component"
)

// Forest Structure
const (
	// TreesKey is the number of trees in the ensemble.
	TreesKey = "forest.trees"

	// NodesKey is the total number of nodes in the ensemble.
	NodesKey = "forest.nodes"

	// MetricKey is the name of a variable importance metric.
	MetricKey = "forest.importance_metric"
)

// Data Shape
const (
	// RowsKey is the number of rows processed.
	RowsKey = "data.rows"

	// ColumnsKey is the number of columns in the dataspec.
	ColumnsKey = "data.columns"

	// RecordKey is the index of an input record in a batch.
	RecordKey = "data.record"

	// PathKey is a file path (model definition, input records).
	PathKey = "data.path"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey records the number of parallel workers used.
	WorkersKey = "perf.workers"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationPredict    = "predict"
	OperationConvert    = "convert"
	OperationLoad       = "load"
	OperationDescribe   = "describe"
	OperationImportance = "importance"
	OperationEvaluate   = "evaluate"

	ErrorInvalidModel  = "INVALID_MODEL"
	ErrorEmptyModel    = "EMPTY_MODEL"
	ErrorConversion    = "CONVERSION"
	ErrorUnknownMetric = "UNKNOWN_METRIC"
)
