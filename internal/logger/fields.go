package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, carried on the context logger through a request.
const (
	FieldRequestID = "request_id"
	FieldComponent = "component"
	// FieldDatasetSource is the engine dataset source (default or uploaded)
	FieldDatasetSource = "dataset_source"
)

// Metric fields, attached per entry for aggregation.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldSize       = "size"
	FieldStatus     = "status"
)
