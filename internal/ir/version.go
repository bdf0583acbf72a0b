package ir

// Version constants stamped on persisted records.
const (
	// IRVersion is the canonical record schema version.
	IRVersion = "1"

	// EvaluatorVersion is the calc evaluator version.
	EvaluatorVersion = "0.1.0"
)
