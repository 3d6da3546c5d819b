package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across abisol.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Generation inputs
	FieldRange     = "range"
	FieldInterface = "interface"
	FieldLicense   = "license"
	FieldFile      = "file"

	// Resolution and collection
	FieldFeature     = "feature"
	FieldValue       = "value"
	FieldDeclaration = "declaration"
	FieldSignature   = "signature"
	FieldContainer   = "container"
	FieldKind        = "kind"

	// Formatting
	FieldFormatter = "formatter"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount   = "count"
	FieldEntries = "entries"
	FieldSize    = "size"

	// Timing
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("watch")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
