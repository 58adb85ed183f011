package logging

import (
	"maps"

	"github.com/goliatone/go-cms-bootstrap/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Nil or empty maps are a no-op.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}
