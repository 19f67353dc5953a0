package logging

import "log/slog"

// Common field names for consistent logging across commands.
const (
	FieldRunID      = "run_id"
	FieldPath       = "path"
	FieldClassifier = "classifier"
	FieldBucket     = "bucket"
	FieldEvents     = "events"
	FieldRows       = "rows"
	FieldColumns    = "columns"
	FieldPosition   = "position"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)

// Path returns a slog attribute for a file or directory path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Classifier returns a slog attribute for the classifier attribute key.
func Classifier(key string) slog.Attr {
	return slog.String(FieldClassifier, key)
}

// Bucket returns a slog attribute for a classifier value.
func Bucket(name string) slog.Attr {
	return slog.String(FieldBucket, name)
}

// Events returns a slog attribute for an event count.
func Events(n int) slog.Attr {
	return slog.Int(FieldEvents, n)
}

// Rows returns a slog attribute for a row count.
func Rows(n int) slog.Attr {
	return slog.Int(FieldRows, n)
}

// Columns returns a slog attribute for a column count.
func Columns(n int) slog.Attr {
	return slog.Int(FieldColumns, n)
}

// Position returns a slog attribute for an event's document position.
func Position(n int) slog.Attr {
	return slog.Int(FieldPosition, n)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
