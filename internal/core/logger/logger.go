package logger

// Level defines the log level
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the logging contract used across the dashboard core.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With creates a child logger with the provided fields
	With(fields ...Field) Logger

	// SetLevel dynamically changes the log level
	SetLevel(level Level)

	// Sync flushes any buffered log entries
	Sync() error
}

// Any creates a new Field
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// String creates a string Field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int Field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Err creates a Field for an error value
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// ParseLevel converts a config string into a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
