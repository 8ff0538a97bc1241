package logger

import (
	"log/slog"
)

// Helpers return an empty Attr for missing values, so callers can write
// log.Debug("msg", logger.Error(err)) without nil checks. slog drops empty
// attributes.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Namespace names the parameter namespace a log line refers to.
func Namespace(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("namespace", name)
}

// RequestURI creates an attribute for the raw request target.
func RequestURI(uri string) slog.Attr {
	if uri == "" {
		return slog.Attr{}
	}
	return slog.String("request_uri", uri)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}
