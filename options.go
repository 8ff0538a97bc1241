package input

import "log/slog"

// Option configures a Manager.
type Option func(*Manager)

// WithSanitize controls markup stripping. Strings are always trimmed; tags
// are stripped only when sanitize is true. Default: true.
func WithSanitize(sanitize bool) Option {
	return func(m *Manager) {
		m.sanitize = sanitize
	}
}

// WithClearSources empties every Source map right after it has been copied,
// so code still holding the Source cannot read raw input. Default: false.
func WithClearSources(enabled bool) Option {
	return func(m *Manager) {
		m.clearSources = enabled
	}
}

// WithRequestOrder sets the primary precedence string used by Request,
// e.g. "GP" for query then body.
func WithRequestOrder(order string) Option {
	return func(m *Manager) {
		m.requestOrder = order
	}
}

// WithVariablesOrder sets the fallback precedence string used by Request
// when the request order is empty.
func WithVariablesOrder(order string) Option {
	return func(m *Manager) {
		m.variablesOrder = order
	}
}

// WithLogger sets the logger used for capture diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
