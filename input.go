package input

import (
	"log/slog"
	"strings"

	"github.com/dmitrymomot/input/core/logger"
)

const namespaceCount = len(namespaceNames)

// Default precedence strings. An empty request order makes Request fall back
// to the variables order.
const (
	DefaultRequestOrder   = ""
	DefaultVariablesOrder = "EGPCS"
)

// Manager is a per-request snapshot of input parameters.
//
// All namespaces are captured once by New and never refreshed. Only the
// cookie namespace can change afterwards, through SetCookie. A Manager is
// not safe for concurrent use; create one per request.
type Manager struct {
	params         [namespaceCount]Params
	sanitize       bool
	clearSources   bool
	requestOrder   string
	variablesOrder string
	log            *slog.Logger
}

// New captures all namespaces of src.
//
// Every top-level string value is trimmed, and stripped of markup unless
// WithSanitize(false) is given. Nested values are copied untouched. Query
// parameters found in the raw request target are merged into the query
// namespace after the regular query copy, overriding duplicates.
func New(src Source, opts ...Option) *Manager {
	m := &Manager{
		sanitize:       true,
		requestOrder:   DefaultRequestOrder,
		variablesOrder: DefaultVariablesOrder,
		log:            slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	target := src.requestTarget()

	m.capture(Query, src.Query)
	m.supplementQuery(target)
	m.capture(Body, src.Body)
	m.capture(Server, src.Server)
	m.capture(Cookies, src.Cookies)
	m.capture(Files, src.Files)
	m.capture(Env, src.Env)

	m.log.Debug("input captured",
		logger.Component("input"),
		logger.RequestURI(target),
		logger.Group("params",
			logger.Count(Query.String(), len(m.params[Query])),
			logger.Count(Body.String(), len(m.params[Body])),
			logger.Count(Server.String(), len(m.params[Server])),
			logger.Count(Files.String(), len(m.params[Files])),
			logger.Count(Cookies.String(), len(m.params[Cookies])),
			logger.Count(Env.String(), len(m.params[Env])),
		),
	)

	return m
}

func (m *Manager) capture(ns Namespace, src Params) {
	dst := make(Params, len(src))
	for name, value := range src {
		dst[name] = Clean(value, m.sanitize)
	}
	m.params[ns] = dst

	if m.clearSources {
		clear(src)
	}
}

// supplementQuery merges the query string of the raw request target into the
// query namespace. Some rewrite setups drop it from the regular source.
// A target without '?' or starting with '?' is ignored.
func (m *Manager) supplementQuery(target string) {
	pos := strings.IndexByte(target, '?')
	if pos <= 0 {
		return
	}

	extra := ParseQuery(target[pos+1:])
	for name, value := range extra {
		m.params[Query][name] = Clean(value, m.sanitize)
	}

	if len(extra) > 0 {
		m.log.Debug("query supplemented from request target",
			logger.Component("input"),
			logger.Namespace(Query.String()),
			logger.Count("added", len(extra)),
		)
	}
}

// lookup returns the value of name in ns, def when it is absent or nil, and a
// copy of the whole namespace when name is empty.
func (m *Manager) lookup(ns Namespace, name string, def any) any {
	if name == "" {
		return m.params[ns].clone()
	}
	if v, ok := m.params[ns][name]; ok && v != nil {
		return v
	}
	return def
}

func defaultOr(fallback any, def []any) any {
	if len(def) > 0 {
		return def[0]
	}
	return fallback
}

// Get returns a query parameter. Without def an absent parameter yields "".
// An empty name returns the whole query namespace as Params.
func (m *Manager) Get(name string, def ...any) any {
	return m.lookup(Query, name, defaultOr("", def))
}

// Post returns a body parameter. Without def an absent parameter yields "".
// An empty name returns the whole body namespace as Params.
func (m *Manager) Post(name string, def ...any) any {
	return m.lookup(Body, name, defaultOr("", def))
}

// PostIsSet reports whether name is present in the body with a non-nil value,
// regardless of whether the value is empty.
func (m *Manager) PostIsSet(name string) bool {
	return m.Has(Body, name)
}

// Server returns a server metadata entry, or nil when absent.
// An empty name returns the whole namespace.
func (m *Manager) Server(name string) any {
	return m.lookup(Server, name, nil)
}

// File returns the upload descriptor of a form field, or nil when absent.
// An empty name returns the whole namespace.
func (m *Manager) File(name string) any {
	return m.lookup(Files, name, nil)
}

// Env returns an environment variable captured at construction, or nil.
// An empty name returns the whole namespace.
func (m *Manager) Env(name string) any {
	return m.lookup(Env, name, nil)
}

// Cookie returns the value the request treats a cookie as having, or nil.
// An empty name returns the whole namespace.
func (m *Manager) Cookie(name string) any {
	return m.lookup(Cookies, name, nil)
}

// SetCookie changes the value this request sees for a cookie. It does not
// emit a Set-Cookie header. An empty-like value (see IsEmptyLike) removes the
// cookie instead.
func (m *Manager) SetCookie(name string, value any) {
	if IsEmptyLike(value) {
		delete(m.params[Cookies], name)
		return
	}
	m.params[Cookies][name] = value
}

// GetString returns a query parameter when it is a string, def otherwise.
func (m *Manager) GetString(name, def string) string {
	return m.stringOf(Query, name, def)
}

// PostString returns a body parameter when it is a string, def otherwise.
func (m *Manager) PostString(name, def string) string {
	return m.stringOf(Body, name, def)
}

// CookieString returns a cookie when it is a string, def otherwise.
func (m *Manager) CookieString(name, def string) string {
	return m.stringOf(Cookies, name, def)
}

func (m *Manager) stringOf(ns Namespace, name, def string) string {
	if name == "" {
		return def
	}
	if s, ok := m.params[ns][name].(string); ok {
		return s
	}
	return def
}

// Has reports whether name is present in ns with a non-nil value.
func (m *Manager) Has(ns Namespace, name string) bool {
	if ns < 0 || int(ns) >= namespaceCount {
		return false
	}
	v, ok := m.params[ns][name]
	return ok && v != nil
}

// All returns a copy of a whole namespace. Unknown namespaces yield an
// empty Params.
func (m *Manager) All(ns Namespace) Params {
	if ns < 0 || int(ns) >= namespaceCount {
		return Params{}
	}
	return m.params[ns].clone()
}
