package input

// Params is one parameter namespace: parameter name to value. Values are
// strings for plain inputs; multi-value fields, nested bracket keys and
// upload descriptors hold []any or Params.
type Params map[string]any

// clone returns a shallow copy of p. It never returns nil.
func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Namespace identifies one of the six parameter namespaces.
type Namespace int

const (
	Query Namespace = iota
	Body
	Server
	Files
	Cookies
	Env
)

var namespaceNames = [...]string{
	Query:   "query",
	Body:    "body",
	Server:  "server",
	Files:   "files",
	Cookies: "cookies",
	Env:     "env",
}

// Precedence codes used by request and variables order strings.
var namespaceCodes = [...]byte{
	Query:   'G',
	Body:    'P',
	Server:  'S',
	Files:   'F',
	Cookies: 'C',
	Env:     'E',
}

// String returns the namespace name used in logs.
func (n Namespace) String() string {
	if n < 0 || int(n) >= len(namespaceNames) {
		return "unknown"
	}
	return namespaceNames[n]
}

// Code returns the single-letter precedence code of the namespace,
// e.g. 'G' for Query. Unknown namespaces return 0.
func (n Namespace) Code() byte {
	if n < 0 || int(n) >= len(namespaceCodes) {
		return 0
	}
	return namespaceCodes[n]
}
