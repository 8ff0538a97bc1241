package handler

import (
	"context"
	"net/http"
)

// Context is the request context handlers and middleware receive.
// SetValue stores request-scoped values, such as the captured input, that
// later middleware and handlers read back through Value.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
