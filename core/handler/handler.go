package handler

import "net/http"

// Response renders the outcome of a handler. Returning an error hands
// rendering over to the framework's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a request handler with a typed context.
type HandlerFunc[C Context] func(ctx C) Response

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain applies middlewares to h so that the first one runs outermost.
func Chain[C Context](h HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
