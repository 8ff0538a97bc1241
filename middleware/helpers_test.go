package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/input/core/handler"
)

// testContext is a minimal handler.Context backed by the request context.
type testContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{Context: r.Context(), w: w, r: r}
}

func (c *testContext) Request() *http.Request              { return c.r }
func (c *testContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *testContext) Param(string) string                 { return "" }

func (c *testContext) SetValue(key, val any) {
	c.Context = context.WithValue(c.Context, key, val)
	c.r = c.r.WithContext(c.Context)
}

// serve runs h behind mws and renders errors with their status code.
func serve(req *http.Request, h handler.HandlerFunc[*testContext], mws ...handler.Middleware[*testContext]) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ctx := newTestContext(w, req)

	resp := handler.Chain(h, mws...)(ctx)
	if err := resp(w, ctx.Request()); err != nil {
		status := http.StatusInternalServerError
		var coded interface{ StatusCode() int }
		if errors.As(err, &coded) {
			status = coded.StatusCode()
		}
		w.WriteHeader(status)
	}
	return w
}

func okResponse() handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	}
}
