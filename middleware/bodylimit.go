package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrymomot/input"
	"github.com/dmitrymomot/input/core/handler"
	"github.com/dmitrymomot/input/core/response"
)

// Common size constants for convenience.
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

// BodyLimitConfig configures the request body limit middleware.
// Install it before Input so oversized form bodies never reach the parser.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// MaxSize is the maximum allowed size in bytes (default: input.DefaultMaxMemory)
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type,
	// e.g. {"multipart/form-data": 50 * MB}
	ContentTypeLimit map[string]int64
}

// BodyLimit creates a body limit middleware with default configuration.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize creates a body limit middleware with a specified size limit.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig creates a body limit middleware with custom configuration.
//
// Requests announcing a larger Content-Length are rejected with 413 right
// away. Otherwise the body is wrapped with http.MaxBytesReader, so reading past
// the limit fails with *http.MaxBytesError, which Input also answers with 413.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = input.DefaultMaxMemory
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			limit := cfg.limitFor(req.Header.Get("Content-Type"))

			if req.ContentLength > limit {
				return response.Error(response.ErrRequestEntityTooLarge.
					WithMessage(fmt.Sprintf("Request body too large. Size: %s, Maximum allowed: %s",
						formatBytes(req.ContentLength), formatBytes(limit))).
					WithDetails(map[string]any{"limit": limit, "size": req.ContentLength}))
			}

			if req.Body != nil && req.Body != http.NoBody {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, limit)
			}

			return next(ctx)
		}
	}
}

func (cfg BodyLimitConfig) limitFor(contentType string) int64 {
	if len(cfg.ContentTypeLimit) == 0 || contentType == "" {
		return cfg.MaxSize
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return cfg.MaxSize
	}
	if limit, ok := cfg.ContentTypeLimit[mediaType]; ok && limit > 0 {
		return limit
	}
	return cfg.MaxSize
}

// formatBytes formats bytes into a human-readable string.
func formatBytes(n int64) string {
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
