package middleware

import (
	"log/slog"

	"github.com/dmitrymomot/input"
	"github.com/dmitrymomot/input/core/handler"
	"github.com/dmitrymomot/input/core/logger"
	"github.com/dmitrymomot/input/core/response"
)

// inputContextKey is used as a key for storing the input manager in request context.
type inputContextKey struct{}

// InputConfig configures the input capture middleware.
type InputConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Logger receives capture failures (default: slog.Default())
	Logger *slog.Logger
	// Config controls sanitization, precedence and upload handling
	// (default: input.DefaultConfig())
	Config *input.Config
	// Options are applied after the ones derived from Config
	Options []input.Option
}

// Input creates an input capture middleware with default configuration.
func Input[C handler.Context]() handler.Middleware[C] {
	return InputWithConfig[C](InputConfig{})
}

// InputWithConfig creates an input capture middleware with custom configuration.
// It snapshots the request parameters once and stores the manager in context,
// where handlers read it with GetInput.
//
// A malformed body is answered with 400 Bad Request, or 413 when the body
// exceeded an http.MaxBytesReader limit. Upload store failures are logged
// and the request continues; the affected descriptors carry
// input.UploadErrCantWrite.
func InputWithConfig[C handler.Context](cfg InputConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	inputCfg := input.DefaultConfig()
	if cfg.Config != nil {
		inputCfg = *cfg.Config
	}
	opts := append([]input.Option{input.WithLogger(cfg.Logger)}, cfg.Options...)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()
			in, err := input.NewFromRequest(r, inputCfg, opts...)
			if err != nil {
				cfg.Logger.WarnContext(ctx, "input capture failed",
					logger.Component("input"),
					logger.Method(r.Method),
					logger.RequestURI(r.RequestURI),
					logger.Error(err),
				)

				if in == nil {
					if input.IsMaxBytesError(err) {
						return response.Error(response.ErrRequestEntityTooLarge.WithError(err))
					}
					return response.Error(response.ErrBadRequest.WithError(err))
				}
			}

			ctx.SetValue(inputContextKey{}, in)

			return next(ctx)
		}
	}
}

// GetInput retrieves the input manager from the request context. Managers
// attached with input.WithContext are found as well.
func GetInput(ctx handler.Context) (*input.Manager, bool) {
	if in, ok := ctx.Value(inputContextKey{}).(*input.Manager); ok && in != nil {
		return in, true
	}
	return input.FromContext(ctx)
}
