// Package middleware provides handler.Context middleware around the input
// manager.
//
// All middleware functions follow the same pattern:
//   - Generic functions that accept a handler.Context type parameter
//   - Configuration structs for customization
//   - Default constructors for common use cases
//   - WithConfig constructors for advanced configuration
//   - Context helpers for retrieving stored values
//
// # Input
//
// Input captures the request parameters once and stores the *input.Manager
// in the request context:
//
//	app.Use(middleware.BodyLimitWithSize[*AppContext](8 * middleware.MB))
//	app.Use(middleware.Input[*AppContext]())
//
//	func search(ctx *AppContext) handler.Response {
//		in, _ := middleware.GetInput(ctx)
//		q := in.GetString("q", "")
//		...
//	}
//
// Configuration comes from input.Config, usually loaded from the environment:
//
//	cfg, err := input.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	app.Use(middleware.InputWithConfig[*AppContext](middleware.InputConfig{
//		Config: &cfg,
//		Logger: log,
//		Skip: func(ctx handler.Context) bool {
//			return ctx.Request().URL.Path == "/health"
//		},
//	}))
//
// # Body limit
//
// BodyLimit rejects oversized bodies before Input parses them. Bodies that lie
// about their length are cut off by http.MaxBytesReader; Input reports those
// as 413 Request Entity Too Large.
package middleware
