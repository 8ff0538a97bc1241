// Package logger holds slog attribute helpers shared by the input manager and
// its middleware.
//
// Every helper that takes an optional value returns an empty slog.Attr when
// the value is missing, which slog silently drops:
//
//	log.Debug("input captured",
//		logger.Component("input"),
//		logger.RequestURI(r.RequestURI),
//		logger.Group("params",
//			logger.Count("query", len(q)),
//			logger.Count("body", len(b)),
//		),
//	)
//
//	log.Warn("input capture failed", logger.Error(err)) // no-op attr when err is nil
package logger
