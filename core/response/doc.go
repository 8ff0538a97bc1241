// Package response carries the error values middleware hands back to the
// framework's error handler.
//
//	return response.Error(response.ErrBadRequest.WithError(err))
//
// HTTPError exposes StatusCode so error handlers can pick the HTTP status
// without type switches on every error kind.
package response
