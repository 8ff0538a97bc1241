package response

import (
	"net/http"

	"github.com/dmitrymomot/input/core/handler"
)

// Error returns a handler response that propagates err to the error handler
// instead of rendering anything.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
