// Package handler defines the generic handler, middleware and context types
// shared by the input middleware and any router built on top of it.
//
//	type HandlerFunc[C Context] func(ctx C) Response
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// A handler returns a Response closure instead of writing directly, so
// middleware can wrap or replace the rendering step:
//
//	func show(ctx handler.Context) handler.Response {
//		in, _ := middleware.GetInput(ctx)
//		name := in.GetString("name", "world")
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := io.WriteString(w, "hello "+name)
//			return err
//		}
//	}
package handler
