// Package input captures request parameters once per request and exposes
// them through typed accessors, so handlers never read raw request state.
//
// # Namespaces
//
// A Manager holds six independent namespaces, each captured exactly once:
//
//   - Query: query string parameters (Get)
//   - Body: url-encoded and multipart form fields (Post, PostIsSet)
//   - Server: CGI-style request metadata such as REQUEST_METHOD (Server)
//   - Files: upload descriptors with name, type, size, tmp_name and error (File)
//   - Cookies: request cookies, adjustable with SetCookie (Cookie)
//   - Env: process environment (Env)
//
// # Capturing
//
// Build a Source by hand, or from an *http.Request:
//
//	src, err := input.FromRequest(r)
//	if err != nil {
//		return err
//	}
//	in := input.New(src)
//
//	name := in.GetString("name", "guest")
//	page := in.Get("page", "1")
//
// NewFromRequest does both steps with an environment-loaded Config:
//
//	cfg, err := input.LoadConfig()
//	in, err := input.NewFromRequest(r, cfg)
//
// # Cleaning
//
// Every top-level string value is trimmed and, unless WithSanitize(false) is
// given, stripped of markup. Values nested in lists or maps are copied as-is:
//
//	?q=<b>  go  </b>   -> Get("q") == "go"
//	?tags[]=<b>x</b>   -> Get("tags") == []any{"<b>x</b>"}
//
// # Precedence
//
// Request searches query, body and cookies in the order named by the request
// order string ("GP", "GPC", ...), falling back to the variables order
// ("EGPCS" by default). The first value that is not empty-like wins, so a
// "0" in the query does not hide a real value in the body:
//
//	in := input.New(input.Source{
//		Query: input.Params{"b": "0"},
//		Body:  input.Params{"b": "y"},
//	}, input.WithRequestOrder("GP"))
//
//	in.Request("b") // "y"
//
// # Binding
//
// BindQuery and BindPost decode cleaned parameters into structs using `form`
// tags.
package input
