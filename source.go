package input

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
)

// DefaultMaxMemory is the default memory budget for multipart parsing (10MB).
// Larger parts spill to disk.
const DefaultMaxMemory = 10 << 20

// Source is the raw request input a Manager snapshots. It replaces any
// process-wide request state: whoever handles the request builds a Source and
// passes it to New.
type Source struct {
	Query   Params
	Body    Params
	Server  Params
	Files   Params
	Cookies Params
	Env     Params

	// RequestURI is the raw request target, e.g. "/path?x=1". When empty,
	// Server["REQUEST_URI"] is used if it holds a string.
	RequestURI string
}

func (s Source) requestTarget() string {
	if s.RequestURI != "" {
		return s.RequestURI
	}
	if uri, ok := s.Server["REQUEST_URI"].(string); ok {
		return uri
	}
	return ""
}

// SourceOption configures FromRequest.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	maxMemory   int64
	maxFileSize int64
	store       UploadStore
	environ     func() []string
	now         func() time.Time
}

// WithMaxMemory sets the multipart memory budget, which also caps the size of
// url-encoded bodies. Non-positive values are ignored.
func WithMaxMemory(n int64) SourceOption {
	return func(o *sourceOptions) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithMaxFileSize marks uploads larger than n bytes with UploadErrIniSize
// instead of storing them. Zero disables the limit.
func WithMaxFileSize(n int64) SourceOption {
	return func(o *sourceOptions) {
		if n >= 0 {
			o.maxFileSize = n
		}
	}
}

// WithUploadDir spools every accepted upload into dir and records the path
// as the descriptor's "tmp_name". An empty dir leaves uploads in memory.
func WithUploadDir(dir string) SourceOption {
	return func(o *sourceOptions) {
		if dir != "" {
			o.store = DirStore(dir)
		}
	}
}

// WithUploadStore hands every accepted upload to store and records the
// returned location as the descriptor's "tmp_name".
func WithUploadStore(store UploadStore) SourceOption {
	return func(o *sourceOptions) {
		if store != nil {
			o.store = store
		}
	}
}

// WithEnviron replaces os.Environ as the environment source.
func WithEnviron(fn func() []string) SourceOption {
	return func(o *sourceOptions) {
		if fn != nil {
			o.environ = fn
		}
	}
}

// WithClock replaces time.Now for REQUEST_TIME values.
func WithClock(fn func() time.Time) SourceOption {
	return func(o *sourceOptions) {
		if fn != nil {
			o.now = fn
		}
	}
}

// FromRequest builds a Source from an HTTP request.
//
// The body namespace is filled only for url-encoded and multipart bodies of
// POST, PUT and PATCH requests. Other content types, JSON included, leave it
// empty. Url-encoded bodies declaring a charset other than UTF-8 are
// transcoded.
//
// The query and url-encoded bodies are decoded leniently: malformed percent
// escapes never fail a request. Other body failures, such as a broken
// multipart stream or an unknown charset, yield an error wrapping
// ErrFailedToParseForm and a Source with every other namespace filled.
// Upload store failures are recorded on the file descriptor and reported as
// ErrFailedToStoreUpload.
//
// r.PostForm and r.Form are filled as r.ParseForm would fill them. r must
// carry a URL, as server requests always do.
func FromRequest(r *http.Request, opts ...SourceOption) (Source, error) {
	o := sourceOptions{
		maxMemory: DefaultMaxMemory,
		environ:   os.Environ,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	src := Source{
		Query:      ParseQuery(r.URL.RawQuery),
		Body:       Params{},
		Server:     serverParams(r, o.now()),
		Files:      Params{},
		Cookies:    cookieParams(r),
		Env:        envParams(o.environ()),
		RequestURI: requestURI(r),
	}

	if err := readBody(r, &src, o); err != nil {
		return src, err
	}
	return src, nil
}

func readBody(r *http.Request, src *Source, o sourceOptions) error {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: malformed content type: %w", ErrFailedToParseForm, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		dec, err := charsetDecoder(params["charset"])
		if err != nil {
			return fmt.Errorf("%w: charset %q: %w", ErrFailedToParseForm, params["charset"], err)
		}
		if r.PostForm != nil {
			values := r.PostForm
			if dec != nil {
				if values, err = transcodeValues(values, dec); err != nil {
					return fmt.Errorf("%w: charset %q: %w", ErrFailedToParseForm, params["charset"], err)
				}
			}
			src.Body = paramsFromValues(values)
			return nil
		}

		raw, err := readFormBody(r, o.maxMemory)
		if err != nil {
			return err
		}
		body, values, err := parseFormBody(raw, dec)
		if err != nil {
			return fmt.Errorf("%w: charset %q: %w", ErrFailedToParseForm, params["charset"], err)
		}
		src.Body = body
		r.PostForm = values
		if r.Form == nil {
			form := make(url.Values, len(values))
			for name, list := range values {
				form[name] = slices.Clone(list)
			}
			r.Form = queryValues(form, r.URL.RawQuery)
		}
		return nil

	case "multipart/form-data":
		if params["boundary"] == "" {
			return fmt.Errorf("%w: missing boundary in content type", ErrFailedToParseForm)
		}
		// A nil r.Form makes ParseMultipartForm run ParseForm, which rejects
		// malformed query escapes.
		ownForm := r.Form == nil
		if ownForm {
			r.Form = url.Values{}
		}
		if err := r.ParseMultipartForm(o.maxMemory); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
		}
		if ownForm {
			queryValues(r.Form, r.URL.RawQuery)
		}
		if r.MultipartForm == nil {
			return nil
		}
		src.Body = paramsFromValues(r.MultipartForm.Value)

		files, err := fileParams(r.Context(), r.MultipartForm.File, o)
		src.Files = files
		return err
	}
	return nil
}

// readFormBody reads a url-encoded body of at most limit bytes.
func readFormBody(r *http.Request, limit int64) (string, error) {
	if r.Body == nil {
		return "", nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: body exceeds %d bytes", ErrFailedToParseForm, limit)
	}
	return string(data), nil
}

// parseFormBody decodes a url-encoded body in field order, converting names
// and values with dec when it is set. The flat values are returned as well
// so they can back r.PostForm.
func parseFormBody(raw string, dec *encoding.Decoder) (Params, url.Values, error) {
	out := Params{}
	values := url.Values{}
	for name, value := range pairs(raw) {
		if dec != nil {
			var err error
			if name, err = dec.String(name); err != nil {
				return nil, nil, err
			}
			if value, err = dec.String(value); err != nil {
				return nil, nil, err
			}
		}
		assign(out, name, value)
		values.Add(name, value)
	}
	return compact(out), values, nil
}

// queryValues appends the leniently decoded pairs of rawQuery to form.
func queryValues(form url.Values, rawQuery string) url.Values {
	if form == nil {
		form = url.Values{}
	}
	for name, value := range pairs(rawQuery) {
		form.Add(name, value)
	}
	return form
}

// serverParams mirrors the CGI-style server metadata: request line details,
// peer address, timing and one HTTP_* entry per header.
func serverParams(r *http.Request, now time.Time) Params {
	p := Params{
		"REQUEST_METHOD":     r.Method,
		"REQUEST_URI":        requestURI(r),
		"QUERY_STRING":       r.URL.RawQuery,
		"SERVER_PROTOCOL":    r.Proto,
		"PATH_INFO":          r.URL.Path,
		"REQUEST_TIME":       now.Unix(),
		"REQUEST_TIME_FLOAT": float64(now.UnixNano()) / float64(time.Second),
	}

	for name, values := range r.Header {
		key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		switch key {
		case "CONTENT_TYPE", "CONTENT_LENGTH":
			p[key] = strings.Join(values, ", ")
		default:
			p["HTTP_"+key] = strings.Join(values, ", ")
		}
	}

	if r.Host != "" {
		p["HTTP_HOST"] = r.Host
		p["SERVER_NAME"] = hostOnly(r.Host)
	}
	if r.ContentLength > 0 {
		p["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}
	if r.TLS != nil {
		p["HTTPS"] = "on"
	}

	if host, port, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		p["REMOTE_ADDR"] = host
		p["REMOTE_PORT"] = port
	} else if r.RemoteAddr != "" {
		p["REMOTE_ADDR"] = r.RemoteAddr
	}

	return p
}

// cookieParams keeps the first occurrence of each cookie name.
func cookieParams(r *http.Request) Params {
	p := Params{}
	for _, c := range r.Cookies() {
		if _, exists := p[c.Name]; !exists {
			p[c.Name] = c.Value
		}
	}
	return p
}

func envParams(environ []string) Params {
	p := make(Params, len(environ))
	for _, kv := range environ {
		name, value, _ := strings.Cut(kv, "=")
		if name == "" {
			continue
		}
		p[name] = value
	}
	return p
}

// requestURI prefers the raw request line target and falls back to the
// parsed URL for client-built requests.
func requestURI(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}

func hostOnly(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport
	}
	return host
}

// IsMaxBytesError reports whether err was caused by a body exceeding an
// http.MaxBytesReader limit.
func IsMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
