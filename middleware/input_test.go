package middleware_test

import (
	"bytes"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/input"
	"github.com/dmitrymomot/input/core/handler"
	"github.com/dmitrymomot/input/middleware"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestInputStoresManager(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/search?q=%3Cb%3E+go+%3C%2Fb%3E", nil)

	var got string
	w := serve(req, func(ctx *testContext) handler.Response {
		in, found := middleware.GetInput(ctx)
		require.True(t, found, "input manager should be present in context")
		got = in.GetString("q", "")
		return okResponse()
	}, middleware.Input[*testContext]())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go", got)
}

func TestInputCapturesFormBody(t *testing.T) {
	t.Parallel()

	form := url.Values{"name": {"  Ann  "}, "tags[]": {"a", "b"}}
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in *input.Manager
	w := serve(req, func(ctx *testContext) handler.Response {
		in, _ = middleware.GetInput(ctx)
		return okResponse()
	}, middleware.Input[*testContext]())

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, in)
	assert.Equal(t, "Ann", in.Post("name"))
	assert.True(t, in.PostIsSet("tags"))
	assert.Equal(t, []any{"a", "b"}, in.Post("tags"))
	assert.Equal(t, "POST", in.Server("REQUEST_METHOD"))
}

func TestInputCapturesUpload(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "report"))
	fw, err := mw.CreateFormFile("doc", "report.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var in *input.Manager
	w := serve(req, func(ctx *testContext) handler.Response {
		in, _ = middleware.GetInput(ctx)
		return okResponse()
	}, middleware.Input[*testContext]())

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, in)
	assert.Equal(t, "report", in.Post("title"))

	doc, isParams := in.File("doc").(input.Params)
	require.True(t, isParams)
	assert.Equal(t, "report.txt", doc[input.FileName])
	assert.Equal(t, int64(5), doc[input.FileSize])
	assert.Equal(t, input.UploadErrOK, doc[input.FileError])
}

func TestInputRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("garbage"))
	req.Header.Set("Content-Type", "multipart/form-data")

	called := false
	w := serve(req, func(ctx *testContext) handler.Response {
		called = true
		return okResponse()
	}, middleware.InputWithConfig[*testContext](middleware.InputConfig{Logger: discardLogger()}))

	assert.False(t, called, "handler must not run when input capture fails")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInputAcceptsMalformedQueryOnFormPost(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/discount?rate=100%", strings.NewReader("code=SPRING"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var in *input.Manager
	w := serve(req, func(ctx *testContext) handler.Response {
		in, _ = middleware.GetInput(ctx)
		return okResponse()
	}, middleware.InputWithConfig[*testContext](middleware.InputConfig{Logger: discardLogger()}))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, in)
	assert.Equal(t, "100%", in.Get("rate"))
	assert.Equal(t, "SPRING", in.Post("code"))
}

func TestInputRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	form := url.Values{"blob": {strings.Repeat("x", 2048)}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.ContentLength = -1 // unknown length, so only the reader enforces the limit

	w := serve(req, func(ctx *testContext) handler.Response {
		return okResponse()
	},
		middleware.BodyLimitWithSize[*testContext](512),
		middleware.InputWithConfig[*testContext](middleware.InputConfig{Logger: discardLogger()}),
	)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestInputWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("config and options applied", func(t *testing.T) {
		t.Parallel()

		cfg := input.DefaultConfig()
		cfg.Sanitize = false
		cfg.RequestOrder = "CG"

		req := httptest.NewRequest(http.MethodGet, "/?x=%3Ci%3Eq%3C%2Fi%3E&id=from-query", nil)
		req.AddCookie(&http.Cookie{Name: "id", Value: "from-cookie"})

		var in *input.Manager
		serve(req, func(ctx *testContext) handler.Response {
			in, _ = middleware.GetInput(ctx)
			return okResponse()
		}, middleware.InputWithConfig[*testContext](middleware.InputConfig{
			Config: &cfg,
			Logger: discardLogger(),
		}))

		require.NotNil(t, in)
		assert.Equal(t, "<i>q</i>", in.Get("x"))
		assert.Equal(t, "from-cookie", in.Request("id"))
	})

	t.Run("skip leaves context untouched", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)

		found := true
		serve(req, func(ctx *testContext) handler.Response {
			_, found = middleware.GetInput(ctx)
			return okResponse()
		}, middleware.InputWithConfig[*testContext](middleware.InputConfig{
			Skip: func(ctx handler.Context) bool {
				return ctx.Request().URL.Path == "/health"
			},
		}))

		assert.False(t, found)
	})
}

func TestGetInputFallsBackToContext(t *testing.T) {
	t.Parallel()

	m := input.New(input.Source{Query: input.Params{"a": "1"}})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(input.WithContext(req.Context(), m))

	ctx := newTestContext(httptest.NewRecorder(), req)
	got, found := middleware.GetInput(ctx)

	require.True(t, found)
	assert.Same(t, m, got)
}
