package input_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/input"
)

type searchQuery struct {
	Term  string   `form:"q"`
	Page  int      `form:"page"`
	Tags  []string `form:"tags"`
	Owner struct {
		Email string `form:"email"`
	} `form:"owner"`
}

func TestBindQuery(t *testing.T) {
	t.Parallel()

	m := input.New(input.Source{
		RequestURI: "/search?q=+%3Cb%3Ego%3C%2Fb%3E+&page=3&tags[]=a&tags[]=b&owner[email]=ann@example.com",
	})

	var q searchQuery
	require.NoError(t, m.BindQuery(&q))

	assert.Equal(t, "go", q.Term)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, []string{"a", "b"}, q.Tags)
	assert.Equal(t, "ann@example.com", q.Owner.Email)
}

func TestBindPost(t *testing.T) {
	t.Parallel()

	body, contentType := multipartBody(t,
		map[string]string{"title": " Report ", "count": "2"},
		uploadPart{field: "attachment", filename: "ignored.txt", content: "x"},
	)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)

	m, err := input.NewFromRequest(req, input.DefaultConfig())
	require.NoError(t, err)

	var form struct {
		Title string `form:"title"`
		Count int    `form:"count"`
	}
	require.NoError(t, m.BindPost(&form))
	assert.Equal(t, "Report", form.Title)
	assert.Equal(t, 2, form.Count)
}

func TestBindError(t *testing.T) {
	t.Parallel()

	m := input.New(input.Source{Query: input.Params{"page": "many"}})

	var q searchQuery
	err := m.BindQuery(&q)
	require.Error(t, err)
	assert.ErrorIs(t, err, input.ErrFailedToBind)
	assert.Contains(t, err.Error(), "query")
}

func TestBindNonStringValues(t *testing.T) {
	t.Parallel()

	m := input.New(input.Source{Body: input.Params{"page": 4, "q": nil}})

	var q searchQuery
	require.NoError(t, m.BindPost(&q))
	assert.Equal(t, 4, q.Page)
	assert.Empty(t, q.Term)
}
