package input_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/input"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m := input.New(input.Source{Query: input.Params{"a": "1"}})
		ctx := input.WithContext(context.Background(), m)

		got, ok := input.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, m, got)
		assert.Equal(t, "1", got.Get("a"))
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		got, ok := input.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("nil manager", func(t *testing.T) {
		t.Parallel()

		_, ok := input.FromContext(input.WithContext(context.Background(), nil))
		assert.False(t, ok)
	})
}
