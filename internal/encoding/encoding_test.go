package encoding_test

import (
	"net/url"
	"testing"

	"github.com/fivetwenty-io/imgur-client/internal/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct{ id string }

func (i *item) ID() string { return i.id }

type albumParams struct {
	Title   string          `url:"title,omitempty"`
	Privacy string          `url:"privacy,omitempty"`
	Public  *bool           `url:"public_images,omitempty"`
	Count   int             `url:"count,omitempty"`
	IDs     encoding.IDList `url:"ids,omitempty"`
	Cover   encoding.Nested `url:"cover,omitempty"`
}

func TestValues(t *testing.T) {
	t.Parallel()

	t.Run("nil params", func(t *testing.T) {
		t.Parallel()

		values, err := encoding.Values(nil)
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("struct params", func(t *testing.T) {
		t.Parallel()

		public := false
		values, err := encoding.Values(albumParams{
			Title:  "holiday",
			Public: &public,
			Count:  3,
			IDs:    encoding.IDs(&item{id: "a"}, nil, &item{id: "b"}),
			Cover:  encoding.Nested{Value: &item{id: "c"}},
		})
		require.NoError(t, err)

		assert.Equal(t, "holiday", values.Get("title"))
		assert.Equal(t, "false", values.Get("public_images"))
		assert.Equal(t, "3", values.Get("count"))
		assert.Equal(t, "a,b", values.Get("ids"))
		assert.Equal(t, "c", values.Get("cover"))
		assert.NotContains(t, values, "privacy")
	})

	t.Run("empty values are removed", func(t *testing.T) {
		t.Parallel()

		values, err := encoding.Values(url.Values{"q": {"cats"}, "sort": {""}})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"q": {"cats"}}, values)
	})

	t.Run("string map", func(t *testing.T) {
		t.Parallel()

		values, err := encoding.Values(map[string]string{"terms": "1", "title": ""})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"terms": {"1"}}, values)
	})
}

func TestSplit(t *testing.T) {
	t.Parallel()

	values := url.Values{"ids": {"a, b,c"}, "title": {"x"}}
	rest, split := encoding.Split(values, "ids")

	assert.Equal(t, url.Values{"title": {"x"}}, rest)
	assert.Equal(t, []string{"a", "b", "c"}, split["ids"])
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	flat := encoding.Flatten(url.Values{"title": {"x", "y"}, "ids": {"a,b"}})
	assert.Equal(t, map[string]string{"title": "x", "ids": "a,b"}, flat)
}
