package imgur_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pagedUser(t *testing.T, defaultLimit int, pages ...string) (*imgur.User, *fakeTransport) {
	t.Helper()

	transport := newFakeTransport()
	client, err := imgur.New(&imgur.Config{
		ClientID:     "test-client",
		BaseURL:      testBaseURL,
		DefaultLimit: defaultLimit,
	}, transport)
	require.NoError(t, err)

	transport.on(http.MethodGet, "/3/account/sarah", `{"url":"sarah","id":1}`)

	for i, body := range pages {
		transport.on(http.MethodGet, "/3/account/sarah/images/"+string(rune('0'+i)), body)
	}

	user, err := client.GetUser(context.Background(), "sarah")
	require.NoError(t, err)

	return user, transport
}

//nolint:funlen
func TestPagination(t *testing.T) {
	t.Parallel()

	t.Run("stops once the ceiling is covered", func(t *testing.T) {
		t.Parallel()

		user, transport := pagedUser(t, 0, page("a", 5), page("b", 5), page("c", 5))

		images, err := user.Images(context.Background(), 8)
		require.NoError(t, err)
		require.Len(t, images, 8)
		assert.Equal(t, "aa", images[0].ID())
		assert.Equal(t, "bc", images[7].ID())
		assert.Equal(t, []string{
			"GET /3/account/sarah",
			"GET /3/account/sarah/images/0",
			"GET /3/account/sarah/images/1",
		}, transport.paths())
	})

	t.Run("exact fill needs one page", func(t *testing.T) {
		t.Parallel()

		user, transport := pagedUser(t, 0, page("a", 5), page("b", 5))

		images, err := user.Images(context.Background(), 5)
		require.NoError(t, err)
		assert.Len(t, images, 5)
		assert.Equal(t, 2, transport.calls())
	})

	t.Run("stops on an empty page", func(t *testing.T) {
		t.Parallel()

		user, transport := pagedUser(t, 0, page("a", 3), "[]")

		images, err := user.Images(context.Background(), 100)
		require.NoError(t, err)
		assert.Len(t, images, 3)
		assert.Equal(t, 3, transport.calls())
	})

	t.Run("empty first page", func(t *testing.T) {
		t.Parallel()

		user, _ := pagedUser(t, 0, "[]")

		images, err := user.Images(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, images)
	})

	t.Run("zero and negative limits use the default ceiling", func(t *testing.T) {
		t.Parallel()

		for _, limit := range []int{0, -1} {
			user, transport := pagedUser(t, 4, page("a", 5), page("b", 5))

			images, err := user.Images(context.Background(), limit)
			require.NoError(t, err)
			assert.Len(t, images, 4)
			assert.Equal(t, 2, transport.calls())
		}
	})

	t.Run("page failure aborts the listing", func(t *testing.T) {
		t.Parallel()

		user, _ := pagedUser(t, 0, page("a", 5))

		_, err := user.Images(context.Background(), 20)
		require.ErrorIs(t, err, imgur.ErrNotFound)
	})

	t.Run("page without a payload aborts the listing", func(t *testing.T) {
		t.Parallel()

		user, transport := pagedUser(t, 0, page("a", 5), "", page("c", 5))

		images, err := user.Images(context.Background(), 20)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page 1")
		assert.Nil(t, images)
		assert.Equal(t, 3, transport.calls())
	})

	t.Run("listed albums are partial", func(t *testing.T) {
		t.Parallel()

		user, transport := pagedUser(t, 0)
		transport.on(http.MethodGet, "/3/account/sarah/albums/0", `[{"id":"x1","title":"one"}]`)
		transport.on(http.MethodGet, "/3/account/sarah/albums/1", `[]`)

		albums, err := user.Albums(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, albums, 1)
		assert.False(t, albums[0].Fetched())

		title, err := albums[0].Title(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "one", title)
	})
}
