package imgur_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func downloadFixture(t *testing.T, title string) (*imgur.Image, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32

	cdn := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)

		if request.URL.Path == "/missing.png" {
			http.NotFound(writer, request)

			return
		}

		_, _ = io.WriteString(writer, "bytes:"+request.URL.Path)
	}))
	t.Cleanup(cdn.Close)

	transport := newFakeTransport()
	client, err := imgur.New(&imgur.Config{
		ClientID:   "test-client",
		BaseURL:    testBaseURL,
		HTTPClient: cdn.Client(),
	}, transport)
	require.NoError(t, err)

	transport.on(http.MethodGet, "/3/image/abc",
		`{"id":"abc","title":`+title+`,"link":"`+cdn.URL+`/abc.png"}`)

	image, err := client.GetImage(context.Background(), "abc")
	require.NoError(t, err)

	return image, &hits
}

//nolint:funlen
func TestImage_Download(t *testing.T) {
	t.Parallel()

	t.Run("names the file after the title", func(t *testing.T) {
		t.Parallel()

		image, _ := downloadFixture(t, `"sunset"`)
		dir := t.TempDir()

		path, err := image.Download(context.Background(), imgur.DownloadOptions{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sunset.png"), path)

		contents, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "bytes:/abc.png", string(contents))
	})

	t.Run("falls back to the id", func(t *testing.T) {
		t.Parallel()

		image, _ := downloadFixture(t, `"a/b"`)
		dir := t.TempDir()

		path, err := image.Download(context.Background(), imgur.DownloadOptions{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "abc.png"), path)
	})

	t.Run("thumbnail", func(t *testing.T) {
		t.Parallel()

		image, _ := downloadFixture(t, `null`)
		dir := t.TempDir()

		path, err := image.Download(context.Background(), imgur.DownloadOptions{Dir: dir, Name: "pic", Size: imgur.SmallSquare})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "pics.png"), path)

		contents, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "bytes:/abcs.png", string(contents))
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		image, hits := downloadFixture(t, `"sunset"`)
		dir := t.TempDir()
		existing := filepath.Join(dir, "sunset.png")
		require.NoError(t, os.WriteFile(existing, []byte("old"), 0o600))

		_, err := image.Download(context.Background(), imgur.DownloadOptions{Dir: dir})
		require.ErrorIs(t, err, imgur.ErrFileOverwrite)
		assert.Zero(t, hits.Load())

		contents, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, "old", string(contents))

		_, err = image.Download(context.Background(), imgur.DownloadOptions{Dir: dir, Overwrite: true})
		require.NoError(t, err)

		contents, err = os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, "bytes:/abc.png", string(contents))
	})
}
