package imgurclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/fivetwenty-io/imgur-client/pkg/imgurclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := imgurclient.New(&imgur.Config{ClientID: "cid"})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "https://api.imgur.com", client.BaseURL())
		assert.False(t, client.IsAuthenticated())
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := imgurclient.New(nil)
		require.ErrorIs(t, err, imgur.ErrConfigRequired)
	})

	t.Run("missing client id", func(t *testing.T) {
		t.Parallel()

		_, err := imgurclient.New(&imgur.Config{})
		require.ErrorIs(t, err, imgur.ErrAuthentication)
	})

	t.Run("mashape key switches gateway", func(t *testing.T) {
		t.Parallel()

		client, err := imgurclient.New(&imgur.Config{ClientID: "cid", MashapeKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, "https://imgur-apiv3.p.mashape.com", client.BaseURL())
	})

	t.Run("talks to the configured host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/3/image/abc", request.URL.Path)
			assert.Equal(t, "Client-ID cid", request.Header.Get("Authorization"))
			assert.Equal(t, "imgur-test", request.Header.Get("User-Agent"))
			writer.Header().Set("X-RateLimit-ClientRemaining", "99")
			_, _ = io.WriteString(writer, `{"data":{"id":"abc","title":"cat","link":"https://i.imgur.com/abc.png"}}`)
		}))
		defer server.Close()

		client, err := imgurclient.New(&imgur.Config{
			ClientID:     "cid",
			BaseURL:      server.URL,
			UserAgent:    "imgur-test",
			RetryMax:     1,
			RetryWaitMin: time.Millisecond,
		})
		require.NoError(t, err)

		image, err := client.GetImage(context.Background(), "abc")
		require.NoError(t, err)

		title, err := image.Title(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "cat", title)
		assert.Equal(t, 99, client.RateLimit().ClientRemaining)
	})
}

func TestNewWithClientID(t *testing.T) {
	t.Parallel()

	client, err := imgurclient.NewWithClientID("cid")
	require.NoError(t, err)
	assert.False(t, client.IsAuthenticated())
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := imgurclient.NewWithToken("cid", "test-token")
	require.NoError(t, err)
	assert.True(t, client.IsAuthenticated())
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("reads credentials and defaults", func(t *testing.T) {
		t.Setenv("IMGUR_CLIENT_ID", "env-client")
		t.Setenv("IMGUR_CLIENT_SECRET", "env-secret")
		t.Setenv("IMGUR_ACCESS_TOKEN", "")
		t.Setenv("IMGUR_VERIFY_SSL", "")
		t.Setenv("IMGUR_TIMEOUT", "")

		config, err := imgurclient.ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "env-client", config.ClientID)
		assert.Equal(t, "env-secret", config.ClientSecret)
		assert.Empty(t, config.AccessToken)
		assert.False(t, config.SkipTLSVerify)
		assert.Equal(t, 30*time.Second, config.HTTPTimeout)
	})

	t.Run("disables verification and overrides timeout", func(t *testing.T) {
		t.Setenv("IMGUR_CLIENT_ID", "env-client")
		t.Setenv("IMGUR_VERIFY_SSL", "false")
		t.Setenv("IMGUR_TIMEOUT", "45")

		config, err := imgurclient.ConfigFromEnv()
		require.NoError(t, err)
		assert.True(t, config.SkipTLSVerify)
		assert.Equal(t, 45*time.Second, config.HTTPTimeout)
	})

	t.Run("rejects a bad timeout", func(t *testing.T) {
		t.Setenv("IMGUR_TIMEOUT", "soon")

		_, err := imgurclient.ConfigFromEnv()
		require.ErrorIs(t, err, imgurclient.ErrInvalidTimeout)
	})
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "", expected: 30 * time.Second},
		{input: "10", expected: 10 * time.Second},
		{input: "2.5", expected: 2500 * time.Millisecond},
		{input: "1m30s", expected: 90 * time.Second},
		{input: "0", wantErr: true},
		{input: "-5s", wantErr: true},
		{input: "later", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := imgurclient.ParseTimeout(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
