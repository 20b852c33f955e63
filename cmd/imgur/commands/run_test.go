package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/fivetwenty-io/imgur-client/pkg/imgur"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeJSON(writer http.ResponseWriter, body string) {
	writer.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(writer, body)
}

//nolint:funlen
func TestImageCommands(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		useViper(t)
		viper.Set("output", constants.FormatJSON)

		hits := useAPI(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/3/image/abc", request.URL.Path)
			assert.Equal(t, "Client-ID cli-test", request.Header.Get("Authorization"))
			writeJSON(writer, `{"data":{"id":"abc","title":"cat","link":"https://i.imgur.com/abc.png","type":"image/png","width":10,"height":20}}`)
		})

		out, err := run(NewImageCommand(), "get", "abc")
		require.NoError(t, err)

		var view ImageView
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, "abc", view.ID)
		assert.Equal(t, "Image", view.Kind)
		assert.Equal(t, "cat", view.Title)
		assert.Equal(t, 10, view.Width)
		assert.Equal(t, 20, view.Height)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("upload needs exactly one source", func(t *testing.T) {
		useViper(t)
		hits := useAPI(t, func(http.ResponseWriter, *http.Request) {})

		_, err := run(NewImageCommand(), "upload")
		require.ErrorIs(t, err, constants.ErrPathOrURLRequired)

		_, err = run(NewImageCommand(), "upload", "--path", "a.png", "--url", "https://example.com/a.png")
		require.ErrorIs(t, err, constants.ErrPathOrURLRequired)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("download rejects unknown size", func(t *testing.T) {
		useViper(t)
		hits := useAPI(t, func(http.ResponseWriter, *http.Request) {})

		_, err := run(NewImageCommand(), "download", "abc", "--size", "enormous")
		require.Error(t, err)
		assert.True(t, imgur.IsInvalidParameter(err))
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("missing client id", func(t *testing.T) {
		useViper(t)
		viper.Set("client_id", "")

		_, err := run(NewImageCommand(), "get", "abc")
		require.ErrorIs(t, err, constants.ErrNoClientID)
	})
}

//nolint:funlen
func TestResolveCommand(t *testing.T) {
	t.Run("album url", func(t *testing.T) {
		useViper(t)

		useAPI(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/3/album/xyz", request.URL.Path)
			writeJSON(writer, `{"data":{"id":"xyz","title":"Trip","cover":"i1","images":[{"id":"i1"},{"id":"i2"}]}}`)
		})

		out, err := run(NewResolveCommand(), "https://imgur.com/a/xyz")
		require.NoError(t, err)
		assert.Contains(t, out, "Trip")
		assert.Contains(t, out, "Cover")
		assert.Contains(t, out, "i1")
	})

	t.Run("user url as yaml", func(t *testing.T) {
		useViper(t)
		viper.Set("output", constants.FormatYAML)

		useAPI(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/3/account/sarah", request.URL.Path)
			writeJSON(writer, `{"data":{"id":7,"url":"sarah","bio":"hi","reputation":12.5,"created":1400000000}}`)
		})

		out, err := run(NewResolveCommand(), "imgur.com/user/sarah")
		require.NoError(t, err)

		var view UserView
		require.NoError(t, yaml.Unmarshal([]byte(out), &view))
		assert.Equal(t, "sarah", view.Name)
		assert.Equal(t, "hi", view.Bio)
		assert.InDelta(t, 12.5, view.Reputation, 0.001)
	})

	t.Run("not an imgur url", func(t *testing.T) {
		useViper(t)
		hits := useAPI(t, func(http.ResponseWriter, *http.Request) {})

		_, err := run(NewResolveCommand(), "https://example.com/a/xyz")
		require.ErrorIs(t, err, constants.ErrNotImgurResource)
		assert.Equal(t, int32(0), hits.Load())
	})
}

func TestGalleryVoteCommand(t *testing.T) {
	useViper(t)
	hits := useAPI(t, func(http.ResponseWriter, *http.Request) {})

	_, err := run(NewGalleryCommand(), "vote", "abc", "sideways")
	require.ErrorIs(t, err, constants.ErrInvalidVote)
	assert.Equal(t, int32(0), hits.Load())
}

func readConfigFile(t *testing.T, path string) Config {
	t.Helper()

	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)

	var config Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}

//nolint:funlen
func TestConfigCommand(t *testing.T) {
	t.Run("set and show", func(t *testing.T) {
		configFile := useViper(t)

		out, err := run(NewConfigCommand(), "set", "client_secret", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "Set client_secret = ***\n", out)

		_, err = run(NewConfigCommand(), "set", "timeout", "45")
		require.NoError(t, err)

		stored := readConfigFile(t, configFile)
		assert.Equal(t, "cli-test", stored.ClientID)
		assert.Equal(t, "s3cret", stored.ClientSecret)
		assert.Equal(t, "45", stored.Timeout)

		viper.Set("output", constants.FormatJSON)

		out, err = run(NewConfigCommand(), "show")
		require.NoError(t, err)

		var shown Config
		require.NoError(t, json.Unmarshal([]byte(out), &shown))
		assert.Equal(t, constants.MaskedSecret, shown.ClientSecret)
		assert.Equal(t, "cli-test", shown.ClientID)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		useViper(t)

		_, err := run(NewConfigCommand(), "set", "favorite_color", "blue")
		require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

		_, err = run(NewConfigCommand(), "set", "rate_limit", "fast")
		require.ErrorIs(t, err, constants.ErrInvalidConfigVal)

		_, err = run(NewConfigCommand(), "set", "output", "xml")
		require.ErrorIs(t, err, constants.ErrInvalidOutputType)

		_, err = run(NewConfigCommand(), "set", "timeout", "-5")
		require.Error(t, err)
	})

	t.Run("unset and clear", func(t *testing.T) {
		configFile := useViper(t)

		_, err := run(NewConfigCommand(), "set", "mashape_key", "m")
		require.NoError(t, err)

		_, err = run(NewConfigCommand(), "unset", "mashape_key")
		require.NoError(t, err)
		assert.Empty(t, readConfigFile(t, configFile).MashapeKey)

		_, err = run(NewConfigCommand(), "clear")
		require.NoError(t, err)

		_, err = os.Stat(configFile)
		assert.True(t, os.IsNotExist(err))
	})
}

//nolint:funlen
func TestAuthCommand(t *testing.T) {
	t.Run("pin stores tokens", func(t *testing.T) {
		configFile := useViper(t)
		viper.Set("client_secret", "secret")

		useAPI(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/oauth2/token", request.URL.Path)
			assert.NoError(t, request.ParseForm())
			assert.Equal(t, "pin", request.PostForm.Get("grant_type"))
			assert.Equal(t, "1234", request.PostForm.Get("pin"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token":     "fresh",
				"refresh_token":    "fresh-refresh",
				"expires_in":       3600,
				"token_type":       "bearer",
				"account_username": "sarah",
			})
		})

		out, err := run(NewAuthCommand(), "pin", "1234")
		require.NoError(t, err)
		assert.Equal(t, "Successfully authorized as sarah\n", out)

		stored := readConfigFile(t, configFile)
		assert.Equal(t, "fresh", stored.AccessToken)
		assert.Equal(t, "fresh-refresh", stored.RefreshToken)
		assert.Equal(t, "sarah", stored.AccountUsername)
		assert.NotNil(t, stored.TokenExpiresAt)
		assert.Equal(t, "fresh", viper.GetString("access_token"))
	})

	t.Run("refresh needs a refresh token", func(t *testing.T) {
		useViper(t)
		viper.Set("client_secret", "secret")

		_, err := run(NewAuthCommand(), "refresh")
		require.ErrorIs(t, err, constants.ErrNoRefreshToken)
	})

	t.Run("refresh needs a client secret", func(t *testing.T) {
		useViper(t)
		viper.Set("refresh_token", "r")

		_, err := run(NewAuthCommand(), "refresh")
		require.ErrorIs(t, err, constants.ErrNoClientSecret)
	})

	t.Run("status and logout", func(t *testing.T) {
		configFile := useViper(t)
		viper.Set("access_token", "token")
		viper.Set("account_username", "sarah")
		viper.Set("output", constants.FormatJSON)

		out, err := run(NewAuthCommand(), "status")
		require.NoError(t, err)

		var status AuthStatus
		require.NoError(t, json.Unmarshal([]byte(out), &status))
		assert.True(t, status.Authenticated)
		assert.False(t, status.Expired)
		assert.Equal(t, "sarah", status.Account)
		assert.False(t, status.CanRefresh)

		_, err = run(NewAuthCommand(), "logout")
		require.NoError(t, err)

		stored := readConfigFile(t, configFile)
		assert.Empty(t, stored.AccessToken)
		assert.Empty(t, stored.AccountUsername)
		assert.Equal(t, "cli-test", stored.ClientID)
	})

	t.Run("code from redirect url", func(t *testing.T) {
		useViper(t)
		viper.Set("client_secret", "secret")
		hits := useAPI(t, func(http.ResponseWriter, *http.Request) {})

		_, err := run(NewAuthCommand(), "code", "https://example.com/callback?error=access_denied")
		require.Error(t, err)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("url", func(t *testing.T) {
		useViper(t)

		out, err := run(NewAuthCommand(), "url", "--state", "xyz")
		require.NoError(t, err)
		assert.Contains(t, out, "/oauth2/authorize?")
		assert.Contains(t, out, "response_type=pin")
		assert.Contains(t, out, "client_id=cli-test")
	})
}
