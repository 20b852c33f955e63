//go:build integration

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// TestGalleryWorkflow browses the gallery and resolves one of its items
func TestGalleryWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("gallery", "list", "--limit", "3", "-o", "json")
	require.NoError(t, err, stderr)

	var items []summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &items))
	require.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 3)

	stdout, stderr, err = runner.Run("resolve", "https://imgur.com/gallery/"+items[0].ID, "-o", "json")
	require.NoError(t, err, stderr)

	var resolved map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resolved))
	assert.Equal(t, items[0].ID, resolved["id"])
	assert.Contains(t, []interface{}{"GalleryImage", "GalleryAlbum"}, resolved["kind"])

	stdout, stderr, err = runner.Run("gallery", "votes", items[0].ID, "-o", "json")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "ups")
}

// TestResolveWorkflow checks links that do not point at imgur
func TestResolveWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.Run("resolve", "https://example.com/a/abc")
	require.Error(t, err)
	assert.Contains(t, stderr, "does not point at an imgur resource")
}

// TestAccountWorkflow lists the content of the authorized account
func TestAccountWorkflow(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfAnonymous(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.Run("config", "set", "access_token", config.AccessToken)
	require.NoError(t, err, stderr)

	stdout, stderr, err := runner.Run("user", "get", "me", "-o", "json")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, `"name"`)

	_, stderr, err = runner.Run("user", "images", "me", "--limit", "5")
	require.NoError(t, err, stderr)

	_, stderr, err = runner.Run("notifications", "--new")
	require.NoError(t, err, stderr)
}
