package imgur

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	t.Parallel()

	r := newRoute("/3/account/{user}/albums/{page}", "user", "sarah")
	assert.Equal(t, "/3/account/sarah/albums/0", r.page(0))
	assert.Equal(t, "/3/account/sarah/albums/7", r.page(7))
	assert.Equal(t, "/3/account/sarah/albums/{page}", r.String())

	escaped := newRoute("/3/gallery/r/{subreddit}", "subreddit", "a b/c")
	assert.Equal(t, "/3/gallery/r/a%20b%2Fc", escaped.String())
}

func TestFlexString(t *testing.T) {
	t.Parallel()

	var value struct {
		A flexString `json:"a"`
		B flexString `json:"b"`
		C flexString `json:"c"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"x1","b":384077,"c":null}`), &value))
	assert.Equal(t, flexString("x1"), value.A)
	assert.Equal(t, flexString("384077"), value.B)
	assert.Equal(t, flexString(""), value.C)
	assert.Equal(t, "12", rawString(json.RawMessage(`12`)))
}

func TestMatchURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url   string
		shape urlShape
		id    string
	}{
		{"https://imgur.com/a/xyz", shapeAlbum, "xyz"},
		{"imgur.com/gallery/abc/comment/99", shapeComment, "99"},
		{"https://imgur.com/gallery/g1", shapeGallery, "g1"},
		{"https://imgur.com/r/aww/r1", shapeGallery, "r1"},
		{"https://i.imgur.com/abc.gifv", shapeImage, "abc"},
		{"https://imgur.com/abc", shapeImage, "abc"},
		{"https://imgur.com/user/sarah", shapeUser, "sarah"},
		{"https://imgur.com/abc.toolong", shapeUnknown, ""},
		{"https://example.com/a/xyz", shapeUnknown, ""},
	}

	for _, tt := range tests {
		shape, id := matchURL(tt.url)
		assert.Equal(t, tt.shape, shape, tt.url)
		assert.Equal(t, tt.id, id, tt.url)
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	assert.True(t, truthy(json.RawMessage(`true`)))
	assert.True(t, truthy(json.RawMessage(`"favorited"`)))
	assert.True(t, truthy(json.RawMessage(`{"id":1}`)))
	assert.False(t, truthy(json.RawMessage(`false`)))
	assert.False(t, truthy(json.RawMessage(`null`)))
	assert.False(t, truthy(json.RawMessage(`""`)))
}
