package imgur

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/fivetwenty-io/imgur-client/internal/encoding"
)

// AlbumOptions describes a new album.
type AlbumOptions struct {
	Title       string
	Description string
	// Images are added once the album exists. Images that cannot be added
	// are skipped by imgur without an error.
	Images []Identifier
	Cover  Identifier
}

type albumCreateParams struct {
	Title       string          `url:"title,omitempty"`
	Description string          `url:"description,omitempty"`
	IDs         encoding.IDList `url:"ids,omitempty"`
	Cover       encoding.Nested `url:"cover,omitempty"`
}

// CreateAlbum creates an album. Anonymous albums can only be changed
// through their deletehash, which is set on the returned album.
func (c *Client) CreateAlbum(ctx context.Context, opts AlbumOptions) (*Album, error) {
	params := albumCreateParams{
		Title:       opts.Title,
		Description: opts.Description,
		IDs:         encoding.IDs(opts.Images...),
		Cover:       encoding.Nested{Value: opts.Cover},
	}

	data, err := c.send(ctx, &apiCall{
		method:   http.MethodPost,
		path:     "/3/album/",
		params:   params,
		asJSON:   true,
		splitIDs: len(opts.Images) > 0,
	})
	if err != nil {
		return nil, fmt.Errorf("creating album: %w", err)
	}

	return newAlbum(c, KindAlbum, data, false)
}

// UploadOptions describes an image upload. Exactly one of Path and URL
// must be set.
type UploadOptions struct {
	// Path is a local file, sent base64 encoded.
	Path string
	// URL is a remote image imgur fetches itself.
	URL         string
	Title       string
	Description string
	// Album receives the image. Anonymous albums are addressed by their
	// deletehash.
	Album Identifier
}

type uploadParams struct {
	Image       string          `url:"image"`
	Type        string          `url:"type"`
	Album       encoding.Nested `url:"album_id,omitempty"`
	Title       string          `url:"title,omitempty"`
	Description string          `url:"description,omitempty"`
}

// UploadImage uploads an image from a local path or a URL.
func (c *Client) UploadImage(ctx context.Context, opts UploadOptions) (*Image, error) {
	if (opts.Path == "") == (opts.URL == "") {
		return nil, &InvalidParameterError{Param: "path", Reason: "exactly one of path or url must be given"}
	}

	params := uploadParams{
		Image:       opts.URL,
		Type:        "url",
		Album:       encoding.Nested{Value: opts.Album},
		Title:       opts.Title,
		Description: opts.Description,
	}

	if opts.Path != "" {
		contents, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, &InvalidParameterError{Param: "path", Reason: err.Error()}
		}

		params.Image = base64.StdEncoding.EncodeToString(contents)
		params.Type = "base64"
	}

	data, err := c.send(ctx, &apiCall{method: http.MethodPost, path: "/3/image", params: params})
	if err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}

	// The upload response echoes title and description as null.
	data, err = overrideFields(data, map[string]string{"title": opts.Title, "description": opts.Description})
	if err != nil {
		return nil, err
	}

	return newImage(c, KindImage, data, true)
}

func overrideFields(payload json.RawMessage, fields map[string]string) (json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}

	for key, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}

		raw[key] = encoded
	}

	out, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding upload response: %w", err)
	}

	return out, nil
}
