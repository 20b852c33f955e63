package imgur

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var imgurURLPattern = regexp.MustCompile(`(?i)^(https?://)?(www\.|m\.|i\.)?imgur\.com(/|$)`)

// urlShape identifies which kind of resource a browser URL path points at.
type urlShape int

const (
	shapeUnknown urlShape = iota
	shapeAlbum
	shapeComment
	shapeGallery
	shapeImage
	shapeUser
)

func (s urlShape) String() string {
	switch s {
	case shapeAlbum:
		return "album"
	case shapeComment:
		return "comment"
	case shapeGallery:
		return "gallery"
	case shapeImage:
		return "image"
	case shapeUser:
		return "user"
	default:
		return "unknown"
	}
}

// Checked in order; the first match wins.
var urlShapes = []struct {
	shape   urlShape
	pattern *regexp.Regexp
}{
	{shapeAlbum, regexp.MustCompile(`^/a/([\w.]+)$`)},
	{shapeComment, regexp.MustCompile(`^/gallery/\w+/comment/([\w.]+)$`)},
	{shapeGallery, regexp.MustCompile(`^/(?:gallery|r/\w+?)/([\w.]+)$`)},
	// Image extensions are three or four characters long.
	{shapeImage, regexp.MustCompile(`^/(\w+)(?:\.\w{3,4})?$`)},
	{shapeUser, regexp.MustCompile(`^/user/([\w.]+)$`)},
}

// IsImgurURL reports whether raw points at the imgur website.
func IsImgurURL(raw string) bool {
	return imgurURLPattern.MatchString(strings.TrimSpace(raw))
}

// matchURL returns the shape and id encoded in the path of raw.
func matchURL(raw string) (urlShape, string) {
	raw = strings.TrimSpace(raw)
	if !IsImgurURL(raw) {
		return shapeUnknown, ""
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return shapeUnknown, ""
	}

	for _, candidate := range urlShapes {
		if m := candidate.pattern.FindStringSubmatch(parsed.Path); m != nil {
			return candidate.shape, m[1]
		}
	}

	return shapeUnknown, ""
}

// GetAtURL returns the resource a browser URL points at: an *Album,
// *Comment, *GalleryImage, *GalleryAlbum, *Image or *User. URLs outside
// imgur, or with a path of no known shape, return nil and no error.
//
// A bare /<id> path can be a plain image or a gallery image. The plain
// image is fetched first, then the gallery variant is tried (the subreddit
// variant when the image has a section); a not-found there falls back to the
// plain image.
func (c *Client) GetAtURL(ctx context.Context, raw string) (Resource, error) {
	shape, id := matchURL(raw)

	c.debug("resolving url", map[string]interface{}{"url": raw, "shape": shape.String(), "id": id})

	switch shape {
	case shapeAlbum:
		return asResource(c.GetAlbum(ctx, id))
	case shapeComment:
		return asResource(c.GetComment(ctx, id))
	case shapeGallery:
		return asResource(c.getGalleryItem(ctx, id))
	case shapeImage:
		return c.resolveImage(ctx, id)
	case shapeUser:
		return asResource(c.GetUser(ctx, id))
	default:
		return nil, nil
	}
}

// asResource keeps a failed lookup from becoming a non-nil interface
// holding a nil pointer.
func asResource[T Resource](value T, err error) (Resource, error) {
	if err != nil {
		return nil, err
	}

	return value, nil
}

// getGalleryItem tries the id as a gallery image, then as a gallery album.
// The URL alone cannot tell the two apart.
func (c *Client) getGalleryItem(ctx context.Context, id string) (GalleryResource, error) {
	image, err := c.GetGalleryImage(ctx, id)
	if err == nil {
		return image, nil
	}

	if !IsNotFound(err) {
		return nil, err
	}

	album, err := c.GetGalleryAlbum(ctx, id)
	if err != nil {
		return nil, err
	}

	return album, nil
}

func (c *Client) resolveImage(ctx context.Context, id string) (Resource, error) {
	image, err := c.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		gallery *GalleryImage
		section = image.data.Section
	)

	if section != "" {
		gallery, err = c.GetSubredditImage(ctx, section, id)
	} else {
		gallery, err = c.GetGalleryImage(ctx, id)
	}

	switch {
	case err == nil:
		return gallery, nil
	case IsNotFound(err):
		return image, nil
	default:
		return nil, fmt.Errorf("resolving image %s: %w", id, err)
	}
}
