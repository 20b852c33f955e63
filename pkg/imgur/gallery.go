package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// galleryTarget is all the gallery operations need from the value they act on.
type galleryTarget interface {
	ID() string
	requester() *Client
}

// GalleryItem holds the operations shared by gallery images and gallery
// albums.
type GalleryItem struct {
	target galleryTarget
}

// Votes is the vote tally of a gallery item.
type Votes struct {
	Ups   int64 `json:"ups"   yaml:"ups"`
	Downs int64 `json:"downs" yaml:"downs"`
}

func (g GalleryItem) path(suffix string) string {
	return newRoute("/3/gallery/{id}"+suffix, "id", g.target.ID()).String()
}

// Comment posts a top-level comment. Requires authentication.
func (g GalleryItem) Comment(ctx context.Context, text string) (*Comment, error) {
	if text == "" {
		return nil, &InvalidParameterError{Param: "text", Reason: "comment text is required"}
	}

	c := g.target.requester()
	params := map[string]string{"image_id": g.target.ID(), "comment": text}

	data, err := c.send(ctx, &apiCall{method: http.MethodPost, path: "/3/comment", params: params, needsAuth: true})
	if err != nil {
		return nil, fmt.Errorf("commenting on gallery item: %w", err)
	}

	return newComment(c, data, false)
}

// Upvote likes the item. Upvoting twice resets the vote to neutral.
// Requires authentication.
func (g GalleryItem) Upvote(ctx context.Context) error {
	return g.vote(ctx, "up")
}

// Downvote dislikes the item. Downvoting twice resets the vote to neutral.
// Requires authentication.
func (g GalleryItem) Downvote(ctx context.Context) error {
	return g.vote(ctx, "down")
}

func (g GalleryItem) vote(ctx context.Context, direction string) error {
	call := &apiCall{method: http.MethodPost, path: g.path("/vote/" + direction), needsAuth: true}
	if _, err := g.target.requester().send(ctx, call); err != nil {
		return fmt.Errorf("voting on gallery item: %w", err)
	}

	return nil
}

// Comments fetches the top-level comments.
func (g GalleryItem) Comments(ctx context.Context) ([]*Comment, error) {
	c := g.target.requester()

	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: g.path("/comments")})
	if err != nil {
		return nil, fmt.Errorf("getting gallery comments: %w", err)
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("decoding gallery comments: %w", err)
	}

	return newComments(c, payloads)
}

// Votes fetches the current vote tally.
func (g GalleryItem) Votes(ctx context.Context) (*Votes, error) {
	data, err := g.target.requester().send(ctx, &apiCall{method: http.MethodGet, path: g.path("/votes")})
	if err != nil {
		return nil, fmt.Errorf("getting gallery votes: %w", err)
	}

	var votes Votes
	if err := json.Unmarshal(data, &votes); err != nil {
		return nil, fmt.Errorf("decoding gallery votes: %w", err)
	}

	return &votes, nil
}

func (g GalleryItem) remove(ctx context.Context) error {
	call := &apiCall{method: http.MethodDelete, path: g.path(""), needsAuth: true}
	if _, err := g.target.requester().send(ctx, call); err != nil {
		return fmt.Errorf("removing from gallery: %w", err)
	}

	return nil
}

// GalleryResource is an entry of a gallery listing: a *GalleryImage or a
// *GalleryAlbum.
type GalleryResource interface {
	Resource
	ID() string
	IsAlbum() bool
	Comment(ctx context.Context, text string) (*Comment, error)
	Upvote(ctx context.Context) error
	Downvote(ctx context.Context) error
	Comments(ctx context.Context) ([]*Comment, error)
	Votes(ctx context.Context) (*Votes, error)
}

// GalleryImage is an image published to the gallery.
type GalleryImage struct {
	*Image
	GalleryItem
}

func wrapGalleryImage(image *Image) *GalleryImage {
	return &GalleryImage{Image: image, GalleryItem: GalleryItem{target: image}}
}

func (g *GalleryImage) IsAlbum() bool { return false }

// RemoveFromGallery unpublishes the image and reloads it as a plain image.
// The underlying *Image is updated in place and returned. Requires
// authentication.
func (g *GalleryImage) RemoveFromGallery(ctx context.Context) (*Image, error) {
	if err := g.remove(ctx); err != nil {
		return nil, err
	}

	data, err := g.client.send(ctx, &apiCall{method: http.MethodGet, path: imagePath(KindImage, g.ID())})
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	if err := g.become(KindImage, data); err != nil {
		return nil, err
	}

	return g.Image, nil
}

// GalleryAlbum is an album published to the gallery.
type GalleryAlbum struct {
	*Album
	GalleryItem
}

func wrapGalleryAlbum(album *Album) *GalleryAlbum {
	return &GalleryAlbum{Album: album, GalleryItem: GalleryItem{target: album}}
}

func (g *GalleryAlbum) IsAlbum() bool { return true }

// RemoveFromGallery unpublishes the album and reloads it as a plain album.
// The underlying *Album is updated in place and returned. Requires
// authentication.
func (g *GalleryAlbum) RemoveFromGallery(ctx context.Context) (*Album, error) {
	if err := g.remove(ctx); err != nil {
		return nil, err
	}

	data, err := g.client.send(ctx, &apiCall{method: http.MethodGet, path: albumPath(KindAlbum, g.ID())})
	if err != nil {
		return nil, fmt.Errorf("loading album: %w", err)
	}

	if err := g.become(KindAlbum, data); err != nil {
		return nil, err
	}

	return g.Album, nil
}

// galleryResource picks the gallery type for one listing entry from its
// is_album marker.
func (c *Client) galleryResource(payload json.RawMessage) (GalleryResource, error) {
	var marker struct {
		IsAlbum bool `json:"is_album"`
	}
	if err := json.Unmarshal(payload, &marker); err != nil {
		return nil, fmt.Errorf("decoding gallery entry: %w", err)
	}

	if marker.IsAlbum {
		album, err := newAlbum(c, KindGalleryAlbum, payload, false)
		if err != nil {
			return nil, err
		}

		return wrapGalleryAlbum(album), nil
	}

	image, err := newImage(c, KindGalleryImage, payload, true)
	if err != nil {
		return nil, err
	}

	return wrapGalleryImage(image), nil
}

func (c *Client) galleryResources(payloads []json.RawMessage) ([]GalleryResource, error) {
	items := make([]GalleryResource, 0, len(payloads))

	for _, payload := range payloads {
		item, err := c.galleryResource(payload)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func (c *Client) submitToGallery(ctx context.Context, id, title string, bypassTerms bool) error {
	terms := "0"
	if bypassTerms {
		terms = "1"
	}

	params := map[string]string{"title": title, "terms": terms}
	path := newRoute("/3/gallery/{id}", "id", id).String()

	_, err := c.send(ctx, &apiCall{method: http.MethodPost, path: path, params: params, needsAuth: true})

	return err
}

// GalleryOptions selects a gallery listing. Zero values take the defaults
// noted per field.
type GalleryOptions struct {
	// Section is hot, top or user. Default hot.
	Section string
	// Sort is viral, top, time or rising. rising is only valid for the user
	// section. Default viral.
	Sort string
	// Window is day, week, month, year or all and only matters for the top
	// section. Default day.
	Window string
	// HideViral drops viral images from the user section.
	HideViral bool
	// Limit caps the number of results; zero or less uses the client default.
	Limit int
}

func oneOf(param, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}

	return &InvalidParameterError{Param: param, Reason: fmt.Sprintf("must be one of %v, got %q", allowed, value)}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

var galleryWindows = []string{"day", "week", "month", "year", "all"}

// GetGallery lists gallery images and albums.
func (c *Client) GetGallery(ctx context.Context, opts GalleryOptions) ([]GalleryResource, error) {
	section := orDefault(opts.Section, "hot")
	sort := orDefault(opts.Sort, "viral")
	window := orDefault(opts.Window, "day")

	if err := oneOf("section", section, "hot", "top", "user"); err != nil {
		return nil, err
	}

	if err := oneOf("sort", sort, "viral", "top", "time", "rising"); err != nil {
		return nil, err
	}

	if sort == "rising" && section != "user" {
		return nil, &InvalidParameterError{Param: "sort", Reason: "rising is only available for the user section"}
	}

	if err := oneOf("window", window, galleryWindows...); err != nil {
		return nil, err
	}

	r := newRoute("/3/gallery/{section}/{sort}/{window}/{page}", "section", section, "sort", sort, "window", window)
	call := apiCall{method: http.MethodGet, params: url.Values{"showViral": {fmt.Sprint(!opts.HideViral)}}}

	payloads, err := c.paginate(ctx, call, r, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("listing gallery: %w", err)
	}

	return c.galleryResources(payloads)
}

// GetMemesGallery lists the memes gallery. sort is viral, time or top
// (default viral); window defaults to week.
func (c *Client) GetMemesGallery(ctx context.Context, sort, window string, limit int) ([]GalleryResource, error) {
	sort = orDefault(sort, "viral")
	window = orDefault(window, "week")

	if err := oneOf("sort", sort, "viral", "time", "top"); err != nil {
		return nil, err
	}

	if err := oneOf("window", window, galleryWindows...); err != nil {
		return nil, err
	}

	r := newRoute("/3/gallery/g/memes/{sort}/{window}/{page}", "sort", sort, "window", window)

	payloads, err := c.paginate(ctx, apiCall{method: http.MethodGet}, r, limit)
	if err != nil {
		return nil, fmt.Errorf("listing memes gallery: %w", err)
	}

	return c.galleryResources(payloads)
}

// GetSubredditGallery lists the images posted to a subreddit. sort is time
// or top (default time); window defaults to day.
func (c *Client) GetSubredditGallery(ctx context.Context, subreddit, sort, window string, limit int) ([]GalleryResource, error) {
	if subreddit == "" {
		return nil, &InvalidParameterError{Param: "subreddit", Reason: "subreddit is required"}
	}

	sort = orDefault(sort, "time")
	window = orDefault(window, "day")

	if err := oneOf("sort", sort, "time", "top"); err != nil {
		return nil, err
	}

	if err := oneOf("window", window, galleryWindows...); err != nil {
		return nil, err
	}

	r := newRoute("/3/gallery/r/{subreddit}/{sort}/{window}/{page}", "subreddit", subreddit, "sort", sort, "window", window)

	payloads, err := c.paginate(ctx, apiCall{method: http.MethodGet}, r, limit)
	if err != nil {
		return nil, fmt.Errorf("listing subreddit gallery: %w", err)
	}

	return c.galleryResources(payloads)
}

// SearchGallery searches gallery titles, tags and descriptions.
func (c *Client) SearchGallery(ctx context.Context, query string) ([]GalleryResource, error) {
	if query == "" {
		return nil, &InvalidParameterError{Param: "q", Reason: "search query is required"}
	}

	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: "/3/gallery/search", params: url.Values{"q": {query}}})
	if err != nil {
		return nil, fmt.Errorf("searching gallery: %w", err)
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("decoding gallery search: %w", err)
	}

	return c.galleryResources(payloads)
}
