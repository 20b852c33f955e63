package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/imgur-client/internal/encoding"
)

// Identifier is anything with an upstream id: resources, or IDString.
type Identifier interface {
	ID() string
}

// IDString lets a bare id stand in for a resource.
type IDString string

// ID implements Identifier.
func (s IDString) ID() string { return string(s) }

type albumData struct {
	ID           flexString `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Datetime     int64      `json:"datetime"`
	CoverWidth   int        `json:"cover_width"`
	CoverHeight  int        `json:"cover_height"`
	Privacy      string     `json:"privacy"`
	Layout       string     `json:"layout"`
	Views        int64      `json:"views"`
	Link         string     `json:"link"`
	IsFavorited  bool       `json:"is_favorited"`
	IsNSFW       bool       `json:"is_nsfw"`
	Section      string     `json:"section"`
	DeleteHash   string     `json:"deletehash"`
	InGallery    bool       `json:"in_gallery"`
	Vote         string     `json:"vote"`
	Ups          int64      `json:"ups"`
	Downs        int64      `json:"downs"`
	Points       int64      `json:"points"`
	Score        int64      `json:"score"`
	CommentCount int64      `json:"comment_count"`
	Topic        string     `json:"topic"`
}

// Album is an ordered collection of images.
type Album struct {
	resource

	data   albumData
	author *User
	cover  *Image
	images []*Image
}

func albumPath(kind Kind, id string) string {
	if kind == KindGalleryAlbum {
		return newRoute("/3/gallery/album/{id}", "id", id).String()
	}

	return newRoute("/3/album/{id}", "id", id).String()
}

func newAlbum(c *Client, kind Kind, payload json.RawMessage, fetched bool) (*Album, error) {
	album := &Album{}
	album.init(c, kind, fetched, album, "deletehash")

	if err := album.load(payload); err != nil {
		return nil, err
	}

	return album, nil
}

func (a *Album) infoPath() string {
	return albumPath(a.kind, a.ID())
}

func (a *Album) populate(raw rawFields) error {
	if err := a.decode(raw, &a.data); err != nil {
		return err
	}

	if value, ok := raw["account_url"]; ok {
		a.author = placeholderUser(a.client, rawString(value))
		delete(raw, "account_url")
		a.mark("author")
	}

	if value, ok := raw["cover"]; ok {
		a.cover = nil
		if id := rawString(value); id != "" {
			a.cover = placeholderImage(a.client, id)
		}
	}

	if value, ok := raw["images"]; ok {
		images, err := a.imagesFrom(value)
		if err != nil {
			return err
		}

		a.images = images
		delete(raw, "images")
		a.mark("images")
	}

	delete(raw, "images_count")

	return nil
}

func (a *Album) imagesFrom(value json.RawMessage) ([]*Image, error) {
	var payloads []json.RawMessage
	if err := json.Unmarshal(value, &payloads); err != nil {
		return nil, fmt.Errorf("decoding album images: %w", err)
	}

	images := make([]*Image, 0, len(payloads))

	for _, payload := range payloads {
		image, err := newImage(a.client, KindImage, payload, false)
		if err != nil {
			return nil, err
		}

		images = append(images, image)
	}

	return images, nil
}

func (a *Album) become(kind Kind, payload json.RawMessage) error {
	loaded, err := newAlbum(a.client, kind, payload, true)
	if err != nil {
		return err
	}

	*a = *loaded
	a.self = a

	return nil
}

// ID returns the album id. It never triggers a fetch.
func (a *Album) ID() string { return string(a.data.ID) }

// DeleteHash never triggers a fetch.
func (a *Album) DeleteHash() string { return a.data.DeleteHash }

func (a *Album) Title(ctx context.Context) (string, error) {
	return lazy(ctx, &a.resource, "title", &a.data.Title)
}

func (a *Album) Description(ctx context.Context) (string, error) {
	return lazy(ctx, &a.resource, "description", &a.data.Description)
}

func (a *Album) Link(ctx context.Context) (string, error) {
	return lazy(ctx, &a.resource, "link", &a.data.Link)
}

func (a *Album) Datetime(ctx context.Context) (int64, error) {
	return lazy(ctx, &a.resource, "datetime", &a.data.Datetime)
}

func (a *Album) Privacy(ctx context.Context) (string, error) {
	return lazy(ctx, &a.resource, "privacy", &a.data.Privacy)
}

func (a *Album) Layout(ctx context.Context) (string, error) {
	return lazy(ctx, &a.resource, "layout", &a.data.Layout)
}

func (a *Album) Views(ctx context.Context) (int64, error) {
	return lazy(ctx, &a.resource, "views", &a.data.Views)
}

func (a *Album) IsFavorited(ctx context.Context) (bool, error) {
	return lazy(ctx, &a.resource, "is_favorited", &a.data.IsFavorited)
}

func (a *Album) IsNSFW(ctx context.Context) (bool, error) {
	return lazy(ctx, &a.resource, "is_nsfw", &a.data.IsNSFW)
}

func (a *Album) Section(ctx context.Context) (string, error) {
	return lazy(ctx, &a.resource, "section", &a.data.Section)
}

// Author is nil for anonymous albums.
func (a *Album) Author(ctx context.Context) (*User, error) {
	return lazy(ctx, &a.resource, "author", &a.author)
}

// Cover is an unfetched placeholder, or nil when the album has no cover.
func (a *Album) Cover(ctx context.Context) (*Image, error) {
	return lazy(ctx, &a.resource, "cover", &a.cover)
}

// Images returns the album's images, fetching the album if they were not
// part of the payload it was built from.
func (a *Album) Images(ctx context.Context) ([]*Image, error) {
	return lazy(ctx, &a.resource, "images", &a.images)
}

func (a *Album) Ups(ctx context.Context) (int64, error) {
	return lazy(ctx, &a.resource, "ups", &a.data.Ups)
}

func (a *Album) Downs(ctx context.Context) (int64, error) {
	return lazy(ctx, &a.resource, "downs", &a.data.Downs)
}

func (a *Album) Points(ctx context.Context) (int64, error) {
	return lazy(ctx, &a.resource, "points", &a.data.Points)
}

func (a *Album) Score(ctx context.Context) (int64, error) {
	return lazy(ctx, &a.resource, "score", &a.data.Score)
}

func (a *Album) CommentCount(ctx context.Context) (int64, error) {
	return lazy(ctx, &a.resource, "comment_count", &a.data.CommentCount)
}

func (a *Album) Vote(ctx context.Context) (string, error) {
	return lazy(ctx, &a.resource, "vote", &a.data.Vote)
}

type albumImagesParams struct {
	IDs encoding.IDList `url:"ids,omitempty"`
}

// AddImages appends images to the album. Requires authentication.
// Ids that do not exist or belong to someone else are silently ignored by
// imgur and are not reported.
func (a *Album) AddImages(ctx context.Context, images ...Identifier) error {
	path := newRoute("/3/album/{id}/add", "id", a.ID()).String()
	params := albumImagesParams{IDs: encoding.IDs(images...)}

	if _, err := a.client.send(ctx, &apiCall{
		method:    http.MethodPost,
		path:      path,
		params:    params,
		needsAuth: true,
		asJSON:    true,
	}); err != nil {
		return fmt.Errorf("adding images to album: %w", err)
	}

	return nil
}

// RemoveImages removes images from the album. Like AddImages, unknown ids
// are ignored upstream without an error.
func (a *Album) RemoveImages(ctx context.Context, images ...Identifier) error {
	path := newRoute("/3/album/{hash}/remove_images", "hash", a.mutationHash(a.ID(), a.data.DeleteHash)).String()
	params := albumImagesParams{IDs: encoding.IDs(images...)}

	if _, err := a.client.send(ctx, &apiCall{
		method:   http.MethodPost,
		path:     path,
		params:   params,
		asJSON:   true,
		splitIDs: true,
	}); err != nil {
		return fmt.Errorf("removing images from album: %w", err)
	}

	return nil
}

// Delete removes the album. The images in it are kept.
func (a *Album) Delete(ctx context.Context) error {
	path := newRoute("/3/album/{hash}", "hash", a.mutationHash(a.ID(), a.data.DeleteHash)).String()
	if _, err := a.client.send(ctx, &apiCall{method: http.MethodDelete, path: path}); err != nil {
		return fmt.Errorf("deleting album: %w", err)
	}

	return nil
}

// Favorite toggles the favorite status for the authenticated user.
func (a *Album) Favorite(ctx context.Context) (bool, error) {
	path := newRoute("/3/album/{id}/favorite", "id", a.ID()).String()

	data, err := a.client.send(ctx, &apiCall{method: http.MethodPost, path: path, needsAuth: true})
	if err != nil {
		return false, fmt.Errorf("favoriting album: %w", err)
	}

	favorited := rawString(data) == "favorited"
	a.data.IsFavorited = favorited
	a.mark("is_favorited")

	return favorited, nil
}

// AlbumUpdate lists the album fields to change. Zero values are left alone.
type AlbumUpdate struct {
	Title       string
	Description string
	// Images replaces the album's image list.
	Images  []Identifier
	Cover   Identifier
	Layout  string
	Privacy string
}

type albumUpdateParams struct {
	Title       string          `url:"title,omitempty"`
	Description string          `url:"description,omitempty"`
	IDs         encoding.IDList `url:"ids,omitempty"`
	Cover       encoding.Nested `url:"cover,omitempty"`
	Layout      string          `url:"layout,omitempty"`
	Privacy     string          `url:"privacy,omitempty"`
}

func (u AlbumUpdate) empty() bool {
	return u.Title == "" && u.Description == "" && len(u.Images) == 0 &&
		u.Cover == nil && u.Layout == "" && u.Privacy == ""
}

// Update changes album metadata and patches the local copy on success.
func (a *Album) Update(ctx context.Context, update AlbumUpdate) error {
	if update.empty() {
		return &InvalidParameterError{Param: "update", Reason: "at least one field must be set"}
	}

	if err := validatePrivacy(update.Privacy); err != nil {
		return err
	}

	path := newRoute("/3/album/{hash}", "hash", a.mutationHash(a.ID(), a.data.DeleteHash)).String()
	params := albumUpdateParams{
		Title:       update.Title,
		Description: update.Description,
		IDs:         encoding.IDs(update.Images...),
		Cover:       encoding.Nested{Value: update.Cover},
		Layout:      update.Layout,
		Privacy:     update.Privacy,
	}

	updated, err := a.client.sendStatus(ctx, &apiCall{method: http.MethodPut, path: path, params: params, asJSON: true})
	if err != nil {
		return fmt.Errorf("updating album: %w", err)
	}

	if updated {
		a.patch(update)
	}

	return nil
}

func (a *Album) patch(update AlbumUpdate) {
	if update.Title != "" {
		a.data.Title = update.Title
		a.mark("title")
	}

	if update.Description != "" {
		a.data.Description = update.Description
		a.mark("description")
	}

	if update.Layout != "" {
		a.data.Layout = update.Layout
		a.mark("layout")
	}

	if update.Privacy != "" {
		a.data.Privacy = update.Privacy
		a.mark("privacy")
	}

	if update.Cover != nil {
		a.cover = placeholderImage(a.client, update.Cover.ID())
		a.mark("cover")
	}

	if len(update.Images) > 0 {
		a.images = make([]*Image, 0, len(update.Images))
		for _, id := range encoding.IDs(update.Images...) {
			a.images = append(a.images, placeholderImage(a.client, id))
		}

		a.mark("images")
	}
}

// SubmitToGallery publishes the album. The album itself becomes a gallery
// album; the returned value wraps the same *Album.
func (a *Album) SubmitToGallery(ctx context.Context, title string, bypassTerms bool) (*GalleryAlbum, error) {
	if err := a.client.submitToGallery(ctx, a.ID(), title, bypassTerms); err != nil {
		return nil, fmt.Errorf("submitting album to gallery: %w", err)
	}

	data, err := a.client.send(ctx, &apiCall{method: http.MethodGet, path: albumPath(KindGalleryAlbum, a.ID())})
	if err != nil {
		return nil, fmt.Errorf("loading gallery album: %w", err)
	}

	if err := a.become(KindGalleryAlbum, data); err != nil {
		return nil, err
	}

	return wrapGalleryAlbum(a), nil
}

func (a *Album) String() string {
	return fmt.Sprintf("<%s %s>", a.kind, a.ID())
}

func validatePrivacy(privacy string) error {
	switch privacy {
	case "", "public", "hidden", "secret":
		return nil
	default:
		return &InvalidParameterError{Param: "privacy", Reason: fmt.Sprintf("must be public, hidden or secret, got %q", privacy)}
	}
}
