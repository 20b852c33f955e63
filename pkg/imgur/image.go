package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// ThumbnailSize names one of the derived thumbnail variants of an image.
type ThumbnailSize string

const (
	SmallSquare     ThumbnailSize = "small_square"
	BigSquare       ThumbnailSize = "big_square"
	SmallThumbnail  ThumbnailSize = "small_thumbnail"
	MediumThumbnail ThumbnailSize = "medium_thumbnail"
	LargeThumbnail  ThumbnailSize = "large_thumbnail"
	HugeThumbnail   ThumbnailSize = "huge_thumbnail"
)

var thumbnailSuffixes = []struct {
	size   ThumbnailSize
	suffix string
}{
	{SmallSquare, "s"},
	{BigSquare, "b"},
	{SmallThumbnail, "t"},
	{MediumThumbnail, "m"},
	{LargeThumbnail, "l"},
	{HugeThumbnail, "h"},
}

// ParseThumbnailSize accepts names like "small square" or "Huge_Thumbnail".
func ParseThumbnailSize(name string) (ThumbnailSize, error) {
	normalized := ThumbnailSize(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_"))
	for _, entry := range thumbnailSuffixes {
		if entry.size == normalized {
			return normalized, nil
		}
	}

	return "", &InvalidParameterError{Param: "size", Reason: fmt.Sprintf("unknown thumbnail size %q", name)}
}

func (s ThumbnailSize) field() string {
	return "link_" + string(s)
}

// thumbnailURL inserts suffix before the extension of link's path.
func thumbnailURL(link, suffix string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link + suffix
	}

	ext := path.Ext(parsed.Path)
	parsed.Path = strings.TrimSuffix(parsed.Path, ext) + suffix + ext
	parsed.RawPath = ""

	return parsed.String()
}

type imageData struct {
	ID           flexString `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Datetime     int64      `json:"datetime"`
	Type         string     `json:"type"`
	IsAnimated   bool       `json:"is_animated"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Size         int64      `json:"size"`
	Views        int64      `json:"views"`
	Bandwidth    int64      `json:"bandwidth"`
	DeleteHash   string     `json:"deletehash"`
	Section      string     `json:"section"`
	Link         string     `json:"link"`
	IsFavorited  bool       `json:"is_favorited"`
	IsNSFW       bool       `json:"is_nsfw"`
	InGallery    bool       `json:"in_gallery"`
	Vote         string     `json:"vote"`
	Ups          int64      `json:"ups"`
	Downs        int64      `json:"downs"`
	Points       int64      `json:"points"`
	Score        int64      `json:"score"`
	CommentCount int64      `json:"comment_count"`
	Topic        string     `json:"topic"`
}

// Image is a single uploaded image. Its fields load on first access.
type Image struct {
	resource

	data       imageData
	author     *User
	thumbnails map[ThumbnailSize]string
}

func imagePath(kind Kind, id string) string {
	if kind == KindGalleryImage {
		return newRoute("/3/gallery/image/{id}", "id", id).String()
	}

	return newRoute("/3/image/{id}", "id", id).String()
}

func newImage(c *Client, kind Kind, payload json.RawMessage, fetched bool) (*Image, error) {
	image := &Image{}
	image.init(c, kind, fetched, image, "deletehash")

	if err := image.load(payload); err != nil {
		return nil, err
	}

	return image, nil
}

// placeholderImage is an unfetched image known only by id.
func placeholderImage(c *Client, id string) *Image {
	image := &Image{}
	image.init(c, KindImage, false, image, "deletehash", "id")
	image.data.ID = flexString(id)

	return image
}

func (i *Image) infoPath() string {
	return imagePath(i.kind, i.ID())
}

func (i *Image) populate(raw rawFields) error {
	if err := i.decode(raw, &i.data); err != nil {
		return err
	}

	if value, ok := raw["account_url"]; ok {
		i.author = placeholderUser(i.client, rawString(value))
		delete(raw, "account_url")
		i.mark("author")
	}

	if _, ok := raw["link"]; ok && i.data.Link != "" {
		i.thumbnails = make(map[ThumbnailSize]string, len(thumbnailSuffixes))
		for _, entry := range thumbnailSuffixes {
			i.thumbnails[entry.size] = thumbnailURL(i.data.Link, entry.suffix)
			i.mark(entry.size.field())
		}
	}

	return nil
}

// become replaces every field with payload loaded as kind. The *Image
// itself is unchanged, so every holder sees the new kind. On a decode
// error the image keeps its previous kind and fields.
func (i *Image) become(kind Kind, payload json.RawMessage) error {
	loaded, err := newImage(i.client, kind, payload, true)
	if err != nil {
		return err
	}

	*i = *loaded
	i.self = i

	return nil
}

// ID returns the image id. It never triggers a fetch.
func (i *Image) ID() string { return string(i.data.ID) }

// DeleteHash is only known for images uploaded in this session or
// fetched by their owner. It never triggers a fetch.
func (i *Image) DeleteHash() string { return i.data.DeleteHash }

func (i *Image) Title(ctx context.Context) (string, error) {
	return lazy(ctx, &i.resource, "title", &i.data.Title)
}

func (i *Image) Description(ctx context.Context) (string, error) {
	return lazy(ctx, &i.resource, "description", &i.data.Description)
}

func (i *Image) Link(ctx context.Context) (string, error) {
	return lazy(ctx, &i.resource, "link", &i.data.Link)
}

func (i *Image) Type(ctx context.Context) (string, error) {
	return lazy(ctx, &i.resource, "type", &i.data.Type)
}

func (i *Image) Datetime(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "datetime", &i.data.Datetime)
}

func (i *Image) Width(ctx context.Context) (int, error) {
	return lazy(ctx, &i.resource, "width", &i.data.Width)
}

func (i *Image) Height(ctx context.Context) (int, error) {
	return lazy(ctx, &i.resource, "height", &i.data.Height)
}

func (i *Image) Size(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "size", &i.data.Size)
}

func (i *Image) Views(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "views", &i.data.Views)
}

func (i *Image) Bandwidth(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "bandwidth", &i.data.Bandwidth)
}

func (i *Image) IsAnimated(ctx context.Context) (bool, error) {
	return lazy(ctx, &i.resource, "is_animated", &i.data.IsAnimated)
}

func (i *Image) IsFavorited(ctx context.Context) (bool, error) {
	return lazy(ctx, &i.resource, "is_favorited", &i.data.IsFavorited)
}

func (i *Image) IsNSFW(ctx context.Context) (bool, error) {
	return lazy(ctx, &i.resource, "is_nsfw", &i.data.IsNSFW)
}

// Section is the subreddit an image was posted from, if any.
func (i *Image) Section(ctx context.Context) (string, error) {
	return lazy(ctx, &i.resource, "section", &i.data.Section)
}

// Author is nil for anonymous uploads.
func (i *Image) Author(ctx context.Context) (*User, error) {
	return lazy(ctx, &i.resource, "author", &i.author)
}

// Gallery fields; a plain image reports them as unknown attributes.

func (i *Image) Ups(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "ups", &i.data.Ups)
}

func (i *Image) Downs(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "downs", &i.data.Downs)
}

func (i *Image) Points(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "points", &i.data.Points)
}

func (i *Image) Score(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "score", &i.data.Score)
}

func (i *Image) CommentCount(ctx context.Context) (int64, error) {
	return lazy(ctx, &i.resource, "comment_count", &i.data.CommentCount)
}

// Vote is the authenticated user's vote, "up", "down" or empty.
func (i *Image) Vote(ctx context.Context) (string, error) {
	return lazy(ctx, &i.resource, "vote", &i.data.Vote)
}

// Thumbnail returns the derived link for size.
func (i *Image) Thumbnail(ctx context.Context, size ThumbnailSize) (string, error) {
	size, err := ParseThumbnailSize(string(size))
	if err != nil {
		return "", err
	}

	if err := i.ensure(ctx, size.field()); err != nil {
		return "", err
	}

	return i.thumbnails[size], nil
}

// Delete removes the image.
func (i *Image) Delete(ctx context.Context) error {
	path := newRoute("/3/image/{hash}", "hash", i.mutationHash(i.ID(), i.data.DeleteHash)).String()
	if _, err := i.client.send(ctx, &apiCall{method: http.MethodDelete, path: path}); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	return nil
}

// Favorite toggles the favorite status for the authenticated user.
func (i *Image) Favorite(ctx context.Context) (bool, error) {
	path := newRoute("/3/image/{id}/favorite", "id", i.ID()).String()

	data, err := i.client.send(ctx, &apiCall{method: http.MethodPost, path: path, needsAuth: true})
	if err != nil {
		return false, fmt.Errorf("favoriting image: %w", err)
	}

	favorited := rawString(data) == "favorited"
	i.data.IsFavorited = favorited
	i.mark("is_favorited")

	return favorited, nil
}

// Update changes the title and/or description. Empty arguments are left
// unchanged; passing neither is an error.
func (i *Image) Update(ctx context.Context, title, description string) error {
	if title == "" && description == "" {
		return &InvalidParameterError{Param: "title", Reason: "title or description is required"}
	}

	path := newRoute("/3/image/{hash}", "hash", i.mutationHash(i.ID(), i.data.DeleteHash)).String()
	params := map[string]string{"title": title, "description": description}

	updated, err := i.client.sendStatus(ctx, &apiCall{method: http.MethodPost, path: path, params: params, asJSON: true})
	if err != nil {
		return fmt.Errorf("updating image: %w", err)
	}

	if updated {
		if title != "" {
			i.data.Title = title
			i.mark("title")
		}

		if description != "" {
			i.data.Description = description
			i.mark("description")
		}
	}

	return nil
}

// SubmitToGallery publishes the image to the gallery. The image itself
// becomes a gallery image; the returned value wraps the same *Image.
func (i *Image) SubmitToGallery(ctx context.Context, title string, bypassTerms bool) (*GalleryImage, error) {
	if err := i.client.submitToGallery(ctx, i.ID(), title, bypassTerms); err != nil {
		return nil, fmt.Errorf("submitting image to gallery: %w", err)
	}

	data, err := i.client.send(ctx, &apiCall{method: http.MethodGet, path: imagePath(KindGalleryImage, i.ID())})
	if err != nil {
		return nil, fmt.Errorf("loading gallery image: %w", err)
	}

	if err := i.become(KindGalleryImage, data); err != nil {
		return nil, err
	}

	return wrapGalleryImage(i), nil
}

func (i *Image) String() string {
	return fmt.Sprintf("<%s %s>", i.kind, i.ID())
}
