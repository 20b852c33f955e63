package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
)

type commentData struct {
	ID         flexString `json:"id"`
	Text       string     `json:"text"`
	Datetime   int64      `json:"datetime"`
	OnAlbum    bool       `json:"on_album"`
	AlbumCover string     `json:"album_cover"`
	Ups        int64      `json:"ups"`
	Downs      int64      `json:"downs"`
	Points     int64      `json:"points"`
	Vote       string     `json:"vote"`
	Platform   string     `json:"platform"`
	IsDeleted  bool       `json:"is_deleted"`
}

// Comment is a comment on a gallery item. Comments form a tree through
// Parent and Replies.
type Comment struct {
	resource

	data      commentData
	author    *User
	image     *Image
	permalink string
	parent    *Comment
	replies   []*Comment
}

func newComment(c *Client, payload json.RawMessage, fetched bool) (*Comment, error) {
	comment := &Comment{}
	comment.init(c, KindComment, fetched, comment)

	if err := comment.load(payload); err != nil {
		return nil, err
	}

	return comment, nil
}

func placeholderComment(c *Client, id string) *Comment {
	comment := &Comment{}
	comment.init(c, KindComment, false, comment, "id")
	comment.data.ID = flexString(id)

	return comment
}

func newComments(c *Client, payloads []json.RawMessage) ([]*Comment, error) {
	comments := make([]*Comment, 0, len(payloads))

	for _, payload := range payloads {
		comment, err := newComment(c, payload, true)
		if err != nil {
			return nil, err
		}

		comments = append(comments, comment)
	}

	return comments, nil
}

func (cm *Comment) infoPath() string {
	return newRoute("/3/comment/{id}", "id", cm.ID()).String()
}

func (cm *Comment) populate(raw rawFields) error {
	if err := cm.decode(raw, &cm.data); err != nil {
		return err
	}

	if value, ok := raw["author"]; ok {
		cm.author = placeholderUser(cm.client, rawString(value))
		delete(raw, "author")
		cm.mark("author")
	}

	if value, ok := raw["children"]; ok {
		var children []json.RawMessage
		if err := json.Unmarshal(value, &children); err != nil {
			return fmt.Errorf("decoding comment replies: %w", err)
		}

		replies, err := newComments(cm.client, children)
		if err != nil {
			return err
		}

		cm.replies = replies
		delete(raw, "children")
		cm.mark("replies")
	}

	if value, ok := raw["image_id"]; ok {
		imageID := rawString(value)
		cm.image = placeholderImage(cm.client, imageID)
		cm.permalink = fmt.Sprintf("%s/gallery/%s/comment/%s", constants.WebBaseURL, imageID, cm.ID())
		delete(raw, "image_id")
		cm.mark("image", "permalink")
	}

	if value, ok := raw["parent_id"]; ok {
		cm.parent = nil
		if parentID := rawString(value); parentID != "" && parentID != "0" {
			cm.parent = placeholderComment(cm.client, parentID)
		}

		delete(raw, "parent_id")
		cm.mark("parent")
	}

	return nil
}

// ID never triggers a fetch.
func (cm *Comment) ID() string { return string(cm.data.ID) }

// Text is the comment body.
func (cm *Comment) Text(ctx context.Context) (string, error) {
	return lazy(ctx, &cm.resource, "text", &cm.data.Text)
}

func (cm *Comment) Datetime(ctx context.Context) (int64, error) {
	return lazy(ctx, &cm.resource, "datetime", &cm.data.Datetime)
}

func (cm *Comment) Ups(ctx context.Context) (int64, error) {
	return lazy(ctx, &cm.resource, "ups", &cm.data.Ups)
}

func (cm *Comment) Downs(ctx context.Context) (int64, error) {
	return lazy(ctx, &cm.resource, "downs", &cm.data.Downs)
}

func (cm *Comment) Points(ctx context.Context) (int64, error) {
	return lazy(ctx, &cm.resource, "points", &cm.data.Points)
}

func (cm *Comment) Vote(ctx context.Context) (string, error) {
	return lazy(ctx, &cm.resource, "vote", &cm.data.Vote)
}

func (cm *Comment) OnAlbum(ctx context.Context) (bool, error) {
	return lazy(ctx, &cm.resource, "on_album", &cm.data.OnAlbum)
}

func (cm *Comment) IsDeleted(ctx context.Context) (bool, error) {
	return lazy(ctx, &cm.resource, "is_deleted", &cm.data.IsDeleted)
}

func (cm *Comment) Author(ctx context.Context) (*User, error) {
	return lazy(ctx, &cm.resource, "author", &cm.author)
}

// Image is the gallery item the comment was posted on.
func (cm *Comment) Image(ctx context.Context) (*Image, error) {
	return lazy(ctx, &cm.resource, "image", &cm.image)
}

func (cm *Comment) Permalink(ctx context.Context) (string, error) {
	return lazy(ctx, &cm.resource, "permalink", &cm.permalink)
}

// Parent is nil for top-level comments.
func (cm *Comment) Parent(ctx context.Context) (*Comment, error) {
	return lazy(ctx, &cm.resource, "parent", &cm.parent)
}

// Replies are only part of comment listings. Use FetchReplies for a
// comment loaded on its own.
func (cm *Comment) Replies(ctx context.Context) ([]*Comment, error) {
	return lazy(ctx, &cm.resource, "replies", &cm.replies)
}

// FetchReplies loads the direct replies from the API.
func (cm *Comment) FetchReplies(ctx context.Context) ([]*Comment, error) {
	path := newRoute("/3/comment/{id}/replies", "id", cm.ID()).String()

	data, err := cm.client.send(ctx, &apiCall{method: http.MethodGet, path: path})
	if err != nil {
		return nil, fmt.Errorf("getting comment replies: %w", err)
	}

	var body struct {
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decoding comment replies: %w", err)
	}

	return newComments(cm.client, body.Children)
}

// Delete removes the comment. Requires authentication.
func (cm *Comment) Delete(ctx context.Context) error {
	path := newRoute("/3/comment/{id}", "id", cm.ID()).String()
	if _, err := cm.client.send(ctx, &apiCall{method: http.MethodDelete, path: path, needsAuth: true}); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	return nil
}

// Upvote votes the comment up. Requires authentication.
func (cm *Comment) Upvote(ctx context.Context) error {
	return cm.vote(ctx, "up")
}

// Downvote votes the comment down. Requires authentication.
func (cm *Comment) Downvote(ctx context.Context) error {
	return cm.vote(ctx, "down")
}

func (cm *Comment) vote(ctx context.Context, direction string) error {
	path := newRoute("/3/comment/{id}/vote/{vote}", "id", cm.ID(), "vote", direction).String()
	if _, err := cm.client.send(ctx, &apiCall{method: http.MethodPost, path: path, needsAuth: true}); err != nil {
		return fmt.Errorf("voting on comment: %w", err)
	}

	return nil
}

// Reply posts text as a reply. Requires authentication.
func (cm *Comment) Reply(ctx context.Context, text string) (*Comment, error) {
	if text == "" {
		return nil, &InvalidParameterError{Param: "text", Reason: "reply text is required"}
	}

	if !cm.client.IsAuthenticated() {
		return nil, &AuthenticationError{Reason: "replying to a comment requires an access token"}
	}

	image, err := cm.Image(ctx)
	if err != nil {
		return nil, err
	}

	path := newRoute("/3/comment/{id}", "id", cm.ID()).String()
	params := map[string]string{"image_id": image.ID(), "comment": text}

	data, err := cm.client.send(ctx, &apiCall{method: http.MethodPost, path: path, params: params, needsAuth: true})
	if err != nil {
		return nil, fmt.Errorf("replying to comment: %w", err)
	}

	return newComment(cm.client, data, false)
}

func (cm *Comment) String() string {
	return fmt.Sprintf("<%s %s>", cm.kind, cm.ID())
}
