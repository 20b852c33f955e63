package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type userData struct {
	ID             flexString `json:"id"`
	Name           string     `json:"name"`
	Bio            string     `json:"bio"`
	Avatar         string     `json:"avatar"`
	Reputation     float64    `json:"reputation"`
	ReputationName string     `json:"reputation_name"`
	Created        int64      `json:"created"`
}

// User is an imgur account, identified by its name.
type User struct {
	resource

	data userData
}

func newUser(c *Client, payload json.RawMessage, fetched bool) (*User, error) {
	user := &User{}
	user.init(c, KindUser, fetched, user)

	if err := user.load(payload); err != nil {
		return nil, err
	}

	return user, nil
}

// placeholderUser returns nil for an empty name, which is how anonymous
// authors appear on the wire.
func placeholderUser(c *Client, name string) *User {
	if name == "" {
		return nil
	}

	user := &User{}
	user.init(c, KindUser, false, user, "name")
	user.data.Name = name

	return user
}

func (u *User) route(suffix string, pairs ...string) route {
	return newRoute("/3/account/{name}"+suffix, append([]string{"name", u.Name()}, pairs...)...)
}

func (u *User) infoPath() string {
	return u.route("").String()
}

func (u *User) populate(raw rawFields) error {
	return u.decode(raw, &u.data)
}

// Name is the account name. It never triggers a fetch.
func (u *User) Name() string { return u.data.Name }

// ID is the numeric account id.
func (u *User) ID(ctx context.Context) (string, error) {
	id, err := lazy(ctx, &u.resource, "id", &u.data.ID)

	return string(id), err
}

func (u *User) Bio(ctx context.Context) (string, error) {
	return lazy(ctx, &u.resource, "bio", &u.data.Bio)
}

func (u *User) Avatar(ctx context.Context) (string, error) {
	return lazy(ctx, &u.resource, "avatar", &u.data.Avatar)
}

func (u *User) Reputation(ctx context.Context) (float64, error) {
	return lazy(ctx, &u.resource, "reputation", &u.data.Reputation)
}

func (u *User) ReputationName(ctx context.Context) (string, error) {
	return lazy(ctx, &u.resource, "reputation_name", &u.data.ReputationName)
}

// Created is the account creation time as a unix timestamp.
func (u *User) Created(ctx context.Context) (int64, error) {
	return lazy(ctx, &u.resource, "created", &u.data.Created)
}

// UserSettings lists account settings to change. Nil pointers and empty
// strings are left unchanged.
type UserSettings struct {
	Bio                  string `url:"bio,omitempty"`
	PublicImages         *bool  `url:"public_images,omitempty"`
	MessagingEnabled     *bool  `url:"messaging_enabled,omitempty"`
	AlbumPrivacy         string `url:"album_privacy,omitempty"`
	AcceptedGalleryTerms *bool  `url:"accepted_gallery_terms,omitempty"`
}

// ChangeSettings updates account settings. Requires authentication.
func (u *User) ChangeSettings(ctx context.Context, settings UserSettings) error {
	if err := validatePrivacy(settings.AlbumPrivacy); err != nil {
		return err
	}

	call := &apiCall{method: http.MethodPost, path: u.route("/settings").String(), params: settings, needsAuth: true}
	if _, err := u.client.send(ctx, call); err != nil {
		return fmt.Errorf("changing user settings: %w", err)
	}

	if settings.Bio != "" {
		u.data.Bio = settings.Bio
		u.mark("bio")
	}

	return nil
}

// Delete removes the account. Requires authentication.
func (u *User) Delete(ctx context.Context) error {
	if _, err := u.client.send(ctx, &apiCall{method: http.MethodDelete, path: u.infoPath(), needsAuth: true}); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

// Albums lists up to limit of the user's albums.
func (u *User) Albums(ctx context.Context, limit int) ([]*Album, error) {
	payloads, err := u.client.paginate(ctx, apiCall{method: http.MethodGet}, u.route("/albums/{page}"), limit)
	if err != nil {
		return nil, fmt.Errorf("listing user albums: %w", err)
	}

	albums := make([]*Album, 0, len(payloads))

	for _, payload := range payloads {
		album, err := newAlbum(u.client, KindAlbum, payload, false)
		if err != nil {
			return nil, err
		}

		albums = append(albums, album)
	}

	return albums, nil
}

// Images lists up to limit of the user's images.
func (u *User) Images(ctx context.Context, limit int) ([]*Image, error) {
	payloads, err := u.client.paginate(ctx, apiCall{method: http.MethodGet}, u.route("/images/{page}"), limit)
	if err != nil {
		return nil, fmt.Errorf("listing user images: %w", err)
	}

	images := make([]*Image, 0, len(payloads))

	for _, payload := range payloads {
		image, err := newImage(u.client, KindImage, payload, true)
		if err != nil {
			return nil, err
		}

		images = append(images, image)
	}

	return images, nil
}

// Submissions lists up to limit of the user's gallery submissions.
func (u *User) Submissions(ctx context.Context, limit int) ([]GalleryResource, error) {
	payloads, err := u.client.paginate(ctx, apiCall{method: http.MethodGet}, u.route("/submissions/{page}"), limit)
	if err != nil {
		return nil, fmt.Errorf("listing user submissions: %w", err)
	}

	return u.client.galleryResources(payloads)
}

// Favorites lists up to limit of the user's favorites. Requires authentication.
func (u *User) Favorites(ctx context.Context, limit int) ([]GalleryResource, error) {
	call := apiCall{method: http.MethodGet, needsAuth: true}

	payloads, err := u.client.paginate(ctx, call, u.route("/favorites/{page}"), limit)
	if err != nil {
		return nil, fmt.Errorf("listing user favorites: %w", err)
	}

	return u.client.galleryResources(payloads)
}

// GalleryFavorites lists the user's public gallery favorites. sort is
// empty, "oldest" or "newest".
func (u *User) GalleryFavorites(ctx context.Context, sort string, limit int) ([]GalleryResource, error) {
	template := "/gallery_favorites/{page}"

	switch sort {
	case "":
	case "oldest", "newest":
		template += "/{sort}"
	default:
		return nil, &InvalidParameterError{Param: "sort", Reason: fmt.Sprintf("must be oldest or newest, got %q", sort)}
	}

	payloads, err := u.client.paginate(ctx, apiCall{method: http.MethodGet}, u.route(template, "sort", sort), limit)
	if err != nil {
		return nil, fmt.Errorf("listing user gallery favorites: %w", err)
	}

	return u.client.galleryResources(payloads)
}

// Comments lists the comments the user has made.
func (u *User) Comments(ctx context.Context) ([]*Comment, error) {
	data, err := u.client.send(ctx, &apiCall{method: http.MethodGet, path: u.route("/comments").String()})
	if err != nil {
		return nil, fmt.Errorf("listing user comments: %w", err)
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("decoding user comments: %w", err)
	}

	return newComments(u.client, payloads)
}

// GalleryProfile summarizes the user's gallery activity.
type GalleryProfile struct {
	TotalGalleryComments    int64    `json:"total_gallery_comments"    yaml:"total_gallery_comments"`
	TotalGalleryFavorites   int64    `json:"total_gallery_favorites"   yaml:"total_gallery_favorites"`
	TotalGallerySubmissions int64    `json:"total_gallery_submissions" yaml:"total_gallery_submissions"`
	Trophies                []Trophy `json:"trophies"                  yaml:"trophies"`
}

// Trophy is an award shown on a gallery profile.
type Trophy struct {
	ID          int64  `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image"       yaml:"image"`
	Datetime    int64  `json:"datetime"    yaml:"datetime"`
}

// GalleryProfile fetches the user's gallery profile.
func (u *User) GalleryProfile(ctx context.Context) (*GalleryProfile, error) {
	var profile GalleryProfile
	if err := u.getInto(ctx, u.route("/gallery_profile").String(), false, &profile); err != nil {
		return nil, fmt.Errorf("getting gallery profile: %w", err)
	}

	return &profile, nil
}

// AccountSettings are the authenticated user's settings.
type AccountSettings struct {
	Email                string `json:"email"                  yaml:"email"`
	PublicImages         bool   `json:"public_images"          yaml:"public_images"`
	AlbumPrivacy         string `json:"album_privacy"          yaml:"album_privacy"`
	MessagingEnabled     bool   `json:"messaging_enabled"      yaml:"messaging_enabled"`
	AcceptedGalleryTerms bool   `json:"accepted_gallery_terms" yaml:"accepted_gallery_terms"`
	ShowMature           bool   `json:"show_mature"            yaml:"show_mature"`
}

// Settings fetches the account settings. Requires authentication.
func (u *User) Settings(ctx context.Context) (*AccountSettings, error) {
	var settings AccountSettings
	if err := u.getInto(ctx, u.route("/settings").String(), true, &settings); err != nil {
		return nil, fmt.Errorf("getting user settings: %w", err)
	}

	return &settings, nil
}

// Statistics fetches account statistics. Requires authentication. The shape
// is loosely documented upstream, so values are returned as decoded JSON.
func (u *User) Statistics(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})
	if err := u.getInto(ctx, u.route("/stats").String(), true, &stats); err != nil {
		return nil, fmt.Errorf("getting user statistics: %w", err)
	}

	return stats, nil
}

// HasVerifiedEmail reports whether the account email is verified. Requires authentication.
func (u *User) HasVerifiedEmail(ctx context.Context) (bool, error) {
	verified, err := u.client.sendStatus(ctx, &apiCall{
		method:    http.MethodGet,
		path:      u.route("/verifyemail").String(),
		needsAuth: true,
	})
	if err != nil {
		return false, fmt.Errorf("checking email verification: %w", err)
	}

	return verified, nil
}

// SendVerificationEmail asks imgur to send a verification email. Requires authentication.
func (u *User) SendVerificationEmail(ctx context.Context) error {
	if _, err := u.client.send(ctx, &apiCall{
		method:    http.MethodPost,
		path:      u.route("/verifyemail").String(),
		needsAuth: true,
	}); err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}

	return nil
}

// Notifications groups the two notification streams.
type Notifications struct {
	Messages []*Notification
	Replies  []*Notification
}

// Notifications fetches message and reply notifications. With onlyNew, only
// unviewed ones are returned. Requires authentication.
func (u *User) Notifications(ctx context.Context, onlyNew bool) (*Notifications, error) {
	var body struct {
		Messages []json.RawMessage `json:"messages"`
		Replies  []json.RawMessage `json:"replies"`
	}

	if err := u.getNotifications(ctx, "/notifications", onlyNew, &body); err != nil {
		return nil, fmt.Errorf("getting notifications: %w", err)
	}

	messages, err := newNotifications(u.client, body.Messages)
	if err != nil {
		return nil, err
	}

	replies, err := newNotifications(u.client, body.Replies)
	if err != nil {
		return nil, err
	}

	return &Notifications{Messages: messages, Replies: replies}, nil
}

// Messages fetches message notifications. Requires authentication.
func (u *User) Messages(ctx context.Context, onlyNew bool) ([]*Notification, error) {
	var payloads []json.RawMessage
	if err := u.getNotifications(ctx, "/notifications/messages", onlyNew, &payloads); err != nil {
		return nil, fmt.Errorf("getting message notifications: %w", err)
	}

	return newNotifications(u.client, payloads)
}

// Replies fetches comment-reply notifications. Requires authentication.
func (u *User) Replies(ctx context.Context, onlyNew bool) ([]*Notification, error) {
	var payloads []json.RawMessage
	if err := u.getNotifications(ctx, "/notifications/replies", onlyNew, &payloads); err != nil {
		return nil, fmt.Errorf("getting reply notifications: %w", err)
	}

	return newNotifications(u.client, payloads)
}

func (u *User) getNotifications(ctx context.Context, suffix string, onlyNew bool, dst interface{}) error {
	data, err := u.client.send(ctx, &apiCall{
		method:    http.MethodGet,
		path:      u.route(suffix).String(),
		params:    url.Values{"new": {strconv.FormatBool(onlyNew)}},
		needsAuth: true,
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dst)
}

func (u *User) getInto(ctx context.Context, path string, needsAuth bool, dst interface{}) error {
	data, err := u.client.send(ctx, &apiCall{method: http.MethodGet, path: path, needsAuth: needsAuth})
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dst)
}

// SendMessage sends a private message to the user. replyTo is the id of
// the message being answered, or empty. Requires authentication.
func (u *User) SendMessage(ctx context.Context, body, subject, replyTo string) error {
	if body == "" {
		return &InvalidParameterError{Param: "body", Reason: "message body is required"}
	}

	params := map[string]string{
		"recipient": u.Name(),
		"body":      body,
		"subject":   subject,
		"parent_id": replyTo,
	}

	if _, err := u.client.send(ctx, &apiCall{
		method:    http.MethodPost,
		path:      "/3/message",
		params:    params,
		needsAuth: true,
	}); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	return nil
}

func (u *User) String() string {
	return fmt.Sprintf("<%s %s>", u.kind, u.Name())
}
