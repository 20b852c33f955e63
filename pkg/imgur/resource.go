package imgur

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind names a resource type.
type Kind string

const (
	KindAlbum        Kind = "Album"
	KindImage        Kind = "Image"
	KindComment      Kind = "Comment"
	KindUser         Kind = "User"
	KindMessage      Kind = "Message"
	KindNotification Kind = "Notification"
	KindGalleryAlbum Kind = "GalleryAlbum"
	KindGalleryImage Kind = "GalleryImage"
)

// Resource is implemented by every resource value.
type Resource interface {
	// Kind is the current type; it changes when an image or album is
	// submitted to or removed from the gallery.
	Kind() Kind
	// Fetched reports whether the full representation has been loaded.
	Fetched() bool
	// Refresh reloads the resource from its canonical endpoint.
	Refresh(ctx context.Context) error
	// Field returns the raw JSON of a wire field, loading the resource
	// first if needed.
	Field(ctx context.Context, name string) (json.RawMessage, error)
}

type renameRule struct {
	from  string
	to    string
	kinds []Kind
}

// Wire names replaced by semantic names during population.
var renameTable = []renameRule{
	{from: "favorite", to: "is_favorited", kinds: []Kind{KindAlbum, KindImage, KindGalleryAlbum, KindGalleryImage}},
	{from: "nsfw", to: "is_nsfw", kinds: []Kind{KindAlbum, KindImage, KindGalleryAlbum, KindGalleryImage}},
	{from: "animated", to: "is_animated", kinds: []Kind{KindImage, KindGalleryImage}},
	{from: "comment", to: "text", kinds: []Kind{KindComment}},
	{from: "deleted", to: "is_deleted", kinds: []Kind{KindComment}},
	{from: "viewed", to: "is_viewed", kinds: []Kind{KindNotification}},
	{from: "url", to: "name", kinds: []Kind{KindUser}},
}

// Fields dropped from every payload.
var droppedFields = []string{"author_id"}

type rawFields map[string]json.RawMessage

// populator is the per-type part of population.
type populator interface {
	// populate decodes the renamed mapping into typed fields, synthesizes
	// nested objects and removes the wire keys it consumed.
	populate(raw rawFields) error
	// infoPath is the canonical single-resource endpoint.
	infoPath() string
}

// resource is the state shared by every resource type.
type resource struct {
	client  *Client
	kind    Kind
	fetched bool
	present map[string]struct{}
	raw     rawFields
	self    populator
}

func (r *resource) init(c *Client, kind Kind, fetched bool, self populator, always ...string) {
	r.client = c
	r.kind = kind
	r.fetched = fetched
	r.self = self
	r.reset(always...)
}

// reset forgets every populated field except the always-present ones.
func (r *resource) reset(always ...string) {
	r.present = make(map[string]struct{})
	r.raw = make(rawFields)
	r.mark(always...)
}

func (r *resource) Kind() Kind {
	return r.kind
}

func (r *resource) Fetched() bool {
	return r.fetched
}

func (r *resource) requester() *Client {
	return r.client
}

func (r *resource) mark(names ...string) {
	for _, name := range names {
		r.present[name] = struct{}{}
	}
}

func (r *resource) has(name string) bool {
	_, ok := r.present[name]

	return ok
}

// load runs the population routine over payload.
func (r *resource) load(payload json.RawMessage) error {
	raw := make(rawFields)
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("decoding %s payload: %w", r.kind, err)
	}

	applyRenames(r.kind, raw)

	for _, name := range droppedFields {
		delete(raw, name)
	}

	if err := r.self.populate(raw); err != nil {
		return err
	}

	for name, value := range raw {
		r.raw[name] = value
		r.present[name] = struct{}{}
	}

	return nil
}

func applyRenames(kind Kind, raw rawFields) {
	for _, rule := range renameTable {
		value, ok := raw[rule.from]
		if !ok || !appliesTo(rule.kinds, kind) {
			continue
		}

		raw[rule.to] = value
		delete(raw, rule.from)
	}
}

func appliesTo(kinds []Kind, kind Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}

	return false
}

// decode fills dst from raw. Fields whose JSON type does not match the
// declared Go type are skipped so one odd upstream value cannot hide the rest.
func (r *resource) decode(raw rawFields, dst interface{}) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding %s fields: %w", r.kind, err)
	}

	err = json.Unmarshal(buf, dst)

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		r.client.debug("skipping mistyped field", map[string]interface{}{"kind": string(r.kind), "field": typeErr.Field})

		return nil
	}

	if err != nil {
		return fmt.Errorf("decoding %s fields: %w", r.kind, err)
	}

	return nil
}

// Refresh fetches the canonical representation and repopulates, whether or
// not the resource was already fetched.
func (r *resource) Refresh(ctx context.Context) error {
	data, err := r.client.send(ctx, &apiCall{method: http.MethodGet, path: r.self.infoPath()})
	if err != nil {
		return fmt.Errorf("refreshing %s: %w", r.kind, err)
	}

	if err := r.load(data); err != nil {
		return err
	}

	r.fetched = true

	return nil
}

// ensure makes field available, refreshing at most once. A field that is
// still missing once the resource is fetched is an UnknownAttributeError.
func (r *resource) ensure(ctx context.Context, field string) error {
	if r.has(field) {
		return nil
	}

	if !r.fetched {
		if err := r.Refresh(ctx); err != nil {
			return err
		}

		if r.has(field) {
			return nil
		}
	}

	return &UnknownAttributeError{Kind: r.kind, Field: field}
}

func (r *resource) Field(ctx context.Context, name string) (json.RawMessage, error) {
	if err := r.ensure(ctx, name); err != nil {
		return nil, err
	}

	return r.raw[name], nil
}

// lazy returns *value once field has been ensured. value must point into
// the resource so a refresh is observed.
func lazy[T any](ctx context.Context, r *resource, field string, value *T) (T, error) {
	if err := r.ensure(ctx, field); err != nil {
		var zero T

		return zero, err
	}

	return *value, nil
}

// mutationHash picks id when the client is authenticated and the deletehash
// otherwise. Evaluated per call.
func (r *resource) mutationHash(id, deletehash string) string {
	if r.client.IsAuthenticated() || deletehash == "" {
		return id
	}

	return deletehash
}

// flexString decodes ids that imgur sends as either strings or numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}

		*s = flexString(value)

		return nil
	}

	*s = flexString(strings.TrimSpace(string(data)))

	return nil
}

func rawString(value json.RawMessage) string {
	var s flexString
	if err := json.Unmarshal(value, &s); err != nil {
		return ""
	}

	return string(s)
}
