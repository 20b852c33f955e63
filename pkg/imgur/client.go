package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/fivetwenty-io/imgur-client/internal/constants"
	"github.com/fivetwenty-io/imgur-client/internal/encoding"
)

// Client is the entry point to the API. It owns the credentials, issues
// every request and turns raw payloads into resource values. Resources keep
// a reference to the Client that produced them.
type Client struct {
	clientID     string
	clientSecret string
	accessToken  string
	refreshToken string
	mashapeKey   string

	baseURL      string
	defaultLimit int
	transport    Transport
	httpClient   *http.Client
	logger       Logger

	// Last observed rate-limit headers. Concurrent calls may interleave
	// writes; the values are informational only.
	rateMu     sync.Mutex
	rateLimits map[string]int
}

// apiCall describes one request before encoding.
type apiCall struct {
	method    string
	path      string
	params    interface{}
	needsAuth bool
	asJSON    bool
	// splitIDs sends the "ids" list as repeated multipart fields.
	splitIDs bool
}

// New creates a client that sends its requests through transport.
// Most callers want imgurclient.New, which builds the default transport.
func New(config *Config, transport Transport) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if transport == nil {
		return nil, ErrTransportRequired
	}

	if config.ClientID == "" {
		return nil, &AuthenticationError{Reason: "client id is required"}
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
		if config.MashapeKey != "" {
			baseURL = constants.MashapeBaseURL
		}
	}

	limit := config.DefaultLimit
	if limit <= 0 {
		limit = constants.DefaultLimit
	}

	return &Client{
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		accessToken:  config.AccessToken,
		refreshToken: config.RefreshToken,
		mashapeKey:   config.MashapeKey,
		baseURL:      baseURL,
		defaultLimit: limit,
		transport:    transport,
		httpClient:   config.HTTPClient,
		logger:       config.Logger,
		rateLimits:   make(map[string]int),
	}, nil
}

// BaseURL returns the API host requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsAuthenticated reports whether an access token is set.
func (c *Client) IsAuthenticated() bool {
	return c.accessToken != ""
}

// Credentials is a set of replacement credentials for ChangeAuthentication.
// Empty fields keep their current value.
type Credentials struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
}

// ChangeAuthentication swaps credentials. A client id and secret must be
// changed together.
func (c *Client) ChangeAuthentication(creds Credentials) error {
	if (creds.ClientID == "") != (creds.ClientSecret == "") {
		return &AuthenticationError{Reason: "client id and client secret must be set together"}
	}

	if creds.ClientID != "" {
		c.clientID = creds.ClientID
		c.clientSecret = creds.ClientSecret
	}

	if creds.AccessToken != "" {
		c.accessToken = creds.AccessToken
	}

	if creds.RefreshToken != "" {
		c.refreshToken = creds.RefreshToken
	}

	return nil
}

// RateLimit is the most recently observed rate-limit state.
type RateLimit struct {
	ClientLimit     int
	ClientRemaining int
	UserLimit       int
	UserRemaining   int
	UserReset       int
}

// RateLimit returns the last rate-limit headers seen on any response.
func (c *Client) RateLimit() RateLimit {
	c.rateMu.Lock()
	defer c.rateMu.Unlock()

	return RateLimit{
		ClientLimit:     c.rateLimits["ratelimit_clientlimit"],
		ClientRemaining: c.rateLimits["ratelimit_clientremaining"],
		UserLimit:       c.rateLimits["ratelimit_userlimit"],
		UserRemaining:   c.rateLimits["ratelimit_userremaining"],
		UserReset:       c.rateLimits["ratelimit_userreset"],
	}
}

// RateLimits returns a copy of every captured rate-limit value.
func (c *Client) RateLimits() map[string]int {
	c.rateMu.Lock()
	defer c.rateMu.Unlock()

	out := make(map[string]int, len(c.rateLimits))
	for key, value := range c.rateLimits {
		out[key] = value
	}

	return out
}

func (c *Client) recordRateLimits(limits map[string]int) {
	if len(limits) == 0 {
		return
	}

	c.rateMu.Lock()
	defer c.rateMu.Unlock()

	for key, value := range limits {
		c.rateLimits[key] = value
	}
}

func (c *Client) headers() http.Header {
	headers := http.Header{}
	if c.accessToken != "" {
		headers.Set("Authorization", "Bearer "+c.accessToken)
	} else {
		headers.Set("Authorization", "Client-ID "+c.clientID)
	}

	if c.mashapeKey != "" {
		headers.Set(constants.MashapeKeyHeader, c.mashapeKey)
	}

	return headers
}

// send validates and encodes call, hands it to the transport and returns the
// unwrapped payload.
func (c *Client) send(ctx context.Context, call *apiCall) (json.RawMessage, error) {
	switch call.method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, &InvalidParameterError{Param: "method", Reason: fmt.Sprintf("unsupported HTTP method %q", call.method)}
	}

	if call.needsAuth && !c.IsAuthenticated() {
		return nil, &AuthenticationError{Reason: fmt.Sprintf("%s %s requires an access token", call.method, call.path)}
	}

	params, err := encoding.Values(call.params)
	if err != nil {
		return nil, &InvalidParameterError{Param: "params", Reason: err.Error()}
	}

	req := &Request{
		Method:  call.method,
		URL:     c.baseURL + call.path,
		Params:  params,
		AsJSON:  call.asJSON,
		Headers: c.headers(),
	}

	if call.splitIDs {
		req.Params, req.Files = encoding.Split(params, "ids")
	}

	c.debug("sending request", map[string]interface{}{"method": req.Method, "url": req.URL})

	resp, err := c.transport.Do(ctx, req)
	if resp != nil {
		c.recordRateLimits(resp.RateLimit)
	}

	if err != nil {
		return nil, err
	}

	return resp.Data, nil
}

// sendStatus sends call and decodes the boolean or string result most
// mutating endpoints return.
func (c *Client) sendStatus(ctx context.Context, call *apiCall) (bool, error) {
	data, err := c.send(ctx, call)
	if err != nil {
		return false, err
	}

	return truthy(data), nil
}

func (c *Client) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

// truthy interprets a result payload: true, a non-empty string or an object
// count as success.
func truthy(data json.RawMessage) bool {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}

// GetAlbum fetches an album by id.
func (c *Client) GetAlbum(ctx context.Context, id string) (*Album, error) {
	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: albumPath(KindAlbum, id)})
	if err != nil {
		return nil, fmt.Errorf("getting album: %w", err)
	}

	return newAlbum(c, KindAlbum, data, true)
}

// GetImage fetches an image by id.
func (c *Client) GetImage(ctx context.Context, id string) (*Image, error) {
	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: imagePath(KindImage, id)})
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}

	return newImage(c, KindImage, data, true)
}

// GetComment fetches a comment by id.
func (c *Client) GetComment(ctx context.Context, id string) (*Comment, error) {
	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: newRoute("/3/comment/{id}", "id", id).String()})
	if err != nil {
		return nil, fmt.Errorf("getting comment: %w", err)
	}

	return newComment(c, data, true)
}

// GetUser fetches a user by account name.
func (c *Client) GetUser(ctx context.Context, name string) (*User, error) {
	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: newRoute("/3/account/{name}", "name", name).String()})
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return newUser(c, data, true)
}

// GetMessage fetches a message by id. Requires authentication.
func (c *Client) GetMessage(ctx context.Context, id string) (*Message, error) {
	data, err := c.send(ctx, &apiCall{
		method:    http.MethodGet,
		path:      newRoute("/3/message/{id}", "id", id).String(),
		needsAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}

	return newMessage(c, data, true)
}

// GetNotification fetches a notification by id. Requires authentication.
func (c *Client) GetNotification(ctx context.Context, id string) (*Notification, error) {
	data, err := c.send(ctx, &apiCall{
		method:    http.MethodGet,
		path:      newRoute("/3/notification/{id}", "id", id).String(),
		needsAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return newNotification(c, data, true)
}

// GetGalleryAlbum fetches the gallery representation of an album.
func (c *Client) GetGalleryAlbum(ctx context.Context, id string) (*GalleryAlbum, error) {
	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: albumPath(KindGalleryAlbum, id)})
	if err != nil {
		return nil, fmt.Errorf("getting gallery album: %w", err)
	}

	album, err := newAlbum(c, KindGalleryAlbum, data, true)
	if err != nil {
		return nil, err
	}

	return wrapGalleryAlbum(album), nil
}

// GetGalleryImage fetches the gallery representation of an image.
func (c *Client) GetGalleryImage(ctx context.Context, id string) (*GalleryImage, error) {
	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: imagePath(KindGalleryImage, id)})
	if err != nil {
		return nil, fmt.Errorf("getting gallery image: %w", err)
	}

	image, err := newImage(c, KindGalleryImage, data, true)
	if err != nil {
		return nil, err
	}

	return wrapGalleryImage(image), nil
}

// GetSubredditImage fetches an image posted to a subreddit gallery.
func (c *Client) GetSubredditImage(ctx context.Context, subreddit, id string) (*GalleryImage, error) {
	path := newRoute("/3/gallery/r/{subreddit}/{id}", "subreddit", subreddit, "id", id).String()

	data, err := c.send(ctx, &apiCall{method: http.MethodGet, path: path})
	if err != nil {
		return nil, fmt.Errorf("getting subreddit image: %w", err)
	}

	image, err := newImage(c, KindGalleryImage, data, true)
	if err != nil {
		return nil, err
	}

	return wrapGalleryImage(image), nil
}
