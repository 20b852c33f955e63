package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type notificationData struct {
	ID        flexString `json:"id"`
	AccountID flexString `json:"account_id"`
	IsViewed  bool       `json:"is_viewed"`
}

// NotificationContent holds whichever shape a notification carries: a
// Message when the payload has a subject, a Comment when it has a caption,
// and the raw JSON otherwise.
type NotificationContent struct {
	Message *Message
	Comment *Comment
	Raw     json.RawMessage
}

// Notification is an entry in the authenticated user's inbox.
type Notification struct {
	resource

	data    notificationData
	content NotificationContent
}

func newNotification(c *Client, payload json.RawMessage, fetched bool) (*Notification, error) {
	notification := &Notification{}
	notification.init(c, KindNotification, fetched, notification)

	if err := notification.load(payload); err != nil {
		return nil, err
	}

	return notification, nil
}

func newNotifications(c *Client, payloads []json.RawMessage) ([]*Notification, error) {
	notifications := make([]*Notification, 0, len(payloads))

	for _, payload := range payloads {
		notification, err := newNotification(c, payload, true)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, notification)
	}

	return notifications, nil
}

func (n *Notification) infoPath() string {
	return newRoute("/3/notification/{id}", "id", n.ID()).String()
}

func (n *Notification) populate(raw rawFields) error {
	if err := n.decode(raw, &n.data); err != nil {
		return err
	}

	value, ok := raw["content"]
	if !ok {
		return nil
	}

	content, err := n.contentFrom(value)
	if err != nil {
		return err
	}

	n.content = content
	n.mark("content")

	return nil
}

func (n *Notification) contentFrom(value json.RawMessage) (NotificationContent, error) {
	var markers map[string]json.RawMessage
	if err := json.Unmarshal(value, &markers); err != nil {
		return NotificationContent{Raw: value}, nil //nolint:nilerr // non-object content is kept raw
	}

	if _, ok := markers["subject"]; ok {
		message, err := newMessage(n.client, value, true)
		if err != nil {
			return NotificationContent{}, err
		}

		return NotificationContent{Message: message, Raw: value}, nil
	}

	if _, ok := markers["caption"]; ok {
		comment, err := newComment(n.client, value, true)
		if err != nil {
			return NotificationContent{}, err
		}

		return NotificationContent{Comment: comment, Raw: value}, nil
	}

	return NotificationContent{Raw: value}, nil
}

// ID never triggers a fetch.
func (n *Notification) ID() string { return string(n.data.ID) }

func (n *Notification) IsViewed(ctx context.Context) (bool, error) {
	return lazy(ctx, &n.resource, "is_viewed", &n.data.IsViewed)
}

func (n *Notification) Content(ctx context.Context) (NotificationContent, error) {
	return lazy(ctx, &n.resource, "content", &n.content)
}

// MarkAsViewed marks the notification as read. Requires authentication.
func (n *Notification) MarkAsViewed(ctx context.Context) error {
	if _, err := n.client.send(ctx, &apiCall{method: http.MethodPost, path: n.infoPath(), needsAuth: true}); err != nil {
		return fmt.Errorf("marking notification viewed: %w", err)
	}

	n.data.IsViewed = true
	n.mark("is_viewed")

	return nil
}

func (n *Notification) String() string {
	return fmt.Sprintf("<%s %s>", n.kind, n.ID())
}
