package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type messageData struct {
	ID        flexString `json:"id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Timestamp flexString `json:"timestamp"`
	Datetime  int64      `json:"datetime"`
}

// Message is a private message between two accounts.
type Message struct {
	resource

	data         messageData
	author       *User
	firstMessage *Message
}

func newMessage(c *Client, payload json.RawMessage, fetched bool) (*Message, error) {
	message := &Message{}
	message.init(c, KindMessage, fetched, message)

	if err := message.load(payload); err != nil {
		return nil, err
	}

	return message, nil
}

func placeholderMessage(c *Client, id string) *Message {
	message := &Message{}
	message.init(c, KindMessage, false, message, "id")
	message.data.ID = flexString(id)

	return message
}

func (m *Message) infoPath() string {
	return newRoute("/3/message/{id}", "id", m.ID()).String()
}

func (m *Message) populate(raw rawFields) error {
	delete(raw, "account_id")

	if err := m.decode(raw, &m.data); err != nil {
		return err
	}

	if value, ok := raw["from"]; ok {
		m.author = placeholderUser(m.client, rawString(value))
		delete(raw, "from")
		m.mark("author")
	}

	if value, ok := raw["parent_id"]; ok {
		m.firstMessage = nil
		if parentID := rawString(value); parentID != "" {
			m.firstMessage = placeholderMessage(m.client, parentID)
		}

		delete(raw, "parent_id")
		m.mark("first_message")
	}

	return nil
}

// ID never triggers a fetch.
func (m *Message) ID() string { return string(m.data.ID) }

func (m *Message) Subject(ctx context.Context) (string, error) {
	return lazy(ctx, &m.resource, "subject", &m.data.Subject)
}

func (m *Message) Body(ctx context.Context) (string, error) {
	return lazy(ctx, &m.resource, "body", &m.data.Body)
}

func (m *Message) Timestamp(ctx context.Context) (string, error) {
	ts, err := lazy(ctx, &m.resource, "timestamp", &m.data.Timestamp)

	return string(ts), err
}

// Author is the sender.
func (m *Message) Author(ctx context.Context) (*User, error) {
	return lazy(ctx, &m.resource, "author", &m.author)
}

// FirstMessage is the message that started the thread.
func (m *Message) FirstMessage(ctx context.Context) (*Message, error) {
	return lazy(ctx, &m.resource, "first_message", &m.firstMessage)
}

// Delete removes the message. Requires authentication.
func (m *Message) Delete(ctx context.Context) error {
	if _, err := m.client.send(ctx, &apiCall{method: http.MethodDelete, path: m.infoPath(), needsAuth: true}); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}

	return nil
}

// Thread returns every message in the conversation. Requires authentication.
func (m *Message) Thread(ctx context.Context) ([]*Message, error) {
	if !m.client.IsAuthenticated() {
		return nil, &AuthenticationError{Reason: "reading a message thread requires an access token"}
	}

	first, err := m.FirstMessage(ctx)
	if err != nil {
		return nil, err
	}

	threadID := m.ID()
	if first != nil {
		threadID = first.ID()
	}

	path := newRoute("/3/message/{id}/thread", "id", threadID).String()

	data, err := m.client.send(ctx, &apiCall{method: http.MethodGet, path: path, needsAuth: true})
	if err != nil {
		return nil, fmt.Errorf("getting message thread: %w", err)
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("decoding message thread: %w", err)
	}

	thread := make([]*Message, 0, len(payloads))

	for _, payload := range payloads {
		message, err := newMessage(m.client, payload, true)
		if err != nil {
			return nil, err
		}

		thread = append(thread, message)
	}

	return thread, nil
}

// Reply answers the message's author. Requires authentication.
func (m *Message) Reply(ctx context.Context, body string) error {
	if !m.client.IsAuthenticated() {
		return &AuthenticationError{Reason: "replying to a message requires an access token"}
	}

	author, err := m.Author(ctx)
	if err != nil {
		return err
	}

	if author == nil {
		return &InvalidParameterError{Param: "author", Reason: "message has no author to reply to"}
	}

	return author.SendMessage(ctx, body, "", m.ID())
}

func (m *Message) String() string {
	return fmt.Sprintf("<%s %s>", m.kind, m.ID())
}
