package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"
)

// Message is a message returned by the Discord API after creating,
// editing, or fetching a webhook message. It is populated purely by
// decoding the response and carries no client-side invariants.
//
// See https://discord.com/developers/docs/resources/channel#message-object
type Message struct {
	ID              string  `json:"id"`
	ChannelID       string  `json:"channel_id"`
	Content         string  `json:"content"`
	Timestamp       string  `json:"timestamp"`
	EditedTimestamp *string `json:"edited_timestamp"`
	TTS             bool    `json:"tts"`
	MentionEveryone bool    `json:"mention_everyone"`
	Embeds          []Embed `json:"embeds"`
	Pinned          bool    `json:"pinned"`
	WebhookID       string  `json:"webhook_id"`
	Type            int     `json:"type"`
}

// MessageBuilder assembles an outbound message. The API requires at
// least one of content or embeds to be present; this is left to the
// remote service to reject rather than enforced by Validate. The embeds
// list is always serialized, possibly empty.
//
// See https://discord.com/developers/docs/resources/webhook#execute-webhook-jsonform-params
type MessageBuilder struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Content   string  `json:"content,omitempty"`
	TTS       bool    `json:"tts,omitempty"`
	Embeds    []Embed `json:"embeds"`
}

// NewMessage creates an empty message builder.
func NewMessage() *MessageBuilder {
	return &MessageBuilder{Embeds: []Embed{}}
}

// NewMessageFrom seeds a builder with the content and embeds of an
// existing response message, for edit-in-place workflows.
func NewMessageFrom(message *Message) *MessageBuilder {
	builder := NewMessage()
	builder.Content = message.Content

	for _, embed := range message.Embeds {
		if embed.Fields == nil {
			embed.Fields = []EmbedField{}
		}
		builder.Embeds = append(builder.Embeds, embed)
	}

	return builder
}

// Validate checks the username and content lengths, validates every
// embed in order, and checks the summed embed character count against
// LimitEmbedTotal. The first failure aborts validation. Returns the
// aggregate character count across all embeds.
func (b *MessageBuilder) Validate() (int, error) {
	username := utf8.RuneCountInString(b.Username)
	if username > LimitUsername {
		return 0, &TooBigError{Field: "username", Size: username, Max: LimitUsername}
	}

	content := utf8.RuneCountInString(b.Content)
	if content > LimitContent {
		return 0, &TooBigError{Field: "content", Size: content, Max: LimitContent}
	}

	total := 0
	for _, embed := range b.Embeds {
		size, err := embed.Validate()
		if err != nil {
			return 0, err
		}
		total += size
	}

	if total > LimitEmbedTotal {
		return 0, &TooBigError{Field: "embed", Size: total, Max: LimitEmbedTotal}
	}

	return total, nil
}

// SetUsername overrides the default username of the webhook.
func (b *MessageBuilder) SetUsername(username string) *MessageBuilder {
	b.Username = username
	return b
}

// SetAvatarURL overrides the default avatar of the webhook.
func (b *MessageBuilder) SetAvatarURL(avatarURL string) *MessageBuilder {
	b.AvatarURL = avatarURL
	return b
}

// SetContent sets the plain text content of the message.
func (b *MessageBuilder) SetContent(content string) *MessageBuilder {
	b.Content = content
	return b
}

// SetTTS marks the message as text-to-speech.
func (b *MessageBuilder) SetTTS(tts bool) *MessageBuilder {
	b.TTS = tts
	return b
}

// Embed builds a fresh embed, applies fn to it, and appends it to the
// message. Once LimitEmbeds embeds are held the new embed is silently
// discarded, matching the hard limit of the API.
func (b *MessageBuilder) Embed(fn func(*Embed)) *MessageBuilder {
	if len(b.Embeds) < LimitEmbeds {
		embed := NewEmbed()
		fn(embed)
		b.Embeds = append(b.Embeds, *embed)
	}

	return b
}

// MessageAPI negotiates message functions with the Discord API: create,
// get, edit, and delete of messages sent by the webhook. It is reached
// through the Message field of API and shares the transport client with
// the webhook operations.
type MessageAPI struct {
	client *Client

	// Defaults applied to outbound messages that set none, populated by
	// NewFromConfig.
	username  string
	avatarURL string
}

func newMessageAPI(client *Client) *MessageAPI {
	return &MessageAPI{client: client}
}

// withDefaults returns a shallow copy of the builder with the configured
// default username and avatar filled in where the caller left them unset.
func (m *MessageAPI) withDefaults(message *MessageBuilder) *MessageBuilder {
	if m.username == "" && m.avatarURL == "" {
		return message
	}

	payload := *message
	if payload.Username == "" {
		payload.Username = m.username
	}
	if payload.AvatarURL == "" {
		payload.AvatarURL = m.avatarURL
	}
	return &payload
}

// Create sends a new message through the webhook. The threadID is
// required when posting into a forum channel thread, otherwise pass "".
// Validation happens before anything touches the network.
//
// See https://discord.com/developers/docs/resources/webhook#execute-webhook
func (m *MessageAPI) Create(ctx context.Context, message *MessageBuilder, threadID string) (*Message, error) {
	payload := m.withDefaults(message)

	total, err := payload.Validate()
	if err != nil {
		m.client.countValidationRejection()
		return nil, err
	}
	m.client.observeEmbedCharacters(total)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &UnknownError{Reason: "unable to encode message", Err: err}
	}

	// '?wait=true' tells the API to return the message with its new ID.
	endpoint := "?wait=true"
	if threadID != "" {
		endpoint += "&thread_id=" + threadID
	}

	resp, err := m.client.Send(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}

	var created Message
	if err := json.Unmarshal([]byte(resp), &created); err != nil {
		return nil, &ParseError{Context: "create response", Err: err}
	}

	m.client.countCreated()
	return &created, nil
}

// Get fetches an existing message sent by the webhook. This errors if
// the message no longer exists.
//
// See https://discord.com/developers/docs/resources/webhook#get-webhook-message
func (m *MessageAPI) Get(ctx context.Context, id string) (*Message, error) {
	resp, err := m.client.Send(ctx, http.MethodGet, "/messages/"+id, nil)
	if err != nil {
		return nil, err
	}

	var message Message
	if err := json.Unmarshal([]byte(resp), &message); err != nil {
		return nil, &ParseError{Context: "get response", Err: err}
	}

	return &message, nil
}

// Edit replaces an existing message sent by the webhook. This errors if
// the message no longer exists.
//
// See https://discord.com/developers/docs/resources/webhook#edit-webhook-message
func (m *MessageAPI) Edit(ctx context.Context, id string, message *MessageBuilder) (*Message, error) {
	payload := m.withDefaults(message)

	total, err := payload.Validate()
	if err != nil {
		m.client.countValidationRejection()
		return nil, err
	}
	m.client.observeEmbedCharacters(total)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &UnknownError{Reason: "unable to encode message", Err: err}
	}

	resp, err := m.client.Send(ctx, http.MethodPatch, "/messages/"+id, body)
	if err != nil {
		return nil, err
	}

	var edited Message
	if err := json.Unmarshal([]byte(resp), &edited); err != nil {
		return nil, &ParseError{Context: "edit response", Err: err}
	}

	m.client.countEdited()
	return &edited, nil
}

// Delete removes an existing message sent by the webhook. The API
// signals success with HTTP 204, which the transport reports as
// ErrNoContent; that one error is translated to success here.
//
// See https://discord.com/developers/docs/resources/webhook#delete-webhook-message
func (m *MessageAPI) Delete(ctx context.Context, id string) error {
	_, err := m.client.Send(ctx, http.MethodDelete, "/messages/"+id, nil)
	if err != nil && !errors.Is(err, ErrNoContent) {
		return err
	}

	m.client.countDeleted()
	return nil
}
