package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/supesu/discord-webhook-client/pkg/config"
	"github.com/supesu/discord-webhook-client/pkg/logger"
	"github.com/supesu/discord-webhook-client/pkg/metrics"
)

// Webhook is the webhook resource as returned by the Discord API.
//
// See https://discord.com/developers/docs/resources/webhook#webhook-object
type Webhook struct {
	ID        string  `json:"id"`
	Type      int     `json:"type"`
	GuildID   string  `json:"guild_id"`
	ChannelID string  `json:"channel_id"`
	Name      string  `json:"name"`
	Avatar    *string `json:"avatar,omitempty"`
	Token     string  `json:"token"`
	URL       string  `json:"url"`
}

// API is the entry point of the client. It exposes the webhook-scoped
// operations directly and the message-scoped operations through Message.
// Both groups share one transport client, so concurrent use reuses a
// single connection pool.
type API struct {
	// Message exposes create, get, edit, and delete of webhook messages.
	Message *MessageAPI

	client        *Client
	metricsServer *metrics.Server
}

// New creates an API from an explicit webhook ID and token. A nil
// logger disables logging.
func New(id, token string, log logger.Logger) *API {
	client := NewClient(id, token, log)

	return &API{
		Message: newMessageAPI(client),
		client:  client,
	}
}

// FromURL creates an API from a full webhook URL such as
// https://discord.com/api/webhooks/<id>/<token>. The last two path
// segments are taken as the ID and token; anything shorter than a full
// webhook URL is rejected.
func FromURL(rawURL string, log logger.Logger) (*API, error) {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 7 {
		return nil, &ParseError{Context: "webhook url"}
	}

	id := parts[len(parts)-2]
	token := parts[len(parts)-1]
	return New(id, token, log), nil
}

// NewFromConfig creates an API from a loaded configuration. The webhook
// URL takes priority over the ID/token pair. Root URL and timeout
// overrides are applied to the transport, and the configured username
// and avatar become defaults for outbound messages that set none.
// When metrics are enabled the client is instrumented against the
// default Prometheus registry and an exposition server is started on
// the configured port; stop it with Close.
func NewFromConfig(cfg *config.Config, log logger.Logger) (*API, error) {
	if log == nil {
		log = logger.NewNop()
	}

	var (
		api *API
		err error
	)

	if cfg.Webhook.URL != "" {
		api, err = FromURL(cfg.Webhook.URL, log)
		if err != nil {
			return nil, err
		}
	} else {
		api = New(cfg.Webhook.ID, cfg.Webhook.Token, log)
	}

	if cfg.Webhook.RootURL != "" {
		api.client.rootURL = cfg.Webhook.RootURL
	}
	if cfg.Webhook.Timeout != "" {
		if timeout, err := time.ParseDuration(cfg.Webhook.Timeout); err == nil {
			api.client.httpClient.Timeout = timeout
		}
	}

	api.Message.username = cfg.Webhook.Username
	api.Message.avatarURL = cfg.Webhook.AvatarURL

	if cfg.Metrics.Enabled {
		api.WithMetrics(metrics.Default())

		api.metricsServer = metrics.NewServer(cfg.Metrics.Port, log)
		if err := api.metricsServer.Start(); err != nil {
			return nil, err
		}
	}

	return api, nil
}

// Close releases resources beyond the shared HTTP client, currently the
// metrics exposition server when NewFromConfig started one. Safe to call
// on clients without one.
func (a *API) Close(ctx context.Context) error {
	if a.metricsServer != nil {
		return a.metricsServer.Stop(ctx)
	}
	return nil
}

// WithMetrics attaches Prometheus instrumentation to the client. Call it
// before issuing requests; the transport is not made for concurrent
// reconfiguration.
func (a *API) WithMetrics(m *metrics.ClientMetrics) *API {
	a.client.metrics = m
	return a
}

// ID returns the webhook ID the client authenticates with.
func (a *API) ID() string {
	return a.client.ID()
}

// Token returns the webhook token the client authenticates with.
func (a *API) Token() string {
	return a.client.Token()
}

// Get fetches the webhook resource itself.
//
// See https://discord.com/developers/docs/resources/webhook#get-webhook-with-token
func (a *API) Get(ctx context.Context) (*Webhook, error) {
	resp, err := a.client.Send(ctx, http.MethodGet, "", nil)
	if err != nil {
		return nil, err
	}

	var webhook Webhook
	if err := json.Unmarshal([]byte(resp), &webhook); err != nil {
		return nil, &ParseError{Context: "get webhook response", Err: err}
	}

	return &webhook, nil
}

// Modify updates the webhook resource, typically after changing the name
// or avatar of a Webhook previously obtained with Get.
//
// See https://discord.com/developers/docs/resources/webhook#modify-webhook-with-token
func (a *API) Modify(ctx context.Context, webhook *Webhook) (*Webhook, error) {
	body, err := json.Marshal(webhook)
	if err != nil {
		return nil, &UnknownError{Reason: "unable to encode webhook", Err: err}
	}

	resp, err := a.client.Send(ctx, http.MethodPatch, "", body)
	if err != nil {
		return nil, err
	}

	var modified Webhook
	if err := json.Unmarshal([]byte(resp), &modified); err != nil {
		return nil, &ParseError{Context: "modify webhook response", Err: err}
	}

	return &modified, nil
}

// Delete removes the webhook resource. The API signals success with
// HTTP 204, reported by the transport as ErrNoContent and translated to
// success here.
//
// See https://discord.com/developers/docs/resources/webhook#delete-webhook-with-token
func (a *API) Delete(ctx context.Context) error {
	_, err := a.client.Send(ctx, http.MethodDelete, "", nil)
	if err != nil && !errors.Is(err, ErrNoContent) {
		return err
	}

	return nil
}

// IsHealthy probes the webhook by fetching it. A nil return means the
// credentials are valid and the API is reachable.
func (a *API) IsHealthy(ctx context.Context) error {
	_, err := a.Get(ctx)
	return err
}
