package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/supesu/discord-webhook-client/pkg/logger"
	"github.com/supesu/discord-webhook-client/pkg/metrics"
)

// DefaultTimeout is the default HTTP timeout for Discord requests.
const DefaultTimeout = 30 * time.Second

// Client owns the webhook credentials and the shared HTTP client used by
// every operation. It is immutable after construction and is shared by
// pointer between the webhook and message operation groups, so both sides
// reuse one connection pool.
type Client struct {
	id         string
	token      string
	rootURL    string
	httpClient *http.Client
	logger     logger.Logger
	metrics    *metrics.ClientMetrics
}

// NewClient creates the transport client for the given webhook
// credentials. A nil logger disables logging.
func NewClient(id, token string, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		id:      id,
		token:   token,
		rootURL: DefaultRootURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: log,
	}
}

// ID returns the webhook ID.
func (c *Client) ID() string {
	return c.id
}

// Token returns the webhook token.
func (c *Client) Token() string {
	return c.token
}

// URL returns the authenticated base endpoint for this webhook.
func (c *Client) URL() string {
	return c.rootURL + "/" + c.id + "/" + c.token
}

// Send issues one HTTP request against the base endpoint plus the given
// suffix and classifies the response. A 200 returns the body text, a 204
// returns ErrNoContent, any other status returns a BadStatusError, and
// failures below the status line return an UnknownError. Every operation
// in the package goes through this single primitive.
func (c *Client) Send(ctx context.Context, method, endpoint string, body []byte) (string, error) {
	url := c.URL() + endpoint

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return "", &UnknownError{Reason: "unable to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countError("transport")
		return "", &UnknownError{Reason: "request to API", Err: err}
	}
	defer resp.Body.Close()

	c.observeRequest(method, resp.StatusCode, time.Since(start))
	c.logger.WithFields(map[string]interface{}{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
	}).Debug("Discord API request completed")

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			c.countError("body")
			return "", &UnknownError{Reason: "unable to read http body", Err: err}
		}
		if !utf8.Valid(data) {
			c.countError("body")
			return "", &UnknownError{Reason: "unable to decode http body"}
		}
		return string(data), nil

	case http.StatusNoContent:
		return "", ErrNoContent

	default:
		c.countError("status")
		return "", &BadStatusError{Code: resp.StatusCode}
	}
}

func (c *Client) observeRequest(method string, status int, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.metrics.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (c *Client) countError(kind string) {
	if c.metrics == nil {
		return
	}
	c.metrics.RequestErrors.WithLabelValues(kind).Inc()
}

func (c *Client) countValidationRejection() {
	if c.metrics == nil {
		return
	}
	c.metrics.ValidationRejectionsTotal.Inc()
}

func (c *Client) observeEmbedCharacters(total int) {
	if c.metrics == nil {
		return
	}
	c.metrics.EmbedCharacters.Observe(float64(total))
}

func (c *Client) countCreated() {
	if c.metrics != nil {
		c.metrics.MessagesCreatedTotal.Inc()
	}
}

func (c *Client) countEdited() {
	if c.metrics != nil {
		c.metrics.MessagesEditedTotal.Inc()
	}
}

func (c *Client) countDeleted() {
	if c.metrics != nil {
		c.metrics.MessagesDeletedTotal.Inc()
	}
}
