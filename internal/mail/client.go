package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wedsontavares/escribo-orders/internal/domain"
)

const (
	// DefaultFrom is the fixed sender address for confirmation emails.
	DefaultFrom = "noreply@ecommerce.com"

	sendTimeout = 10 * time.Second
)

// Sender delivers a rendered message through an external transport.
type Sender interface {
	// Configured reports whether a transport endpoint and credential are set.
	Configured() bool
	// Send delivers the message and returns the transport's result payload.
	// Errors wrap domain.ErrMailDelivery (or domain.ErrMailNotConfigured).
	Send(ctx context.Context, msg Message) (json.RawMessage, error)
}

// Client posts messages to an HTTP mail API using bearer-token auth with
// a JSON envelope {to, subject, text, from}.
type Client struct {
	apiURL     string
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *log.Entry
}

// NewClient builds a mail client. Empty apiURL or apiKey yields an
// unconfigured client; Send then reports domain.ErrMailNotConfigured.
func NewClient(apiURL, apiKey, from string, logger *log.Entry) *Client {
	if from == "" {
		from = DefaultFrom
	}
	if logger == nil {
		logger = log.WithField("component", "mail")
	}
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: sendTimeout},
		logger:     logger,
	}
}

// Configured reports whether both the endpoint and the credential are present.
func (c *Client) Configured() bool {
	return c != nil && c.apiURL != "" && c.apiKey != ""
}

type envelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	From    string `json:"from"`
}

// Send posts the message to the mail API and returns its JSON response.
func (c *Client) Send(ctx context.Context, msg Message) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, domain.ErrMailNotConfigured
	}

	payload, err := json.Marshal(envelope{
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
		From:    c.from,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode envelope: %v", domain.ErrMailDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrMailDelivery, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrMailDelivery, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithField("status", resp.StatusCode).Warn("mail service rejected message")
		return nil, fmt.Errorf("%w: mail service error: %d", domain.ErrMailDelivery, resp.StatusCode)
	}

	if !json.Valid(body) || len(body) == 0 {
		// Some transports answer with an empty or non-JSON body on success.
		return json.RawMessage(`{}`), nil
	}

	return json.RawMessage(body), nil
}

var _ Sender = (*Client)(nil)
