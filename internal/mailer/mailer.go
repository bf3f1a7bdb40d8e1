package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// Email is one outbound transactional message.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextBody string `json:"text"`
	HTMLBody string `json:"html"`
}

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Config holds the settings for the HTTP mail API sender.
type Config struct {
	Endpoint string
	APIKey   string
	From     string
	FromName string
}

// APISender delivers email through an HTTP JSON mail API using a bearer key.
type APISender struct {
	cfg    Config
	client *http.Client
	logger interfaces.Logger
}

// APISenderOption configures the sender.
type APISenderOption func(*APISender)

// WithHTTPClient overrides the HTTP client used for delivery.
func WithHTTPClient(client *http.Client) APISenderOption {
	return func(s *APISender) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger attaches a logger to the sender.
func WithLogger(logger interfaces.Logger) APISenderOption {
	return func(s *APISender) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewAPISender creates a sender against the configured mail API.
func NewAPISender(cfg Config, opts ...APISenderOption) *APISender {
	s := &APISender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type apiPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// Send posts the message to the mail API.
func (s *APISender) Send(ctx context.Context, email Email) error {
	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}

	body, err := json.Marshal(apiPayload{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Text:    email.TextBody,
		HTML:    email.HTMLBody,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	res, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("email delivery failed", "to", email.To, "subject", email.Subject, "error", err)
		return fmt.Errorf("mailer: send failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		s.logger.Error("mail api rejected message", "to", email.To, "status", res.StatusCode)
		return fmt.Errorf("mailer: mail api returned status %d", res.StatusCode)
	}

	s.logger.Info("email sent", "to", email.To, "subject", email.Subject)
	return nil
}

// Noop is a Sender that drops every message. Used when mail is not configured.
type Noop struct{}

func (Noop) Send(context.Context, Email) error { return nil }
