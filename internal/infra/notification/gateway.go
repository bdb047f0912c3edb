package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"lifeline/config"
	"lifeline/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultGatewayTimeout = 10 * time.Second

// gatewayMessenger implements the Messenger interface against an HTTP message
// gateway that fronts the actual email and SMS providers. One POST per
// message; the gateway owns retries and provider failover.
type gatewayMessenger struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// emailPayload is the gateway's wire format for the /email channel.
type emailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// smsPayload is the gateway's wire format for the /sms channel. The
// destination must already be normalized to international format.
type smsPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// NewGatewayMessenger creates a Messenger backed by the configured HTTP
// message gateway.
func NewGatewayMessenger(cfg *config.Config, logger *slog.Logger) (service.Messenger, error) {
	gw := cfg.NotifyGateway
	if gw == nil || gw.BaseURL == "" {
		return nil, errors.New("notify gateway base URL must be configured")
	}

	timeout := gw.Timeout
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}

	return &gatewayMessenger{
		baseURL: gw.BaseURL,
		apiKey:  gw.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// SendEmail sends a single email message through the gateway.
func (m *gatewayMessenger) SendEmail(ctx context.Context, to, subject, body string) error {
	payload := emailPayload{To: to, Subject: subject, Body: body}

	if err := m.post(ctx, "/email", payload); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	m.logger.Debug("email dispatched", slog.String("to", to), slog.String("subject", subject))

	return nil
}

// SendSMS sends a single text message through the gateway.
func (m *gatewayMessenger) SendSMS(ctx context.Context, to, body string) error {
	payload := smsPayload{To: to, Body: body}

	if err := m.post(ctx, "/sms", payload); err != nil {
		return errors.Wrap(err, "failed to send sms")
	}

	m.logger.Debug("sms dispatched", slog.String("to", to))

	return nil
}

func (m *gatewayMessenger) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("gateway returned non-success status: %d", resp.StatusCode)
	}

	return nil
}
