package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"formscore_backend/internal/config"
)

// Sender delivers a composed HTML email to a single recipient.
type Sender interface {
	Send(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender is used when email delivery is disabled by configuration.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// ResendSender delivers email through the Resend transactional API.
type ResendSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewSender builds the configured Sender implementation.
func NewSender(cfg *config.Config) (Sender, error) {
	if !cfg.EmailEnabled {
		return NoopSender{}, nil
	}

	switch cfg.EmailTransport {
	case "smtp":
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFromAddress, cfg.EmailFromName), nil
	case "resend":
		client := &http.Client{Timeout: 10 * time.Second}
		return &ResendSender{
			apiKey:    cfg.ResendAPIKey,
			fromName:  cfg.EmailFromName,
			fromEmail: cfg.EmailFromAddress,
			client:    client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown email transport %q", cfg.EmailTransport)
	}
}

func (r *ResendSender) Send(ctx context.Context, toEmail, subject, htmlContent string) error {
	payload := resendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", r.fromName, r.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		HTML:    htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}
