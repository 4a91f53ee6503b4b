package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/application/adapter"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

// rejectionMarkers appear in provider errors that a retry cannot fix, such as
// a bad API key or a malformed recipient. Rate limits and outages are absent
// on purpose: the worker retries those.
var rejectionMarkers = []string{
	"401", "403", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

// ResendClient delivers mail through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// NewSender picks Resend when an API key is configured and the log sender
// otherwise, so local environments still drain the queue.
func NewSender(cfg config.EmailConfig) adapter.EmailSender {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
		return LogSender{}
	}
	return NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
}

func (c *ResendClient) Send(ctx context.Context, input adapter.OutgoingEmail) (*adapter.SendReceipt, error) {
	sent, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}
	return &adapter.SendReceipt{ProviderID: sent.Id}, nil
}

// classifySendError wraps a provider error as permanent or temporary.
func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range rejectionMarkers {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "permanent email failure", err)
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", err)
}
