package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
)

// LogSender records mail in the structured log instead of delivering it.
type LogSender struct{}

func (LogSender) Send(_ context.Context, input adapter.OutgoingEmail) (*adapter.SendReceipt, error) {
	slog.Info("email logged instead of sent", "to", input.To, "subject", input.Subject)
	return &adapter.SendReceipt{ProviderID: "log-" + uuid.NewString()}, nil
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = LogSender{}
)
