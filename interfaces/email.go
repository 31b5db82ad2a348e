package interfaces

import (
	"context"

	"github.com/loksar/notifications/internal/models"
)

// EmailSender submits one email via the configured transport. Implementations
// must propagate transport failures to the caller and never retry.
type EmailSender interface {
	Send(ctx context.Context, email *models.EmailMessage) error
}
