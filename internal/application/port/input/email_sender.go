package input

import (
	"context"

	"webmail-agent/internal/domain/entity"
)

// EmailSender is the programmatic surface: one send operation per call.
// Pipeline failures are reported through the SendResult status; the error
// return is reserved for misuse (e.g. reusing a closed session).
type EmailSender interface {
	SendEmail(ctx context.Context, instruction string) (*entity.SendResult, error)
}
