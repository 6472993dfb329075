package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

var ErrUnavailable = errors.New("llm unavailable")

// Unavailable stands in when no credentials are configured. Every call
// fails, which the orchestrator turns into its apology reply.
type Unavailable struct {
	Reason string
}

func NewUnavailable(reason string) *Unavailable {
	return &Unavailable{Reason: reason}
}

func (u *Unavailable) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}
