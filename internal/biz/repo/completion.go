package repo

import (
	"context"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
)

// CompletionRepo is the language-model completion capability.
type CompletionRepo interface {
	// Complete sends the prompt and returns the extracted action.
	// A (nil, nil) result means the model found no commitment action.
	Complete(ctx context.Context, prompt string) (*domain.CommitmentAction, error)
}
