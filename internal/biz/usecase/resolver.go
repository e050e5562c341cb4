package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
	"github.com/prithvianilk/my-besto-friendo/internal/wideevent"
)

// ResolverConfig carries resolution-cycle configuration.
type ResolverConfig struct {
	// ModelTimeOffset compensates the completion capability returning
	// due times as fixed-offset wall-clock values labelled UTC. The
	// offset is subtracted from toBeCompletedAt before persistence.
	// Zero disables the compensation.
	ModelTimeOffset time.Duration
}

// CommitmentResolverUsecase runs one resolution cycle per inbound
// message: snapshot the window and open commitments, ask the model for
// an action, validate it, and route it against store and calendar.
type CommitmentResolverUsecase struct {
	windows     repo.WindowRepo
	commitments repo.CommitmentRepo
	completion  repo.CompletionRepo
	prompts     *PromptBuilder
	router      *actionRouter
	config      ResolverConfig
	now         func() time.Time
}

// NewCommitmentResolver creates the resolver usecase.
func NewCommitmentResolver(
	windows repo.WindowRepo,
	commitments repo.CommitmentRepo,
	calendar repo.CalendarRepo,
	completion repo.CompletionRepo,
	prompts *PromptBuilder,
	config ResolverConfig,
) *CommitmentResolverUsecase {
	return &CommitmentResolverUsecase{
		windows:     windows,
		commitments: commitments,
		completion:  completion,
		prompts:     prompts,
		router:      &actionRouter{commitments: commitments, calendar: calendar},
		config:      config,
		now:         time.Now,
	}
}

// Name identifies the resolver among registered message handlers.
func (uc *CommitmentResolverUsecase) Name() string {
	return "commitment-resolver"
}

// OnMessage runs the resolution cycle for one message. Domain-level
// failures (empty or invalid model response, missing id, not found,
// duplicate) end the cycle with a recorded reason and a nil error;
// capability and persistence failures are returned so the delivery
// mechanism can apply its retry policy.
func (uc *CommitmentResolverUsecase) OnMessage(ctx context.Context, ec *wideevent.Context, msg domain.WhatsAppMessage) error {
	ec.Enrich(TraceKey, CommitmentTrace{
		Participant:    ptr(msg.ParticipantID),
		SenderName:     ptr(msg.SenderName),
		FromMe:         ptr(msg.FromMe),
		MessageContent: ptr(msg.Content),
		MessageSentAt:  ptr(msg.SentAt),
	})

	history := uc.windows.GetMessages(msg.ParticipantID)
	open, err := uc.commitments.FindOpenForParticipant(ctx, msg.ParticipantID, uc.now())
	if err != nil {
		fail(ec, fmt.Sprintf("open commitments lookup failed: %v", err))
		return fmt.Errorf("find open commitments: %w", err)
	}

	ec.Enrich(TraceKey, CommitmentTrace{
		HistorySnapshotSize: ptr(len(history)),
		OpenCommitmentsSize: ptr(len(open)),
	})

	prompt := uc.prompts.BuildPrompt(
		uc.prompts.BuildSnapshot(history),
		uc.prompts.BuildOpenCommitmentsSnapshot(open),
	)
	ec.Enrich(TraceKey, CommitmentTrace{Prompt: ptr(prompt)})

	action, err := uc.completion.Complete(ctx, prompt)
	if err != nil {
		fail(ec, fmt.Sprintf("completion failed: %v", err))
		return fmt.Errorf("complete: %w", err)
	}
	if action == nil {
		fail(ec, "model returned empty response")
		return nil
	}

	if violations := action.Validate(); len(violations) > 0 {
		ec.Enrich(TraceKey, CommitmentTrace{
			Success:          ptr(false),
			ValidationErrors: ptr(strings.Join(violations, "; ")),
		})
		return nil
	}

	uc.normalize(action)

	ec.Enrich(TraceKey, CommitmentTrace{
		ActionType:            ptr(action.Type),
		CommitmentID:          action.ID,
		CommitmentDescription: ptr(action.Commitment.Description),
		CommittedAt:           ptr(action.Commitment.CommittedAt),
		ToBeCompletedAt:       ptr(action.Commitment.ToBeCompletedAt),
	})

	return uc.router.Apply(ctx, ec, action, msg)
}

// normalize recovers true UTC from the model's fixed-offset wall-clock
// due time. The model is asked for timestamps in the conversation's
// local zone and labels the shifted value "Z"; subtracting the
// configured offset undoes that shift.
func (uc *CommitmentResolverUsecase) normalize(action *domain.CommitmentAction) {
	if uc.config.ModelTimeOffset == 0 {
		return
	}
	if !action.Commitment.ToBeCompletedAt.IsZero() {
		action.Commitment.ToBeCompletedAt = action.Commitment.ToBeCompletedAt.Add(-uc.config.ModelTimeOffset)
	}
}
