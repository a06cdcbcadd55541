package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
)

type OnboardingUsecase struct {
	repo   ClientRepository
	llm    CompletionGateway
	mailer Mailer
	config domain.Config
}

func NewOnboardingUsecase(repo ClientRepository, llm CompletionGateway, mailer Mailer, config domain.Config) *OnboardingUsecase {
	return &OnboardingUsecase{
		repo:   repo,
		llm:    llm,
		mailer: mailer,
		config: config,
	}
}

// SetStage moves a client to stage. Only forward moves and stays succeed.
func (uc *OnboardingUsecase) SetStage(ctx context.Context, id string, stage string) (domain.Client, error) {
	target, err := domain.ParseStage(stage)
	if err != nil {
		return domain.Client{}, err
	}
	return uc.repo.Mutate(ctx, id, func(c *domain.Client) error {
		next, err := c.OnboardingStage.Advance(target)
		if err != nil {
			return err
		}
		c.OnboardingStage = next
		return nil
	})
}

type DiscoveryInvite struct {
	Client domain.Client `json:"client"`
	URL    string        `json:"url"`
	Mailed bool          `json:"mailed"`
}

// SendDiscovery marks the discovery link as sent. Mailing is a separate step
// and its failure leaves the stage advanced.
func (uc *OnboardingUsecase) SendDiscovery(ctx context.Context, id string, sendEmail bool) (DiscoveryInvite, error) {
	ctx, span := tracer.Start(ctx, "Onboarding.Usecase.SendDiscovery")
	defer span.End()

	client, err := uc.SetStage(ctx, id, string(domain.StageDiscoverySent))
	if err != nil {
		span.RecordError(err)
		return DiscoveryInvite{}, err
	}

	invite := DiscoveryInvite{
		Client: client,
		URL:    agencyhub.ComposeDiscoveryURL(uc.config.PublicBaseURL, client.DiscoveryLinkID),
	}

	if sendEmail && uc.mailer != nil {
		err = uc.mailer.SendDiscoveryLink(ctx, client.Email, client.DisplayName(), invite.URL)
		if err != nil {
			span.RecordError(errors.Wrap(err, "failed to mail discovery link"))
			slog.ErrorContext(ctx, "failed to mail discovery link",
				slog.String("module", "onboarding"),
				slog.String("clientId", id),
				slog.String("error", err.Error()),
			)
		} else {
			invite.Mailed = true
		}
	}

	return invite, nil
}

// DiscoveryReply relays the chat so far to the model and returns its next turn.
func (uc *OnboardingUsecase) DiscoveryReply(ctx context.Context, linkID string, history []domain.ChatTurn) (domain.ChatTurn, error) {
	ctx, span := tracer.Start(ctx, "Onboarding.Usecase.DiscoveryReply")
	defer span.End()

	for _, turn := range history {
		switch turn.Role {
		case domain.ChatRoleUser, domain.ChatRoleAssistant, domain.ChatRoleSystem:
		default:
			return domain.ChatTurn{}, domain.InvalidArgumentError{Message: "unknown chat role"}
		}
	}

	client, err := uc.repo.GetByDiscoveryLink(ctx, linkID)
	if err != nil {
		return domain.ChatTurn{}, err
	}

	reply, err := uc.llm.Complete(ctx, discoveryPrompt(client, history))
	if err != nil {
		span.RecordError(errors.Wrap(err, "discovery completion failed"))
		return domain.ChatTurn{}, errors.Wrap(err, "discovery completion failed")
	}

	return domain.ChatTurn{Role: domain.ChatRoleAssistant, Content: strings.TrimSpace(reply)}, nil
}

type DiscoveryResult struct {
	Data    map[string]string `json:"discoveryData"`
	History []domain.ChatTurn `json:"conversationHistory"`
}

// CompleteDiscovery attaches the intake answers and raises the stage to
// discovery_complete. A client already further along keeps its stage.
func (uc *OnboardingUsecase) CompleteDiscovery(ctx context.Context, linkID string, result DiscoveryResult) (domain.Client, error) {
	if len(result.Data) == 0 && len(result.History) == 0 {
		return domain.Client{}, domain.InvalidArgumentError{Message: "discoveryData or conversationHistory is required"}
	}

	client, err := uc.repo.GetByDiscoveryLink(ctx, linkID)
	if err != nil {
		return domain.Client{}, err
	}

	return uc.repo.Mutate(ctx, client.ID, func(c *domain.Client) error {
		if len(c.DiscoveryData) > 0 || len(c.ConversationHistory) > 0 {
			return domain.ConflictError{Message: "discovery already completed"}
		}
		if c.OnboardingStage.Index() < domain.StageDiscoveryComplete.Index() {
			c.OnboardingStage = domain.StageDiscoveryComplete
		}
		c.DiscoveryData = result.Data
		c.ConversationHistory = result.History
		return nil
	})
}
