package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
)

type VoteUsecase struct {
	repo      ClientRepository
	publisher TallyPublisher
	registry  VoterRegistry
	config    domain.Config
	newVoteID func() (string, error)
}

func NewVoteUsecase(
	repo ClientRepository,
	publisher TallyPublisher,
	registry VoterRegistry,
	config domain.Config,
) *VoteUsecase {
	return &VoteUsecase{
		repo:      repo,
		publisher: publisher,
		registry:  registry,
		config:    config,
		newVoteID: agencyhub.NewPublicVoteID,
	}
}

// OpenVoteLink pairs originalID with its variant under a public vote id.
func (uc *VoteUsecase) OpenVoteLink(ctx context.Context, clientID, originalID string) (agencyhub.VoteLink, error) {
	ctx, span := tracer.Start(ctx, "Vote.Usecase.OpenVoteLink")
	defer span.End()

	var id string
	_, err := uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		var err error
		id, err = c.OpenVoteSession(originalID, uc.newVoteID)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return agencyhub.VoteLink{}, err
	}

	return agencyhub.VoteLink{
		PublicVoteID: id,
		URL:          agencyhub.ComposeVoteURL(uc.config.PublicBaseURL, id),
	}, nil
}

// GetSession returns the public view of a voting session.
func (uc *VoteUsecase) GetSession(ctx context.Context, publicVoteID string) (domain.VoteView, error) {
	ctx, span := tracer.Start(ctx, "Vote.Usecase.GetSession")
	defer span.End()

	if !agencyhub.IsPublicVoteID(publicVoteID) {
		return domain.VoteView{}, domain.NotFoundError{Resource: "vote session"}
	}

	session, err := uc.repo.FindVoteSession(ctx, publicVoteID)
	if err != nil {
		return domain.VoteView{}, err
	}
	client, err := uc.repo.Get(ctx, session.ClientID)
	if err != nil {
		return domain.VoteView{}, err
	}

	original, err := client.Content(session.OriginalContentID)
	if err != nil {
		return domain.VoteView{}, err
	}
	variant, err := client.Content(session.VariantContentID)
	if err != nil {
		return domain.VoteView{}, err
	}
	tally, err := client.Tally(session)
	if err != nil {
		return domain.VoteView{}, err
	}

	return domain.VoteView{
		PublicVoteID: publicVoteID,
		ClientName:   client.DisplayName(),
		Original:     *original,
		Variant:      *variant,
		Tally:        tally,
	}, nil
}

type RecordVoteInput struct {
	PublicVoteID      string
	SelectedContentID string
	// HasCookie is true when the request already carries the vote cookie.
	HasCookie bool
	Voter     domain.Voter
}

// RecordVote adds one vote to the selected item and returns the new tally.
func (uc *VoteUsecase) RecordVote(ctx context.Context, input RecordVoteInput) (agencyhub.VoteTally, error) {
	ctx, span := tracer.Start(ctx, "Vote.Usecase.RecordVote")
	defer span.End()

	if strings.TrimSpace(input.PublicVoteID) == "" || strings.TrimSpace(input.SelectedContentID) == "" {
		return agencyhub.VoteTally{}, domain.InvalidArgumentError{Message: "publicVoteId and selectedContentId are required"}
	}
	if input.HasCookie {
		return agencyhub.VoteTally{}, domain.ErrAlreadyVoted
	}

	session, err := uc.repo.FindVoteSession(ctx, input.PublicVoteID)
	if err != nil {
		return agencyhub.VoteTally{}, err
	}
	if !session.Has(input.SelectedContentID) {
		return agencyhub.VoteTally{}, domain.InvalidArgumentError{Message: "selected content is not part of this vote"}
	}

	claimed := false
	if uc.config.VoteDedup == domain.VoteDedupServer && uc.registry != nil {
		fresh, err := uc.registry.Claim(ctx, input.PublicVoteID, input.Voter)
		if err != nil {
			span.RecordError(errors.Wrap(err, "failed to claim voter"))
			return agencyhub.VoteTally{}, errors.Wrap(err, "failed to claim voter")
		}
		if !fresh {
			return agencyhub.VoteTally{}, domain.ErrAlreadyVoted
		}
		claimed = true
	}

	var tally agencyhub.VoteTally
	_, err = uc.repo.Mutate(ctx, session.ClientID, func(c *domain.Client) error {
		err := c.RecordVote(input.PublicVoteID, input.SelectedContentID)
		if err != nil {
			return err
		}
		tally, err = c.Tally(session)
		return err
	})
	if err != nil {
		span.RecordError(err)
		if claimed {
			uc.releaseVoter(ctx, input)
		}
		return agencyhub.VoteTally{}, err
	}

	publishTally(ctx, uc.publisher, input.PublicVoteID, agencyhub.EventTypeVote, tally)
	return tally, nil
}

func (uc *VoteUsecase) releaseVoter(ctx context.Context, input RecordVoteInput) {
	err := uc.registry.Release(context.WithoutCancel(ctx), input.PublicVoteID, input.Voter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to release voter claim",
			slog.String("module", "vote"),
			slog.String("publicVoteId", input.PublicVoteID),
			slog.String("error", err.Error()),
		)
	}
}

func publishTally(ctx context.Context, publisher TallyPublisher, publicVoteID, eventType string, tally agencyhub.VoteTally) {
	if publisher == nil || publicVoteID == "" {
		return
	}
	channel := agencyhub.VoteChannel(publicVoteID)
	err := publisher.Publish(ctx, channel, agencyhub.Event{
		Channel:   channel,
		Type:      eventType,
		Tally:     tally,
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish tally",
			slog.String("module", "vote"),
			slog.String("publicVoteId", publicVoteID),
			slog.String("error", err.Error()),
		)
	}
}
