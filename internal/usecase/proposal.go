package usecase

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/internal/domain"
)

type ProposalUsecase struct {
	repo     ClientRepository
	llm      CompletionGateway
	renderer PDFRenderer
}

func NewProposalUsecase(repo ClientRepository, llm CompletionGateway, renderer PDFRenderer) *ProposalUsecase {
	return &ProposalUsecase{
		repo:     repo,
		llm:      llm,
		renderer: renderer,
	}
}

// Generate drafts a proposal from the client profile and discovery answers
// and stores it on the client. A scheduled meeting survives regeneration.
func (uc *ProposalUsecase) Generate(ctx context.Context, clientID string) (domain.Proposal, error) {
	ctx, span := tracer.Start(ctx, "Proposal.Usecase.Generate")
	defer span.End()

	client, err := uc.repo.Get(ctx, clientID)
	if err != nil {
		return domain.Proposal{}, err
	}

	raw, err := uc.llm.Complete(ctx, proposalPrompt(client))
	if err != nil {
		span.RecordError(errors.Wrap(err, "proposal completion failed"))
		return domain.Proposal{}, errors.Wrap(err, "proposal completion failed")
	}

	proposal, ok := parseProposal(raw)
	if !ok {
		slog.WarnContext(ctx, "proposal response was not valid JSON, using raw text",
			slog.String("module", "proposal"),
			slog.String("clientId", clientID),
		)
	}
	proposal.GeneratedAt = time.Now()

	_, err = uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		if c.Proposal != nil {
			proposal.ScheduledMeetingAt = c.Proposal.ScheduledMeetingAt
		}
		c.Proposal = &proposal
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return domain.Proposal{}, err
	}
	return proposal, nil
}

// GeneratePDF renders the stored proposal and keeps it as a data URI.
func (uc *ProposalUsecase) GeneratePDF(ctx context.Context, clientID string) (string, error) {
	ctx, span := tracer.Start(ctx, "Proposal.Usecase.GeneratePDF")
	defer span.End()

	client, err := uc.repo.Get(ctx, clientID)
	if err != nil {
		return "", err
	}
	if client.Proposal == nil {
		return "", domain.NotFoundError{Resource: "proposal"}
	}

	doc := domain.PDFDocument{
		Kind:       domain.DocumentProposal,
		Template:   domain.TemplateCorporateProfessional,
		ClientName: client.DisplayName(),
		LogoURL:    client.LogoURL,
		Proposal:   client.Proposal,
	}
	if client.BrandProfile != nil {
		doc.Palette = client.BrandProfile.Colors
	}

	pdf, err := uc.Render(ctx, doc)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	dataURI := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)

	_, err = uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		if c.Proposal == nil {
			return domain.NotFoundError{Resource: "proposal"}
		}
		c.Proposal.PDFDataURI = dataURI
		return nil
	})
	if err != nil {
		return "", err
	}
	return dataURI, nil
}

// Render produces PDF bytes without touching any client.
func (uc *ProposalUsecase) Render(ctx context.Context, doc domain.PDFDocument) ([]byte, error) {
	if doc.Template == "" {
		doc.Template = domain.TemplateModernMinimal
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	pdf, err := uc.renderer.Render(ctx, doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render pdf")
	}
	return pdf, nil
}
