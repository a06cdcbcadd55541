package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
)

type ContentUsecase struct {
	repo      ClientRepository
	llm       CompletionGateway
	publisher TallyPublisher
}

func NewContentUsecase(repo ClientRepository, llm CompletionGateway, publisher TallyPublisher) *ContentUsecase {
	return &ContentUsecase{
		repo:      repo,
		llm:       llm,
		publisher: publisher,
	}
}

// complete runs req and shapes the answer for t. One-pager answers must
// parse; anything else is returned trimmed.
func (uc *ContentUsecase) complete(ctx context.Context, t domain.ContentType, req domain.CompletionRequest) (domain.GeneratedOutput, error) {
	raw, err := uc.llm.Complete(ctx, req)
	if err != nil {
		return domain.GeneratedOutput{}, errors.Wrap(err, "completion failed")
	}

	output := domain.GeneratedOutput{ContentType: t}
	if t == domain.ContentPDFOnePager {
		onePager, err := parseOnePager(raw)
		if err != nil {
			return domain.GeneratedOutput{}, err
		}
		encoded, err := onePager.Encode()
		if err != nil {
			return domain.GeneratedOutput{}, errors.Wrap(err, "failed to encode one-pager")
		}
		output.Content = encoded
		output.OnePager = &onePager
		return output, nil
	}

	output.Content = strings.TrimSpace(raw)
	if output.Content == "" {
		return domain.GeneratedOutput{}, errors.New("completion returned no content")
	}
	return output, nil
}

// Generate produces content without persisting it.
func (uc *ContentUsecase) Generate(ctx context.Context, req domain.ContentRequest) (domain.GeneratedOutput, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.Generate")
	defer span.End()

	if err := req.Validate(); err != nil {
		return domain.GeneratedOutput{}, err
	}

	output, err := uc.complete(ctx, req.ContentType, contentPrompt(req))
	if err != nil {
		span.RecordError(err)
		return domain.GeneratedOutput{}, err
	}
	return output, nil
}

type RefineInput struct {
	ContentType domain.ContentType `json:"contentType"`
	Content     string             `json:"content"`
	Instruction string             `json:"instruction"`
}

func (uc *ContentUsecase) Refine(ctx context.Context, input RefineInput) (domain.GeneratedOutput, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.Refine")
	defer span.End()

	if _, err := domain.ParseContentType(string(input.ContentType)); err != nil {
		return domain.GeneratedOutput{}, err
	}
	if strings.TrimSpace(input.Content) == "" {
		return domain.GeneratedOutput{}, domain.InvalidArgumentError{Message: "content is required"}
	}
	if strings.TrimSpace(input.Instruction) == "" {
		return domain.GeneratedOutput{}, domain.InvalidArgumentError{Message: "instruction is required"}
	}

	output, err := uc.complete(ctx, input.ContentType, refinePrompt(input.ContentType, input.Content, input.Instruction))
	if err != nil {
		span.RecordError(err)
		return domain.GeneratedOutput{}, err
	}
	return output, nil
}

func requestFor(client domain.Client, item domain.GeneratedContent) domain.ContentRequest {
	topic := item.Topic
	if topic == "" {
		topic = "the same subject as the original"
	}
	return domain.ContentRequest{
		ContentType:    item.Type,
		ClientName:     client.DisplayName(),
		Industry:       client.Industry,
		Topic:          topic,
		TargetAudience: client.TargetAudience,
		BrandVoice:     client.BrandVoice,
		BrandProfile:   client.BrandProfile,
	}
}

type VariantResult struct {
	Variant  domain.GeneratedContent `json:"variant"`
	Original domain.GeneratedContent `json:"original"`
	Replaced bool                    `json:"replaced"`
}

// GenerateVariant writes a variant of contentID. Regenerating an existing
// variant requires confirm and wipes the tallies of both items.
func (uc *ContentUsecase) GenerateVariant(ctx context.Context, clientID, contentID string, confirm bool) (VariantResult, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.GenerateVariant")
	defer span.End()

	client, err := uc.repo.Get(ctx, clientID)
	if err != nil {
		return VariantResult{}, err
	}
	original, err := client.Content(contentID)
	if err != nil {
		return VariantResult{}, err
	}
	if original.IsVariant() {
		return VariantResult{}, domain.InvalidArgumentError{Message: "cannot create a variant of a variant"}
	}
	if client.VariantOf(contentID) != nil && !confirm {
		return VariantResult{}, domain.ErrVariantExists
	}
	previousVoteID := original.PublicVoteID

	output, err := uc.complete(ctx, original.Type, variantPrompt(requestFor(client, *original), original.Content))
	if err != nil {
		span.RecordError(err)
		return VariantResult{}, err
	}

	var result VariantResult
	_, err = uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		item, replaced, err := c.UpsertVariant(contentID, uuid.NewString(), output.Content, confirm, time.Now())
		if err != nil {
			return err
		}
		orig, err := c.Content(contentID)
		if err != nil {
			return err
		}
		result = VariantResult{Variant: item, Original: *orig, Replaced: replaced}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return VariantResult{}, err
	}

	if result.Replaced {
		publishTally(ctx, uc.publisher, previousVoteID, agencyhub.EventTypeReset, agencyhub.VoteTally{})
	}
	return result, nil
}

type PromoteResult struct {
	Original domain.GeneratedContent `json:"original"`
	Variant  domain.GeneratedContent `json:"variant"`
}

func (uc *ContentUsecase) PromoteVariant(ctx context.Context, clientID, variantID string) (PromoteResult, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.PromoteVariant")
	defer span.End()

	var result PromoteResult
	var previousVoteID string
	_, err := uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		if item, err := c.Content(variantID); err == nil {
			previousVoteID = item.PublicVoteID
		}
		promoted, demoted, err := c.PromoteVariant(variantID, time.Now())
		if err != nil {
			return err
		}
		result = PromoteResult{Original: promoted, Variant: demoted}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return PromoteResult{}, err
	}

	publishTally(ctx, uc.publisher, previousVoteID, agencyhub.EventTypeReset, agencyhub.VoteTally{})
	return result, nil
}

type ContentInput struct {
	Type     domain.ContentType `json:"type"`
	Topic    string             `json:"topic"`
	Content  string             `json:"content"`
	Template string             `json:"template"`
}

// AddContent appends a generated item to the client's content list.
func (uc *ContentUsecase) AddContent(ctx context.Context, clientID string, input ContentInput) (domain.GeneratedContent, error) {
	if _, err := domain.DecodePayload(input.Type, input.Content); err != nil {
		return domain.GeneratedContent{}, err
	}
	var template domain.PDFTemplate
	if input.Type == domain.ContentPDFOnePager {
		var err error
		template, err = domain.ParseTemplate(input.Template)
		if err != nil {
			return domain.GeneratedContent{}, err
		}
	}

	now := time.Now()
	item := domain.GeneratedContent{
		ID:        uuid.NewString(),
		Type:      input.Type,
		Topic:     input.Topic,
		Content:   input.Content,
		Template:  template,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		return c.AppendContent(item)
	})
	if err != nil {
		return domain.GeneratedContent{}, err
	}
	return item, nil
}

type EditInput struct {
	Content  string `json:"content"`
	Template string `json:"template"`
}

func (uc *ContentUsecase) EditContent(ctx context.Context, clientID, contentID string, input EditInput) (domain.GeneratedContent, error) {
	var template domain.PDFTemplate
	if input.Template != "" {
		var err error
		template, err = domain.ParseTemplate(input.Template)
		if err != nil {
			return domain.GeneratedContent{}, err
		}
	}

	var edited domain.GeneratedContent
	_, err := uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		item, err := c.EditContent(contentID, input.Content, template, time.Now())
		if err != nil {
			return err
		}
		edited = item
		return nil
	})
	if err != nil {
		return domain.GeneratedContent{}, err
	}
	return edited, nil
}

func (uc *ContentUsecase) RemoveContent(ctx context.Context, clientID, contentID string) error {
	var previousVoteID string
	_, err := uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		if item, err := c.Content(contentID); err == nil {
			previousVoteID = item.PublicVoteID
		}
		return c.RemoveContent(contentID)
	})
	if err != nil {
		return err
	}

	publishTally(ctx, uc.publisher, previousVoteID, agencyhub.EventTypeReset, agencyhub.VoteTally{})
	return nil
}

// Report summarises a client's content and vote results.
func (uc *ContentUsecase) Report(ctx context.Context, clientID, focus string) (string, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.Report")
	defer span.End()

	client, err := uc.repo.Get(ctx, clientID)
	if err != nil {
		return "", err
	}

	tallies := map[string]string{}
	sessions, err := domain.PairSessions(client.ID, client.MarketingContent)
	if err == nil {
		for _, s := range sessions {
			tally, err := client.Tally(s)
			if err != nil {
				continue
			}
			original, _ := client.Content(s.OriginalContentID)
			label := fmt.Sprintf("%s \"%s\"", original.Type, original.Topic)
			tallies[label] = fmt.Sprintf("original %d, variant %d", tally.OriginalVotes, tally.VariantVotes)
		}
	}

	raw, err := uc.llm.Complete(ctx, reportPrompt(client, tallies, focus))
	if err != nil {
		span.RecordError(errors.Wrap(err, "report completion failed"))
		return "", errors.Wrap(err, "report completion failed")
	}
	return strings.TrimSpace(raw), nil
}
