package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/internal/domain"
)

type BrandUsecase struct {
	repo ClientRepository
	llm  CompletionGateway
}

func NewBrandUsecase(repo ClientRepository, llm CompletionGateway) *BrandUsecase {
	return &BrandUsecase{repo: repo, llm: llm}
}

// Analyze derives a brand profile from imageURL, or the client's logo when
// imageURL is empty. A profile is only ever derived once.
func (uc *BrandUsecase) Analyze(ctx context.Context, clientID, imageURL string) (domain.BrandProfile, error) {
	ctx, span := tracer.Start(ctx, "Brand.Usecase.Analyze")
	defer span.End()

	client, err := uc.repo.Get(ctx, clientID)
	if err != nil {
		return domain.BrandProfile{}, err
	}
	if client.BrandProfile != nil {
		return domain.BrandProfile{}, domain.ErrBrandProfileSet
	}
	if imageURL == "" {
		imageURL = client.LogoURL
	}
	if imageURL == "" {
		return domain.BrandProfile{}, domain.InvalidArgumentError{Message: "imageUrl is required when the client has no logo"}
	}

	raw, err := uc.llm.Complete(ctx, brandPrompt(imageURL))
	if err != nil {
		span.RecordError(errors.Wrap(err, "brand completion failed"))
		return domain.BrandProfile{}, errors.Wrap(err, "brand completion failed")
	}
	profile, err := parseBrandProfile(raw)
	if err != nil {
		span.RecordError(err)
		return domain.BrandProfile{}, err
	}
	profile.AnalyzedAt = time.Now()

	_, err = uc.repo.Mutate(ctx, clientID, func(c *domain.Client) error {
		if c.BrandProfile != nil {
			return domain.ErrBrandProfileSet
		}
		c.BrandProfile = &profile
		return nil
	})
	if err != nil {
		return domain.BrandProfile{}, err
	}
	return profile, nil
}
