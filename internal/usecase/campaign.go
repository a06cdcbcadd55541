package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agencyhub/agencyhub/internal/domain"
)

type CampaignUsecase struct {
	repo CampaignRepository
}

func NewCampaignUsecase(repo CampaignRepository) *CampaignUsecase {
	return &CampaignUsecase{repo: repo}
}

func validateCampaign(campaign domain.Campaign) error {
	if strings.TrimSpace(campaign.UserID) == "" {
		return domain.InvalidArgumentError{Message: "userId is required"}
	}
	if strings.TrimSpace(campaign.Name) == "" {
		return domain.InvalidArgumentError{Message: "name is required"}
	}
	if campaign.ContentType != "" {
		if _, err := domain.ParseContentType(string(campaign.ContentType)); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CampaignUsecase) ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error) {
	if userID == "" {
		return nil, domain.InvalidArgumentError{Message: "userId is required"}
	}
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *CampaignUsecase) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	if err := validateCampaign(campaign); err != nil {
		return domain.Campaign{}, err
	}
	now := time.Now()
	campaign.ID = uuid.NewString()
	if campaign.Status == "" {
		campaign.Status = domain.CampaignDraft
	}
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	return uc.repo.Create(ctx, campaign)
}

func (uc *CampaignUsecase) Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	if campaign.ID == "" {
		return domain.Campaign{}, domain.InvalidArgumentError{Message: "id is required"}
	}
	if err := validateCampaign(campaign); err != nil {
		return domain.Campaign{}, err
	}
	current, err := uc.repo.Get(ctx, campaign.ID)
	if err != nil {
		return domain.Campaign{}, err
	}
	if current.UserID != campaign.UserID {
		return domain.Campaign{}, domain.ForbiddenError{Message: "campaign belongs to another user"}
	}
	if campaign.Status == "" {
		campaign.Status = current.Status
	}
	campaign.CreatedAt = current.CreatedAt
	campaign.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, campaign)
}

func (uc *CampaignUsecase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.InvalidArgumentError{Message: "id is required"}
	}
	return uc.repo.Delete(ctx, id)
}
